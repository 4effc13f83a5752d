package models

import "time"

// BookingState tracks where a chat session is in the slot-filling flow.
type BookingState string

const (
	StateIdle                BookingState = "idle"
	StateCollectingName      BookingState = "collectingName"
	StateCollectingPhone     BookingState = "collectingPhone"
	StateCollectingDate      BookingState = "collectingDate"
	StateCollectingTime      BookingState = "collectingTime"
	StateCollectingPartySize BookingState = "collectingPartySize"
	StateConfirmingBooking   BookingState = "confirmingBooking"
)

// ChatMessage is one entry in a session transcript. Transcripts are
// session-scoped and never persisted.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"` // "user", "bot" or "system"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Message senders
const (
	SenderUser   = "user"
	SenderBot    = "bot"
	SenderSystem = "system"
)

// BookingInfo accumulates slot values across dialogue turns. It is
// discarded when the session ends, on "cancel" and on any error.
type BookingInfo struct {
	CustomerName string `json:"customerName"`
	PhoneNumber  string `json:"phoneNumber"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PartySize    int    `json:"partySize"`
}

// Complete reports whether every slot has been filled.
func (b *BookingInfo) Complete() bool {
	return b.CustomerName != "" && b.PhoneNumber != "" &&
		b.Date != "" && b.Time != "" && b.PartySize > 0
}
