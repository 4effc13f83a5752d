package models

import "time"

// ReservationInput is the customer-supplied part of a reservation,
// as submitted by the reservation form or assembled by the chatbot.
type ReservationInput struct {
	CustomerName    string `json:"customerName" validate:"required,min=2,max=50"`
	CustomerEmail   string `json:"customerEmail" validate:"required"`
	CustomerPhone   string `json:"customerPhone" validate:"required"`
	ReservationDate string `json:"reservationDate" validate:"required"`
	ReservationTime string `json:"reservationTime" validate:"required"`
	PartySize       int    `json:"partySize" validate:"required"`
	SpecialRequests string `json:"specialRequests"`
}

// Reservation is a stored booking. Records are never deleted;
// cancellation is a status change.
type Reservation struct {
	ID string `json:"id" gorm:"primaryKey"`

	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ReservationDate string `json:"reservationDate" gorm:"index"`
	ReservationTime string `json:"reservationTime"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests"`

	Status string `json:"status"`

	// ConfirmationCode is assigned once at creation and never changes.
	ConfirmationCode string `json:"confirmationCode" gorm:"index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reservation status constants
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no-show"
)

// ValidStatuses lists every status the admin UI may set. Transitions are
// unrestricted; the intended flow is pending → confirmed/cancelled →
// completed/no-show.
var ValidStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
	StatusNoShow:    true,
}

// ReservationFilter narrows a reservation query. Zero values mean
// "don't filter on this field".
type ReservationFilter struct {
	Date             string
	Status           string
	Phone            string
	ConfirmationCode string
}
