package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/restaurant"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
)

// Generator is the external text-generation collaborator the chatbot
// depends on. GroqService satisfies it; tests plug in fakes.
type Generator interface {
	AnswerRestaurantQuestion(question, context string) string
	GenerateBookingConfirmation(customerName, phoneNumber, date, timeStr string, partySize int, context string) *BookingConfirmation
}

// ChatSession is one customer's conversation. Turns are serialized by
// the session mutex: a message is processed to completion, including any
// generator call, before the next one is accepted.
type ChatSession struct {
	ID         string
	State      models.BookingState
	Booking    models.BookingInfo
	Messages   []models.ChatMessage
	CreatedAt  time.Time
	LastActive time.Time

	mu sync.Mutex
}

// ChatbotService runs the slot-filling dialogue for every active
// session. Sessions are independent; no dialogue state is shared.
type ChatbotService struct {
	generator  Generator
	sessions   map[string]*ChatSession
	mu         sync.RWMutex
	sessionTTL time.Duration
}

// NewChatbotService creates a new chatbot service. A nil generator is
// allowed; the bot then answers with fixed fallbacks.
func NewChatbotService(generator Generator) *ChatbotService {
	c := &ChatbotService{
		generator:  generator,
		sessions:   make(map[string]*ChatSession),
		sessionTTL: 30 * time.Minute,
	}

	go c.cleanupExpiredSessions()

	return c
}

// Session returns the session for an id, creating it with the greeting
// message if needed.
func (c *ChatbotService) Session(sessionID string) *ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session, exists := c.sessions[sessionID]; exists {
		return session
	}

	session := &ChatSession{
		ID:         sessionID,
		State:      models.StateIdle,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
	}
	appendMessage(session, models.SenderSystem,
		fmt.Sprintf(`Hi! I'm %s's assistant. Ask me about the restaurant or type "book table" to make a reservation.`, restaurant.Name))

	c.sessions[sessionID] = session
	log.Printf("💬 Chat session started: %s", sessionID)
	return session
}

// ActiveSessions returns the number of live sessions (for monitoring).
func (c *ChatbotService) ActiveSessions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// ProcessMessage runs one dialogue turn and returns the new messages the
// bot produced plus the resulting state. The session lock guarantees no
// two turns interleave for the same session.
func (c *ChatbotService) ProcessMessage(sessionID, text string) ([]models.ChatMessage, models.BookingState) {
	session := c.Session(sessionID)

	session.mu.Lock()
	defer session.mu.Unlock()

	session.LastActive = time.Now()

	input := strings.TrimSpace(text)
	if input == "" {
		return nil, session.State
	}

	appendMessage(session, models.SenderUser, input)
	before := len(session.Messages)

	c.handleTurn(session, input)

	return session.Messages[before:], session.State
}

func (c *ChatbotService) handleTurn(session *ChatSession, input string) {
	lower := strings.ToLower(input)

	// Global abort: "cancel" in any collecting state drops the partial
	// booking and returns to idle.
	if lower == "cancel" && session.State != models.StateIdle {
		appendMessage(session, models.SenderSystem, "Booking cancelled.")
		resetSession(session)
		return
	}

	switch session.State {
	case models.StateIdle:
		if strings.Contains(lower, "book table") || strings.Contains(lower, "reservation") {
			session.State = models.StateCollectingName
			appendMessage(session, models.SenderBot, "Sure, I can help with that! What's the name for the booking?")
		} else {
			appendMessage(session, models.SenderBot, c.answerQuestion(input))
		}

	case models.StateCollectingName:
		session.Booking.CustomerName = input
		session.State = models.StateCollectingPhone
		appendMessage(session, models.SenderBot, "Got it. And a phone number?")

	case models.StateCollectingPhone:
		session.Booking.PhoneNumber = input
		session.State = models.StateCollectingDate
		appendMessage(session, models.SenderBot, "Thanks! What date would you like to book for? (e.g., YYYY-MM-DD)")

	case models.StateCollectingDate:
		session.Booking.Date = input
		session.State = models.StateCollectingTime
		appendMessage(session, models.SenderBot, "Perfect. And what time? (e.g., HH:MM in 24-hour format, like 19:30 for 7:30 PM)")

	case models.StateCollectingTime:
		session.Booking.Time = input
		session.State = models.StateCollectingPartySize
		appendMessage(session, models.SenderBot, "Great! How many people in your party?")

	case models.StateCollectingPartySize:
		partySize, err := strconv.Atoi(input)
		if err != nil || partySize <= 0 {
			// Stay in the same state and re-prompt.
			appendMessage(session, models.SenderBot, "Please enter a valid number for the party size.")
			return
		}

		session.Booking.PartySize = partySize
		session.State = models.StateConfirmingBooking
		appendMessage(session, models.SenderBot, "Alright, I have all the details. Let me confirm that for you...")

		c.finishBooking(session)

	default:
		appendMessage(session, models.SenderBot, "I'm not sure how to handle that right now. You can ask questions or type 'book table'.")
	}
}

// finishBooking hands the completed slot set to the confirmation
// generator and always resets the session to idle, success or not.
func (c *ChatbotService) finishBooking(session *ChatSession) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Chatbot confirmation panic for session %s: %v", session.ID, r)
			appendMessage(session, models.SenderBot, "Sorry, something went wrong. Please try again later.")
		}
		resetSession(session)
	}()

	if !session.Booking.Complete() {
		appendMessage(session, models.SenderBot, "Something went wrong gathering details. Let's start over. Type 'book table'.")
		return
	}

	confirmation := c.confirmBooking(&session.Booking)
	appendMessage(session, models.SenderBot, confirmation.ConfirmationMessage)
	if confirmation.BookingDetails != "" {
		appendMessage(session, models.SenderSystem, "Booking Details: "+confirmation.BookingDetails)
	}
}

func (c *ChatbotService) confirmBooking(info *models.BookingInfo) *BookingConfirmation {
	if c.generator == nil {
		return FallbackBookingConfirmation(info)
	}
	return c.generator.GenerateBookingConfirmation(
		info.CustomerName, info.PhoneNumber, info.Date, info.Time, info.PartySize, restaurant.Context)
}

func (c *ChatbotService) answerQuestion(question string) string {
	if c.generator == nil {
		return QuestionFallback
	}
	return c.generator.AnswerRestaurantQuestion(question, restaurant.Context)
}

// FallbackBookingConfirmation builds the fully deterministic payload
// used when no generator is configured.
func FallbackBookingConfirmation(info *models.BookingInfo) *BookingConfirmation {
	bookingID := utils.GenerateBookingID()
	return &BookingConfirmation{
		ConfirmationMessage: FallbackConfirmationMessage(info.CustomerName, info.Date, info.Time, info.PartySize),
		BookingDetails:      BookingDetailsLine(bookingID, info.CustomerName, info.PhoneNumber, info.Date, info.Time, info.PartySize),
		BookingID:           bookingID,
	}
}

func resetSession(session *ChatSession) {
	session.State = models.StateIdle
	session.Booking = models.BookingInfo{}
}

func appendMessage(session *ChatSession, sender, text string) {
	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	})
}

// cleanupExpiredSessions drops sessions idle past the TTL. Partial
// booking data goes with them.
func (c *ChatbotService) cleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for id, session := range c.sessions {
			if time.Since(session.LastActive) > c.sessionTTL {
				delete(c.sessions, id)
				log.Printf("💬 Chat session expired: %s", id)
			}
		}
		c.mu.Unlock()
	}
}
