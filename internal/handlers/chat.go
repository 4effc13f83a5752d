package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
	"github.com/bistrozen/bistrozen-backend/internal/validation"
)

// ChatHandler handles the website chat widget and the AI endpoints
type ChatHandler struct {
	chatbot   *services.ChatbotService
	groq      *services.GroqService // nil when not configured
	validator *validation.ReservationValidator
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatbot *services.ChatbotService, groq *services.GroqService) *ChatHandler {
	return &ChatHandler{
		chatbot:   chatbot,
		groq:      groq,
		validator: validation.NewReservationValidator(),
	}
}

// HandleChatMessage runs one dialogue turn for a chat session
func (h *ChatHandler) HandleChatMessage(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	// First message may arrive without a session id; mint one.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	replies, state := h.chatbot.ProcessMessage(req.SessionID, req.Message)
	if replies == nil {
		replies = []models.ChatMessage{}
	}

	return c.JSON(fiber.Map{
		"session_id": req.SessionID,
		"replies":    replies,
		"state":      state,
	})
}

// HandleTableBooking validates a completed slot set and returns the
// generated confirmation payload
func (h *ChatHandler) HandleTableBooking(c *fiber.Ctx) error {
	var raw struct {
		CustomerName string `json:"customerName"`
		PhoneNumber  string `json:"phoneNumber"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		PartySize    any    `json:"partySize"`
		Context      string `json:"context"`
	}

	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON in request body",
		})
	}

	info := &models.BookingInfo{
		CustomerName: utils.SanitizeInput(raw.CustomerName),
		PhoneNumber:  utils.SanitizeInput(raw.PhoneNumber),
		Date:         utils.SanitizeInput(raw.Date),
		Time:         utils.SanitizeInput(raw.Time),
		PartySize:    parsePartySize(raw.PartySize),
	}
	context := utils.SanitizeInput(raw.Context)

	validationErrors := h.validator.ValidateBooking(info)
	if context == "" {
		validationErrors = append(validationErrors, "Booking context is required")
	}
	if len(validationErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationErrors,
		})
	}

	if h.groq == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Booking service temporarily unavailable",
		})
	}

	// Generator failures fall back to a templated message inside the
	// service; this call never hard-fails.
	booking := h.groq.GenerateBookingConfirmation(
		info.CustomerName, info.PhoneNumber, info.Date, info.Time, info.PartySize, context)

	return c.JSON(fiber.Map{
		"success": true,
		"booking": booking,
		"message": "Booking processed successfully",
	})
}

// HandleQuestion forwards a free-form question to the generator
func (h *ChatHandler) HandleQuestion(c *fiber.Ctx) error {
	var req struct {
		Question string `json:"question"`
		Context  string `json:"context"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Question == "" || req.Context == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question and context are required",
		})
	}

	answer := services.QuestionFallback
	if h.groq != nil {
		answer = h.groq.AnswerRestaurantQuestion(req.Question, req.Context)
	}

	return c.JSON(fiber.Map{
		"answer": answer,
	})
}
