package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
)

// WhatsAppHandler feeds incoming WhatsApp messages into the chatbot and
// replies via Twilio. Sessions are keyed by phone number.
type WhatsAppHandler struct {
	chatbot       *services.ChatbotService
	twilioService *services.TwilioService // nil when not configured
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(chatbot *services.ChatbotService, twilioService *services.TwilioService) *WhatsAppHandler {
	return &WhatsAppHandler{
		chatbot:       chatbot,
		twilioService: twilioService,
	}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // WhatsApp number (whatsapp:+14155550100)
	To         string `form:"To"`
	Body       string `form:"Body"`
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Status callbacks arrive on the same URL with an empty body.
	if payload.Body == "" || payload.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	log.Printf("📱 WhatsApp message from %s: %s", from, payload.Body)

	replies, _ := h.chatbot.ProcessMessage(from, payload.Body)
	response := joinReplies(replies)

	if h.twilioService != nil && response != "" {
		if err := h.twilioService.SendWhatsAppMessage(from, response); err != nil {
			log.Printf("❌ Failed to send WhatsApp response: %v", err)
		}
	} else if response != "" {
		log.Printf("📤 Response (not sent - Twilio not configured): %s", response)
	}

	return c.SendStatus(fiber.StatusOK)
}

// joinReplies flattens a turn's messages into one WhatsApp body.
func joinReplies(replies []models.ChatMessage) string {
	var parts []string
	for _, m := range replies {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n\n")
}
