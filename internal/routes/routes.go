package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/bistrozen/bistrozen-backend/internal/handlers"
	"github.com/bistrozen/bistrozen-backend/internal/middleware"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, chatbot *services.ChatbotService,
	groq *services.GroqService, telegram *services.TelegramService, twilioService *services.TwilioService) {

	reservationHandler := handlers.NewReservationHandler(store, telegram)
	chatHandler := handlers.NewChatHandler(chatbot, groq)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	app.Get("/health", healthHandler.Check)

	// API routes
	api := app.Group("/api")

	reservations := api.Group("/reservations")
	reservations.Post("/", reservationHandler.CreateReservation)
	reservations.Get("/", reservationHandler.GetReservations)
	reservations.Get("/availability", reservationHandler.GetAvailability)
	reservations.Patch("/:id", reservationHandler.UpdateReservationStatus)

	api.Post("/chat", chatHandler.HandleChatMessage)
	api.Post("/table-booking", chatHandler.HandleTableBooking)
	api.Post("/restaurant-question", chatHandler.HandleQuestion)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	if telegram != nil {
		telegramHandler := handlers.NewTelegramHandler(store, telegram)
		webhooks.Post("/telegram", telegramHandler.HandleWebhook)
	}

	whatsappHandler := handlers.NewWhatsAppHandler(chatbot, twilioService)
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: skip signature validation for tunneled webhooks
		webhooks.Post("/whatsapp", whatsappHandler.HandleWebhook)
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsappHandler.HandleWebhook)
	}
}
