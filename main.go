package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/bistrozen/bistrozen-backend/database"
	"github.com/bistrozen/bistrozen-backend/internal/jobs"
	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/routes"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(&models.Reservation{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Text generation (question answering + booking confirmations)
	groqService, err := services.NewGroqService()
	if err != nil {
		log.Printf("⚠️  Groq not configured - chatbot will use fallback responses: %v", err)
		groqService = nil
	} else {
		log.Println("✅ Groq service initialized")
	}

	// Telegram admin bot + notifications
	telegramService, err := services.NewTelegramService()
	if err != nil {
		log.Printf("⚠️  Telegram not configured - admin bot disabled: %v", err)
		telegramService = nil
	} else {
		log.Println("✅ Telegram service initialized")
	}

	// WhatsApp chat channel
	twilioService, err := services.NewTwilioService()
	if err != nil {
		log.Printf("⚠️  Twilio not configured - WhatsApp channel disabled: %v", err)
		twilioService = nil
	} else {
		log.Println("✅ Twilio service initialized")
	}

	// Dialogue state machine. A nil generator is fine; the bot falls
	// back to templated responses.
	var generator services.Generator
	if groqService != nil {
		generator = groqService
	}
	chatbot := services.NewChatbotService(generator)

	// Daily reservation digest for the operator
	var digestJob *jobs.DigestJob
	if telegramService != nil {
		digestJob = jobs.NewDigestJob(store, telegramService)
		digestJob.Start()
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "BistroZen Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	// Service banner
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "BistroZen Backend API",
			"version": "1.0.0",
			"status":  "healthy",
			"storage": getStorageType(),
			"services": fiber.Map{
				"groq":     groqService != nil,
				"telegram": telegramService != nil,
				"whatsapp": twilioService != nil,
				"sessions": chatbot.ActiveSessions(),
			},
		})
	})

	routes.SetupRoutes(app, store, chatbot, groqService, telegramService, twilioService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		if digestJob != nil {
			log.Println("⏹️  Stopping digest job...")
			digestJob.Stop()
		}
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 BistroZen Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🤖 Chatbot: %s", getGeneratorStatus(groqService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getGeneratorStatus(groq *services.GroqService) string {
	if groq == nil {
		return "Fallback responses only"
	}
	return "Groq-backed"
}
