package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
)

func newChatApp() *fiber.App {
	app := fiber.New()
	handler := NewChatHandler(services.NewChatbotService(nil), nil)

	app.Post("/api/chat", handler.HandleChatMessage)
	app.Post("/api/table-booking", handler.HandleTableBooking)
	app.Post("/api/restaurant-question", handler.HandleQuestion)

	return app
}

func TestHandleChatMessage(t *testing.T) {
	app := newChatApp()

	t.Run("mints a session id", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/chat", `{"message":"book table"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		assert.NotEmpty(t, payload["session_id"])
		assert.Equal(t, string(models.StateCollectingName), payload["state"])

		replies, ok := payload["replies"].([]any)
		require.True(t, ok)
		require.NotEmpty(t, replies)
	})

	t.Run("keeps the supplied session id", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/chat", `{"session_id":"abc","message":"book table"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc", payload["session_id"])

		// Next turn continues the same dialogue.
		_, payload = postJSON(t, app, "/api/chat", `{"session_id":"abc","message":"Amy"}`)
		assert.Equal(t, string(models.StateCollectingPhone), payload["state"])
	})

	t.Run("missing message", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/chat", `{"session_id":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "message is required", payload["error"])
	})
}

func TestHandleTableBooking(t *testing.T) {
	app := newChatApp()

	t.Run("validation failure", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/table-booking", `{"customerName":"Amy"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Validation failed", payload["error"])

		details := payload["details"].([]any)
		assert.Contains(t, details, "Booking context is required")
	})

	t.Run("unavailable without generator", func(t *testing.T) {
		body := fmt.Sprintf(`{
			"customerName": "Amy",
			"phoneNumber": "5550000",
			"date": %q,
			"time": "19:00",
			"partySize": 3,
			"context": "restaurant info"
		}`, futureWeekday())
		resp, payload := postJSON(t, app, "/api/table-booking", body)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "Booking service temporarily unavailable", payload["error"])
	})
}

func TestHandleQuestion(t *testing.T) {
	app := newChatApp()

	t.Run("missing fields", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/restaurant-question", `{"question":"When do you open?"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Question and context are required", payload["error"])
	})

	t.Run("fallback answer without generator", func(t *testing.T) {
		resp, payload := postJSON(t, app, "/api/restaurant-question", `{
			"question": "When do you open?",
			"context": "restaurant info"
		}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, services.QuestionFallback, payload["answer"])
	})
}
