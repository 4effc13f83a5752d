package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// TelegramService sends messages to the restaurant owner's chat via the
// Telegram Bot API. Only one chat identity is ever authorized.
type TelegramService struct {
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service instance
func NewTelegramService() (*TelegramService, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if botToken == "" || chatID == "" {
		return nil, fmt.Errorf("missing Telegram credentials in environment variables")
	}

	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// AuthorizedChat reports whether a chat id belongs to the configured
// operator.
func (t *TelegramService) AuthorizedChat(chatID string) bool {
	return chatID != "" && chatID == t.chatID
}

// SendMessage sends Markdown-formatted text to the operator chat.
func (t *TelegramService) SendMessage(text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	body, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorData struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errorData)
		return fmt.Errorf("telegram API error: %s", errorData.Description)
	}

	return nil
}

// NotifyNewReservation tells the operator about a fresh booking.
// Best-effort: failures are logged, never propagated to the customer.
func (t *TelegramService) NotifyNewReservation(name, date, timeStr string, partySize int, code string) {
	text := fmt.Sprintf("*New Reservation* 🍽\n\n*Name:* %s\n*Date:* %s\n*Time:* %s\n*Party:* %d\n*Code:* `%s`",
		name, date, timeStr, partySize, code)

	if err := t.SendMessage(text); err != nil {
		log.Printf("❌ Failed to notify operator about reservation %s: %v", code, err)
	}
}
