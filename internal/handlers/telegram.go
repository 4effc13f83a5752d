package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/storage"
)

// TelegramHandler answers the restaurant owner's bot commands.
type TelegramHandler struct {
	store    storage.Store
	telegram *services.TelegramService
}

// NewTelegramHandler creates a new Telegram webhook handler
func NewTelegramHandler(store storage.Store, telegram *services.TelegramService) *TelegramHandler {
	return &TelegramHandler{
		store:    store,
		telegram: telegram,
	}
}

// telegramUpdate is the slice of the Bot API update we care about.
type telegramUpdate struct {
	Message struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// HandleWebhook processes incoming bot commands. Telegram retries on
// non-200 responses, so everything except an unauthorized sender is
// acknowledged with 200.
func (h *TelegramHandler) HandleWebhook(c *fiber.Ctx) error {
	var update telegramUpdate
	if err := c.BodyParser(&update); err != nil || update.Message.Text == "" || update.Message.Chat.ID == 0 {
		// Not a message we handle
		return c.JSON(fiber.Map{"status": "ok"})
	}

	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	if !h.telegram.AuthorizedChat(chatID) {
		log.Printf("⚠️  Unauthorized Telegram request from chat ID: %s", chatID)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	responseText := h.handleCommand(strings.TrimSpace(update.Message.Text))

	if err := h.telegram.SendMessage(responseText); err != nil {
		log.Printf("❌ Failed to send Telegram reply: %v", err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *TelegramHandler) handleCommand(text string) string {
	today := time.Now()

	switch {
	case text == "/today":
		return h.dayDigest("Today's Reservations", today.Format("2006-01-02"))

	case text == "/tomorrow":
		return h.dayDigest("Tomorrow's Reservations", today.AddDate(0, 0, 1).Format("2006-01-02"))

	case text == "/week" || text == "/next7days":
		return h.rangeDigest(today, 7)

	case strings.HasPrefix(text, "/check"):
		parts := strings.Fields(text)
		if len(parts) < 2 {
			return "Please provide a confirmation code. Usage: `/check [code]`"
		}
		return h.checkCode(parts[1])

	case text == "/help":
		return helpText

	default:
		return "Sorry, I don't understand that command. Type /help to see what I can do."
	}
}

const helpText = `*BistroZen Admin Bot* 🤖

/today - today's reservations
/tomorrow - tomorrow's reservations
/week - next 7 days
/next7days - next 7 days
/check [code] - look up a confirmation code
/help - this message`

// dayDigest lists pending and confirmed reservations for one date.
func (h *TelegramHandler) dayDigest(title, date string) string {
	lines := h.reservationLines(date)
	if len(lines) == 0 {
		return fmt.Sprintf("No reservations for %s.", date)
	}
	return fmt.Sprintf("*%s:*\n\n%s", title, strings.Join(lines, "\n"))
}

// rangeDigest lists reservations from start over the given number of days.
func (h *TelegramHandler) rangeDigest(start time.Time, days int) string {
	var b strings.Builder
	total := 0

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		lines := h.reservationLines(date)
		if len(lines) == 0 {
			continue
		}
		total += len(lines)
		fmt.Fprintf(&b, "*%s*\n%s\n\n", date, strings.Join(lines, "\n"))
	}

	if total == 0 {
		return fmt.Sprintf("No reservations in the next %d days.", days)
	}
	return fmt.Sprintf("*Reservations, next %d days:*\n\n%s", days, strings.TrimSpace(b.String()))
}

func (h *TelegramHandler) reservationLines(date string) []string {
	reservations, err := h.store.QueryReservations(&models.ReservationFilter{Date: date})
	if err != nil {
		log.Printf("❌ Digest query failed for %s: %v", date, err)
		return nil
	}

	var lines []string
	for _, r := range reservations {
		if r.Status != models.StatusPending && r.Status != models.StatusConfirmed {
			continue
		}
		lines = append(lines, fmt.Sprintf("*%s* - %s (%d ppl) - *%s*",
			r.ReservationTime, r.CustomerName, r.PartySize, r.Status))
	}
	return lines
}

func (h *TelegramHandler) checkCode(code string) string {
	reservations, err := h.store.QueryReservations(&models.ReservationFilter{ConfirmationCode: code})
	if err != nil {
		log.Printf("❌ Code lookup failed for %s: %v", code, err)
		return "Something went wrong looking up that code. Try again."
	}

	if len(reservations) == 0 {
		return fmt.Sprintf("No reservation found with code: `%s`", code)
	}

	r := reservations[0]
	return fmt.Sprintf(`*Reservation Found!* ✅
----------------------
*Code:* %s
*Name:* %s
*Date:* %s
*Time:* %s
*Party:* %d
*Status:* %s`,
		r.ConfirmationCode, r.CustomerName, r.ReservationDate,
		r.ReservationTime, r.PartySize, r.Status)
}
