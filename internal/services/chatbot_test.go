package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrozen/bistrozen-backend/internal/models"
)

// fakeGenerator records calls and returns canned responses.
type fakeGenerator struct {
	answers       int
	confirmations int
	panicOnBook   bool
}

func (f *fakeGenerator) AnswerRestaurantQuestion(question, context string) string {
	f.answers++
	return "We open at noon on weekdays."
}

func (f *fakeGenerator) GenerateBookingConfirmation(customerName, phoneNumber, date, timeStr string, partySize int, context string) *BookingConfirmation {
	if f.panicOnBook {
		panic("generator blew up")
	}
	f.confirmations++
	return &BookingConfirmation{
		ConfirmationMessage: fmt.Sprintf("See you soon, %s!", customerName),
		BookingDetails:      BookingDetailsLine("BK123456", customerName, phoneNumber, date, timeStr, partySize),
		BookingID:           "BK123456",
	}
}

func lastText(replies []models.ChatMessage) string {
	if len(replies) == 0 {
		return ""
	}
	return replies[len(replies)-1].Text
}

func TestChatbotAnswersQuestionsWhenIdle(t *testing.T) {
	gen := &fakeGenerator{}
	bot := NewChatbotService(gen)

	replies, state := bot.ProcessMessage("s1", "When do you open?")
	assert.Equal(t, models.StateIdle, state)
	require.NotEmpty(t, replies)
	assert.Equal(t, "We open at noon on weekdays.", lastText(replies))
	assert.Equal(t, 1, gen.answers)
}

func TestChatbotFallbackWithoutGenerator(t *testing.T) {
	bot := NewChatbotService(nil)

	replies, _ := bot.ProcessMessage("s1", "When do you open?")
	assert.Equal(t, QuestionFallback, lastText(replies))
}

func TestChatbotBookingHappyPath(t *testing.T) {
	gen := &fakeGenerator{}
	bot := NewChatbotService(gen)

	turns := []struct {
		input     string
		wantState models.BookingState
	}{
		{"book table", models.StateCollectingName},
		{"Amy", models.StateCollectingPhone},
		{"5550000", models.StateCollectingDate},
		{"2099-01-01", models.StateCollectingTime},
		{"19:00", models.StateCollectingPartySize},
	}

	for _, turn := range turns {
		_, state := bot.ProcessMessage("s1", turn.input)
		assert.Equal(t, turn.wantState, state, "after input %q", turn.input)
	}

	replies, state := bot.ProcessMessage("s1", "3")
	assert.Equal(t, models.StateIdle, state, "final turn resets to idle")
	assert.Equal(t, 1, gen.confirmations)

	var texts []string
	for _, r := range replies {
		texts = append(texts, r.Text)
	}
	assert.Contains(t, texts, "See you soon, Amy!")
	assert.Contains(t, texts, "Booking Details: "+BookingDetailsLine("BK123456", "Amy", "5550000", "2099-01-01", "19:00", 3))

	// Partial state is cleared: a new "book table" starts from scratch.
	session := bot.Session("s1")
	assert.Equal(t, models.BookingInfo{}, session.Booking)
}

func TestChatbotReservationKeywordStartsBooking(t *testing.T) {
	bot := NewChatbotService(&fakeGenerator{})

	_, state := bot.ProcessMessage("s1", "I'd like a RESERVATION please")
	assert.Equal(t, models.StateCollectingName, state)
}

func TestChatbotPartySizeReprompt(t *testing.T) {
	bot := NewChatbotService(&fakeGenerator{})

	for _, input := range []string{"book table", "Amy", "5550000", "2099-01-01", "19:00"} {
		bot.ProcessMessage("s1", input)
	}

	for _, bad := range []string{"abc", "0", "-2", "two"} {
		replies, state := bot.ProcessMessage("s1", bad)
		assert.Equal(t, models.StateCollectingPartySize, state, "input %q must not advance", bad)
		assert.Equal(t, "Please enter a valid number for the party size.", lastText(replies))
	}

	// A valid number still completes the booking afterwards.
	_, state := bot.ProcessMessage("s1", "4")
	assert.Equal(t, models.StateIdle, state)
}

func TestChatbotCancelFromAnyState(t *testing.T) {
	script := []string{"book table", "Amy", "5550000", "2099-01-01", "19:00"}

	// Cancel after n turns, for every prefix of the booking flow.
	for n := 1; n <= len(script); n++ {
		t.Run(fmt.Sprintf("after %d turns", n), func(t *testing.T) {
			bot := NewChatbotService(&fakeGenerator{})
			for _, input := range script[:n] {
				bot.ProcessMessage("s1", input)
			}

			replies, state := bot.ProcessMessage("s1", "  CANCEL  ")
			assert.Equal(t, models.StateIdle, state)
			assert.Equal(t, "Booking cancelled.", lastText(replies))
			assert.Equal(t, models.BookingInfo{}, bot.Session("s1").Booking)
		})
	}
}

func TestChatbotCancelWhenIdleIsAQuestion(t *testing.T) {
	gen := &fakeGenerator{}
	bot := NewChatbotService(gen)

	_, state := bot.ProcessMessage("s1", "cancel")
	assert.Equal(t, models.StateIdle, state)
	assert.Equal(t, 1, gen.answers, "idle cancel goes to question answering")
}

func TestChatbotRecoversFromConfirmationPanic(t *testing.T) {
	gen := &fakeGenerator{panicOnBook: true}
	bot := NewChatbotService(gen)

	for _, input := range []string{"book table", "Amy", "5550000", "2099-01-01", "19:00"} {
		bot.ProcessMessage("s1", input)
	}

	replies, state := bot.ProcessMessage("s1", "3")
	assert.Equal(t, models.StateIdle, state, "error during confirmation must reset to idle")
	assert.Equal(t, "Sorry, something went wrong. Please try again later.", lastText(replies))
	assert.Equal(t, models.BookingInfo{}, bot.Session("s1").Booking)
}

func TestChatbotSessionsAreIndependent(t *testing.T) {
	bot := NewChatbotService(&fakeGenerator{})

	_, stateA := bot.ProcessMessage("alice", "book table")
	_, stateB := bot.ProcessMessage("bob", "what's on the menu?")

	assert.Equal(t, models.StateCollectingName, stateA)
	assert.Equal(t, models.StateIdle, stateB)
	assert.Equal(t, 2, bot.ActiveSessions())
}

func TestChatbotGreetsNewSessions(t *testing.T) {
	bot := NewChatbotService(&fakeGenerator{})

	session := bot.Session("fresh")
	require.Len(t, session.Messages, 1)
	assert.Equal(t, models.SenderSystem, session.Messages[0].Sender)
	assert.Contains(t, session.Messages[0].Text, "book table")
}
