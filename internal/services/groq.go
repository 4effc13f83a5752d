package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/bistrozen/bistrozen-backend/internal/restaurant"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
)

const groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

const defaultGroqModel = "deepseek-r1-distill-llama-70b"

// QuestionFallback is what customers see whenever the generator cannot
// produce an answer. Upstream failures are never surfaced raw.
var QuestionFallback = fmt.Sprintf(
	"I'm sorry, I'm having trouble answering your question right now. Please contact us directly at %s for assistance.",
	restaurant.ContactPhone)

var thinkBlocks = regexp.MustCompile(`(?is)<think>.*?</think>`)
var multiNewlines = regexp.MustCompile(`\n{2,}`)

// GroqMessage is one turn in a chat-completions request.
type GroqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []GroqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// BookingConfirmation is the payload produced for a completed chatbot
// booking.
type BookingConfirmation struct {
	ConfirmationMessage string `json:"confirmationMessage"`
	BookingDetails      string `json:"bookingDetails"`
	BookingID           string `json:"bookingId"`
}

// GroqService talks to the Groq chat-completions API. Every public
// method absorbs upstream failures into a deterministic fallback; the
// caller never sees a hard error.
type GroqService struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGroqService creates a new Groq service instance
func NewGroqService() (*GroqService, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set in environment variables")
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = defaultGroqModel
	}

	return &GroqService{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// GenerateResponse sends one chat-completions request. Single attempt,
// no retry.
func (g *GroqService) GenerateResponse(messages []GroqMessage) (string, error) {
	body, err := json.Marshal(groqRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, groqAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorData, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq API error: %d - %s", resp.StatusCode, string(errorData))
	}

	var data groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}

	if len(data.Choices) == 0 || data.Choices[0].Message.Content == "" {
		return "Sorry, I could not generate a response.", nil
	}
	return data.Choices[0].Message.Content, nil
}

// AnswerRestaurantQuestion answers a free-form question against the
// static restaurant context. Always returns something usable.
func (g *GroqService) AnswerRestaurantQuestion(question, context string) string {
	systemPrompt := fmt.Sprintf(`You are a helpful assistant for a restaurant. Only provide final, user-facing answers - do not include any internal reasoning or thinking steps like <think> or explanations. Be concise, friendly, and stick to the provided context.
Use the following context to answer the customer's question.
Be friendly, professional, and informative. If the question is not related to the restaurant or cannot be answered with the provided context, politely redirect the customer to ask about the restaurant or suggest they contact the restaurant directly.

Restaurant Context:
%s

Keep responses concise but informative (2-3 sentences maximum unless more detail is needed). Do not hallucinate. If the answer is not in the context, ask the user to call the contact number for more details.`, context)

	messages := []GroqMessage{
		{Role: "system", Content: strings.TrimSpace(systemPrompt)},
		{Role: "user", Content: strings.TrimSpace(question)},
	}

	raw, err := g.GenerateResponse(messages)
	if err != nil {
		log.Printf("❌ Groq question answering failed: %v", err)
		return QuestionFallback
	}

	// Reasoning models leak <think> blocks; strip them before the
	// answer reaches the customer.
	cleaned := thinkBlocks.ReplaceAllString(raw, "")
	cleaned = multiNewlines.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(cleaned)
}

// GenerateBookingConfirmation asks the generator for warm confirmation
// prose. The booking details line is built deterministically either way,
// and a templated message stands in when the generator fails.
func (g *GroqService) GenerateBookingConfirmation(customerName, phoneNumber, date, timeStr string, partySize int, context string) *BookingConfirmation {
	bookingID := utils.GenerateBookingID()
	details := BookingDetailsLine(bookingID, customerName, phoneNumber, date, timeStr, partySize)

	messages := []GroqMessage{
		{
			Role: "system",
			Content: fmt.Sprintf(`You are a restaurant booking assistant. Generate a friendly confirmation message for bookings.

Restaurant Context:
%s

Include:
1. A warm confirmation that the booking is received
2. Summary of the booking details
3. A note that they should call if they need to make changes
4. Express enthusiasm about their visit

Keep the message professional but warm and welcoming (3-4 sentences).`, context),
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Generate a booking confirmation for:
Customer: %s
Phone: %s
Date: %s
Time: %s
Party Size: %d`, customerName, phoneNumber, date, timeStr, partySize),
		},
	}

	message, err := g.GenerateResponse(messages)
	if err != nil {
		log.Printf("❌ Groq confirmation failed, using fallback: %v", err)
		message = FallbackConfirmationMessage(customerName, date, timeStr, partySize)
	}

	return &BookingConfirmation{
		ConfirmationMessage: message,
		BookingDetails:      details,
		BookingID:           bookingID,
	}
}

// BookingDetailsLine builds the deterministic booking summary.
func BookingDetailsLine(bookingID, customerName, phoneNumber, date, timeStr string, partySize int) string {
	return fmt.Sprintf("Booking ID: %s | %s | %s at %s | Party of %d | Phone: %s",
		bookingID, customerName, date, timeStr, partySize, phoneNumber)
}

// FallbackConfirmationMessage is the templated confirmation used when
// the generator is unavailable.
func FallbackConfirmationMessage(customerName, date, timeStr string, partySize int) string {
	return fmt.Sprintf("Thank you %s! Your booking for %d people on %s at %s has been received. We'll confirm availability and get back to you soon. Please call us at %s if you have any questions.",
		customerName, partySize, date, timeStr, restaurant.ContactPhone)
}
