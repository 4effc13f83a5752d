package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/services"
	"github.com/bistrozen/bistrozen-backend/internal/storage"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
	"github.com/bistrozen/bistrozen-backend/internal/validation"
)

// ReservationHandler handles reservation CRUD requests
type ReservationHandler struct {
	store     storage.Store
	validator *validation.ReservationValidator
	telegram  *services.TelegramService // nil when not configured
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(store storage.Store, telegram *services.TelegramService) *ReservationHandler {
	return &ReservationHandler{
		store:     store,
		validator: validation.NewReservationValidator(),
		telegram:  telegram,
	}
}

// CreateReservation validates and stores a new reservation
func (h *ReservationHandler) CreateReservation(c *fiber.Ctx) error {
	var raw struct {
		CustomerName    string `json:"customerName"`
		CustomerEmail   string `json:"customerEmail"`
		CustomerPhone   string `json:"customerPhone"`
		ReservationDate string `json:"reservationDate"`
		ReservationTime string `json:"reservationTime"`
		PartySize       any    `json:"partySize"`
		SpecialRequests string `json:"specialRequests"`
	}

	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON in request body",
		})
	}

	input := &models.ReservationInput{
		CustomerName:    utils.SanitizeInput(raw.CustomerName),
		CustomerEmail:   utils.SanitizeInput(raw.CustomerEmail),
		CustomerPhone:   utils.SanitizeInput(raw.CustomerPhone),
		ReservationDate: utils.SanitizeInput(raw.ReservationDate),
		ReservationTime: utils.SanitizeInput(raw.ReservationTime),
		PartySize:       parsePartySize(raw.PartySize),
		SpecialRequests: utils.SanitizeInput(raw.SpecialRequests),
	}

	// Availability is checked against everything not cancelled on the
	// requested date.
	existing, err := h.store.QueryReservations(&models.ReservationFilter{Date: input.ReservationDate})
	if err != nil {
		log.Printf("❌ Failed to load reservations for availability check: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Please try again later or contact us directly",
		})
	}

	if validationErrors := h.validator.Validate(input, existing); len(validationErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationErrors,
		})
	}

	reservation, err := h.store.CreateReservation(input)
	if err != nil {
		log.Printf("❌ Failed to create reservation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Please try again later or contact us directly",
		})
	}

	log.Printf("🍽  Reservation %s created (%s, %s %s, party of %d)",
		reservation.ID, reservation.CustomerName, reservation.ReservationDate,
		reservation.ReservationTime, reservation.PartySize)

	if h.telegram != nil {
		go h.telegram.NotifyNewReservation(
			reservation.CustomerName, reservation.ReservationDate,
			reservation.ReservationTime, reservation.PartySize,
			reservation.ConfirmationCode)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reservation": fiber.Map{
			"id":               reservation.ID,
			"confirmationCode": reservation.ConfirmationCode,
			"customerName":     reservation.CustomerName,
			"reservationDate":  reservation.ReservationDate,
			"reservationTime":  reservation.ReservationTime,
			"partySize":        reservation.PartySize,
			"status":           reservation.Status,
		},
		"message": "Reservation created successfully",
	})
}

// GetReservations retrieves reservations with optional filtering
func (h *ReservationHandler) GetReservations(c *fiber.Ctx) error {
	filter := &models.ReservationFilter{
		Date:             c.Query("date"),
		Status:           c.Query("status"),
		Phone:            c.Query("phone"),
		ConfirmationCode: c.Query("confirmationCode"),
	}

	reservations, err := h.store.QueryReservations(filter)
	if err != nil {
		log.Printf("❌ Failed to query reservations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve reservations",
		})
	}

	if reservations == nil {
		reservations = []*models.Reservation{}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// UpdateReservationStatus updates the status of a reservation
func (h *ReservationHandler) UpdateReservationStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing reservation ID or status",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing reservation ID or status",
		})
	}

	if !models.ValidStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status provided",
		})
	}

	if err := h.store.UpdateReservationStatus(id, req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Reservation not found",
			})
		}
		log.Printf("❌ Failed to update reservation %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update reservation",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reservation " + id + " updated to " + req.Status,
	})
}

// GetAvailability returns the bookable time slots for a date
func (h *ReservationHandler) GetAvailability(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date query parameter is required",
		})
	}

	slots, err := validation.TimeSlots(date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"date":    date,
		"slots":   slots,
	})
}

// parsePartySize accepts both JSON numbers and numeric strings, the way
// the reservation form submits them.
func parsePartySize(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
