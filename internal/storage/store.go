package storage

import (
	"errors"

	"github.com/bistrozen/bistrozen-backend/internal/models"
)

// ErrNotFound is returned when no reservation matches the given id.
var ErrNotFound = errors.New("reservation not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for reservation storage operations.
type Store interface {
	// CreateReservation persists a validated input, assigning the id,
	// pending status, confirmation code and timestamps.
	CreateReservation(input *models.ReservationInput) (*models.Reservation, error)

	// GetReservation returns a single reservation or ErrNotFound.
	GetReservation(id string) (*models.Reservation, error)

	// QueryReservations returns reservations matching the filter, sorted
	// ascending by (date, time). Confirmation-code matching is
	// case-insensitive; phone matching ignores separators.
	QueryReservations(filter *models.ReservationFilter) ([]*models.Reservation, error)

	// UpdateReservationStatus sets a new status or returns ErrNotFound.
	UpdateReservationStatus(id string, status string) error
}
