package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
)

// MemoryStore holds all reservations in memory. Used for tests and
// local development without PostgreSQL.
type MemoryStore struct {
	reservations map[string]*models.Reservation

	mu      sync.RWMutex
	counter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reservations: make(map[string]*models.Reservation),
	}
}

func (m *MemoryStore) CreateReservation(input *models.ReservationInput) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	now := time.Now()

	reservation := &models.Reservation{
		ID:               fmt.Sprintf("RSV%05d", m.counter),
		CustomerName:     input.CustomerName,
		CustomerEmail:    input.CustomerEmail,
		CustomerPhone:    input.CustomerPhone,
		ReservationDate:  input.ReservationDate,
		ReservationTime:  input.ReservationTime,
		PartySize:        input.PartySize,
		SpecialRequests:  input.SpecialRequests,
		Status:           models.StatusPending,
		ConfirmationCode: utils.GenerateConfirmationCode(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	m.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (m *MemoryStore) GetReservation(id string) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservation, exists := m.reservations[id]
	if !exists {
		return nil, ErrNotFound
	}
	return reservation, nil
}

func (m *MemoryStore) QueryReservations(filter *models.ReservationFilter) ([]*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if filter == nil {
		filter = &models.ReservationFilter{}
	}

	cleanPhone := utils.StripPhoneSeparators(filter.Phone)
	code := strings.ToUpper(filter.ConfirmationCode)

	var results []*models.Reservation
	for _, r := range m.reservations {
		if filter.Date != "" && r.ReservationDate != filter.Date {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if cleanPhone != "" && utils.StripPhoneSeparators(r.CustomerPhone) != cleanPhone {
			continue
		}
		if code != "" && r.ConfirmationCode != code {
			continue
		}
		results = append(results, r)
	}

	sortReservations(results)
	return results, nil
}

func (m *MemoryStore) UpdateReservationStatus(id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reservation, exists := m.reservations[id]
	if !exists {
		return ErrNotFound
	}

	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	return nil
}

// sortReservations orders by date then time, both ascending. Times are
// zero-padded so "9:30" sorts before "19:00".
func sortReservations(reservations []*models.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].ReservationDate != reservations[j].ReservationDate {
			return reservations[i].ReservationDate < reservations[j].ReservationDate
		}
		return padTime(reservations[i].ReservationTime) < padTime(reservations[j].ReservationTime)
	})
}

func padTime(t string) string {
	if len(t) == 4 {
		return "0" + t
	}
	return t
}
