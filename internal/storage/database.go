package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bistrozen/bistrozen-backend/internal/models"
	"github.com/bistrozen/bistrozen-backend/internal/utils"
)

// DatabaseStore persists reservations in PostgreSQL via GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) CreateReservation(input *models.ReservationInput) (*models.Reservation, error) {
	now := time.Now()

	reservation := &models.Reservation{
		ID:               uuid.NewString(),
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

	if err := d.db.Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func (d *DatabaseStore) GetReservation(id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := d.db.First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (d *DatabaseStore) QueryReservations(filter *models.ReservationFilter) ([]*models.Reservation, error) {
	if filter == nil {
		filter = &models.ReservationFilter{}
	}

	query := d.db.Model(&models.Reservation{})
	if filter.Date != "" {
		query = query.Where("reservation_date = ?", filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ConfirmationCode != "" {
		query = query.Where("confirmation_code = ?", strings.ToUpper(filter.ConfirmationCode))
	}

	var reservations []*models.Reservation
	if err := query.Order("reservation_date asc").Find(&reservations).Error; err != nil {
		return nil, err
	}

	// Phone separators vary per customer, so phone filtering and the
	// final time ordering happen in memory.
	if filter.Phone != "" {
		cleanPhone := utils.StripPhoneSeparators(filter.Phone)
		filtered := reservations[:0]
		for _, r := range reservations {
			if utils.StripPhoneSeparators(r.CustomerPhone) == cleanPhone {
				filtered = append(filtered, r)
			}
		}
		reservations = filtered
	}

	sortReservations(reservations)
	return reservations, nil
}

func (d *DatabaseStore) UpdateReservationStatus(id string, status string) error {
	result := d.db.Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
