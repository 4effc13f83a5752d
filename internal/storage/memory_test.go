package storage

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrozen/bistrozen-backend/internal/models"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func newInput(name, date, timeStr string, party int) *models.ReservationInput {
	return &models.ReservationInput{
		CustomerName:    name,
		CustomerEmail:   name + "@example.com",
		CustomerPhone:   "5551234567",
		ReservationDate: date,
		ReservationTime: timeStr,
		PartySize:       party,
	}
}

func TestMemoryStoreCreateReservation(t *testing.T) {
	store := NewMemoryStore()

	r, err := store.CreateReservation(newInput("Jo", "2099-05-01", "19:00", 4))
	require.NoError(t, err)

	assert.Equal(t, "RSV00001", r.ID)
	assert.Equal(t, models.StatusPending, r.Status)
	assert.Regexp(t, codePattern, r.ConfirmationCode)
	assert.False(t, r.CreatedAt.IsZero())

	r2, err := store.CreateReservation(newInput("Al", "2099-05-01", "20:00", 2))
	require.NoError(t, err)
	assert.Equal(t, "RSV00002", r2.ID)
	assert.NotEqual(t, r.ID, r2.ID)
}

func TestMemoryStoreGetReservation(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateReservation(newInput("Jo", "2099-05-01", "19:00", 4))
	require.NoError(t, err)

	found, err := store.GetReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.GetReservation("RSV99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreQuerySortsByDateAndTime(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateReservation(newInput("C", "2099-05-02", "12:00", 2))
	require.NoError(t, err)
	_, err = store.CreateReservation(newInput("B", "2099-05-01", "20:00", 2))
	require.NoError(t, err)
	_, err = store.CreateReservation(newInput("A", "2099-05-01", "9:30", 2))
	require.NoError(t, err)

	results, err := store.QueryReservations(nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results[0].CustomerName)
	assert.Equal(t, "B", results[1].CustomerName)
	assert.Equal(t, "C", results[2].CustomerName)
}

func TestMemoryStoreQueryFilters(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.CreateReservation(newInput("Jo", "2099-05-01", "19:00", 4))
	require.NoError(t, err)
	_, err = store.CreateReservation(newInput("Al", "2099-05-02", "20:00", 2))
	require.NoError(t, err)

	t.Run("by date", func(t *testing.T) {
		results, err := store.QueryReservations(&models.ReservationFilter{Date: "2099-05-01"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Jo", results[0].CustomerName)
	})

	t.Run("by status", func(t *testing.T) {
		require.NoError(t, store.UpdateReservationStatus(first.ID, models.StatusConfirmed))

		results, err := store.QueryReservations(&models.ReservationFilter{Status: models.StatusConfirmed})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, first.ID, results[0].ID)
	})

	t.Run("by phone ignoring separators", func(t *testing.T) {
		results, err := store.QueryReservations(&models.ReservationFilter{Phone: "(555) 123-4567"})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("by confirmation code is case-insensitive", func(t *testing.T) {
		results, err := store.QueryReservations(&models.ReservationFilter{
			ConfirmationCode: strings.ToLower(first.ConfirmationCode),
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, first.ID, results[0].ID)
	})
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateReservation(newInput("Jo", "2099-05-01", "19:00", 4))
	require.NoError(t, err)

	require.NoError(t, store.UpdateReservationStatus(created.ID, models.StatusCancelled))

	found, err := store.GetReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, found.Status)

	assert.ErrorIs(t, store.UpdateReservationStatus("RSV99999", models.StatusConfirmed), ErrNotFound)
}
