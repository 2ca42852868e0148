package repository

import (
	"strings"
	"testing"
	"time"

	"salonqueue-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveOrderBreaksTiesByEntryID(t *testing.T) {
	store := NewMemoryStore()
	joined := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Same join instant on purpose; ordering must still be stable.
	for i := 0; i < 4; i++ {
		booking := &models.Booking{ID: uuid.New(), CustomerID: uuid.New()}
		require.NoError(t, store.Bookings().Create(booking))
		require.NoError(t, store.Bookings().ConfirmAndEnqueue(booking.ID, &models.QueueEntry{
			ID:         uuid.New(),
			CustomerID: booking.CustomerID,
			BookingID:  booking.ID,
			Status:     models.StatusWaiting,
			TimeJoined: joined,
		}))
	}

	active, err := store.Queue().Active()
	require.NoError(t, err)
	require.Len(t, active, 4)
	for i := 1; i < len(active); i++ {
		assert.True(t, strings.Compare(active[i-1].ID.String(), active[i].ID.String()) < 0)
	}
}

func TestConfirmAndEnqueueIsOneShot(t *testing.T) {
	store := NewMemoryStore()
	booking := &models.Booking{ID: uuid.New(), CustomerID: uuid.New()}
	require.NoError(t, store.Bookings().Create(booking))

	entry := func() *models.QueueEntry {
		return &models.QueueEntry{
			ID:         uuid.New(),
			CustomerID: booking.CustomerID,
			BookingID:  booking.ID,
			Status:     models.StatusWaiting,
			TimeJoined: time.Now(),
		}
	}

	require.NoError(t, store.Bookings().ConfirmAndEnqueue(booking.ID, entry()))
	assert.ErrorIs(t, store.Bookings().ConfirmAndEnqueue(booking.ID, entry()), models.ErrAlreadyConfirmed)

	entries, err := store.Queue().All()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTransitionChecksCurrentStatus(t *testing.T) {
	store := NewMemoryStore()
	booking := &models.Booking{ID: uuid.New(), CustomerID: uuid.New()}
	require.NoError(t, store.Bookings().Create(booking))
	entry := &models.QueueEntry{
		ID:         uuid.New(),
		CustomerID: booking.CustomerID,
		BookingID:  booking.ID,
		Status:     models.StatusWaiting,
		TimeJoined: time.Now(),
	}
	require.NoError(t, store.Bookings().ConfirmAndEnqueue(booking.ID, entry))

	_, err := store.Queue().Transition(entry.ID,
		[]string{models.StatusInProgress},
		StatusChange{To: models.StatusCompleted})
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	now := time.Now()
	moved, err := store.Queue().Transition(entry.ID,
		[]string{models.StatusWaiting},
		StatusChange{To: models.StatusInProgress, TimeStarted: &now})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, moved.Status)
}

func TestConsumeStockNeverGoesNegative(t *testing.T) {
	store := NewMemoryStore()
	product := &models.Product{ID: uuid.New(), Name: "Hair Dye", SKU: "DYE-1", StockQuantity: 3}
	require.NoError(t, store.Products().Create(product))

	require.NoError(t, store.Products().ConsumeStock(product.ID, 2))
	assert.ErrorIs(t, store.Products().ConsumeStock(product.ID, 2), models.ErrInsufficientStock)

	got, err := store.Products().ByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StockQuantity)
	assert.Equal(t, 2, got.UsageCount)
}

func TestAddLineItemRejectsSameServiceTwice(t *testing.T) {
	store := NewMemoryStore()
	booking := &models.Booking{ID: uuid.New(), CustomerID: uuid.New()}
	require.NoError(t, store.Bookings().Create(booking))

	serviceID := uuid.New()
	require.NoError(t, store.Bookings().AddLineItem(booking.ID, &models.BookingService{
		ServiceID: serviceID, ServiceName: "Haircut", Quantity: 1, UnitPrice: 10000,
	}))
	err := store.Bookings().AddLineItem(booking.ID, &models.BookingService{
		ServiceID: serviceID, ServiceName: "Haircut", Quantity: 1, UnitPrice: 10000,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateLineItem)
}
