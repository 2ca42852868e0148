package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalServiceDuration(t *testing.T) {
	entry := QueueEntry{
		Booking: Booking{
			Items: []BookingService{
				{Duration: 30, Quantity: 1},
				{Duration: 45, Quantity: 2},
			},
		},
	}
	assert.Equal(t, 120, entry.TotalServiceDuration())

	empty := QueueEntry{}
	assert.Equal(t, 0, empty.TotalServiceDuration())
}

func TestIsTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		StatusWaiting:    false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
		StatusNoShow:     true,
	} {
		entry := QueueEntry{Status: status}
		assert.Equal(t, terminal, entry.IsTerminal(), "status %s", status)
	}
}

func TestIsLowStock(t *testing.T) {
	product := Product{StockQuantity: 5, MinStockLevel: 5}
	assert.True(t, product.IsLowStock())

	product.StockQuantity = 6
	assert.False(t, product.IsLowStock())
}
