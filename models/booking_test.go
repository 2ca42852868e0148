package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecalculateTotals(t *testing.T) {
	booking := Booking{
		Items: []BookingService{
			{ServiceID: uuid.New(), UnitPrice: 10000, Duration: 30, Quantity: 1},
			{ServiceID: uuid.New(), UnitPrice: 15000, Duration: 45, Quantity: 1},
		},
	}
	booking.RecalculateTotals()
	assert.Equal(t, 25000.0, booking.TotalAmount)
	assert.Equal(t, 75, booking.TotalDuration)

	booking.Items[0].Quantity = 2
	booking.RecalculateTotals()
	assert.Equal(t, 35000.0, booking.TotalAmount)
	assert.Equal(t, 105, booking.TotalDuration)

	booking.Items = nil
	booking.RecalculateTotals()
	assert.Equal(t, 0.0, booking.TotalAmount)
	assert.Equal(t, 0, booking.TotalDuration)
}

func TestHasService(t *testing.T) {
	serviceID := uuid.New()
	booking := Booking{Items: []BookingService{{ServiceID: serviceID}}}

	assert.True(t, booking.HasService(serviceID))
	assert.False(t, booking.HasService(uuid.New()))
}

func TestLineItemSubtotalAndDuration(t *testing.T) {
	item := BookingService{UnitPrice: 5000, Duration: 20, Quantity: 3}

	assert.Equal(t, 15000.0, item.Subtotal())
	assert.Equal(t, 60, item.TotalDuration())
}
