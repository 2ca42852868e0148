package services

import (
	"testing"

	"salonqueue-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleCompletionConsumesStockAndCreditsPoints(t *testing.T) {
	f := newFixture(t)
	coloring := f.addService(t, "Coloring", 15000, 45, 8)
	dye := f.addProduct(t, "Hair Dye", 10)
	require.NoError(t, f.store.Services().SetConsumedProducts(coloring.ID, []models.ServiceProduct{
		{ProductID: dye.ID, QuantityUsed: 2},
	}))

	customer := f.addCustomer(t, "amy")
	booking, err := f.bookings.CreateBooking(customer.ID, "", []LineItemInput{
		{ServiceID: coloring.ID, Quantity: 2},
	})
	require.NoError(t, err)

	points, err := f.settlement.SettleCompletion(booking)
	require.NoError(t, err)
	assert.Equal(t, 16, points)

	// 2 units per service, 2 services booked.
	product, err := f.store.Products().ByID(dye.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.StockQuantity)
	assert.Equal(t, 4, product.UsageCount)

	user, err := f.store.Users().ByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, user.LoyaltyPoints)
}

func TestSettleCompletionContinuesWhenStockShort(t *testing.T) {
	f := newFixture(t)
	coloring := f.addService(t, "Coloring", 15000, 45, 8)
	dye := f.addProduct(t, "Hair Dye", 1)
	require.NoError(t, f.store.Services().SetConsumedProducts(coloring.ID, []models.ServiceProduct{
		{ProductID: dye.ID, QuantityUsed: 2},
	}))

	customer := f.addCustomer(t, "amy")
	booking, err := f.bookings.CreateBooking(customer.ID, "", []LineItemInput{
		{ServiceID: coloring.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// Stock shortfall is logged, not fatal; the customer still earns
	// their points.
	points, err := f.settlement.SettleCompletion(booking)
	require.NoError(t, err)
	assert.Equal(t, 8, points)

	product, err := f.store.Products().ByID(dye.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, product.StockQuantity)

	user, err := f.store.Users().ByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, user.LoyaltyPoints)
}

func TestCompleteRunsSettlement(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	shampoo := f.addProduct(t, "Shampoo", 20)
	require.NoError(t, f.store.Services().SetConsumedProducts(haircut.ID, []models.ServiceProduct{
		{ProductID: shampoo.ID, QuantityUsed: 1},
	}))

	entry := f.confirmedEntry(t, "amy", haircut.ID)
	_, err := f.queue.Start(entry.ID, nil)
	require.NoError(t, err)
	_, err = f.queue.Complete(entry.ID)
	require.NoError(t, err)

	product, err := f.store.Products().ByID(shampoo.ID)
	require.NoError(t, err)
	assert.Equal(t, 19, product.StockQuantity)

	user, err := f.store.Users().ByID(entry.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, 5, user.LoyaltyPoints)
}
