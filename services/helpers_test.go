package services

import (
	"sync"
	"testing"
	"time"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests control queue join order deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingDispatcher captures emitted events instead of delivering them.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []Event
}

func (d *recordingDispatcher) Dispatch(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) byKind(kind string) []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Event
	for _, event := range d.events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}

type fixture struct {
	store      *repository.MemoryStore
	dispatcher *recordingDispatcher
	clock      *fakeClock
	bookings   *BookingService
	queue      *QueueService
	settlement *SettlementService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	dispatcher := &recordingDispatcher{}
	clock := newFakeClock()
	log := zerolog.Nop()

	settlement := NewSettlementService(store.Services(), store.Products(), store.Users(), log)
	bookings := NewBookingService(store.Bookings(), store.Queue(), store.Services(), DispatcherFunc(dispatcher.Dispatch), log)
	queue := NewQueueService(store.Queue(), settlement, DispatcherFunc(dispatcher.Dispatch), log)
	bookings.Now = clock.Now
	queue.Now = clock.Now

	return &fixture{
		store:      store,
		dispatcher: dispatcher,
		clock:      clock,
		bookings:   bookings,
		queue:      queue,
		settlement: settlement,
	}
}

func (f *fixture) addCustomer(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	require.NoError(t, f.store.Users().Create(user))
	return user
}

func (f *fixture) addService(t *testing.T, name string, price float64, duration, points int) *models.Service {
	t.Helper()
	service := &models.Service{
		ID:            uuid.New(),
		Name:          name,
		Price:         price,
		Duration:      duration,
		LoyaltyPoints: points,
		IsActive:      true,
	}
	require.NoError(t, f.store.Services().Create(service))
	return service
}

func (f *fixture) addProduct(t *testing.T, name string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		Name:          name,
		SKU:           "SKU-" + name,
		StockQuantity: stock,
		MinStockLevel: 1,
		IsActive:      true,
	}
	require.NoError(t, f.store.Products().Create(product))
	return product
}

// confirmedEntry books the given services for a fresh customer and
// confirms, returning the queue entry.
func (f *fixture) confirmedEntry(t *testing.T, name string, serviceIDs ...uuid.UUID) *models.QueueEntry {
	t.Helper()
	customer := f.addCustomer(t, name)
	items := make([]LineItemInput, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		items = append(items, LineItemInput{ServiceID: id, Quantity: 1})
	}
	booking, err := f.bookings.CreateBooking(customer.ID, "", items)
	require.NoError(t, err)
	entry, err := f.bookings.Confirm(booking.ID)
	require.NoError(t, err)
	return entry
}
