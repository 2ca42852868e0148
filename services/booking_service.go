package services

import (
	"fmt"
	"time"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LineItemInput is one requested service with quantity and notes.
type LineItemInput struct {
	ServiceID uuid.UUID
	Quantity  int
	Notes     string
}

// BookingService owns the booking aggregate: line item mutation, total
// recomputation and the one-way confirm transition that admits the
// booking into the queue.
type BookingService struct {
	bookings   repository.BookingRepository
	queue      repository.QueueRepository
	catalog    repository.ServiceRepository
	dispatcher Dispatcher
	log        zerolog.Logger

	// Now is the clock; tests override it to control queue order.
	Now func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	queue repository.QueueRepository,
	catalog repository.ServiceRepository,
	dispatcher Dispatcher,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		queue:      queue,
		catalog:    catalog,
		dispatcher: dispatcher,
		log:        log,
		Now:        time.Now,
	}
}

// CreateBooking creates an unconfirmed booking with the given line items
// and computes its totals.
func (s *BookingService) CreateBooking(customerID uuid.UUID, specialRequests string, items []LineItemInput) (*models.Booking, error) {
	booking := &models.Booking{
		ID:              uuid.New(),
		CustomerID:      customerID,
		SpecialRequests: specialRequests,
		CreatedAt:       s.Now(),
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, err := s.AddLineItem(booking.ID, item); err != nil {
			return nil, err
		}
	}
	return s.bookings.ByID(booking.ID)
}

// AddLineItem appends a service to the booking and recomputes totals.
// A service may appear at most once per booking; raise the quantity
// instead of adding it twice.
func (s *BookingService) AddLineItem(bookingID uuid.UUID, input LineItemInput) (*models.Booking, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidQuantity, input.Quantity)
	}

	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsConfirmed {
		return nil, fmt.Errorf("%w: line items are frozen after confirmation", models.ErrAlreadyConfirmed)
	}
	if booking.HasService(input.ServiceID) {
		return nil, models.ErrDuplicateLineItem
	}

	service, err := s.catalog.ByID(input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", input.ServiceID, err)
	}

	item := models.BookingService{
		ID:            uuid.New(),
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		Quantity:      input.Quantity,
		UnitPrice:     service.Price,
		Duration:      service.Duration,
		LoyaltyPoints: service.LoyaltyPoints,
		Notes:         input.Notes,
		CreatedAt:     s.Now(),
	}
	if err := s.bookings.AddLineItem(bookingID, &item); err != nil {
		return nil, err
	}

	booking, err = s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	booking.RecalculateTotals()
	if err := s.bookings.SaveTotals(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// Booking returns the aggregate with line items.
func (s *BookingService) Booking(id uuid.UUID) (*models.Booking, error) {
	return s.bookings.ByID(id)
}

// BookingsForCustomer lists a customer's bookings, newest first.
func (s *BookingService) BookingsForCustomer(customerID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ForCustomer(customerID)
}

// AllBookings lists every booking, newest first.
func (s *BookingService) AllBookings() ([]models.Booking, error) {
	return s.bookings.All()
}

// EstimateNewEntryWait is the wait a booking confirmed right now would
// see: the summed service duration of the entire active queue, since the
// new entry joins at the tail.
func (s *BookingService) EstimateNewEntryWait() (int, error) {
	active, err := s.queue.Active()
	if err != nil {
		return 0, err
	}
	var total int
	for i := range active {
		total += active[i].TotalServiceDuration()
	}
	return total, nil
}

// Confirm flips the booking to confirmed and atomically creates its
// queue entry. Confirming twice fails with ErrAlreadyConfirmed and never
// double-enqueues. The entry's estimated start time is a one-time
// snapshot of the queue-tail wait at this instant; live wait estimates
// are served by the queue engine afterwards.
func (s *BookingService) Confirm(bookingID uuid.UUID) (*models.QueueEntry, error) {
	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	if len(booking.Items) == 0 {
		return nil, models.ErrEmptyBooking
	}

	wait, err := s.EstimateNewEntryWait()
	if err != nil {
		return nil, err
	}

	now := s.Now()
	estimatedStart := now.Add(time.Duration(wait) * time.Minute)
	entry := &models.QueueEntry{
		ID:                 uuid.New(),
		CustomerID:         booking.CustomerID,
		BookingID:          booking.ID,
		Status:             models.StatusWaiting,
		TimeJoined:         now,
		EstimatedStartTime: &estimatedStart,
	}

	if err := s.bookings.ConfirmAndEnqueue(bookingID, entry); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", bookingID.String()).
		Str("entry_id", entry.ID.String()).
		Int("estimated_wait_min", wait).
		Msg("booking confirmed and enqueued")

	position, err := s.positionOf(entry.ID)
	if err != nil {
		position = 0
	}
	s.dispatcher.Dispatch(Event{
		Kind:      models.EventBookingConfirmed,
		UserID:    booking.CustomerID,
		BookingID: booking.ID,
		EntryID:   entry.ID,
		Message:   fmt.Sprintf("Booking confirmed! You are #%d in queue.", position),
	})

	return s.queue.ByID(entry.ID)
}

func (s *BookingService) positionOf(entryID uuid.UUID) (int, error) {
	active, err := s.queue.Active()
	if err != nil {
		return 0, err
	}
	for i := range active {
		if active[i].ID == entryID {
			return i + 1, nil
		}
	}
	return 0, models.ErrNotFound
}
