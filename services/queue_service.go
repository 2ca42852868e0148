package services

import (
	"fmt"
	"time"

	"salonqueue-backend/models"
	"salonqueue-backend/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Settler applies the post-completion side effects: stock consumption
// for the products the booking's services used, and loyalty credit.
// It returns the points credited. Settlement is best effort; a failure
// never rolls back the entry's committed status.
type Settler interface {
	SettleCompletion(booking *models.Booking) (int, error)
}

// QueueService drives the entry state machine and answers position and
// wait queries over the active ordering. It is the only component that
// transitions entry status.
type QueueService struct {
	queue      repository.QueueRepository
	settler    Settler
	dispatcher Dispatcher
	log        zerolog.Logger

	Now func() time.Time
}

func NewQueueService(
	queue repository.QueueRepository,
	settler Settler,
	dispatcher Dispatcher,
	log zerolog.Logger,
) *QueueService {
	return &QueueService{
		queue:      queue,
		settler:    settler,
		dispatcher: dispatcher,
		log:        log,
		Now:        time.Now,
	}
}

// Entry returns a queue entry with its booking.
func (s *QueueService) Entry(id uuid.UUID) (*models.QueueEntry, error) {
	return s.queue.ByID(id)
}

// ActiveQueue returns waiting entries in service order.
func (s *QueueService) ActiveQueue() ([]models.QueueEntry, error) {
	return s.queue.Active()
}

// AllEntries returns the full queue history in join order.
func (s *QueueService) AllEntries() ([]models.QueueEntry, error) {
	return s.queue.All()
}

// ActiveEntryForCustomer finds the customer's waiting entry, if any.
func (s *QueueService) ActiveEntryForCustomer(customerID uuid.UUID) (*models.QueueEntry, error) {
	return s.queue.ActiveEntryForCustomer(customerID)
}

// Position is the 1-indexed rank of the entry among waiting entries.
// Entries that are not waiting are not in the active ordering.
func (s *QueueService) Position(entryID uuid.UUID) (int, error) {
	active, err := s.queue.Active()
	if err != nil {
		return 0, err
	}
	for i := range active {
		if active[i].ID == entryID {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: entry not in active queue", models.ErrNotFound)
}

// EstimatedWait recomputes the wait in minutes from scratch on every
// read: the sum of total service durations of all waiting entries
// strictly ahead of this one. No caching, so it shrinks as soon as an
// earlier entry leaves the waiting set.
func (s *QueueService) EstimatedWait(entryID uuid.UUID) (int, error) {
	active, err := s.queue.Active()
	if err != nil {
		return 0, err
	}
	var wait int
	for i := range active {
		if active[i].ID == entryID {
			return wait, nil
		}
		wait += active[i].TotalServiceDuration()
	}
	return 0, fmt.Errorf("%w: entry not in active queue", models.ErrNotFound)
}

// Start moves a waiting entry to in_progress, optionally binding the
// staff member taking it. Exactly one of several concurrent Start calls
// on the same entry wins; the rest fail with ErrInvalidTransition.
func (s *QueueService) Start(entryID uuid.UUID, staffID *uuid.UUID) (*models.QueueEntry, error) {
	now := s.Now()
	entry, err := s.queue.Transition(entryID,
		[]string{models.StatusWaiting},
		repository.StatusChange{
			To:              models.StatusInProgress,
			TimeStarted:     &now,
			StaffAssignedID: staffID,
		})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Msg("service started")
	s.dispatcher.Dispatch(Event{
		Kind:      models.EventServiceStarted,
		UserID:    entry.CustomerID,
		BookingID: entry.BookingID,
		EntryID:   entry.ID,
		Message:   "Your service has started!",
	})
	return entry, nil
}

// Complete moves an in_progress entry to completed, then emits the
// settlement command and notifications. The completed status is the
// source of truth: settlement or notification failures are logged and
// never undo it.
func (s *QueueService) Complete(entryID uuid.UUID) (*models.QueueEntry, error) {
	now := s.Now()
	entry, err := s.queue.Transition(entryID,
		[]string{models.StatusInProgress},
		repository.StatusChange{
			To:            models.StatusCompleted,
			TimeCompleted: &now,
		})
	if err != nil {
		return nil, err
	}

	points, err := s.settler.SettleCompletion(&entry.Booking)
	if err != nil {
		s.log.Error().Err(err).
			Str("entry_id", entry.ID.String()).
			Msg("settlement failed after completion; status stands")
	}

	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Int("loyalty_points", points).
		Msg("service completed")
	s.dispatcher.Dispatch(Event{
		Kind:      models.EventServiceCompleted,
		UserID:    entry.CustomerID,
		BookingID: entry.BookingID,
		EntryID:   entry.ID,
		Message:   fmt.Sprintf("Service completed! You earned %d loyalty points.", points),
	})

	s.notifyNextInLine()
	return entry, nil
}

// notifyNextInLine tells whoever now heads the active queue to get
// ready.
func (s *QueueService) notifyNextInLine() {
	active, err := s.queue.Active()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read active queue for next-up notification")
		return
	}
	if len(active) == 0 {
		return
	}
	next := active[0]
	s.dispatcher.Dispatch(Event{
		Kind:      models.EventQueueNext,
		UserID:    next.CustomerID,
		BookingID: next.BookingID,
		EntryID:   next.ID,
		Message:   "You're next in line! Please get ready.",
	})
}

// Cancel aborts a waiting or in_progress entry. notifyCustomer is set
// when someone other than the customer cancels.
func (s *QueueService) Cancel(entryID uuid.UUID, notifyCustomer bool) (*models.QueueEntry, error) {
	entry, err := s.queue.Transition(entryID,
		[]string{models.StatusWaiting, models.StatusInProgress},
		repository.StatusChange{To: models.StatusCancelled})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Msg("queue entry cancelled")
	if notifyCustomer {
		s.dispatcher.Dispatch(Event{
			Kind:      models.EventBookingCancelled,
			UserID:    entry.CustomerID,
			BookingID: entry.BookingID,
			EntryID:   entry.ID,
			Message:   "Your booking has been cancelled.",
		})
	}
	return entry, nil
}

// MarkNoShow records that the customer never turned up. Legal from the
// same states as Cancel.
func (s *QueueService) MarkNoShow(entryID uuid.UUID) (*models.QueueEntry, error) {
	entry, err := s.queue.Transition(entryID,
		[]string{models.StatusWaiting, models.StatusInProgress},
		repository.StatusChange{To: models.StatusNoShow})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Msg("queue entry marked no-show")
	return entry, nil
}

// UpdateEntry persists staff-editable fields (notes, assignment) without
// touching the lifecycle.
func (s *QueueService) UpdateEntry(entryID uuid.UUID, notes *string, staffID *uuid.UUID) (*models.QueueEntry, error) {
	entry, err := s.queue.ByID(entryID)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		entry.Notes = *notes
	}
	if staffID != nil {
		entry.StaffAssignedID = staffID
	}
	if err := s.queue.Save(entry); err != nil {
		return nil, err
	}
	return s.queue.ByID(entryID)
}

// ExpireStaleWaiting marks waiting entries older than the cutoff as
// no_show. Run by the nightly sweep after closing.
func (s *QueueService) ExpireStaleWaiting(olderThan time.Duration) (int, error) {
	active, err := s.queue.Active()
	if err != nil {
		return 0, err
	}
	cutoff := s.Now().Add(-olderThan)
	expired := 0
	for i := range active {
		if active[i].TimeJoined.After(cutoff) {
			continue
		}
		if _, err := s.MarkNoShow(active[i].ID); err != nil {
			// Raced with a staff transition; the entry left waiting
			// on its own.
			continue
		}
		expired++
	}
	if expired > 0 {
		s.log.Info().Int("expired", expired).Msg("stale waiting entries marked no-show")
	}
	return expired, nil
}
