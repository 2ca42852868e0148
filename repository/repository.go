// Package repository abstracts storage behind interfaces so the queue and
// booking services can be exercised against Postgres in production and an
// in-memory store in tests. Implementations must return queue sequences in
// a deterministic order: time_joined ascending, entry id ascending on ties.
package repository

import (
	"time"

	"salonqueue-backend/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	ByID(id uuid.UUID) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	Create(u *models.User) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	// CreditLoyalty atomically adds points to the user's balance.
	CreditLoyalty(id uuid.UUID, points int) error
}

type ServiceRepository interface {
	ByID(id uuid.UUID) (*models.Service, error)
	All() ([]models.Service, error)
	Create(s *models.Service) error
	Save(s *models.Service) error
	Delete(id uuid.UUID) error
	// ConsumedProducts lists the products one unit of the service uses.
	ConsumedProducts(serviceID uuid.UUID) ([]models.ServiceProduct, error)
	SetConsumedProducts(serviceID uuid.UUID, links []models.ServiceProduct) error
}

type ProductRepository interface {
	ByID(id uuid.UUID) (*models.Product, error)
	All() ([]models.Product, error)
	Create(p *models.Product) error
	Save(p *models.Product) error
	Delete(id uuid.UUID) error
	LowStock() ([]models.Product, error)
	// ConsumeStock decrements stock, failing with ErrInsufficientStock
	// when fewer than quantity units remain. Never goes negative.
	ConsumeStock(id uuid.UUID, quantity int) error
	AddStock(id uuid.UUID, quantity int) error
}

type BookingRepository interface {
	Create(b *models.Booking) error
	ByID(id uuid.UUID) (*models.Booking, error)
	ForCustomer(customerID uuid.UUID) ([]models.Booking, error)
	All() ([]models.Booking, error)
	AddLineItem(bookingID uuid.UUID, item *models.BookingService) error
	SaveTotals(b *models.Booking) error
	// ConfirmAndEnqueue flips is_confirmed from false to true and creates
	// the queue entry in one atomic step. Exactly one of two concurrent
	// calls wins; the loser gets ErrAlreadyConfirmed.
	ConfirmAndEnqueue(bookingID uuid.UUID, entry *models.QueueEntry) error
}

// StatusChange carries the mutation applied alongside a queue status
// transition. Nil fields are left untouched.
type StatusChange struct {
	To              string
	TimeStarted     *time.Time
	TimeCompleted   *time.Time
	StaffAssignedID *uuid.UUID
}

type QueueRepository interface {
	ByID(id uuid.UUID) (*models.QueueEntry, error)
	// Active returns waiting entries with bookings preloaded, ordered by
	// (time_joined, id).
	Active() ([]models.QueueEntry, error)
	All() ([]models.QueueEntry, error)
	ActiveEntryForCustomer(customerID uuid.UUID) (*models.QueueEntry, error)
	// Transition applies change only if the entry's current status is one
	// of from, serializing concurrent attempts: of two simultaneous calls
	// on the same entry exactly one succeeds, the other fails with
	// ErrInvalidTransition. Returns the updated entry.
	Transition(id uuid.UUID, from []string, change StatusChange) (*models.QueueEntry, error)
	// Save persists non-lifecycle fields (notes, staff assignment).
	Save(e *models.QueueEntry) error
}

type NotificationRepository interface {
	Create(n *models.Notification) error
	ForUser(userID uuid.UUID) ([]models.Notification, error)
}
