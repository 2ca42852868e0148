package services

import (
	"github.com/google/uuid"
)

// Event is a queue lifecycle notification command. The engine emits
// events to a Dispatcher instead of calling delivery code inline, so a
// slow or failing notification channel can never affect a committed
// status transition.
type Event struct {
	Kind      string // one of the models.Event* kinds
	UserID    uuid.UUID
	BookingID uuid.UUID
	EntryID   uuid.UUID
	Message   string
}

// Dispatcher delivers events best effort. Implementations must not
// return delivery failures to the caller; they log and record them.
type Dispatcher interface {
	Dispatch(event Event)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(event Event)

func (f DispatcherFunc) Dispatch(event Event) {
	f(event)
}
