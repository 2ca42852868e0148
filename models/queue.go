package models

import (
	"time"

	"github.com/google/uuid"
)

// Queue entry lifecycle. waiting -> in_progress -> completed, with
// cancelled and no_show as terminal alternates.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// QueueEntry is the unit of queue membership, exactly one per confirmed
// booking. TimeJoined is set at creation and never changes; together with
// the entry id it is the queue ordering key.
type QueueEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	BookingID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Status             string    `gorm:"type:varchar(20);not null;default:'waiting';index"`
	TimeJoined         time.Time `gorm:"index;not null"`
	TimeStarted        *time.Time
	TimeCompleted      *time.Time
	EstimatedStartTime *time.Time // one-time snapshot taken at confirmation
	StaffAssignedID    *uuid.UUID `gorm:"type:uuid;index"`
	Notes              string

	Booking Booking `gorm:"foreignKey:BookingID"`
}

// TotalServiceDuration is the minutes this entry occupies the chair,
// summed over the booking's line items.
func (q *QueueEntry) TotalServiceDuration() int {
	var total int
	for _, item := range q.Booking.Items {
		total += item.Duration * item.Quantity
	}
	return total
}

func (q *QueueEntry) IsTerminal() bool {
	switch q.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
