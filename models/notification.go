// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Queue event kinds delivered to customers.
const (
	EventBookingConfirmed = "booking_confirmed"
	EventServiceStarted   = "service_started"
	EventServiceCompleted = "service_completed"
	EventQueueNext        = "queue_next"
	EventBookingCancelled = "booking_cancelled"
)

type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind         string    `gorm:"type:varchar(30);not null"` // one of the Event* kinds
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	Channel      string    `gorm:"type:varchar(20)"` // sms, log
	ErrorMessage string    `gorm:"type:text"`
	SentAt       time.Time

	gorm.Model
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
