package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	TotalAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	TotalDuration   int     `gorm:"default:0"` // in minutes
	SpecialRequests string
	IsConfirmed     bool `gorm:"default:false"`

	Items []BookingService `gorm:"foreignKey:BookingID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalculateTotals recomputes total amount and duration from the line
// items. Must run after every line item mutation; totals are never
// hand-edited.
func (b *Booking) RecalculateTotals() {
	var amount float64
	var duration int
	for _, item := range b.Items {
		amount += item.UnitPrice * float64(item.Quantity)
		duration += item.Duration * item.Quantity
	}
	b.TotalAmount = amount
	b.TotalDuration = duration
}

// HasService reports whether the booking already carries a line item for
// the given service. Service identity is unique within one booking.
func (b *Booking) HasService(serviceID uuid.UUID) bool {
	for _, item := range b.Items {
		if item.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// BookingService is one line item: a catalog service times a quantity,
// with price, duration and loyalty points snapshotted at add time.
type BookingService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_booking_service,priority:1"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_booking_service,priority:2"`

	ServiceName   string  `gorm:"not null"`
	Quantity      int     `gorm:"default:1"`
	UnitPrice     float64 `gorm:"type:decimal(10,2);not null"`
	Duration      int     // minutes per unit
	LoyaltyPoints int     // points per unit
	Notes         string

	CreatedAt time.Time
}

func (bs *BookingService) Subtotal() float64 {
	return bs.UnitPrice * float64(bs.Quantity)
}

func (bs *BookingService) TotalDuration() int {
	return bs.Duration * bs.Quantity
}
