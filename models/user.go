package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role          string `gorm:"type:varchar(20);not null;default:'customer'"` // customer, staff or admin
	LoyaltyPoints int    `gorm:"default:0"`

	Bookings []Booking `gorm:"foreignKey:CustomerID"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	return
}
