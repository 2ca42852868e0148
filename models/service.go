package models

import (
	"github.com/google/uuid"
)

type Service struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name          string    `gorm:"not null"`
	Description   string
	Price         float64 `gorm:"type:decimal(10,2);not null"`
	Duration      int     // in minutes
	Category      string  `gorm:"default:'General'"`
	LoyaltyPoints int     `gorm:"default:0"` // points earned per unit
	IsActive      bool    `gorm:"default:true"`

	ConsumedProducts []ServiceProduct `gorm:"foreignKey:ServiceID"`
}
