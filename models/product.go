package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name          string    `gorm:"not null"`
	Description   string
	SKU           string  `gorm:"uniqueIndex;not null"`
	CostPrice     float64 `gorm:"type:decimal(10,2);default:0.0"`
	StockQuantity int     `gorm:"default:0"`
	MinStockLevel int     `gorm:"default:5"` // low stock alert threshold
	Unit          string  `gorm:"default:'piece'"`
	UsageCount    int     `gorm:"default:0"` // times consumed by services
	IsActive      bool    `gorm:"default:true"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// ServiceProduct links a catalog service to the products it consumes
// per performed unit.
type ServiceProduct struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ServiceID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_service_product,priority:1"`
	ProductID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_service_product,priority:2"`
	QuantityUsed int       `gorm:"default:1"` // product units per service unit

	Product Product `gorm:"foreignKey:ProductID"`
}

func (sp *ServiceProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	return
}
