package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Topping is an extra ingredient that can be added to any cart item.
// Soft-deleted via IsAvailable; rows are never removed so order snapshots
// keep their topping references.
type Topping struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
