package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PizzaType categorizes pizzas offered by the store
type PizzaType string

const (
	PizzaTypeVegetarian PizzaType = "Vegetarian"
	PizzaTypeMeatLovers PizzaType = "MeatLovers"
	PizzaTypeHawaiian   PizzaType = "Hawaiian"
	PizzaTypeVeggie     PizzaType = "Veggie"
	PizzaTypeCustom     PizzaType = "Custom"
	PizzaTypeSupreme    PizzaType = "Supreme"
	PizzaTypeMargherita PizzaType = "Margherita"
)

// IsValid reports whether the value is one of the known pizza types
func (t PizzaType) IsValid() bool {
	switch t {
	case PizzaTypeVegetarian, PizzaTypeMeatLovers, PizzaTypeHawaiian,
		PizzaTypeVeggie, PizzaTypeCustom, PizzaTypeSupreme, PizzaTypeMargherita:
		return true
	}
	return false
}

// ParsePizzaType converts a string into a PizzaType, rejecting unknown values
func ParsePizzaType(s string) (PizzaType, error) {
	t := PizzaType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown pizza type: %q", s)
	}
	return t, nil
}

// PizzaSize identifies the size tier of a pizza variant
type PizzaSize string

const (
	PizzaSizeSmall      PizzaSize = "Small"
	PizzaSizeMedium     PizzaSize = "Medium"
	PizzaSizeLarge      PizzaSize = "Large"
	PizzaSizeExtraLarge PizzaSize = "ExtraLarge"
)

// IsValid reports whether the value is one of the known sizes
func (s PizzaSize) IsValid() bool {
	switch s {
	case PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge, PizzaSizeExtraLarge:
		return true
	}
	return false
}

// ParsePizzaSize converts a string into a PizzaSize, rejecting unknown values
func ParsePizzaSize(s string) (PizzaSize, error) {
	size := PizzaSize(s)
	if !size.IsValid() {
		return "", fmt.Errorf("unknown pizza size: %q", s)
	}
	return size, nil
}

// Pizza represents a pizza on the menu with its size variants.
// Pizzas are soft-deleted via IsAvailable so historical orders keep valid references.
type Pizza struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"not null;type:varchar(200)" json:"name"`
	Description string         `gorm:"type:varchar(1000)" json:"description"`
	Type        PizzaType      `gorm:"not null;type:varchar(30)" json:"type"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"imageUrl"`
	IsAvailable bool           `gorm:"not null;default:true" json:"isAvailable"`
	Variants    []PizzaVariant `gorm:"foreignKey:PizzaID" json:"variants"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// PizzaVariant is a size+price configuration of a pizza.
// At most one available variant may exist per (PizzaID, Size).
type PizzaVariant struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PizzaID     string          `gorm:"not null;index;type:varchar(36)" json:"pizzaId"`
	Pizza       *Pizza          `gorm:"foreignKey:PizzaID" json:"-"`
	Size        PizzaSize       `gorm:"not null;type:varchar(20)" json:"size"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
