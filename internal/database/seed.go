package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

// Seed populates an empty database with the base catalog and a bootstrap
// admin account so the API is usable right after first start. It is a no-op
// when pizzas already exist.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	var count int64
	if err := db.Model(&models.Pizza{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}

	log.Info("Database is empty, seeding initial data")
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           uuid.NewString(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		FirstName:    "Store",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	toppings := []models.Topping{
		{Name: "Pepperoni", Price: decimal.NewFromFloat(1.50)},
		{Name: "Mushrooms", Price: decimal.NewFromFloat(1.00)},
		{Name: "Onions", Price: decimal.NewFromFloat(0.75)},
		{Name: "Bell Peppers", Price: decimal.NewFromFloat(1.00)},
		{Name: "Black Olives", Price: decimal.NewFromFloat(1.25)},
		{Name: "Extra Cheese", Price: decimal.NewFromFloat(2.00)},
		{Name: "Bacon", Price: decimal.NewFromFloat(1.75)},
		{Name: "Sausage", Price: decimal.NewFromFloat(1.50)},
		{Name: "Pineapple", Price: decimal.NewFromFloat(1.00)},
		{Name: "Jalapenos", Price: decimal.NewFromFloat(0.75)},
	}
	for i := range toppings {
		toppings[i].ID = uuid.NewString()
		toppings[i].IsAvailable = true
		toppings[i].CreatedAt = now
		toppings[i].UpdatedAt = now
		if err := db.Create(&toppings[i]).Error; err != nil {
			return err
		}
	}

	pizzas := []models.Pizza{
		{
			Name:        "Margherita",
			Description: "Classic pizza with tomato sauce, fresh mozzarella, and basil",
			Type:        models.PizzaTypeMargherita,
			Variants:    priceLadder(8.99, 12.99, 16.99, 20.99),
		},
		{
			Name:        "Pepperoni",
			Description: "Tomato sauce, mozzarella, and a generous layer of pepperoni",
			Type:        models.PizzaTypeMeatLovers,
			Variants:    priceLadder(9.99, 13.99, 17.99, 21.99),
		},
		{
			Name:        "Hawaiian",
			Description: "Ham and pineapple on tomato sauce and mozzarella",
			Type:        models.PizzaTypeHawaiian,
			Variants:    priceLadder(10.99, 14.99, 18.99, 22.99),
		},
	}
	for i := range pizzas {
		pizzas[i].ID = uuid.NewString()
		pizzas[i].IsAvailable = true
		pizzas[i].CreatedAt = now
		pizzas[i].UpdatedAt = now
		for j := range pizzas[i].Variants {
			pizzas[i].Variants[j].ID = uuid.NewString()
			pizzas[i].Variants[j].PizzaID = pizzas[i].ID
			pizzas[i].Variants[j].IsAvailable = true
			pizzas[i].Variants[j].CreatedAt = now
			pizzas[i].Variants[j].UpdatedAt = now
		}
		if err := db.Create(&pizzas[i]).Error; err != nil {
			return err
		}
	}

	log.Info("Database seeded successfully")
	return nil
}

// priceLadder builds the four size variants for a pizza
func priceLadder(small, medium, large, extraLarge float64) []models.PizzaVariant {
	return []models.PizzaVariant{
		{Size: models.PizzaSizeSmall, Price: decimal.NewFromFloat(small)},
		{Size: models.PizzaSizeMedium, Price: decimal.NewFromFloat(medium)},
		{Size: models.PizzaSizeLarge, Price: decimal.NewFromFloat(large)},
		{Size: models.PizzaSizeExtraLarge, Price: decimal.NewFromFloat(extraLarge)},
	}
}
