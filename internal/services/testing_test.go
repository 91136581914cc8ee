package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/database"
	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) models.Actor {
	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(&user).Error)
	return models.Actor{UserID: user.ID, Role: user.Role}
}

func createTestPizza(t *testing.T, db *gorm.DB, name string, sizePrices map[models.PizzaSize]string) models.Pizza {
	now := time.Now().UTC()
	pizza := models.Pizza{
		ID:          uuid.NewString(),
		Name:        name,
		Description: name + " pizza",
		Type:        models.PizzaTypeMargherita,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for size, price := range sizePrices {
		pizza.Variants = append(pizza.Variants, models.PizzaVariant{
			ID:          uuid.NewString(),
			PizzaID:     pizza.ID,
			Size:        size,
			Price:       decimal.RequireFromString(price),
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}

func createTestTopping(t *testing.T, db *gorm.DB, name, price string) models.Topping {
	now := time.Now().UTC()
	topping := models.Topping{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&topping).Error)
	return topping
}

func variantBySize(t *testing.T, pizza models.Pizza, size models.PizzaSize) models.PizzaVariant {
	for _, v := range pizza.Variants {
		if v.Size == size {
			return v
		}
	}
	t.Fatalf("pizza %s has no %s variant", pizza.Name, size)
	return models.PizzaVariant{}
}

func addItemToCart(t *testing.T, svc CartService, actor models.Actor, variantID string, quantity int, toppingIDs ...string) dto.CartItemResponse {
	item, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: variantID,
		Quantity:       quantity,
		ToppingIDs:     toppingIDs,
	})
	require.NoError(t, err)
	return item
}
