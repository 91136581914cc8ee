package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

func TestAddPizzaToCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeMedium: "12.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeMedium)
	pepperoni := createTestTopping(t, db, "Pepperoni", "1.50")
	mushrooms := createTestTopping(t, db, "Mushrooms", "1.00")

	item, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: variant.ID,
		Quantity:       2,
		ToppingIDs:     []string{pepperoni.ID, mushrooms.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Margherita", item.PizzaName)
	assert.Equal(t, "Medium", item.PizzaSize)
	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, item.Toppings, 2)
	// 12.99 + 1.50 + 1.00 = 15.49 per unit, 30.98 for two
	assert.Equal(t, "15.49", item.ItemPrice.StringFixed(2))
	assert.Equal(t, "30.98", item.SubTotal.StringFixed(2))
}

func TestAddPizzaToCartUnknownVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	_, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: "no-such-variant",
		Quantity:       1,
	})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddPizzaToCartUnavailableVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	require.NoError(t, db.Model(&models.PizzaVariant{}).Where("id = ?", variant.ID).
		Update("is_available", false).Error)

	_, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: variant.ID,
		Quantity:       1,
	})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAddPizzaToCartUnknownTopping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)

	_, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: variant.ID,
		Quantity:       1,
		ToppingIDs:     []string{"no-such-topping"},
	})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// Nothing should have been written
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddPizzaToCartSameVariantCreatesSeparateLines(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeLarge: "16.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeLarge)

	first := addItemToCart(t, svc, actor, variant.ID, 1)
	second := addItemToCart(t, svc, actor, variant.ID, 1)
	assert.NotEqual(t, first.ID, second.ID)

	cart, err := svc.GetUserCart(t.Context(), actor)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestAddPizzaToCartItemCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)

	for i := 0; i < models.MaxCartItems; i++ {
		addItemToCart(t, svc, actor, variant.ID, 1)
	}

	_, err := svc.AddPizzaToCart(t.Context(), actor, dto.AddToCartRequest{
		PizzaVariantID: variant.ID,
		Quantity:       1,
	})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), fmt.Sprintf("%d", models.MaxCartItems))
}

func TestGetUserCartEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	cart, err := svc.GetUserCart(t.Context(), actor)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Total.StringFixed(2))
}

func TestCartPricesFollowCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeMedium: "12.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeMedium)
	addItemToCart(t, svc, actor, variant.ID, 1)

	// A price change is visible on the very next read
	require.NoError(t, db.Model(&models.PizzaVariant{}).Where("id = ?", variant.ID).
		Update("price", "14.49").Error)

	cart, err := svc.GetUserCart(t.Context(), actor)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "14.49", cart.Items[0].ItemPrice.StringFixed(2))
	assert.Equal(t, "14.49", cart.Total.StringFixed(2))
}

func TestIncreaseQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	item := addItemToCart(t, svc, actor, variant.ID, 2)

	updated, err := svc.IncreaseQuantity(t.Context(), actor, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestIncreaseQuantityOverCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	item := addItemToCart(t, svc, actor, variant.ID, models.MaxItemQuantity)

	_, err := svc.IncreaseQuantity(t.Context(), actor, item.ID, 1)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDecreaseQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	item := addItemToCart(t, svc, actor, variant.ID, 3)

	result, err := svc.DecreaseQuantity(t.Context(), actor, item.ID, 1)
	require.NoError(t, err)
	assert.False(t, result.ItemRemoved)
	require.NotNil(t, result.Item)
	assert.Equal(t, 2, result.Item.Quantity)
}

func TestDecreaseQuantityToZeroRemovesItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	topping := createTestTopping(t, db, "Pepperoni", "1.50")
	item := addItemToCart(t, svc, actor, variant.ID, 2, topping.ID)

	result, err := svc.DecreaseQuantity(t.Context(), actor, item.ID, 5)
	require.NoError(t, err)
	assert.True(t, result.ItemRemoved)
	assert.Nil(t, result.Item)

	// Topping links go with the item
	var itemCount, toppingCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.CartItemTopping{}).Count(&toppingCount).Error)
	assert.Zero(t, itemCount)
	assert.Zero(t, toppingCount)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	owner := createTestUser(t, db, models.RoleUser)
	intruder := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	item := addItemToCart(t, svc, owner, variant.ID, 1)

	_, err := svc.UpdateCartItem(t.Context(), intruder, item.ID, dto.UpdateCartItemRequest{Quantity: 5})
	var unauthorizedErr *models.UnauthorizedError
	require.ErrorAs(t, err, &unauthorizedErr)

	_, err = svc.RemoveCartItem(t.Context(), intruder, item.ID)
	require.ErrorAs(t, err, &unauthorizedErr)
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	addItemToCart(t, svc, actor, variant.ID, 1)
	addItemToCart(t, svc, actor, variant.ID, 2)

	result, err := svc.ClearCart(t.Context(), actor)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ItemsRemoved)

	// Clearing again is a no-op, not an error
	result, err = svc.ClearCart(t.Context(), actor)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.ItemsRemoved)
}

func TestClearCartWithoutCartRow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	result, err := svc.ClearCart(t.Context(), actor)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.ItemsRemoved)
}

func TestCartRowVersionAdvancesOnMutation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	actor := createTestUser(t, db, models.RoleUser)

	pizza := createTestPizza(t, db, "Margherita", map[models.PizzaSize]string{
		models.PizzaSizeSmall: "8.99",
	})
	variant := variantBySize(t, pizza, models.PizzaSizeSmall)
	item := addItemToCart(t, svc, actor, variant.ID, 1)

	var cart models.Cart
	require.NoError(t, db.First(&cart, "user_id = ?", actor.UserID).Error)
	afterAdd := cart.RowVersion
	assert.Greater(t, afterAdd, uint(0))

	_, err := svc.IncreaseQuantity(t.Context(), actor, item.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.First(&cart, "user_id = ?", actor.UserID).Error)
	assert.Greater(t, cart.RowVersion, afterAdd)
}
