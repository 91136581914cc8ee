package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// CartService manages the caller's shopping cart. Each user has at most one
// cart, created lazily on the first add. All prices returned by reads are
// computed from the current catalog; nothing is stored on cart rows.
type CartService interface {
	// GetUserCart retrieves the caller's cart with live pricing. Users with
	// no cart row get an empty cart response.
	GetUserCart(ctx context.Context, actor models.Actor) (dto.CartResponse, error)
	// GetCartItem retrieves a single cart item owned by the caller
	GetCartItem(ctx context.Context, actor models.Actor, cartItemID string) (dto.CartItemResponse, error)
	// AddPizzaToCart adds a new line item with optional toppings to the
	// caller's cart. Always creates a new line item; never merges by variant.
	AddPizzaToCart(ctx context.Context, actor models.Actor, req dto.AddToCartRequest) (dto.CartItemResponse, error)
	// UpdateCartItem replaces a cart item's quantity and special instructions
	UpdateCartItem(ctx context.Context, actor models.Actor, cartItemID string, req dto.UpdateCartItemRequest) (dto.CartItemResponse, error)
	// IncreaseQuantity raises a cart item's quantity by a positive delta
	IncreaseQuantity(ctx context.Context, actor models.Actor, cartItemID string, amount int) (dto.CartItemResponse, error)
	// DecreaseQuantity lowers a cart item's quantity by a positive delta,
	// deleting the item when the quantity would drop to zero or below
	DecreaseQuantity(ctx context.Context, actor models.Actor, cartItemID string, amount int) (dto.DecreaseQuantityResponse, error)
	// RemoveCartItem deletes a cart item and its topping links
	RemoveCartItem(ctx context.Context, actor models.Actor, cartItemID string) (dto.MessageResponse, error)
	// ClearCart removes every item from the caller's cart. Idempotent:
	// clearing an absent or empty cart succeeds with a zero count.
	ClearCart(ctx context.Context, actor models.Actor) (dto.ClearCartResponse, error)
}

type cartService struct {
	db *gorm.DB
}

// NewCartService creates a new instance of CartService
func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

func (s *cartService) GetUserCart(ctx context.Context, actor models.Actor) (dto.CartResponse, error) {
	cart, err := s.loadCartWithItems(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EmptyCartResponse(actor.UserID), nil
		}
		return dto.CartResponse{}, err
	}
	return dto.NewCartResponse(cart), nil
}

func (s *cartService) GetCartItem(ctx context.Context, actor models.Actor, cartItemID string) (dto.CartItemResponse, error) {
	item, err := s.loadOwnedItem(ctx, actor, cartItemID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}
	return dto.NewCartItemResponse(item), nil
}

func (s *cartService) AddPizzaToCart(ctx context.Context, actor models.Actor, req dto.AddToCartRequest) (dto.CartItemResponse, error) {
	if req.Quantity <= 0 {
		return dto.CartItemResponse{}, models.NewValidationError("Quantity must be greater than 0")
	}
	if req.Quantity > models.MaxItemQuantity {
		return dto.CartItemResponse{}, models.NewValidationError(
			fmt.Sprintf("Quantity must be between 1 and %d", models.MaxItemQuantity))
	}
	if len(req.SpecialInstructions) > models.MaxSpecialInstructionsLen {
		return dto.CartItemResponse{}, models.NewValidationError(
			fmt.Sprintf("Special instructions must not exceed %d characters", models.MaxSpecialInstructionsLen))
	}

	// Validate the variant exists and is still orderable
	var variant models.PizzaVariant
	err := s.db.WithContext(ctx).Preload("Pizza").First(&variant, "id = ?", req.PizzaVariantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CartItemResponse{}, models.NewNotFoundError(
				fmt.Sprintf("Pizza variant with ID '%s' not found", req.PizzaVariantID))
		}
		return dto.CartItemResponse{}, err
	}

	var violations []string
	if !variant.IsAvailable {
		violations = append(violations, fmt.Sprintf("Pizza variant '%s' is not available", variant.Size))
	}

	// Validate every requested topping; missing ids fail fast as NotFound,
	// unavailable ones are aggregated into one validation error
	toppingIDs := dedupeNonEmpty(req.ToppingIDs)
	for _, toppingID := range toppingIDs {
		var topping models.Topping
		err := s.db.WithContext(ctx).First(&topping, "id = ?", toppingID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CartItemResponse{}, models.NewNotFoundError(
					fmt.Sprintf("Topping with ID '%s' not found", toppingID))
			}
			return dto.CartItemResponse{}, err
		}
		if !topping.IsAvailable {
			violations = append(violations, fmt.Sprintf("Topping '%s' is not available", topping.Name))
		}
	}
	if len(violations) > 0 {
		return dto.CartItemResponse{}, models.NewAggregateValidationError(violations)
	}

	now := time.Now().UTC()
	itemID := uuid.NewString()

	// Cart item and its topping links are written in one transaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, actor.UserID, now)
		if err != nil {
			return err
		}

		var itemCount int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount >= models.MaxCartItems {
			return models.NewValidationError(fmt.Sprintf(
				"Cart cannot contain more than %d items. Please remove some items before adding more.", models.MaxCartItems))
		}

		item := models.CartItem{
			ID:                  itemID,
			CartID:              cart.ID,
			PizzaVariantID:      req.PizzaVariantID,
			Quantity:            req.Quantity,
			SpecialInstructions: req.SpecialInstructions,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		for _, toppingID := range toppingIDs {
			item.Toppings = append(item.Toppings, models.CartItemTopping{
				ID:         uuid.NewString(),
				CartItemID: itemID,
				ToppingID:  toppingID,
				CreatedAt:  now,
			})
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return bumpCartVersion(tx, cart.ID, now)
	})
	if err != nil {
		return dto.CartItemResponse{}, err
	}

	log.WithFields(log.Fields{
		"user_id":      actor.UserID,
		"cart_item_id": itemID,
		"variant_id":   req.PizzaVariantID,
		"quantity":     req.Quantity,
	}).Debug("Cart item added")

	item, err := s.loadItemWithDetails(ctx, itemID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}
	return dto.NewCartItemResponse(item), nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, actor models.Actor, cartItemID string, req dto.UpdateCartItemRequest) (dto.CartItemResponse, error) {
	if req.Quantity <= 0 {
		return dto.CartItemResponse{}, models.NewValidationError("Quantity must be greater than 0")
	}
	if req.Quantity > models.MaxItemQuantity {
		return dto.CartItemResponse{}, models.NewValidationError(
			fmt.Sprintf("Quantity must be between 1 and %d", models.MaxItemQuantity))
	}
	if len(req.SpecialInstructions) > models.MaxSpecialInstructionsLen {
		return dto.CartItemResponse{}, models.NewValidationError(
			fmt.Sprintf("Special instructions must not exceed %d characters", models.MaxSpecialInstructionsLen))
	}

	item, err := s.loadOwnedItem(ctx, actor, cartItemID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}

	now := time.Now().UTC()
	item.Quantity = req.Quantity
	if req.SpecialInstructions != "" {
		item.SpecialInstructions = req.SpecialInstructions
	}
	item.UpdatedAt = now

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":             item.Quantity,
			"special_instructions": item.SpecialInstructions,
			"updated_at":           now,
		}).Error; err != nil {
			return err
		}
		return bumpCartVersion(tx, item.CartID, now)
	})
	if err != nil {
		return dto.CartItemResponse{}, err
	}

	updated, err := s.loadItemWithDetails(ctx, item.ID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}
	return dto.NewCartItemResponse(updated), nil
}

func (s *cartService) IncreaseQuantity(ctx context.Context, actor models.Actor, cartItemID string, amount int) (dto.CartItemResponse, error) {
	if amount <= 0 {
		return dto.CartItemResponse{}, models.NewValidationError("Amount must be greater than 0")
	}

	item, err := s.loadOwnedItem(ctx, actor, cartItemID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}

	newQuantity := item.Quantity + amount
	if newQuantity > models.MaxItemQuantity {
		return dto.CartItemResponse{}, models.NewValidationError(
			fmt.Sprintf("Quantity must be between 1 and %d", models.MaxItemQuantity))
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		return bumpCartVersion(tx, item.CartID, now)
	})
	if err != nil {
		return dto.CartItemResponse{}, err
	}

	updated, err := s.loadItemWithDetails(ctx, item.ID)
	if err != nil {
		return dto.CartItemResponse{}, err
	}
	return dto.NewCartItemResponse(updated), nil
}

func (s *cartService) DecreaseQuantity(ctx context.Context, actor models.Actor, cartItemID string, amount int) (dto.DecreaseQuantityResponse, error) {
	if amount <= 0 {
		return dto.DecreaseQuantityResponse{}, models.NewValidationError("Amount must be greater than 0")
	}

	item, err := s.loadOwnedItem(ctx, actor, cartItemID)
	if err != nil {
		return dto.DecreaseQuantityResponse{}, err
	}

	now := time.Now().UTC()
	newQuantity := item.Quantity - amount

	// Dropping to zero or below deletes the line item instead of erroring
	if newQuantity <= 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := deleteCartItem(tx, item.ID); err != nil {
				return err
			}
			return bumpCartVersion(tx, item.CartID, now)
		})
		if err != nil {
			return dto.DecreaseQuantityResponse{}, err
		}
		return dto.DecreaseQuantityResponse{
			Message:     "Cart item removed because quantity would be zero or negative",
			Success:     true,
			ItemRemoved: true,
		}, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		return bumpCartVersion(tx, item.CartID, now)
	})
	if err != nil {
		return dto.DecreaseQuantityResponse{}, err
	}

	updated, err := s.loadItemWithDetails(ctx, item.ID)
	if err != nil {
		return dto.DecreaseQuantityResponse{}, err
	}
	itemResp := dto.NewCartItemResponse(updated)
	return dto.DecreaseQuantityResponse{
		Message:     "Cart item quantity decreased successfully",
		Success:     true,
		ItemRemoved: false,
		Item:        &itemResp,
	}, nil
}

func (s *cartService) RemoveCartItem(ctx context.Context, actor models.Actor, cartItemID string) (dto.MessageResponse, error) {
	item, err := s.loadOwnedItem(ctx, actor, cartItemID)
	if err != nil {
		return dto.MessageResponse{}, err
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCartItem(tx, item.ID); err != nil {
			return err
		}
		return bumpCartVersion(tx, item.CartID, now)
	})
	if err != nil {
		return dto.MessageResponse{}, err
	}
	return dto.MessageResponse{Message: "Cart item removed successfully", Success: true}, nil
}

func (s *cartService) ClearCart(ctx context.Context, actor models.Actor) (dto.ClearCartResponse, error) {
	cart, err := s.loadCartWithItems(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClearCartResponse{Message: "Cart is already empty", Success: true, ItemsRemoved: 0}, nil
		}
		return dto.ClearCartResponse{}, err
	}

	itemsRemoved := len(cart.Items)
	if itemsRemoved == 0 {
		return dto.ClearCartResponse{Message: "Cart is already empty", Success: true, ItemsRemoved: 0}, nil
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAllCartItems(tx, cart.ID); err != nil {
			return err
		}
		return bumpCartVersion(tx, cart.ID, now)
	})
	if err != nil {
		return dto.ClearCartResponse{}, err
	}

	log.WithFields(log.Fields{"user_id": actor.UserID, "items_removed": itemsRemoved}).Debug("Cart cleared")
	return dto.ClearCartResponse{
		Message:      fmt.Sprintf("Cart cleared successfully. %d item(s) removed.", itemsRemoved),
		Success:      true,
		ItemsRemoved: itemsRemoved,
	}, nil
}

// loadCartWithItems loads the user's cart with every item, its variant+pizza
// and its toppings preloaded. Returns gorm.ErrRecordNotFound when no cart
// row exists.
func (s *cartService) loadCartWithItems(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items.PizzaVariant.Pizza").
		Preload("Items.Toppings.Topping").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// loadItemWithDetails loads a single cart item with variant, pizza and toppings
func (s *cartService) loadItemWithDetails(ctx context.Context, cartItemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).
		Preload("PizzaVariant.Pizza").
		Preload("Toppings.Topping").
		First(&item, "id = ?", cartItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(fmt.Sprintf("Cart item with ID '%s' not found", cartItemID))
		}
		return nil, err
	}
	return &item, nil
}

// loadOwnedItem loads a cart item with details and verifies the caller owns it
func (s *cartService) loadOwnedItem(ctx context.Context, actor models.Actor, cartItemID string) (*models.CartItem, error) {
	item, err := s.loadItemWithDetails(ctx, cartItemID)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := s.db.WithContext(ctx).First(&cart, "id = ?", item.CartID).Error; err != nil {
		return nil, err
	}
	if cart.UserID != actor.UserID {
		return nil, models.NewUnauthorizedError("You do not have permission to access this cart item")
	}
	return item, nil
}

// getOrCreateCart returns the user's cart, creating it on first use
func getOrCreateCart(tx *gorm.DB, userID string, now time.Time) (*models.Cart, error) {
	var cart models.Cart
	err := tx.First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// bumpCartVersion advances the cart's optimistic row version
func bumpCartVersion(tx *gorm.DB, cartID string, now time.Time) error {
	return tx.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"row_version": gorm.Expr("row_version + 1"),
		"updated_at":  now,
	}).Error
}

// deleteCartItem removes one item and its topping links
func deleteCartItem(tx *gorm.DB, cartItemID string) error {
	if err := tx.Where("cart_item_id = ?", cartItemID).Delete(&models.CartItemTopping{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", cartItemID).Delete(&models.CartItem{}).Error
}

// deleteAllCartItems removes every item of a cart and their topping links
func deleteAllCartItems(tx *gorm.DB, cartID string) error {
	err := tx.Where("cart_item_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).Model(&models.CartItem{}).Select("id").Where("cart_id = ?", cartID),
	).Delete(&models.CartItemTopping{}).Error
	if err != nil {
		return err
	}
	return tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// dedupeNonEmpty drops empty and repeated ids while preserving order
func dedupeNonEmpty(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
