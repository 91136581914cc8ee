package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/events"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// OrderService handles checkout and the order lifecycle. Orders are created
// from the caller's cart in a single transaction and are immutable afterwards
// except for status changes.
type OrderService interface {
	// Checkout converts the caller's cart into an order. Prices are recomputed
	// from the current catalog at the moment of checkout and frozen onto the
	// order; the cart is emptied in the same transaction.
	Checkout(ctx context.Context, actor models.Actor) (*models.Order, error)
	// GetMyOrders lists the caller's orders, newest first
	GetMyOrders(ctx context.Context, actor models.Actor) ([]models.Order, error)
	// GetOrderByID retrieves one order. Owners see their own orders;
	// administrators see any order.
	GetOrderByID(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error)
	// CancelOrder lets the owner cancel an order that is still Pending or Confirmed
	CancelOrder(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error)
	// UpdateOrderStatus moves an order to a new lifecycle status (administrators only)
	UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID string, status models.OrderStatus) (*models.Order, error)
	// GetAllOrders lists every order in the store (administrators only)
	GetAllOrders(ctx context.Context, actor models.Actor) ([]models.Order, error)
	// GetOrdersByUserID lists a given user's orders (administrators only)
	GetOrdersByUserID(ctx context.Context, actor models.Actor, userID string) ([]models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewOrderService creates a new instance of OrderService. The publisher may
// be nil; event publishing is then skipped.
func NewOrderService(db *gorm.DB, publisher events.Publisher) OrderService {
	return &orderService{db: db, publisher: publisher}
}

func (s *orderService) Checkout(ctx context.Context, actor models.Actor) (*models.Order, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items.PizzaVariant.Pizza").
		Preload("Items.Toppings.Topping").
		First(&cart, "user_id = ?", actor.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("Cart is empty. Cannot proceed with checkout")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.NewValidationError("Cart is empty. Cannot proceed with checkout")
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(cart.Items))

	// Re-validate every line against the current catalog and snapshot its
	// names and prices; anything removed or disabled since it was added
	// fails the whole checkout.
	for _, item := range cart.Items {
		if item.PizzaVariant == nil || item.PizzaVariant.Pizza == nil {
			return nil, models.NewNotFoundError(
				fmt.Sprintf("Pizza variant with ID '%s' no longer exists", item.PizzaVariantID))
		}
		variant := item.PizzaVariant
		if !variant.IsAvailable || !variant.Pizza.IsAvailable {
			return nil, models.NewValidationError(fmt.Sprintf(
				"Pizza '%s' (%s) is no longer available. Please remove it from your cart", variant.Pizza.Name, variant.Size))
		}

		orderItemID := uuid.NewString()
		variantID := item.PizzaVariantID
		orderItem := models.OrderItem{
			ID:                    orderItemID,
			OrderID:               orderID,
			PizzaVariantID:        &variantID,
			PizzaNameAtOrder:      variant.Pizza.Name,
			PizzaSizeAtOrder:      string(variant.Size),
			PizzaBasePriceAtOrder: variant.Price,
			Quantity:              item.Quantity,
			SpecialInstructions:   item.SpecialInstructions,
			CreatedAt:             now,
		}

		unitPrice := variant.Price
		for _, cit := range item.Toppings {
			if cit.Topping == nil {
				return nil, models.NewNotFoundError(
					fmt.Sprintf("Topping with ID '%s' no longer exists", cit.ToppingID))
			}
			if !cit.Topping.IsAvailable {
				return nil, models.NewValidationError(fmt.Sprintf(
					"Topping '%s' is no longer available. Please remove it from your cart", cit.Topping.Name))
			}
			toppingID := cit.ToppingID
			orderItem.Toppings = append(orderItem.Toppings, models.OrderItemTopping{
				ID:                  uuid.NewString(),
				OrderItemID:         orderItemID,
				ToppingID:           &toppingID,
				ToppingNameAtOrder:  cit.Topping.Name,
				ToppingPriceAtOrder: cit.Topping.Price,
				CreatedAt:           now,
			})
			unitPrice = unitPrice.Add(cit.Topping.Price)
		}

		subtotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItem.SubtotalAtOrder = subtotal
		total = total.Add(subtotal)
		orderItems = append(orderItems, orderItem)
	}

	if total.LessThan(models.MinimumOrderTotal) {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Order total must be at least $%s. Current total is $%s",
			models.MinimumOrderTotal.StringFixed(2), total.StringFixed(2)))
	}

	order := models.Order{
		ID:         orderID,
		UserID:     actor.UserID,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
		Items:      orderItems,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Order creation and cart emptying are one atomic unit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := deleteAllCartItems(tx, cart.ID); err != nil {
			return err
		}
		return bumpCartVersion(tx, cart.ID, now)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":    order.ID,
		"user_id":     actor.UserID,
		"total_price": order.TotalPrice.StringFixed(2),
		"item_count":  len(order.Items),
	}).Info("Order created")

	s.publish(events.RoutingOrderCreated, &order)

	return s.loadOrder(ctx, order.ID)
}

func (s *orderService) GetMyOrders(ctx context.Context, actor models.Actor) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Toppings").
		Where("user_id = ?", actor.UserID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("You do not have permission to view this order")
	}
	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.UserID {
		return nil, models.NewUnauthorizedError("You do not have permission to cancel this order")
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Cannot cancel order with status '%s'. Only Pending or Confirmed orders can be cancelled", order.Status))
	}

	return s.applyStatus(ctx, order, models.OrderStatusCancelled)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("Only administrators can update order status")
	}
	if !status.IsValid() {
		return nil, models.NewValidationError(fmt.Sprintf("Invalid order status: '%s'", status))
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateStatusTransition(order.Status, status); err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}

	return s.applyStatus(ctx, order, status)
}

func (s *orderService) GetAllOrders(ctx context.Context, actor models.Actor) ([]models.Order, error) {
	if !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("Only administrators can list all orders")
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Toppings").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrdersByUserID(ctx context.Context, actor models.Actor, userID string) ([]models.Order, error) {
	if !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("Only administrators can list another user's orders")
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Toppings").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// applyStatus persists a status change with its lifecycle timestamp and
// publishes the update event
func (s *orderService) applyStatus(ctx context.Context, order *models.Order, status models.OrderStatus) (*models.Order, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	switch status {
	case models.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case models.OrderStatusDelivered:
		updates["completed_at"] = now
	case models.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":   order.ID,
		"old_status": order.Status,
		"new_status": status,
	}).Info("Order status updated")

	updated, err := s.loadOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.publish(events.RoutingStatusUpdated, updated)
	return updated, nil
}

// loadOrder fetches an order with its item and topping snapshots
func (s *orderService) loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Toppings").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(fmt.Sprintf("Order with ID '%s' not found", orderID))
		}
		return nil, err
	}
	return &order, nil
}

// publish emits an order event; broker failures are logged, never surfaced
func (s *orderService) publish(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := events.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Warn("Failed to publish order event")
	}
}
