package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// ToppingService provides catalog operations for toppings. Writes require an
// Admin actor; deletes are soft.
type ToppingService interface {
	// GetAllToppings retrieves all available toppings
	GetAllToppings(ctx context.Context) ([]models.Topping, error)
	// GetToppingByID retrieves a topping by its ID
	GetToppingByID(ctx context.Context, id string) (models.Topping, error)
	// CreateTopping creates a new topping
	CreateTopping(ctx context.Context, actor models.Actor, req dto.CreateToppingRequest) (models.Topping, error)
	// UpdateTopping updates a topping's fields
	UpdateTopping(ctx context.Context, actor models.Actor, id string, req dto.UpdateToppingRequest) (models.Topping, error)
	// DeleteTopping soft-deletes a topping by marking it unavailable
	DeleteTopping(ctx context.Context, actor models.Actor, id string) error
}

type toppingService struct {
	db *gorm.DB
}

// NewToppingService creates a new instance of ToppingService
func NewToppingService(db *gorm.DB) ToppingService {
	return &toppingService{db: db}
}

func (s *toppingService) GetAllToppings(ctx context.Context) ([]models.Topping, error) {
	var toppings []models.Topping
	if err := s.db.WithContext(ctx).Where("is_available = ?", true).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

func (s *toppingService) GetToppingByID(ctx context.Context, id string) (models.Topping, error) {
	var topping models.Topping
	if err := s.db.WithContext(ctx).First(&topping, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Topping{}, models.NewNotFoundError(fmt.Sprintf("Topping with ID '%s' not found", id))
		}
		return models.Topping{}, err
	}
	return topping, nil
}

func (s *toppingService) CreateTopping(ctx context.Context, actor models.Actor, req dto.CreateToppingRequest) (models.Topping, error) {
	if !actor.IsAdmin() {
		return models.Topping{}, models.NewUnauthorizedError("Only administrators can create toppings")
	}

	now := time.Now().UTC()
	topping := models.Topping{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       decimal.NewFromFloat(req.Price),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&topping).Error; err != nil {
		return models.Topping{}, err
	}
	return topping, nil
}

func (s *toppingService) UpdateTopping(ctx context.Context, actor models.Actor, id string, req dto.UpdateToppingRequest) (models.Topping, error) {
	if !actor.IsAdmin() {
		return models.Topping{}, models.NewUnauthorizedError("Only administrators can update toppings")
	}

	topping, err := s.GetToppingByID(ctx, id)
	if err != nil {
		return models.Topping{}, err
	}

	topping.Name = req.Name
	topping.Price = decimal.NewFromFloat(req.Price)
	if req.IsAvailable != nil {
		topping.IsAvailable = *req.IsAvailable
	}
	topping.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&topping).Error; err != nil {
		return models.Topping{}, err
	}
	return topping, nil
}

func (s *toppingService) DeleteTopping(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return models.NewUnauthorizedError("Only administrators can delete toppings")
	}

	topping, err := s.GetToppingByID(ctx, id)
	if err != nil {
		return err
	}

	topping.IsAvailable = false
	topping.UpdatedAt = time.Now().UTC()
	return s.db.WithContext(ctx).Save(&topping).Error
}
