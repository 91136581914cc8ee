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

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// PizzaService provides catalog operations for pizzas and their variants.
// Write operations require an Admin actor; deletes are soft (IsAvailable=false)
// so historical order snapshots keep valid references.
type PizzaService interface {
	// GetAllPizzas retrieves all available pizzas with their available variants
	GetAllPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID with all its variants
	GetPizzaByID(ctx context.Context, id string) (models.Pizza, error)
	// GetPizzasByType retrieves available pizzas of the given type
	GetPizzasByType(ctx context.Context, pizzaType models.PizzaType) ([]models.Pizza, error)
	// CreatePizza creates a new pizza, optionally with initial variants
	CreatePizza(ctx context.Context, actor models.Actor, req dto.CreatePizzaRequest) (models.Pizza, error)
	// UpdatePizza updates a pizza's descriptive fields and availability
	UpdatePizza(ctx context.Context, actor models.Actor, id string, req dto.UpdatePizzaRequest) (models.Pizza, error)
	// DeletePizza soft-deletes a pizza by marking it unavailable
	DeletePizza(ctx context.Context, actor models.Actor, id string) error
	// AddPizzaVariant adds a size+price configuration to a pizza
	AddPizzaVariant(ctx context.Context, actor models.Actor, pizzaID string, req dto.CreatePizzaVariantRequest) (models.PizzaVariant, error)
	// UpdatePizzaVariant updates a variant's price and availability
	UpdatePizzaVariant(ctx context.Context, actor models.Actor, pizzaID, variantID string, req dto.UpdatePizzaVariantRequest) (models.PizzaVariant, error)
	// DeletePizzaVariant soft-deletes a variant by marking it unavailable
	DeletePizzaVariant(ctx context.Context, actor models.Actor, pizzaID, variantID string) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	err := s.db.WithContext(ctx).
		Preload("Variants", "is_available = ?", true).
		Where("is_available = ?", true).
		Find(&pizzas).Error
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(ctx context.Context, id string) (models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.WithContext(ctx).
		Preload("Variants").
		First(&pizza, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, models.NewNotFoundError(fmt.Sprintf("Pizza with ID '%s' not found", id))
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) GetPizzasByType(ctx context.Context, pizzaType models.PizzaType) ([]models.Pizza, error) {
	if !pizzaType.IsValid() {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown pizza type '%s'", pizzaType))
	}
	var pizzas []models.Pizza
	err := s.db.WithContext(ctx).
		Preload("Variants", "is_available = ?", true).
		Where("is_available = ? AND type = ?", true, pizzaType).
		Find(&pizzas).Error
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) CreatePizza(ctx context.Context, actor models.Actor, req dto.CreatePizzaRequest) (models.Pizza, error) {
	if !actor.IsAdmin() {
		return models.Pizza{}, models.NewUnauthorizedError("Only administrators can create pizzas")
	}

	pizzaType, err := models.ParsePizzaType(req.Type)
	if err != nil {
		return models.Pizza{}, models.NewValidationError(err.Error())
	}

	now := time.Now().UTC()
	pizza := models.Pizza{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Type:        pizzaType,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	seenSizes := make(map[models.PizzaSize]bool)
	for _, v := range req.Variants {
		size, err := models.ParsePizzaSize(v.Size)
		if err != nil {
			return models.Pizza{}, models.NewValidationError(err.Error())
		}
		if seenSizes[size] {
			return models.Pizza{}, models.NewValidationError(
				fmt.Sprintf("Pizza variant with size '%s' already exists for this pizza.", size))
		}
		seenSizes[size] = true
		pizza.Variants = append(pizza.Variants, models.PizzaVariant{
			ID:          uuid.NewString(),
			PizzaID:     pizza.ID,
			Size:        size,
			Price:       decimal.NewFromFloat(v.Price),
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.db.WithContext(ctx).Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}

	log.WithFields(log.Fields{"pizza_id": pizza.ID, "name": pizza.Name}).Info("Pizza created")
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(ctx context.Context, actor models.Actor, id string, req dto.UpdatePizzaRequest) (models.Pizza, error) {
	if !actor.IsAdmin() {
		return models.Pizza{}, models.NewUnauthorizedError("Only administrators can update pizzas")
	}

	pizzaType, err := models.ParsePizzaType(req.Type)
	if err != nil {
		return models.Pizza{}, models.NewValidationError(err.Error())
	}

	var pizza models.Pizza
	if err := s.db.WithContext(ctx).First(&pizza, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, models.NewNotFoundError(fmt.Sprintf("Pizza with ID '%s' not found", id))
		}
		return models.Pizza{}, err
	}

	pizza.Name = req.Name
	pizza.Description = req.Description
	pizza.Type = pizzaType
	pizza.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		pizza.IsAvailable = *req.IsAvailable
	}
	pizza.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return s.GetPizzaByID(ctx, pizza.ID)
}

func (s *pizzaService) DeletePizza(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return models.NewUnauthorizedError("Only administrators can delete pizzas")
	}

	var pizza models.Pizza
	if err := s.db.WithContext(ctx).First(&pizza, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError(fmt.Sprintf("Pizza with ID '%s' not found", id))
		}
		return err
	}

	// Soft delete - historical orders keep referencing the row
	pizza.IsAvailable = false
	pizza.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&pizza).Error; err != nil {
		return err
	}

	log.WithFields(log.Fields{"pizza_id": id, "name": pizza.Name}).Info("Pizza marked as unavailable")
	return nil
}

func (s *pizzaService) AddPizzaVariant(ctx context.Context, actor models.Actor, pizzaID string, req dto.CreatePizzaVariantRequest) (models.PizzaVariant, error) {
	if !actor.IsAdmin() {
		return models.PizzaVariant{}, models.NewUnauthorizedError("Only administrators can add pizza variants")
	}

	size, err := models.ParsePizzaSize(req.Size)
	if err != nil {
		return models.PizzaVariant{}, models.NewValidationError(err.Error())
	}

	var pizza models.Pizza
	if err := s.db.WithContext(ctx).First(&pizza, "id = ?", pizzaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PizzaVariant{}, models.NewNotFoundError(fmt.Sprintf("Pizza with ID '%s' not found", pizzaID))
		}
		return models.PizzaVariant{}, err
	}

	// An available variant with the same size blocks the insert
	var existing int64
	err = s.db.WithContext(ctx).Model(&models.PizzaVariant{}).
		Where("pizza_id = ? AND size = ? AND is_available = ?", pizzaID, size, true).
		Count(&existing).Error
	if err != nil {
		return models.PizzaVariant{}, err
	}
	if existing > 0 {
		return models.PizzaVariant{}, models.NewValidationError(
			fmt.Sprintf("Pizza variant with size '%s' already exists for this pizza.", size))
	}

	now := time.Now().UTC()
	variant := models.PizzaVariant{
		ID:          uuid.NewString(),
		PizzaID:     pizzaID,
		Size:        size,
		Price:       decimal.NewFromFloat(req.Price),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&variant).Error; err != nil {
		return models.PizzaVariant{}, err
	}
	return variant, nil
}

func (s *pizzaService) UpdatePizzaVariant(ctx context.Context, actor models.Actor, pizzaID, variantID string, req dto.UpdatePizzaVariantRequest) (models.PizzaVariant, error) {
	if !actor.IsAdmin() {
		return models.PizzaVariant{}, models.NewUnauthorizedError("Only administrators can update pizza variants")
	}

	variant, err := s.findVariant(ctx, pizzaID, variantID)
	if err != nil {
		return models.PizzaVariant{}, err
	}

	variant.Price = decimal.NewFromFloat(req.Price)
	if req.IsAvailable != nil {
		variant.IsAvailable = *req.IsAvailable
	}
	variant.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&variant).Error; err != nil {
		return models.PizzaVariant{}, err
	}
	return variant, nil
}

func (s *pizzaService) DeletePizzaVariant(ctx context.Context, actor models.Actor, pizzaID, variantID string) error {
	if !actor.IsAdmin() {
		return models.NewUnauthorizedError("Only administrators can delete pizza variants")
	}

	variant, err := s.findVariant(ctx, pizzaID, variantID)
	if err != nil {
		return err
	}

	variant.IsAvailable = false
	variant.UpdatedAt = time.Now().UTC()
	return s.db.WithContext(ctx).Save(&variant).Error
}

// findVariant loads a variant and checks it belongs to the given pizza
func (s *pizzaService) findVariant(ctx context.Context, pizzaID, variantID string) (models.PizzaVariant, error) {
	var variant models.PizzaVariant
	err := s.db.WithContext(ctx).First(&variant, "id = ?", variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PizzaVariant{}, models.NewNotFoundError(fmt.Sprintf("Pizza variant with ID '%s' not found", variantID))
		}
		return models.PizzaVariant{}, err
	}
	if variant.PizzaID != pizzaID {
		return models.PizzaVariant{}, models.NewNotFoundError(
			fmt.Sprintf("Pizza variant with ID '%s' not found for pizza '%s'", variantID, pizzaID))
	}
	return variant, nil
}
