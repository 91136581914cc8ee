package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/models"
)

// AdminService exposes store-wide inspection for administrators
type AdminService interface {
	// GetAllUsers lists every registered user (administrators only)
	GetAllUsers(ctx context.Context, actor models.Actor) ([]models.User, error)
	// GetUserByID retrieves any user's profile (administrators only)
	GetUserByID(ctx context.Context, actor models.Actor, userID string) (*models.User, error)
}

type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(db *gorm.DB) AdminService {
	return &adminService{db: db}
}

func (s *adminService) GetAllUsers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("Only administrators can list users")
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *adminService) GetUserByID(ctx context.Context, actor models.Actor, userID string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, models.NewUnauthorizedError("Only administrators can view other users")
	}
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(fmt.Sprintf("User with ID '%s' not found", userID))
		}
		return nil, err
	}
	return &user, nil
}
