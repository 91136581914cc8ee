package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

// AuthService handles account registration and token issuance
type AuthService interface {
	// Register creates a new user account with the User role
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	// Login verifies credentials and issues a signed bearer token
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	// GetUserByID retrieves a user's own profile
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	db          *gorm.DB
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(db *gorm.DB, jwtSecret []byte, tokenExpiry time.Duration) AuthService {
	return &authService{db: db, jwtSecret: jwtSecret, tokenExpiry: tokenExpiry}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.NewValidationError(fmt.Sprintf("User with email '%s' already exists", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, models.NewUnauthorizedError("Invalid email or password")
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.AuthResponse{}, models.NewUnauthorizedError("Invalid email or password")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"uid":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	log.WithFields(log.Fields{"user_id": user.ID}).Debug("User logged in")
	return dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.tokenExpiry.Seconds()),
		User:      user,
	}, nil
}

func (s *authService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
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
