package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/pizza-store-api/internal/dto"
	"github.com/mvaldes/pizza-store-api/internal/models"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, []byte(testJWTSecret), time.Hour)

	user, err := svc.Register(t.Context(), dto.RegisterRequest{
		Email:     "Alice@Example.com",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	// Emails are normalized to lower case
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, []byte(testJWTSecret), time.Hour)

	req := dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Smith",
	}
	_, err := svc.Register(t.Context(), req)
	require.NoError(t, err)

	// Same address with different casing is still a duplicate
	req.Email = "ALICE@example.com"
	_, err = svc.Register(t.Context(), req)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, []byte(testJWTSecret), 2*time.Hour)

	user, err := svc.Register(t.Context(), dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	resp, err := svc.Login(t.Context(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 7200, resp.ExpiresIn)
	assert.Equal(t, user.ID, resp.User.ID)

	// The token must carry the uid and role claims the middleware expects
	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims["uid"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, []byte(testJWTSecret), time.Hour)

	_, err := svc.Register(t.Context(), dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "correct-horse",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)

	_, err = svc.Login(t.Context(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	var unauthorizedErr *models.UnauthorizedError
	require.ErrorAs(t, err, &unauthorizedErr)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, []byte(testJWTSecret), time.Hour)

	_, err := svc.Login(t.Context(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	var unauthorizedErr *models.UnauthorizedError
	require.ErrorAs(t, err, &unauthorizedErr)
}
