package models

import (
	"time"
)

// Role names carried in JWT claims and stored on users
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User is an identity principal. Password hashes never leave this struct
// through JSON.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(256)" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	Role         string    `gorm:"not null;default:'User';type:varchar(20)" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
