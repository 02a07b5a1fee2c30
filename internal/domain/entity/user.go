// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder. Every other entity is scoped to
// exactly one user; no cross-user references exist.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	PhoneNumber        string
	EmailNotifications bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash, phoneNumber string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		PhoneNumber:        phoneNumber,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
