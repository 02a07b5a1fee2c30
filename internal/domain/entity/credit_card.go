// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCard represents a credit card whose closing/due days drive the
// billing cycle calculation. ClosingDay and DueDay are validated to the
// 1-31 range at creation; days beyond a month's length are clamped when
// a concrete statement date is computed, never here.
type CreditCard struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	ClosingDay  int
	DueDay      int
	CreditLimit decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCreditCard creates a new CreditCard entity.
func NewCreditCard(userID uuid.UUID, name string, closingDay, dueDay int, creditLimit decimal.Decimal) *CreditCard {
	now := time.Now().UTC()
	return &CreditCard{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		CreditLimit: creditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
