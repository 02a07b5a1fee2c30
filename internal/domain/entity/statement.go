// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statement represents the aggregated monthly total owed on a credit card
// for purchases assigned to the (card, month, year) billing cycle. Rows are
// created lazily on the first qualifying transaction and maintained by
// accumulation; TotalAmount equals the sum of all credit-card transaction
// amounts assigned to this cycle.
type Statement struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CreditCardID uuid.UUID
	Month        int // 1-12
	Year         int
	TotalAmount  decimal.Decimal
	DueDate      time.Time
	IsPaid       bool
	PaidDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewStatement creates a new unpaid Statement for a billing cycle.
func NewStatement(userID, creditCardID uuid.UUID, month, year int, dueDate time.Time) *Statement {
	now := time.Now().UTC()
	return &Statement{
		ID:           uuid.New(),
		UserID:       userID,
		CreditCardID: creditCardID,
		Month:        month,
		Year:         year,
		TotalAmount:  decimal.Zero,
		DueDate:      dueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// StatementWithCard pairs a statement with its credit card for listings.
type StatementWithCard struct {
	Statement  *Statement
	CreditCard *CreditCard
}
