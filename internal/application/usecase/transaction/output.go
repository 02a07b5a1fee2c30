// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// CategoryOutput represents category information in entry outputs.
type CategoryOutput struct {
	ID   uuid.UUID
	Name string
	Kind entity.CategoryKind
}

// EntryOutput represents a single ledger entry in use case outputs.
type EntryOutput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Amount           decimal.Decimal
	Kind             entity.TransactionKind
	CategoryID       uuid.UUID
	Category         *CategoryOutput
	PaymentMethod    entity.PaymentMethod
	CreditCardID     *uuid.UUID
	InstallmentCount int
	IsRecurring      bool
	Description      string
	DueDate          time.Time
	PaidDate         *time.Time
	Status           entity.SettlementStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// entryOutputFrom builds an EntryOutput from an entity.
func entryOutputFrom(t *entity.Transaction) *EntryOutput {
	return &EntryOutput{
		ID:               t.ID,
		UserID:           t.UserID,
		Amount:           t.Amount,
		Kind:             t.Kind,
		CategoryID:       t.CategoryID,
		PaymentMethod:    t.PaymentMethod,
		CreditCardID:     t.CreditCardID,
		InstallmentCount: t.InstallmentCount,
		IsRecurring:      t.IsRecurring,
		Description:      t.Description,
		DueDate:          t.DueDate,
		PaidDate:         t.PaidDate,
		Status:           t.Status(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
