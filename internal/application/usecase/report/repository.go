// Package report contains the read-side aggregation use cases: balance,
// category summary, monthly trend and pending commitments.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// SettledTotals holds the sums and counts of settled entries in a range.
type SettledTotals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	IncomeCount  int
	ExpenseCount int
}

// PendingTotals holds the sums and counts of pending entries in a range.
type PendingTotals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	IncomeCount  int
	ExpenseCount int
}

// RawCategoryGroup is one category aggregation row from the store.
type RawCategoryGroup struct {
	CategoryID   uuid.UUID
	CategoryName string
	Kind         entity.TransactionKind
	Total        decimal.Decimal
	Count        int
}

// PendingEntry is a pending expense row used by the commitments view.
type PendingEntry struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	Description  string
	DueDate      time.Time
	CategoryName string
	CardName     string
}

// Repository defines the read-side data operations. Implementations must
// return zeroed values, never errors, for ranges with no matching rows.
type Repository interface {
	// GetSettledTotals sums settled income/expense by paid date in range.
	GetSettledTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*SettledTotals, error)

	// GetPendingTotals sums pending income/expense by due date in range.
	GetPendingTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*PendingTotals, error)

	// GetCategoryGroups aggregates settled entries by category (and kind)
	// over the paid-date range, optionally restricted to one kind.
	GetCategoryGroups(ctx context.Context, userID uuid.UUID, start, end time.Time, kind *entity.TransactionKind) ([]RawCategoryGroup, error)

	// GetPendingExpenses returns every pending expense entry for the user,
	// ordered by due date ascending.
	GetPendingExpenses(ctx context.Context, userID uuid.UUID) ([]PendingEntry, error)
}
