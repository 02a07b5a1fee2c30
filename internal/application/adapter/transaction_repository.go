// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// EntryFilter defines the typed filter criteria for listing ledger entries.
// It is validated once at the boundary and translated to SQL by the
// persistence layer; there is no ad hoc filter construction anywhere else.
type EntryFilter struct {
	UserID        uuid.UUID
	StartDate     *time.Time // inclusive, on due date
	EndDate       *time.Time // inclusive, on due date
	Kind          *entity.TransactionKind
	CategoryID    *uuid.UUID
	PaymentMethod *entity.PaymentMethod
	CreditCardID  *uuid.UUID
	Status        *entity.SettlementStatus
	Search        string // case-insensitive description match
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
}

// EntryPagination defines pagination options for entry listings.
type EntryPagination struct {
	Page  int
	Limit int
}

// EntryListResult represents the result of listing ledger entries.
type EntryListResult struct {
	Entries    []*entity.TransactionWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// StatementPosting carries an increment to apply to a statement cycle
// together with the candidate row used when the cycle does not exist yet.
// Amount is signed: deletions and downward edits post negative deltas.
type StatementPosting struct {
	Statement *entity.Statement
	Amount    decimal.Decimal
}

// TransactionRepository defines the interface for ledger entry persistence.
// Methods that accept statement postings apply them in the same database
// transaction as the row change, as a single atomic add on the statement
// total, so a reader never observes an entry without its statement effect.
type TransactionRepository interface {
	// Create inserts a single entry. A non-nil posting accumulates the
	// amount onto the entry's statement cycle atomically with the insert.
	Create(ctx context.Context, transaction *entity.Transaction, posting *StatementPosting) error

	// CreateBatch inserts an expanded recurring series as one all-or-nothing
	// batch together with every statement posting it triggers.
	CreateBatch(ctx context.Context, transactions []*entity.Transaction, postings []StatementPosting) error

	// FindByID retrieves an entry by id, scoped to the user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves entries matching the filter with pagination,
	// ordered by due date descending then creation time descending.
	FindByFilter(ctx context.Context, filter EntryFilter, pagination EntryPagination) (*EntryListResult, error)

	// Update persists field edits. Postings compensate affected statement
	// cycles (remove from the old cycle, add to the new) atomically.
	Update(ctx context.Context, transaction *entity.Transaction, postings []StatementPosting) error

	// Delete removes an entry. A non-nil posting decrements the entry's
	// statement cycle in the same transaction.
	Delete(ctx context.Context, id, userID uuid.UUID, posting *StatementPosting) error

	// ExistsByCategory reports whether any entry references the category.
	ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
