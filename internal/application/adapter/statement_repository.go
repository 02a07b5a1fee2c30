// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// StatementRepository defines the interface for statement persistence.
// Accumulation itself happens through TransactionRepository postings; this
// interface covers the read side and the repair/settlement paths.
type StatementRepository interface {
	// FindByCycle retrieves the statement for a (card, month, year) cycle.
	FindByCycle(ctx context.Context, userID, creditCardID uuid.UUID, month, year int) (*entity.Statement, error)

	// FindByMonth retrieves the statements of all the user's cards for a month.
	FindByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.StatementWithCard, error)

	// RecomputeTotal rebuilds a cycle's total from the sum of the card's
	// transactions whose due date falls in the statement month, repairing
	// any drift between the running total and the ledger.
	RecomputeTotal(ctx context.Context, userID, creditCardID uuid.UUID, month, year int) (*entity.Statement, error)

	// MarkPaid settles a statement on the given date.
	MarkPaid(ctx context.Context, id, userID uuid.UUID, paidDate time.Time) (*entity.Statement, error)
}
