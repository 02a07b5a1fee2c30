package creditcard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// SettleStatementInput represents the input for paying a statement.
type SettleStatementInput struct {
	UserID      uuid.UUID
	StatementID uuid.UUID
	PaidDate    *time.Time // nil settles on today
}

// SettleStatementOutput represents the settled statement.
type SettleStatementOutput struct {
	ID       uuid.UUID
	IsPaid   bool
	PaidDate time.Time
}

// SettleStatementUseCase marks a statement as paid.
type SettleStatementUseCase struct {
	statementRepo adapter.StatementRepository
	now           func() time.Time
}

// NewSettleStatementUseCase creates a new SettleStatementUseCase instance.
func NewSettleStatementUseCase(statementRepo adapter.StatementRepository) *SettleStatementUseCase {
	return &SettleStatementUseCase{
		statementRepo: statementRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute settles the statement. Paying an already paid statement is a
// conflict, not a no-op: the original paid date must not silently move.
func (uc *SettleStatementUseCase) Execute(ctx context.Context, input SettleStatementInput) (*SettleStatementOutput, error) {
	paidDate := uc.now()
	if input.PaidDate != nil {
		paidDate = *input.PaidDate
	}
	paidDate = time.Date(paidDate.Year(), paidDate.Month(), paidDate.Day(), 0, 0, 0, 0, time.UTC)

	statement, err := uc.statementRepo.MarkPaid(ctx, input.StatementID, input.UserID, paidDate)
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrStatementNotFound):
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementNotFound,
				"statement not found",
				err,
			)
		case errors.Is(err, domainerror.ErrStatementAlreadyPaid):
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementAlreadyPaid,
				"statement is already paid",
				err,
			)
		}
		return nil, fmt.Errorf("failed to settle statement: %w", err)
	}

	return &SettleStatementOutput{
		ID:       statement.ID,
		IsPaid:   statement.IsPaid,
		PaidDate: *statement.PaidDate,
	}, nil
}
