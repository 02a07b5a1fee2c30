package creditcard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// RecomputeStatementInput represents the input for a statement rebuild.
type RecomputeStatementInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
	Month        int
	Year         int
}

// RecomputeStatementOutput represents the rebuilt statement.
type RecomputeStatementOutput struct {
	ID           uuid.UUID
	CreditCardID uuid.UUID
	Month        int
	Year         int
	TotalAmount  decimal.Decimal
	DueDate      time.Time
}

// RecomputeStatementUseCase rebuilds a statement total from the ledger. The
// running total is maintained incrementally; this is the repair path when
// the two ever disagree.
type RecomputeStatementUseCase struct {
	statementRepo adapter.StatementRepository
	cardRepo      adapter.CreditCardRepository
	now           func() time.Time
}

// NewRecomputeStatementUseCase creates a new RecomputeStatementUseCase instance.
func NewRecomputeStatementUseCase(statementRepo adapter.StatementRepository, cardRepo adapter.CreditCardRepository) *RecomputeStatementUseCase {
	return &RecomputeStatementUseCase{
		statementRepo: statementRepo,
		cardRepo:      cardRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute recomputes the cycle total from the card's transactions.
func (uc *RecomputeStatementUseCase) Execute(ctx context.Context, input RecomputeStatementInput) (*RecomputeStatementOutput, error) {
	month, year, err := resolveCycle(input.Month, input.Year, uc.now())
	if err != nil {
		return nil, err
	}

	if _, err := uc.cardRepo.FindByID(ctx, input.CreditCardID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrCreditCardNotFound) {
			return nil, domainerror.NewCreditCardError(
				domainerror.ErrCodeCreditCardNotFound,
				"credit card not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}

	statement, err := uc.statementRepo.RecomputeTotal(ctx, input.UserID, input.CreditCardID, month, year)
	if err != nil {
		if errors.Is(err, domainerror.ErrStatementNotFound) {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementNotFound,
				fmt.Sprintf("no statement for cycle %02d/%d", month, year),
				err,
			)
		}
		return nil, fmt.Errorf("failed to recompute statement: %w", err)
	}

	return &RecomputeStatementOutput{
		ID:           statement.ID,
		CreditCardID: statement.CreditCardID,
		Month:        statement.Month,
		Year:         statement.Year,
		TotalAmount:  statement.TotalAmount,
		DueDate:      statement.DueDate,
	}, nil
}
