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

// GetStatementsInput represents the input for the statement lookup. A zero
// month/year selects the current calendar month. When CreditCardID is set
// only that card's statement is returned.
type GetStatementsInput struct {
	UserID       uuid.UUID
	CreditCardID *uuid.UUID
	Month        int
	Year         int
}

// StatementOutput is one statement in a lookup result.
type StatementOutput struct {
	ID           uuid.UUID
	CreditCardID uuid.UUID
	CardName     string
	Month        int
	Year         int
	TotalAmount  decimal.Decimal
	DueDate      time.Time
	IsPaid       bool
	PaidDate     *time.Time
}

// GetStatementsOutput represents the statement lookup result.
type GetStatementsOutput struct {
	Month      int
	Year       int
	Statements []StatementOutput
	Total      decimal.Decimal
}

// GetStatementsUseCase handles statement lookups per cycle.
type GetStatementsUseCase struct {
	statementRepo adapter.StatementRepository
	cardRepo      adapter.CreditCardRepository
	now           func() time.Time
}

// NewGetStatementsUseCase creates a new GetStatementsUseCase instance.
func NewGetStatementsUseCase(statementRepo adapter.StatementRepository, cardRepo adapter.CreditCardRepository) *GetStatementsUseCase {
	return &GetStatementsUseCase{
		statementRepo: statementRepo,
		cardRepo:      cardRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute retrieves the statements of a month. A card with no statement row
// for the cycle simply has nothing to pay; for a single-card lookup that is
// reported as not found.
func (uc *GetStatementsUseCase) Execute(ctx context.Context, input GetStatementsInput) (*GetStatementsOutput, error) {
	month, year, err := resolveCycle(input.Month, input.Year, uc.now())
	if err != nil {
		return nil, err
	}

	output := &GetStatementsOutput{Month: month, Year: year, Total: decimal.Zero}

	if input.CreditCardID != nil {
		card, err := uc.cardRepo.FindByID(ctx, *input.CreditCardID, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCreditCardNotFound) {
				return nil, domainerror.NewCreditCardError(
					domainerror.ErrCodeCreditCardNotFound,
					"credit card not found",
					err,
				)
			}
			return nil, fmt.Errorf("failed to get credit card: %w", err)
		}

		statement, err := uc.statementRepo.FindByCycle(ctx, input.UserID, card.ID, month, year)
		if err != nil {
			if errors.Is(err, domainerror.ErrStatementNotFound) {
				return nil, domainerror.NewStatementError(
					domainerror.ErrCodeStatementNotFound,
					fmt.Sprintf("no statement for %s in %02d/%d", card.Name, month, year),
					err,
				)
			}
			return nil, fmt.Errorf("failed to get statement: %w", err)
		}

		output.Statements = []StatementOutput{{
			ID:           statement.ID,
			CreditCardID: statement.CreditCardID,
			CardName:     card.Name,
			Month:        statement.Month,
			Year:         statement.Year,
			TotalAmount:  statement.TotalAmount,
			DueDate:      statement.DueDate,
			IsPaid:       statement.IsPaid,
			PaidDate:     statement.PaidDate,
		}}
		output.Total = statement.TotalAmount
		return output, nil
	}

	statements, err := uc.statementRepo.FindByMonth(ctx, input.UserID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}

	output.Statements = make([]StatementOutput, 0, len(statements))
	for _, s := range statements {
		output.Statements = append(output.Statements, StatementOutput{
			ID:           s.Statement.ID,
			CreditCardID: s.Statement.CreditCardID,
			CardName:     s.CreditCard.Name,
			Month:        s.Statement.Month,
			Year:         s.Statement.Year,
			TotalAmount:  s.Statement.TotalAmount,
			DueDate:      s.Statement.DueDate,
			IsPaid:       s.Statement.IsPaid,
			PaidDate:     s.Statement.PaidDate,
		})
		output.Total = output.Total.Add(s.Statement.TotalAmount)
	}
	return output, nil
}

// resolveCycle defaults a zero month/year to the current calendar month and
// validates an explicit one.
func resolveCycle(month, year int, now time.Time) (int, int, error) {
	if month == 0 && year == 0 {
		return int(now.Month()), now.Year(), nil
	}
	if month < 1 || month > 12 || year < 1 {
		return 0, 0, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidStatementCycle,
			fmt.Sprintf("invalid statement cycle %d/%d", month, year),
			domainerror.ErrInvalidStatementCycle,
		)
	}
	return month, year, nil
}
