package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finledger/backend/internal/domain/error"
)

// GetBalanceInput represents the input for the balance view. A nil range
// defaults to the current calendar month up to today.
type GetBalanceInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetBalanceOutput represents the balance view: settled sums netted into a
// balance, plus pending sums reported separately and never netted in.
type GetBalanceOutput struct {
	StartDate      time.Time
	EndDate        time.Time
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	Balance        decimal.Decimal
	IncomeCount    int
	ExpenseCount   int
	PendingIncome  decimal.Decimal
	PendingExpense decimal.Decimal
}

// GetBalanceUseCase computes settled income minus settled expense in range.
type GetBalanceUseCase struct {
	reportRepo Repository
	now        func() time.Time
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(reportRepo Repository) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		reportRepo: reportRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the balance view. An empty range is a normal outcome
// and yields zeroed totals.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, input GetBalanceInput) (*GetBalanceOutput, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, uc.now())
	if err != nil {
		return nil, err
	}

	settled, err := uc.reportRepo.GetSettledTotals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get settled totals: %w", err)
	}
	pending, err := uc.reportRepo.GetPendingTotals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending totals: %w", err)
	}

	return &GetBalanceOutput{
		StartDate:      start,
		EndDate:        end,
		TotalIncome:    settled.Income,
		TotalExpense:   settled.Expense,
		Balance:        settled.Income.Sub(settled.Expense),
		IncomeCount:    settled.IncomeCount,
		ExpenseCount:   settled.ExpenseCount,
		PendingIncome:  pending.Income,
		PendingExpense: pending.Expense,
	}, nil
}

// resolveRange applies the default range (first of the current month up to
// today) and validates an explicit one. Both bounds are inclusive dates.
func resolveRange(startDate, endDate *time.Time, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today
	if startDate != nil {
		start = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	if endDate != nil {
		end = time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return start, end, nil
}
