package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultTrendMonths is the trend window when the caller does not pick one.
	DefaultTrendMonths = 6
	// MaxTrendMonths caps the trend window.
	MaxTrendMonths = 12
)

// GetMonthlyTrendInput represents the input for the monthly trend view.
type GetMonthlyTrendInput struct {
	UserID uuid.UUID
	Months int // clamped to 1..MaxTrendMonths; 0 selects the default
}

// TrendMonth is one month's totals in the trend.
type TrendMonth struct {
	Month   time.Month
	Year    int
	Label   string // "YYYY-MM"
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// GetMonthlyTrendOutput represents the monthly trend view, oldest month
// first, with across-window averages.
type GetMonthlyTrendOutput struct {
	Months         []TrendMonth
	AverageIncome  decimal.Decimal
	AverageExpense decimal.Decimal
	AverageBalance decimal.Decimal
}

// GetMonthlyTrendUseCase builds per-month settled totals for a window
// ending at the current month.
type GetMonthlyTrendUseCase struct {
	reportRepo Repository
	now        func() time.Time
}

// NewGetMonthlyTrendUseCase creates a new GetMonthlyTrendUseCase instance.
func NewGetMonthlyTrendUseCase(reportRepo Repository) *GetMonthlyTrendUseCase {
	return &GetMonthlyTrendUseCase{
		reportRepo: reportRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds the trend in chronological order. Months with no entries
// appear with zeroed totals.
func (uc *GetMonthlyTrendUseCase) Execute(ctx context.Context, input GetMonthlyTrendInput) (*GetMonthlyTrendOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 {
		months = 1
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	now := uc.now()
	output := &GetMonthlyTrendOutput{
		Months:         make([]TrendMonth, 0, months),
		AverageIncome:  decimal.Zero,
		AverageExpense: decimal.Zero,
		AverageBalance: decimal.Zero,
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	// Oldest month first; time.Date normalizes negative month offsets.
	for offset := months - 1; offset >= 0; offset-- {
		first := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)

		totals, err := uc.reportRepo.GetSettledTotals(ctx, input.UserID, first, last)
		if err != nil {
			return nil, fmt.Errorf("failed to get totals for %s: %w", first.Format("2006-01"), err)
		}

		balance := totals.Income.Sub(totals.Expense)
		output.Months = append(output.Months, TrendMonth{
			Month:   first.Month(),
			Year:    first.Year(),
			Label:   first.Format("2006-01"),
			Income:  totals.Income,
			Expense: totals.Expense,
			Balance: balance,
		})
		totalIncome = totalIncome.Add(totals.Income)
		totalExpense = totalExpense.Add(totals.Expense)
	}

	window := decimal.NewFromInt(int64(months))
	output.AverageIncome = totalIncome.Div(window).Round(2)
	output.AverageExpense = totalExpense.Div(window).Round(2)
	output.AverageBalance = totalIncome.Sub(totalExpense).Div(window).Round(2)

	return output, nil
}
