package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// GetCategorySummaryInput represents the input for the category summary.
type GetCategorySummaryInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Kind      *entity.TransactionKind // nil summarizes both kinds
}

// CategorySummaryRow is one category group in the summary.
type CategorySummaryRow struct {
	CategoryID   uuid.UUID
	CategoryName string
	Kind         entity.TransactionKind
	Total        decimal.Decimal
	Count        int
	Average      decimal.Decimal
	Percentage   decimal.Decimal // share of the filtered total, 0-100
}

// GetCategorySummaryOutput represents the category summary view.
type GetCategorySummaryOutput struct {
	StartDate  time.Time
	EndDate    time.Time
	Categories []CategorySummaryRow
	Total      decimal.Decimal
}

// GetCategorySummaryUseCase groups settled entries by category.
type GetCategorySummaryUseCase struct {
	reportRepo Repository
	now        func() time.Time
}

// NewGetCategorySummaryUseCase creates a new GetCategorySummaryUseCase instance.
func NewGetCategorySummaryUseCase(reportRepo Repository) *GetCategorySummaryUseCase {
	return &GetCategorySummaryUseCase{
		reportRepo: reportRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds the summary. Percentages are shares of the sum across the
// returned groups, so they add up to 100 for any non-empty result. An empty
// range returns an empty list, not an error.
func (uc *GetCategorySummaryUseCase) Execute(ctx context.Context, input GetCategorySummaryInput) (*GetCategorySummaryOutput, error) {
	start, end, err := resolveRange(input.StartDate, input.EndDate, uc.now())
	if err != nil {
		return nil, err
	}

	groups, err := uc.reportRepo.GetCategoryGroups(ctx, input.UserID, start, end, input.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get category groups: %w", err)
	}

	output := &GetCategorySummaryOutput{
		StartDate:  start,
		EndDate:    end,
		Categories: make([]CategorySummaryRow, 0, len(groups)),
		Total:      decimal.Zero,
	}
	for _, g := range groups {
		output.Total = output.Total.Add(g.Total)
	}

	hundred := decimal.NewFromInt(100)
	for _, g := range groups {
		row := CategorySummaryRow{
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			Kind:         g.Kind,
			Total:        g.Total,
			Count:        g.Count,
			Average:      decimal.Zero,
			Percentage:   decimal.Zero,
		}
		if g.Count > 0 {
			row.Average = g.Total.Div(decimal.NewFromInt(int64(g.Count))).Round(2)
		}
		if output.Total.IsPositive() {
			row.Percentage = g.Total.Mul(hundred).Div(output.Total).Round(1)
		}
		output.Categories = append(output.Categories, row)
	}

	sort.SliceStable(output.Categories, func(i, j int) bool {
		return output.Categories[i].Total.GreaterThan(output.Categories[j].Total)
	})

	return output, nil
}
