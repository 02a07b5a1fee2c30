package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestGetMonthlyTrendUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should return months oldest first ending at current month", func(t *testing.T) {
		repo := &stubReportRepo{}
		uc := NewGetMonthlyTrendUseCase(repo)
		uc.now = fixedNow(2025, time.February, 10)

		output, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID, Months: 4})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
		if len(output.Months) != len(want) {
			t.Fatalf("expected %d months, got %d", len(want), len(output.Months))
		}
		for i, label := range want {
			if output.Months[i].Label != label {
				t.Errorf("month %d: expected %s, got %s", i, label, output.Months[i].Label)
			}
		}
	})

	t.Run("should query whole calendar months", func(t *testing.T) {
		repo := &stubReportRepo{}
		uc := NewGetMonthlyTrendUseCase(repo)
		uc.now = fixedNow(2025, time.March, 10)

		_, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID, Months: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		first := repo.settledCalls[0]
		if first[0] != time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("expected range to start 2025-02-01, got %s", first[0])
		}
		if first[1] != time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC) {
			t.Errorf("expected range to end 2025-02-28, got %s", first[1])
		}
	})

	t.Run("should default and clamp the window size", func(t *testing.T) {
		tests := []struct {
			name   string
			months int
			want   int
		}{
			{name: "zero selects default", months: 0, want: DefaultTrendMonths},
			{name: "negative clamps to one", months: -3, want: 1},
			{name: "oversized clamps to max", months: 50, want: MaxTrendMonths},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewGetMonthlyTrendUseCase(&stubReportRepo{})
				uc.now = fixedNow(2025, time.August, 20)

				output, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID, Months: tt.months})
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if len(output.Months) != tt.want {
					t.Errorf("expected %d months, got %d", tt.want, len(output.Months))
				}
			})
		}
	})

	t.Run("should average totals across the window", func(t *testing.T) {
		repo := &stubReportRepo{
			settled: map[string]*SettledTotals{
				"2025-07-01|2025-07-31": {Income: decimal.NewFromInt(1000), Expense: decimal.NewFromInt(400)},
				"2025-08-01|2025-08-31": {Income: decimal.NewFromInt(2000), Expense: decimal.NewFromInt(600)},
			},
		}
		uc := NewGetMonthlyTrendUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetMonthlyTrendInput{UserID: userID, Months: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.AverageIncome.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected average income 1500, got %s", output.AverageIncome)
		}
		if !output.AverageExpense.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected average expense 500, got %s", output.AverageExpense)
		}
		if !output.AverageBalance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected average balance 1000, got %s", output.AverageBalance)
		}
	})
}
