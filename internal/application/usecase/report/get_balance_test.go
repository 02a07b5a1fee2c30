package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

type stubReportRepo struct {
	settled        map[string]*SettledTotals // keyed by "start|end"
	pending        *PendingTotals
	groups         []RawCategoryGroup
	pendingEntries []PendingEntry
	settledErr     error

	settledCalls [][2]time.Time
}

func (s *stubReportRepo) GetSettledTotals(_ context.Context, _ uuid.UUID, start, end time.Time) (*SettledTotals, error) {
	if s.settledErr != nil {
		return nil, s.settledErr
	}
	s.settledCalls = append(s.settledCalls, [2]time.Time{start, end})
	if t, ok := s.settled[start.Format("2006-01-02")+"|"+end.Format("2006-01-02")]; ok {
		return t, nil
	}
	return &SettledTotals{Income: decimal.Zero, Expense: decimal.Zero}, nil
}

func (s *stubReportRepo) GetPendingTotals(_ context.Context, _ uuid.UUID, _, _ time.Time) (*PendingTotals, error) {
	if s.pending != nil {
		return s.pending, nil
	}
	return &PendingTotals{Income: decimal.Zero, Expense: decimal.Zero}, nil
}

func (s *stubReportRepo) GetCategoryGroups(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *entity.TransactionKind) ([]RawCategoryGroup, error) {
	return s.groups, nil
}

func (s *stubReportRepo) GetPendingExpenses(_ context.Context, _ uuid.UUID) ([]PendingEntry, error) {
	return s.pendingEntries, nil
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	}
}

func TestGetBalanceUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should net settled totals and report pending separately", func(t *testing.T) {
		repo := &stubReportRepo{
			settled: map[string]*SettledTotals{
				"2025-08-01|2025-08-20": {
					Income:       decimal.NewFromInt(3000),
					Expense:      decimal.NewFromFloat(1250.50),
					IncomeCount:  2,
					ExpenseCount: 7,
				},
			},
			pending: &PendingTotals{
				Income:  decimal.NewFromInt(500),
				Expense: decimal.NewFromInt(800),
			},
		}
		uc := NewGetBalanceUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetBalanceInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Balance.Equal(decimal.NewFromFloat(1749.50)) {
			t.Errorf("expected balance 1749.50, got %s", output.Balance)
		}
		if output.IncomeCount != 2 || output.ExpenseCount != 7 {
			t.Errorf("unexpected counts: %d income, %d expense", output.IncomeCount, output.ExpenseCount)
		}
		if !output.PendingExpense.Equal(decimal.NewFromInt(800)) {
			t.Errorf("expected pending expense 800, got %s", output.PendingExpense)
		}
		if output.Balance.Equal(output.TotalIncome.Sub(output.TotalExpense).Sub(output.PendingExpense)) {
			t.Error("pending amounts must not be netted into the balance")
		}
	})

	t.Run("should default range to first of month through today", func(t *testing.T) {
		repo := &stubReportRepo{}
		uc := NewGetBalanceUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetBalanceInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		wantStart := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)
		if !output.StartDate.Equal(wantStart) || !output.EndDate.Equal(wantEnd) {
			t.Errorf("expected range %s..%s, got %s..%s", wantStart, wantEnd, output.StartDate, output.EndDate)
		}
	})

	t.Run("should return zeroed totals for empty range", func(t *testing.T) {
		repo := &stubReportRepo{}
		uc := NewGetBalanceUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetBalanceInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Balance.IsZero() || !output.TotalIncome.IsZero() || !output.TotalExpense.IsZero() {
			t.Errorf("expected zeroed totals, got %+v", output)
		}
	})

	t.Run("should reject start date after end date", func(t *testing.T) {
		uc := NewGetBalanceUseCase(&stubReportRepo{})
		uc.now = fixedNow(2025, time.August, 20)

		start := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), GetBalanceInput{
			UserID:    userID,
			StartDate: &start,
			EndDate:   &end,
		})
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}
