package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func pendingEntry(amount float64, due time.Time) PendingEntry {
	return PendingEntry{
		ID:          uuid.New(),
		Amount:      decimal.NewFromFloat(amount),
		Description: "pending",
		DueDate:     due,
	}
}

func TestGetPendingCommitmentsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should partition entries into exclusive exhaustive buckets", func(t *testing.T) {
		repo := &stubReportRepo{
			pendingEntries: []PendingEntry{
				pendingEntry(100, time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)),    // overdue
				pendingEntry(50, time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC)),  // this month
				pendingEntry(80, time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)),  // this month
				pendingEntry(200, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)), // next month
				pendingEntry(70, time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)), // future
			},
		}
		uc := NewGetPendingCommitmentsUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetPendingCommitmentsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.ThisMonth.Count != 2 || !output.ThisMonth.Total.Equal(decimal.NewFromInt(130)) {
			t.Errorf("this month: expected 2 entries totaling 130, got %d totaling %s", output.ThisMonth.Count, output.ThisMonth.Total)
		}
		if output.NextMonth.Count != 1 || !output.NextMonth.Total.Equal(decimal.NewFromInt(200)) {
			t.Errorf("next month: expected 1 entry totaling 200, got %d totaling %s", output.NextMonth.Count, output.NextMonth.Total)
		}
		if output.Future.Count != 2 || !output.Future.Total.Equal(decimal.NewFromInt(170)) {
			t.Errorf("future: expected 2 entries totaling 170, got %d totaling %s", output.Future.Count, output.Future.Total)
		}
		total := output.ThisMonth.Count + output.NextMonth.Count + output.Future.Count
		if total != len(repo.pendingEntries) {
			t.Errorf("buckets must cover every entry exactly once, covered %d of %d", total, len(repo.pendingEntries))
		}
	})

	t.Run("should place overdue entries in the future bucket", func(t *testing.T) {
		repo := &stubReportRepo{
			pendingEntries: []PendingEntry{
				pendingEntry(40, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)),
			},
		}
		uc := NewGetPendingCommitmentsUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetPendingCommitmentsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Future.Count != 1 || output.ThisMonth.Count != 0 {
			t.Errorf("expected overdue entry in future bucket, got %+v", output)
		}
	})

	t.Run("should handle the year boundary for next month", func(t *testing.T) {
		repo := &stubReportRepo{
			pendingEntries: []PendingEntry{
				pendingEntry(90, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
			},
		}
		uc := NewGetPendingCommitmentsUseCase(repo)
		uc.now = fixedNow(2025, time.December, 20)

		output, err := uc.Execute(context.Background(), GetPendingCommitmentsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.NextMonth.Count != 1 {
			t.Errorf("expected January entry in next month bucket, got %+v", output)
		}
	})

	t.Run("should cap listed items but count and total the whole bucket", func(t *testing.T) {
		entries := make([]PendingEntry, 0, 15)
		for day := 1; day <= 15; day++ {
			entries = append(entries, pendingEntry(10, time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC)))
		}
		repo := &stubReportRepo{pendingEntries: entries}
		uc := NewGetPendingCommitmentsUseCase(repo)
		uc.now = fixedNow(2025, time.August, 20)

		output, err := uc.Execute(context.Background(), GetPendingCommitmentsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.ThisMonth.Items) != CommitmentItemCap {
			t.Errorf("expected %d listed items, got %d", CommitmentItemCap, len(output.ThisMonth.Items))
		}
		if output.ThisMonth.Count != 15 || !output.ThisMonth.Total.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected count 15 totaling 150, got %d totaling %s", output.ThisMonth.Count, output.ThisMonth.Total)
		}
		for i := 1; i < len(output.ThisMonth.Items); i++ {
			if output.ThisMonth.Items[i].DueDate.Before(output.ThisMonth.Items[i-1].DueDate) {
				t.Error("listed items must be ordered by due date ascending")
			}
		}
	})
}
