package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommitmentItemCap is the maximum number of underlying entries listed per
// bucket; totals and counts always cover the whole bucket.
const CommitmentItemCap = 10

// GetPendingCommitmentsInput represents the input for the commitments view.
type GetPendingCommitmentsInput struct {
	UserID uuid.UUID
}

// CommitmentBucket aggregates the pending expenses of one period.
type CommitmentBucket struct {
	Total decimal.Decimal
	Count int
	Items []PendingEntry // ordered by due date ascending, capped
}

// GetPendingCommitmentsOutput partitions all pending expenses into three
// mutually exclusive, exhaustive buckets relative to today.
type GetPendingCommitmentsOutput struct {
	ThisMonth CommitmentBucket
	NextMonth CommitmentBucket
	Future    CommitmentBucket
}

// GetPendingCommitmentsUseCase buckets unsettled expenses by due date.
type GetPendingCommitmentsUseCase struct {
	reportRepo Repository
	now        func() time.Time
}

// NewGetPendingCommitmentsUseCase creates a new GetPendingCommitmentsUseCase instance.
func NewGetPendingCommitmentsUseCase(reportRepo Repository) *GetPendingCommitmentsUseCase {
	return &GetPendingCommitmentsUseCase{
		reportRepo: reportRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Execute builds the three buckets. Pending expenses due in the current
// calendar month land in ThisMonth, the following month in NextMonth, and
// everything else (overdue from earlier months included) in Future.
func (uc *GetPendingCommitmentsUseCase) Execute(ctx context.Context, input GetPendingCommitmentsInput) (*GetPendingCommitmentsOutput, error) {
	entries, err := uc.reportRepo.GetPendingExpenses(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending expenses: %w", err)
	}

	now := uc.now()
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonthStart := thisMonthStart.AddDate(0, 1, 0)
	afterNextStart := thisMonthStart.AddDate(0, 2, 0)

	output := &GetPendingCommitmentsOutput{
		ThisMonth: emptyBucket(),
		NextMonth: emptyBucket(),
		Future:    emptyBucket(),
	}

	for _, entry := range entries {
		bucket := &output.Future
		switch {
		case !entry.DueDate.Before(thisMonthStart) && entry.DueDate.Before(nextMonthStart):
			bucket = &output.ThisMonth
		case !entry.DueDate.Before(nextMonthStart) && entry.DueDate.Before(afterNextStart):
			bucket = &output.NextMonth
		}
		bucket.Total = bucket.Total.Add(entry.Amount)
		bucket.Count++
		if len(bucket.Items) < CommitmentItemCap {
			bucket.Items = append(bucket.Items, entry)
		}
	}

	return output, nil
}

func emptyBucket() CommitmentBucket {
	return CommitmentBucket{Total: decimal.Zero, Items: []PendingEntry{}}
}
