// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/finledger/backend/internal/application/adapter"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListEntriesInput wraps the typed filter and pagination for a listing.
type ListEntriesInput struct {
	Filter     adapter.EntryFilter
	Pagination adapter.EntryPagination
}

// ListEntriesOutput represents the output of a ledger listing.
type ListEntriesOutput struct {
	Entries    []*EntryOutput
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListEntriesUseCase retrieves ledger entries through the typed filter.
type ListEntriesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(transactionRepo adapter.TransactionRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{transactionRepo: transactionRepo}
}

// Execute performs the listing.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	filter := input.Filter
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}

	pagination := input.Pagination
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = defaultPageLimit
	}
	if pagination.Limit > maxPageLimit {
		pagination.Limit = maxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListEntriesOutput{
		Entries:    make([]*EntryOutput, 0, len(result.Entries)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for _, item := range result.Entries {
		out := entryOutputFrom(item.Transaction)
		if item.Category != nil {
			out.Category = &CategoryOutput{
				ID:   item.Category.ID,
				Name: item.Category.Name,
				Kind: item.Category.Kind,
			}
		}
		output.Entries = append(output.Entries, out)
	}
	return output, nil
}
