package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
	Kind   *entity.CategoryKind // nil lists both kinds
}

// CategoryItem is one category in a listing.
type CategoryItem struct {
	ID   uuid.UUID
	Name string
	Kind entity.CategoryKind
}

// ListCategoriesOutput represents the listing result.
type ListCategoriesOutput struct {
	Categories []CategoryItem
}

// ListCategoriesUseCase handles category listing.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute returns the user's categories ordered by name, optionally
// restricted to one kind.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	output := &ListCategoriesOutput{Categories: make([]CategoryItem, 0, len(categories))}
	for _, c := range categories {
		if input.Kind != nil && c.Kind != *input.Kind {
			continue
		}
		output.Categories = append(output.Categories, CategoryItem{ID: c.ID, Name: c.Name, Kind: c.Kind})
	}
	return output, nil
}
