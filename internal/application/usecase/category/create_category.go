// Package category contains the category management use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for creating a category.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Kind   string
}

// CreateCategoryOutput represents the created category.
type CreateCategoryOutput struct {
	ID   uuid.UUID
	Name string
	Kind entity.CategoryKind
}

// CreateCategoryUseCase handles category creation.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute validates and persists the category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}

	kind := entity.CategoryKind(input.Kind)
	if kind != entity.CategoryKindExpense && kind != entity.CategoryKindIncome {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			fmt.Sprintf("invalid category kind %q", input.Kind),
			domainerror.ErrInvalidCategoryKind,
		)
	}

	category := entity.NewCategory(input.UserID, name, kind)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{ID: category.ID, Name: category.Name, Kind: category.Kind}, nil
}
