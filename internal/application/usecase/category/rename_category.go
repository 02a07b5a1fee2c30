package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// RenameCategoryInput represents the input for renaming a category.
type RenameCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

// RenameCategoryOutput represents the renamed category.
type RenameCategoryOutput struct {
	ID   uuid.UUID
	Name string
	Kind entity.CategoryKind
}

// RenameCategoryUseCase handles category renames. The kind is fixed after
// creation; only the name can change.
type RenameCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewRenameCategoryUseCase creates a new RenameCategoryUseCase instance.
func NewRenameCategoryUseCase(categoryRepo adapter.CategoryRepository) *RenameCategoryUseCase {
	return &RenameCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute renames the category.
func (uc *RenameCategoryUseCase) Execute(ctx context.Context, input RenameCategoryInput) (*RenameCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = name
	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	return &RenameCategoryOutput{ID: category.ID, Name: category.Name, Kind: category.Kind}, nil
}
