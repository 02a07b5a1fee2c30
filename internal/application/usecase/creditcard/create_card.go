// Package creditcard contains the credit card and statement use cases.
package creditcard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// CreateCardInput represents the input for creating a credit card.
type CreateCardInput struct {
	UserID      uuid.UUID
	Name        string
	ClosingDay  int
	DueDay      int
	CreditLimit decimal.Decimal
}

// CreateCardOutput represents the created credit card.
type CreateCardOutput struct {
	ID          uuid.UUID
	Name        string
	ClosingDay  int
	DueDay      int
	CreditLimit decimal.Decimal
}

// CreateCardUseCase handles credit card creation.
type CreateCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CreditCardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{cardRepo: cardRepo}
}

// Execute validates the card parameters and persists the card. Closing and
// due days must both fall in 1-31; clamping to short months happens when
// concrete statement dates are computed, not here.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeCreditCardNameRequired,
			"credit card name is required",
			domainerror.ErrCreditCardNameRequired,
		)
	}
	if input.ClosingDay < 1 || input.ClosingDay > 31 {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidClosingDay,
			fmt.Sprintf("closing day %d is outside 1-31", input.ClosingDay),
			domainerror.ErrInvalidClosingDay,
		)
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidDueDay,
			fmt.Sprintf("due day %d is outside 1-31", input.DueDay),
			domainerror.ErrInvalidDueDay,
		)
	}
	if input.CreditLimit.IsNegative() {
		return nil, domainerror.NewCreditCardError(
			domainerror.ErrCodeInvalidCreditLimit,
			"credit limit must not be negative",
			domainerror.ErrInvalidCreditLimit,
		)
	}

	card := entity.NewCreditCard(input.UserID, name, input.ClosingDay, input.DueDay, input.CreditLimit)
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	return &CreateCardOutput{
		ID:          card.ID,
		Name:        card.Name,
		ClosingDay:  card.ClosingDay,
		DueDay:      card.DueDay,
		CreditLimit: card.CreditLimit,
	}, nil
}
