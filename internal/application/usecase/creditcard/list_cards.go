package creditcard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
)

// ListCardsInput represents the input for listing a user's credit cards.
type ListCardsInput struct {
	UserID uuid.UUID
}

// CardOutput is one credit card in a listing.
type CardOutput struct {
	ID          uuid.UUID
	Name        string
	ClosingDay  int
	DueDay      int
	CreditLimit decimal.Decimal
}

// ListCardsOutput represents the listing result.
type ListCardsOutput struct {
	Cards []CardOutput
}

// ListCardsUseCase handles credit card listing.
type ListCardsUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CreditCardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{cardRepo: cardRepo}
}

// Execute returns all the user's cards ordered by name.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}

	output := &ListCardsOutput{Cards: make([]CardOutput, 0, len(cards))}
	for _, card := range cards {
		output.Cards = append(output.Cards, CardOutput{
			ID:          card.ID,
			Name:        card.Name,
			ClosingDay:  card.ClosingDay,
			DueDay:      card.DueDay,
			CreditLimit: card.CreditLimit,
		})
	}
	return output, nil
}
