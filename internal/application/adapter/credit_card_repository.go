// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// CreditCardRepository defines the interface for credit card persistence.
type CreditCardRepository interface {
	// Create creates a new credit card.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a card by id, scoped to the user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.CreditCard, error)

	// FindByUser retrieves all cards for a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CreditCard, error)
}
