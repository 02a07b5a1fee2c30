// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindWithEmailNotifications retrieves all users that opted into
	// email notifications, for the reminder worker.
	FindWithEmailNotifications(ctx context.Context) ([]*entity.User, error)

	// ExistsByEmail checks whether a user with the email already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
