package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
// Create must surface domain.ErrUserExists on a duplicate email; the unique
// index is the final arbiter for concurrent registrations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
