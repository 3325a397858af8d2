package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// TaskRepository defines ownership-scoped task persistence. Update and
// Delete filter by both task id and owner id in a single predicate, so a
// task owned by someone else is indistinguishable from a missing one
// (domain.ErrTaskNotFound either way).
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// TaskUpdate carries the mutable task fields. Nil means "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Description *string
	IsCompleted *bool
}
