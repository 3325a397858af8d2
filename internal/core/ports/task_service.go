package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. OwnerID always
// comes from the verified token, never from the request body.
type CreateTaskInput struct {
	Title       string
	Description string
	OwnerID     string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id, ownerID string, update TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, ownerID string) error
}
