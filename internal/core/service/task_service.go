package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/api/metrics"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// TaskService implements ownership-scoped task use cases. Every read,
// update and delete is filtered by the caller's id at the repository, so a
// foreign task and a missing task are the same ErrTaskNotFound.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		IsCompleted: false,
		OwnerID:     input.OwnerID,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().Str("task_id", created.ID).Str("owner_id", created.OwnerID).Msg("task created")
	return created, nil
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *TaskService) UpdateTask(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (*domain.Task, error) {
	return s.repo.Update(ctx, id, ownerID, update)
}

func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Str("owner_id", ownerID).Msg("task deleted")
	return nil
}
