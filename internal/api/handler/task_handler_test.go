package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error)
	listFn   func(ctx context.Context, ownerID string) ([]domain.Task, error)
	updateFn func(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (*domain.Task, error)
	deleteFn func(ctx context.Context, id, ownerID string) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, input)
}

func (s *stubTaskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id, ownerID string, update ports.TaskUpdate) (*domain.Task, error) {
	return s.updateFn(ctx, id, ownerID, update)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id, ownerID string) error {
	return s.deleteFn(ctx, id, ownerID)
}

func TestTaskHandler_Create_OwnerFromToken(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(_ context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
			if input.OwnerID != "user-1" {
				t.Fatalf("expected owner from context, got %q", input.OwnerID)
			}
			return &domain.Task{ID: "task-1", Title: input.Title, OwnerID: input.OwnerID}, nil
		},
	}
	h := NewTaskHandler(stub)

	// owner_id in the body must be ignored; identity comes from the token.
	c, rec := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"buy milk","owner_id":"someone-else"}`)
	c.Set("user_id", "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(context.Context, ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/tasks", `{"description":"no title"}`)
	c.Set("user_id", "user-1")
	if code := httpErrorCode(t, h.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", code)
	}
}

func TestTaskHandler_List(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(_ context.Context, ownerID string) ([]domain.Task, error) {
			if ownerID != "user-1" {
				t.Fatalf("expected owner user-1, got %q", ownerID)
			}
			return []domain.Task{{ID: "task-1", Title: "mine", OwnerID: ownerID}}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/tasks", "")
	c.Set("user_id", "user-1")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["tasks"]) != 1 || resp["tasks"][0].Title != "mine" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Update_PartialFields(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(_ context.Context, id, ownerID string, update ports.TaskUpdate) (*domain.Task, error) {
			if id != "task-1" || ownerID != "user-1" {
				t.Fatalf("unexpected scope: %s %s", id, ownerID)
			}
			if update.Title != nil || update.Description != nil {
				t.Fatalf("expected untouched fields to stay nil")
			}
			if update.IsCompleted == nil || !*update.IsCompleted {
				t.Fatalf("expected is_completed=true")
			}
			return &domain.Task{ID: id, OwnerID: ownerID, IsCompleted: true}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/tasks/task-1", `{"is_completed":true}`)
	c.SetParamNames("id")
	c.SetParamValues("task-1")
	c.Set("user_id", "user-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_NotFoundPropagates(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(context.Context, string, string, ports.TaskUpdate) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/task-9", `{"is_completed":true}`)
	c.SetParamNames("id")
	c.SetParamValues("task-9")
	c.Set("user_id", "user-1")
	if err := h.Update(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound to propagate, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(_ context.Context, id, ownerID string) error {
			if id != "task-1" || ownerID != "user-1" {
				t.Fatalf("unexpected scope: %s %s", id, ownerID)
			}
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/tasks/task-1", "")
	c.SetParamNames("id")
	c.SetParamValues("task-1")
	c.Set("user_id", "user-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
