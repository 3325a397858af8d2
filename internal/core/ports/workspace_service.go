package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// WorkspaceService defines use-case operations for workspaces.
type WorkspaceService interface {
	// CreateWorkspace creates the workspace plus an admin membership for the
	// creator and links that membership into the workspace's member list.
	CreateWorkspace(ctx context.Context, name, ownerID string) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
}
