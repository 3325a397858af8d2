package ports

import (
	"context"

	"github.com/taskforge/taskforge/internal/core/domain"
)

// WorkspaceRepository defines workspace and membership persistence.
type WorkspaceRepository interface {
	CreateWorkspace(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
	CreateMember(ctx context.Context, member *domain.WorkspaceMember) (*domain.WorkspaceMember, error)
	// LinkMember appends the membership id to the workspace's member list.
	LinkMember(ctx context.Context, workspaceID, memberID string) error
	// FindByMember returns every workspace the user has a membership in.
	FindByMember(ctx context.Context, userID string) ([]domain.Workspace, error)
}
