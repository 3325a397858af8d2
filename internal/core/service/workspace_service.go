package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskforge/internal/api/metrics"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
)

// WorkspaceService implements workspace use cases. Workspace creation is a
// composite write: workspace document, admin membership for the creator,
// then the membership id linked into the workspace's member list.
type WorkspaceService struct {
	repo   ports.WorkspaceRepository
	logger zerolog.Logger
}

func NewWorkspaceService(repo ports.WorkspaceRepository, logger zerolog.Logger) *WorkspaceService {
	return &WorkspaceService{repo: repo, logger: logger}
}

// CreateWorkspace runs the composite write. If the membership insert fails
// after the workspace insert succeeded, the workspace is deleted again so
// no ownerless workspace is left behind.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, name, ownerID string) (*domain.Workspace, error) {
	now := time.Now().UTC()
	ws, err := s.repo.CreateWorkspace(ctx, &domain.Workspace{
		Name:      strings.TrimSpace(name),
		OwnerID:   ownerID,
		Members:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create workspace")
		return nil, err
	}

	member, err := s.repo.CreateMember(ctx, &domain.WorkspaceMember{
		UserID:      ownerID,
		WorkspaceID: ws.ID,
		Role:        domain.RoleAdmin,
		CreatedAt:   now,
	})
	if err != nil {
		// Compensate: roll the workspace insert back rather than leave an
		// ownerless-looking document behind.
		if delErr := s.repo.DeleteWorkspace(ctx, ws.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("workspace_id", ws.ID).Msg("failed to roll back workspace after membership failure")
		}
		return nil, err
	}

	if err := s.repo.LinkMember(ctx, ws.ID, member.ID); err != nil {
		return nil, err
	}
	ws.Members = append(ws.Members, member.ID)

	metrics.WorkspacesCreatedTotal.Inc()
	s.logger.Info().Str("workspace_id", ws.ID).Str("owner_id", ownerID).Msg("workspace created")
	return ws, nil
}

func (s *WorkspaceService) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	return s.repo.FindByMember(ctx, userID)
}
