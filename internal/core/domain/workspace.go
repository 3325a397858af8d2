package domain

import (
	"errors"
	"time"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

// Workspace groups users via membership rows. Members holds the ids of the
// WorkspaceMember documents linked to this workspace.
type Workspace struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Members   []string  `json:"members" bson:"members"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// WorkspaceMember links a user to a workspace with a role.
// Creating a workspace always creates one admin membership for the creator.
type WorkspaceMember struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	WorkspaceID string    `json:"workspace_id" bson:"workspace_id"`
	Role        string    `json:"role" bson:"role"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
