package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/taskforge/internal/core/domain"
)

const (
	workspacesCollection       = "workspaces"
	workspaceMembersCollection = "workspace_members"
)

type WorkspaceRepository struct {
	workspaces *mongo.Collection
	members    *mongo.Collection
}

func NewWorkspaceRepository(db *mongo.Database) *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces: db.Collection(workspacesCollection),
		members:    db.Collection(workspaceMembersCollection),
	}
}

type mongoWorkspace struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	OwnerID   string             `bson:"owner_id"`
	Members   []string           `bson:"members"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type mongoWorkspaceMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	WorkspaceID string             `bson:"workspace_id"`
	Role        string             `bson:"role"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *WorkspaceRepository) CreateWorkspace(ctx context.Context, ws *domain.Workspace) (*domain.Workspace, error) {
	doc := mongoWorkspace{
		Name:      ws.Name,
		OwnerID:   ws.OwnerID,
		Members:   ws.Members,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
	if doc.Members == nil {
		doc.Members = []string{}
	}

	res, err := r.workspaces.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}

	created := *ws
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// DeleteWorkspace removes a workspace document. Used to compensate a failed
// composite create; deleting a missing workspace is not an error.
func (r *WorkspaceRepository) DeleteWorkspace(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrWorkspaceNotFound
	}
	if _, err := r.workspaces.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) CreateMember(ctx context.Context, member *domain.WorkspaceMember) (*domain.WorkspaceMember, error) {
	doc := mongoWorkspaceMember{
		UserID:      member.UserID,
		WorkspaceID: member.WorkspaceID,
		Role:        member.Role,
		CreatedAt:   member.CreatedAt,
	}

	res, err := r.members.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert workspace member: %w", err)
	}

	created := *member
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// LinkMember pushes the membership id onto the workspace's member list.
func (r *WorkspaceRepository) LinkMember(ctx context.Context, workspaceID, memberID string) error {
	oid, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return domain.ErrWorkspaceNotFound
	}

	res, err := r.workspaces.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"members": memberID}},
	)
	if err != nil {
		return fmt.Errorf("link workspace member: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

// FindByMember resolves the user's memberships, then loads the referenced
// workspaces. A user with no memberships gets an empty list.
func (r *WorkspaceRepository) FindByMember(ctx context.Context, userID string) ([]domain.Workspace, error) {
	cursor, err := r.members.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []primitive.ObjectID{}
	for cursor.Next(ctx) {
		var mm mongoWorkspaceMember
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode membership: %w", err)
		}
		oid, err := primitive.ObjectIDFromHex(mm.WorkspaceID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Workspace{}, nil
	}

	wsCursor, err := r.workspaces.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find workspaces: %w", err)
	}
	defer wsCursor.Close(ctx)

	workspaces := []domain.Workspace{}
	for wsCursor.Next(ctx) {
		var mw mongoWorkspace
		if err := wsCursor.Decode(&mw); err != nil {
			return nil, fmt.Errorf("decode workspace: %w", err)
		}
		workspaces = append(workspaces, domain.Workspace{
			ID:        mw.ID.Hex(),
			Name:      mw.Name,
			OwnerID:   mw.OwnerID,
			Members:   mw.Members,
			CreatedAt: mw.CreatedAt.UTC(),
			UpdatedAt: mw.UpdatedAt.UTC(),
		})
	}
	if err := wsCursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return workspaces, nil
}

// EnsureIndexes creates the lookup indexes for membership queries.
func (r *WorkspaceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.members.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "workspace_id", Value: 1}}},
	})
	return err
}
