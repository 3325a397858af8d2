package ports

import (
	"context"
	"time"
)

// SessionStore holds at most one live refresh token per user id.
// Store overwrites any prior value (last write wins), which is how an
// earlier session gets invalidated by a later login.
type SessionStore interface {
	// Store saves the refresh token under the user id with the given TTL.
	Store(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	// Get returns the stored token, or "" when no entry exists.
	Get(ctx context.Context, userID string) (string, error)
	// Delete removes the entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, userID string) error
}
