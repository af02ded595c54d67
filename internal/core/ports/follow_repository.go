package ports

import "context"

// FollowRepository persists the directed follow edge set.
//
// The store carries a unique compound index on (follower_id, followed_id), so
// the edge pair cannot be duplicated even if callers race the exists check.
type FollowRepository interface {
	// Add inserts the edge follower -> followed. Adding an edge that already
	// exists is a no-op, not an error.
	Add(ctx context.Context, followerID, followedID string) error
	// Remove deletes the edge when present and reports whether it existed.
	Remove(ctx context.Context, followerID, followedID string) (bool, error)
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// CountFollowers counts inbound edges (users following userID).
	CountFollowers(ctx context.Context, userID string) (int64, error)
	// CountFollowing counts outbound edges (users userID follows).
	CountFollowing(ctx context.Context, userID string) (int64, error)
	// ListFollowing returns the ids of users that userID follows.
	ListFollowing(ctx context.Context, userID string) ([]string, error)
}
