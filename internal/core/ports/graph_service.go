package ports

import "context"

// SocialGraphService exposes the follow graph operations. Follow and Unfollow
// are idempotent: repeating either call leaves the edge set unchanged.
type SocialGraphService interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	FollowerCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}
