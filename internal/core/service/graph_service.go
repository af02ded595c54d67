package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/microblog/social-core/internal/core/ports"
	"github.com/microblog/social-core/internal/metrics"
)

// SocialGraphService implements follow-graph queries and mutations. In-process
// mutations on the same pair are serialized through a striped lock; the store's
// unique compound index on the edge pair guards against everything else.
type SocialGraphService struct {
	users   ports.UserRepository
	follows ports.FollowRepository
	locks   pairLock
	logger  zerolog.Logger
}

func NewSocialGraphService(users ports.UserRepository, follows ports.FollowRepository, logger zerolog.Logger) *SocialGraphService {
	return &SocialGraphService{users: users, follows: follows, logger: logger}
}

// Follow adds the edge follower -> followed when it does not already exist.
// Calling it again with the same pair is a no-op.
func (s *SocialGraphService) Follow(ctx context.Context, followerID, followedID string) error {
	if err := s.resolvePair(ctx, followerID, followedID); err != nil {
		return err
	}

	mu := s.locks.lock(followerID, followedID)
	defer mu.Unlock()

	exists, err := s.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	if exists {
		metrics.FollowOpsTotal.WithLabelValues("follow", "noop").Inc()
		return nil
	}

	if err := s.follows.Add(ctx, followerID, followedID); err != nil {
		return fmt.Errorf("follow: %w", err)
	}

	metrics.FollowOpsTotal.WithLabelValues("follow", "applied").Inc()
	s.logger.Info().Str("follower_id", followerID).Str("followed_id", followedID).Msg("follow added")
	return nil
}

// Unfollow removes the edge follower -> followed when the follower currently
// follows the target; otherwise it is a no-op.
func (s *SocialGraphService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.resolvePair(ctx, followerID, followedID); err != nil {
		return err
	}

	mu := s.locks.lock(followerID, followedID)
	defer mu.Unlock()

	removed, err := s.follows.Remove(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	if !removed {
		metrics.FollowOpsTotal.WithLabelValues("unfollow", "noop").Inc()
		return nil
	}

	metrics.FollowOpsTotal.WithLabelValues("unfollow", "applied").Inc()
	s.logger.Info().Str("follower_id", followerID).Str("followed_id", followedID).Msg("follow removed")
	return nil
}

// IsFollowing reports whether the edge follower -> followed exists.
func (s *SocialGraphService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}

// FollowerCount counts users following userID. Computed per call, not cached.
func (s *SocialGraphService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.CountFollowers(ctx, userID)
}

// FollowingCount counts users that userID follows. Computed per call, not cached.
func (s *SocialGraphService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.CountFollowing(ctx, userID)
}

// resolvePair verifies that both endpoints reference existing users.
func (s *SocialGraphService) resolvePair(ctx context.Context, followerID, followedID string) error {
	if _, err := s.users.FindByID(ctx, followerID); err != nil {
		return err
	}
	if followedID == followerID {
		// Self-follow is permitted; a single lookup suffices.
		return nil
	}
	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		return err
	}
	return nil
}
