package ports

import (
	"context"

	"github.com/microblog/social-core/internal/core/domain"
)

// ProfileUpdateInput carries the editable profile fields.
type ProfileUpdateInput struct {
	Username string
	AboutMe  string
}

// ProfileView is the read-only composition shown on a profile page.
type ProfileView struct {
	User           *domain.User
	FollowerCount  int64
	FollowingCount int64
	Posts          []*domain.Post
}

// UserService implements user lookup, session rehydration, and profile edits.
type UserService interface {
	// LoadUser returns (nil, nil) when no user has the given id. Absence is
	// not an error: the caller treats it as an anonymous visitor.
	LoadUser(ctx context.Context, id string) (*domain.User, error)
	// ResolveSession maps a session id back to its user, or (nil, nil) when
	// the session or its user no longer exists.
	ResolveSession(ctx context.Context, sessionID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*domain.User, error)
	TouchLastSeen(ctx context.Context, userID string) error
	Profile(ctx context.Context, username string) (*ProfileView, error)
}
