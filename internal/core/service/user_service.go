package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/microblog/social-core/internal/core/domain"
	"github.com/microblog/social-core/internal/core/ports"
)

// UserService implements user lookup, session rehydration, and profile edits.
type UserService struct {
	users    ports.UserRepository
	follows  ports.FollowRepository
	posts    ports.PostRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	follows ports.FollowRepository,
	posts ports.PostRepository,
	sessions ports.SessionStore,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, follows: follows, posts: posts, sessions: sessions, logger: logger}
}

// LoadUser rehydrates a user from a stored identifier. A missing user yields
// (nil, nil): absence, not an error.
func (s *UserService) LoadUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// ResolveSession maps a session id back to its user. A missing or expired
// session, or a session whose user no longer exists, yields (nil, nil).
func (s *UserService) ResolveSession(ctx context.Context, sessionID string) (*domain.User, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.LoadUser(ctx, session.UserID)
}

// UpdateProfile applies edits to username and about_me. A username change
// re-runs the uniqueness check against all other users.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	if in.Username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if utf8.RuneCountInString(in.AboutMe) > domain.AboutMeMaxLen {
		return nil, domain.ErrAboutMeTooLong
	}

	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != current.Username {
		other, err := s.users.FindByUsername(ctx, in.Username)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, domain.ErrDuplicateUsername
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, in.Username, in.AboutMe); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("username", in.Username).Msg("profile updated")
	return s.users.FindByID(ctx, userID)
}

// TouchLastSeen stamps the user's last activity with the current UTC time.
func (s *UserService) TouchLastSeen(ctx context.Context, userID string) error {
	return s.users.UpdateLastSeen(ctx, userID, time.Now().UTC())
}

// Profile composes the read-only profile view: the user, follower/following
// counts, and their posts newest first.
func (s *UserService) Profile(ctx context.Context, username string) (*ports.ProfileView, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.ProfileView{
		User:           user,
		FollowerCount:  followers,
		FollowingCount: following,
		Posts:          posts,
	}, nil
}
