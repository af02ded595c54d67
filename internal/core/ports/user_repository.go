package ports

import (
	"context"
	"time"

	"github.com/microblog/social-core/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// The store carries unique indexes on username and email; Create and
// UpdateProfile surface violations as domain.ErrDuplicateUsername or
// domain.ErrDuplicateEmail. Exact-field lookups return at most one match and
// domain.ErrUserNotFound on absence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, username, aboutMe string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
}
