package ports

import (
	"context"
	"time"

	"github.com/microblog/social-core/internal/core/domain"
)

// SessionStore persists login sessions. Entries expire on their own after the
// TTL; Get on a missing or expired session returns domain.ErrSessionNotFound.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
