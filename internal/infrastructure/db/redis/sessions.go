package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/microblog/social-core/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists login sessions in Redis.
// Key format: session:<uuid> -> user id, expiring after the session TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create issues a fresh session id for userID with the given TTL.
func (s *SessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	if err := s.client.Set(ctx, sessionKeyPrefix+id, userID, ttl).Err(); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	return &domain.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Get returns the session for id, or domain.ErrSessionNotFound when it is
// missing or has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	session := &domain.Session{ID: id, UserID: userID}
	if ttl, err := s.client.TTL(ctx, sessionKeyPrefix+id).Result(); err == nil && ttl > 0 {
		session.ExpiresAt = time.Now().UTC().Add(ttl)
	}
	return session, nil
}

// Delete discards the session. Deleting a missing session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
