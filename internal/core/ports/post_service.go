package ports

import (
	"context"

	"github.com/microblog/social-core/internal/core/domain"
)

// PostService implements the post ledger use cases.
type PostService interface {
	CreatePost(ctx context.Context, authorID, body string) (*domain.Post, error)
	// PostsFor returns the user's posts, newest first.
	PostsFor(ctx context.Context, userID string) ([]*domain.Post, error)
}
