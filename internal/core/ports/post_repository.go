package ports

import (
	"context"

	"github.com/microblog/social-core/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// ListByAuthor returns the author's posts ordered by timestamp descending.
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
