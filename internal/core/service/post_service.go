package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/microblog/social-core/internal/core/domain"
	"github.com/microblog/social-core/internal/core/ports"
	"github.com/microblog/social-core/internal/metrics"
)

// PostService implements the post ledger. Posts are immutable once appended.
type PostService struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(users ports.UserRepository, posts ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{users: users, posts: posts, logger: logger}
}

// CreatePost appends a new post owned by authorID. The body is bounded at 140
// code points; the author must exist.
func (s *PostService) CreatePost(ctx context.Context, authorID, body string) (*domain.Post, error) {
	if body == "" {
		return nil, domain.ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > domain.PostBodyMaxLen {
		return nil, domain.ErrBodyTooLong
	}

	if _, err := s.users.FindByID(ctx, authorID); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Body:      body,
		Timestamp: time.Now().UTC(),
		AuthorID:  authorID,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", authorID).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.logger.Info().Str("post_id", created.ID).Str("author_id", authorID).Msg("post created")
	return created, nil
}

// PostsFor returns the user's posts, newest first. The ordering is part of the
// repository contract, not an artifact of insertion order.
func (s *PostService) PostsFor(ctx context.Context, userID string) ([]*domain.Post, error) {
	return s.posts.ListByAuthor(ctx, userID)
}
