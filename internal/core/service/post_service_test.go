package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/microblog/social-core/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub post repository
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	seq   int
	posts []*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.seq++
	clone := *post
	clone.ID = fmt.Sprintf("p%d", r.seq)
	r.posts = append(r.posts, &clone)
	copy := clone
	return &copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) ListByAuthor(_ context.Context, authorID string) ([]*domain.Post, error) {
	// Mirrors the repository contract: timestamp descending.
	var out []*domain.Post
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *stubPostRepo) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	var n int64
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Create / list
// ---------------------------------------------------------------------------

func TestPostService_CreatePost_BodyBounds(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	svc := NewPostService(users, posts, zerolog.Nop())
	ctx := context.Background()

	author := seedUsers(t, users, "alice")[0]

	// 140 code points is accepted.
	body140 := strings.Repeat("a", 140)
	created, err := svc.CreatePost(ctx, author, body140)
	if err != nil {
		t.Fatalf("140-char body rejected: %v", err)
	}
	if created.Timestamp.IsZero() || created.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", created.Timestamp)
	}

	// 141 code points is rejected.
	if _, err := svc.CreatePost(ctx, author, strings.Repeat("a", 141)); !errors.Is(err, domain.ErrBodyTooLong) {
		t.Fatalf("141-char body: expected ErrBodyTooLong, got %v", err)
	}

	// The accepted post is retrievable through PostsFor.
	listed, err := svc.PostsFor(ctx, author)
	if err != nil {
		t.Fatalf("PostsFor failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Body != body140 {
		t.Fatalf("accepted post not retrievable: %+v", listed)
	}
}

func TestPostService_CreatePost_CountsCodePoints(t *testing.T) {
	users := newStubUserRepo()
	svc := NewPostService(users, newStubPostRepo(), zerolog.Nop())
	ctx := context.Background()

	author := seedUsers(t, users, "alice")[0]

	// 140 multi-byte runes exceed 140 bytes but not 140 characters.
	if _, err := svc.CreatePost(ctx, author, strings.Repeat("é", 140)); err != nil {
		t.Fatalf("140 multibyte runes rejected: %v", err)
	}
	if _, err := svc.CreatePost(ctx, author, strings.Repeat("é", 141)); !errors.Is(err, domain.ErrBodyTooLong) {
		t.Fatalf("141 multibyte runes: expected ErrBodyTooLong, got %v", err)
	}
}

func TestPostService_CreatePost_EmptyBody(t *testing.T) {
	users := newStubUserRepo()
	svc := NewPostService(users, newStubPostRepo(), zerolog.Nop())
	ctx := context.Background()

	author := seedUsers(t, users, "alice")[0]

	if _, err := svc.CreatePost(ctx, author, ""); !errors.Is(err, domain.ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestPostService_CreatePost_UnknownAuthor(t *testing.T) {
	svc := NewPostService(newStubUserRepo(), newStubPostRepo(), zerolog.Nop())

	if _, err := svc.CreatePost(context.Background(), "missing", "hello"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostService_PostsFor_NewestFirst(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	svc := NewPostService(users, posts, zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")
	author, other := ids[0], ids[1]

	// Seed out of order with explicit timestamps, plus another author's post
	// that must not leak into the listing.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []int{2, 0, 1} {
		posts.posts = append(posts.posts, &domain.Post{
			ID:        fmt.Sprintf("seed%d", i),
			Body:      fmt.Sprintf("post %d", offset),
			Timestamp: base.Add(time.Duration(offset) * time.Minute),
			AuthorID:  author,
		})
	}
	posts.posts = append(posts.posts, &domain.Post{
		ID: "other", Body: "not mine", Timestamp: base.Add(time.Hour), AuthorID: other,
	})

	listed, err := svc.PostsFor(ctx, author)
	if err != nil {
		t.Fatalf("PostsFor failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].Timestamp.After(listed[i-1].Timestamp) {
			t.Fatalf("posts not newest-first: %v before %v", listed[i-1].Timestamp, listed[i].Timestamp)
		}
	}
}
