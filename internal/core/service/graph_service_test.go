package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/microblog/social-core/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub edge set
// ---------------------------------------------------------------------------

type stubFollowRepo struct {
	edges map[[2]string]bool
}

func newStubFollowRepo() *stubFollowRepo {
	return &stubFollowRepo{edges: make(map[[2]string]bool)}
}

func (r *stubFollowRepo) Add(_ context.Context, followerID, followedID string) error {
	// Mirrors the unique pair index: re-adding is a no-op.
	r.edges[[2]string{followerID, followedID}] = true
	return nil
}

func (r *stubFollowRepo) Remove(_ context.Context, followerID, followedID string) (bool, error) {
	key := [2]string{followerID, followedID}
	if !r.edges[key] {
		return false, nil
	}
	delete(r.edges, key)
	return true, nil
}

func (r *stubFollowRepo) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	return r.edges[[2]string{followerID, followedID}], nil
}

func (r *stubFollowRepo) CountFollowers(_ context.Context, userID string) (int64, error) {
	var n int64
	for edge := range r.edges {
		if edge[1] == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubFollowRepo) CountFollowing(_ context.Context, userID string) (int64, error) {
	var n int64
	for edge := range r.edges {
		if edge[0] == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubFollowRepo) ListFollowing(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for edge := range r.edges {
		if edge[0] == userID {
			ids = append(ids, edge[1])
		}
	}
	return ids, nil
}

func seedUsers(t *testing.T, repo *stubUserRepo, usernames ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(usernames))
	for _, name := range usernames {
		u, err := repo.Create(context.Background(), &domain.User{
			Username: name,
			Email:    name + "@example.com",
		})
		if err != nil {
			t.Fatalf("seed user %q: %v", name, err)
		}
		ids = append(ids, u.ID)
	}
	return ids
}

// ---------------------------------------------------------------------------
// Follow / unfollow semantics
// ---------------------------------------------------------------------------

func TestSocialGraph_FollowThenUnfollow(t *testing.T) {
	users := newStubUserRepo()
	follows := newStubFollowRepo()
	svc := NewSocialGraphService(users, follows, zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")
	a, b := ids[0], ids[1]

	if err := svc.Follow(ctx, a, b); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	following, err := svc.IsFollowing(ctx, a, b)
	if err != nil || !following {
		t.Fatalf("expected a following b, got %v, %v", following, err)
	}
	// The edge is directed: b does not follow a.
	reverse, err := svc.IsFollowing(ctx, b, a)
	if err != nil || reverse {
		t.Fatalf("expected no reverse edge, got %v, %v", reverse, err)
	}

	if err := svc.Unfollow(ctx, a, b); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	following, err = svc.IsFollowing(ctx, a, b)
	if err != nil || following {
		t.Fatalf("expected edge removed, got %v, %v", following, err)
	}
}

func TestSocialGraph_FollowIsIdempotent(t *testing.T) {
	users := newStubUserRepo()
	follows := newStubFollowRepo()
	svc := NewSocialGraphService(users, follows, zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")
	a, b := ids[0], ids[1]

	if err := svc.Follow(ctx, a, b); err != nil {
		t.Fatalf("first Follow failed: %v", err)
	}
	if err := svc.Follow(ctx, a, b); err != nil {
		t.Fatalf("second Follow failed: %v", err)
	}
	if len(follows.edges) != 1 {
		t.Fatalf("expected a single edge, have %d", len(follows.edges))
	}
}

func TestSocialGraph_UnfollowWhenNotFollowing(t *testing.T) {
	users := newStubUserRepo()
	svc := NewSocialGraphService(users, newStubFollowRepo(), zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")

	// No edge exists; unfollow is a no-op, not an error.
	if err := svc.Unfollow(ctx, ids[0], ids[1]); err != nil {
		t.Fatalf("Unfollow of absent edge must be a no-op, got %v", err)
	}
}

func TestSocialGraph_UnknownUserRejected(t *testing.T) {
	users := newStubUserRepo()
	svc := NewSocialGraphService(users, newStubFollowRepo(), zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice")

	if err := svc.Follow(ctx, ids[0], "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing followed, got %v", err)
	}
	if err := svc.Follow(ctx, "missing", ids[0]); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing follower, got %v", err)
	}
}

func TestSocialGraph_SelfFollowPermitted(t *testing.T) {
	users := newStubUserRepo()
	follows := newStubFollowRepo()
	svc := NewSocialGraphService(users, follows, zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice")

	if err := svc.Follow(ctx, ids[0], ids[0]); err != nil {
		t.Fatalf("self-follow must be permitted, got %v", err)
	}
	following, err := svc.IsFollowing(ctx, ids[0], ids[0])
	if err != nil || !following {
		t.Fatalf("expected self edge, got %v, %v", following, err)
	}
}

func TestSocialGraph_Counts(t *testing.T) {
	users := newStubUserRepo()
	follows := newStubFollowRepo()
	svc := NewSocialGraphService(users, follows, zerolog.Nop())
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob", "carol")
	a, b, c := ids[0], ids[1], ids[2]

	for _, pair := range [][2]string{{a, c}, {b, c}, {c, a}} {
		if err := svc.Follow(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("Follow(%s, %s): %v", pair[0], pair[1], err)
		}
	}

	if n, _ := svc.FollowerCount(ctx, c); n != 2 {
		t.Fatalf("carol follower count = %d, want 2", n)
	}
	if n, _ := svc.FollowingCount(ctx, c); n != 1 {
		t.Fatalf("carol following count = %d, want 1", n)
	}
	if n, _ := svc.FollowerCount(ctx, a); n != 1 {
		t.Fatalf("alice follower count = %d, want 1", n)
	}
	if n, _ := svc.FollowingCount(ctx, b); n != 1 {
		t.Fatalf("bob following count = %d, want 1", n)
	}
}
