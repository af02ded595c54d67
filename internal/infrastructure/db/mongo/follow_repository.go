package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionFollowers = "followers"

// FollowRepository implements ports.FollowRepository on MongoDB. Each document
// is one directed edge; the compound unique index on (follower_id, followed_id)
// makes duplicate edges structurally impossible.
type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollowers)}
}

type mongoFollow struct {
	FollowerID string    `bson:"follower_id"`
	FollowedID string    `bson:"followed_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

// Add inserts the edge. A duplicate-key error means the edge already exists
// and is swallowed: Add is idempotent.
func (r *FollowRepository) Add(ctx context.Context, followerID, followedID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFollow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// Remove deletes the edge when present and reports whether it existed.
func (r *FollowRepository) Remove(ctx context.Context, followerID, followedID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, r.pairFilter(followerID, followedID))
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Exists reports whether the edge follower -> followed is present.
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, r.pairFilter(followerID, followedID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count follow: %w", err)
	}
	return n > 0, nil
}

// CountFollowers counts inbound edges for userID.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, bson.M{"followed_id": userID})
}

// CountFollowing counts outbound edges for userID.
func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, bson.M{"follower_id": userID})
}

// ListFollowing returns the ids of users that userID follows.
func (r *FollowRepository) ListFollowing(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"follower_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var edge mongoFollow
		if err := cur.Decode(&edge); err != nil {
			return nil, fmt.Errorf("decode follow: %w", err)
		}
		ids = append(ids, edge.FollowedID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return ids, nil
}

// EnsureIndexes creates the unique edge-pair index and the inbound-edge index
// used by follower counts.
func (r *FollowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followed_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "followed_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *FollowRepository) pairFilter(followerID, followedID string) bson.M {
	return bson.M{"follower_id": followerID, "followed_id": followedID}
}

func (r *FollowRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count follows: %w", err)
	}
	return n, nil
}
