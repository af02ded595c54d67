package domain

import "time"

// Follow is a directed edge in the social graph: FollowerID follows FollowedID.
// The pair itself is the identity; the store enforces its uniqueness with a
// compound unique index.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
