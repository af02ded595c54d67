package domain

import "time"

// PostBodyMaxLen bounds a post body, in Unicode code points.
const PostBodyMaxLen = 140

// Post is a single short text post. Posts are immutable after creation and
// always belong to exactly one author.
type Post struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	AuthorID  string    `json:"author_id"`
}
