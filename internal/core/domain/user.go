package domain

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// AboutMeMaxLen bounds the profile blurb, in Unicode code points.
const AboutMeMaxLen = 140

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AboutMe      string    `json:"about_me,omitempty"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AvatarURL returns the Gravatar URL for the user's email at the given pixel
// size. The digest is the MD5 hex of the lower-cased email, per the Gravatar
// contract; MD5 here is an addressing convention, not a security primitive.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
