package ports

import (
	"context"

	"github.com/microblog/social-core/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account. Validation of
// field shape happens in the forms layer; the service re-checks uniqueness and
// rejects empty credentials.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token   string
	Session *domain.Session
	User    *domain.User
}

// AccountService implements registration, login, and the password lifecycle.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	SetPassword(ctx context.Context, userID, plaintext string) error
	// CheckPassword reports whether plaintext matches the user's stored hash.
	// A user with no password set never matches.
	CheckPassword(user *domain.User, plaintext string) bool
	// VerifyToken validates an auth token and returns the user id it carries.
	VerifyToken(token string) (string, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}
