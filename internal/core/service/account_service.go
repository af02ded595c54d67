package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/microblog/social-core/internal/core/domain"
	"github.com/microblog/social-core/internal/core/ports"
	"github.com/microblog/social-core/internal/metrics"
)

// AccountConfig tunes the account service. Zero values fall back to defaults.
type AccountConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration
	BcryptCost int
	// LoginRate / LoginBurst throttle login attempts per username.
	LoginRate  rate.Limit
	LoginBurst int
}

// AccountService implements registration, login, and the password lifecycle.
type AccountService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	cfg      AccountConfig
	logger   zerolog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewAccountService(users ports.UserRepository, sessions ports.SessionStore, cfg AccountConfig, logger zerolog.Logger) *AccountService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.LoginRate <= 0 {
		cfg.LoginRate = rate.Every(2 * time.Second)
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = 5
	}
	return &AccountService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Register creates a new account. Username and email uniqueness are checked
// before any write; the store's unique indexes backstop the check-then-insert
// race and map to the same sentinel errors.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		metrics.RegistrationsRejectedTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.IsUsernameTaken(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_username").Inc()
		return nil, domain.ErrDuplicateUsername
	}

	taken, err = s.IsEmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_email").Inc()
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		LastSeen:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_username").Inc()
		} else if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate_email").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials, issues an auth token and a session, and touches
// last_seen. A missing account and a wrong password are indistinguishable to
// the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.limiter(username).Allow() {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		s.logger.Warn().Str("username", username).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPassword(user, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.logger.Info().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, user.ID, s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastSeen(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last_seen on login")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("user logged in")

	return &ports.LoginResult{Token: token, Session: session, User: user}, nil
}

// Logout discards a session. Unknown sessions are a no-op.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// SetPassword derives a bcrypt hash of plaintext and stores it on the user,
// overwriting any previous hash. The plaintext itself is never persisted or
// logged.
func (s *AccountService) SetPassword(ctx context.Context, userID, plaintext string) error {
	if plaintext == "" {
		return domain.ErrInvalidCredentials
	}
	hash, err := s.hashPassword(plaintext)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("password updated")
	return nil
}

// CheckPassword reports whether plaintext matches the user's stored hash.
// bcrypt's comparison is constant-time over the candidate. A nil user or an
// unset hash never matches.
func (s *AccountService) CheckPassword(user *domain.User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext))
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	return err == nil
}

// VerifyToken validates an HS256 token and returns the user id in its subject.
func (s *AccountService) VerifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrInvalidCredentials
	}
	return sub, nil
}

// IsUsernameTaken reports whether any existing user has this exact username.
func (s *AccountService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsEmailTaken reports whether any existing user has this exact email.
func (s *AccountService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AccountService) hashPassword(plaintext string) (string, error) {
	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cfg.BcryptCost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// limiter returns the per-username login limiter, creating it on first use.
func (s *AccountService) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[username]
	if !ok {
		l = rate.NewLimiter(s.cfg.LoginRate, s.cfg.LoginBurst)
		s.limiters[username] = l
	}
	return l
}
