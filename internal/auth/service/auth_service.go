// Package service implements registration and login on top of the user
// repository, the password hasher, and the token provider.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bikemarket/backend/internal/apperr"
	"bikemarket/backend/internal/audit"
	"bikemarket/backend/internal/security"
	userdomain "bikemarket/backend/internal/user/domain"
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// UserSummary is what register returns to the client: never the password hash.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthService orchestrates password-based register and login. Tokens are
// stateless: login issues one and nothing is stored server-side for it.
type AuthService struct {
	userRepo UserRepo
	hasher   *security.Hasher
	tokens   *security.TokenProvider
	auditor  audit.AuditLogger
}

// NewAuthService returns an AuthService with the given dependencies.
// auditor may be nil to disable audit logging.
func NewAuthService(userRepo UserRepo, hasher *security.Hasher, tokens *security.TokenProvider, auditor audit.AuditLogger) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, tokens: tokens, auditor: auditor}
}

// Register creates a user with the given name, email, and password and
// returns its public summary. The email is stored lowercase so uniqueness is
// case-insensitive; a duplicate yields a Conflict error.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*UserSummary, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, apperr.BadRequest("name, email and password are required")
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists")
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, user.ID, "auth.register", "user:"+user.ID, "")
	}
	return &UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Login verifies email/password and issues a session token. Unknown email and
// wrong password return the identical Unauthorized error so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, err error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", apperr.BadRequest("email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperr.Internal("Login failed", err)
	}
	if user == nil {
		s.logFailure(ctx, email)
		return "", apperr.Unauthorized("Invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.logFailure(ctx, email)
		return "", apperr.Unauthorized("Invalid credentials")
	}
	token, _, err = s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperr.Internal("Login failed", err)
	}
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, user.ID, "auth.login_success", "user:"+user.ID, "")
	}
	return token, nil
}

func (s *AuthService) logFailure(ctx context.Context, email string) {
	if s.auditor != nil {
		// Failed logins carry no verified identity; record the attempted email only.
		s.auditor.LogEvent(ctx, "", "auth.login_failure", "email:"+email, "")
	}
}
