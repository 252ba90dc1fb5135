// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"travelpack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// AuthService handles registration, login and token validation.
type AuthService struct {
	users  domain.UserRepository
	tokens *Tokens
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, tokens *Tokens) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", nil, invalid("please provide name, email, and password")
	}
	if len(password) < minPasswordLen {
		return "", nil, invalid("password must be at least %d characters", minPasswordLen)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.CreateUser(ctx, name, email, string(hash))
	if errors.Is(err, domain.ErrEmailTaken) {
		return "", nil, ErrUserExists
	}
	if err != nil {
		return "", nil, err
	}
	return s.issue(user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, invalid("please provide email and password")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Authenticate validates a bearer token and loads its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.Me(ctx, id)
}

// Me returns the user with the given id.
func (s *AuthService) Me(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// LoginWithEmail issues a token for an already authenticated identity (e.g.
// via SSO), provisioning the user on first sight.
func (s *AuthService) LoginWithEmail(ctx context.Context, name, email string) (string, *domain.User, error) {
	user, err := s.provision(ctx, name, email)
	if err != nil {
		return "", nil, err
	}
	return s.issue(user)
}

// ValidateForwardAuth resolves the user named by a trusted auth proxy's
// Remote-User header.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.User, error) {
	if strings.TrimSpace(remoteUser) == "" {
		return nil, errors.New("no remote user header")
	}
	return s.provision(ctx, remoteUser, remoteUser)
}

func (s *AuthService) provision(ctx context.Context, name, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, invalid("identity has no email")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if strings.TrimSpace(name) == "" {
		name = email
	}
	// Empty password hash: the account can only sign in through SSO.
	user, err = s.users.CreateUser(ctx, strings.TrimSpace(name), email, "")
	if errors.Is(err, domain.ErrEmailTaken) {
		// Lost a race with a concurrent first login.
		user, err = s.users.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (string, *domain.User, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
