package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/auth"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
)

const (
	msgTokenMissing       = "Token is not provided"
	msgTokenInvalid       = "Token is invalid or has expired"
	msgForbidden          = "Forbidden"
	msgBadCredentials     = "Incorrect email or password"
	msgEmailAlreadyExists = "A user with this email address already exists"
	msgPasswordTooLong    = "password must not be longer than 72 bytes"
)

// TokenService issues and verifies identity tokens
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// PasswordHasher hashes passwords and compares them against stored hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// AuthContext carries the identity material extracted from a request.
// An empty Token means none was supplied.
type AuthContext struct {
	Token string
}

// AuthService handles registration, login and role authorization
type AuthService struct {
	users  repository.UserRepository
	tokens TokenService
	hasher PasswordHasher
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, tokens TokenService, hasher PasswordHasher, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a user and returns it together with a fresh token
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, invalid(msgPasswordTooLong)
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, conflict(msgEmailAlreadyExists)
	case !isNotFound(err):
		return nil, storeError("failed to look up user", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, invalid(msgPasswordTooLong)
		}
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hash,
		Role:     req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflict(msgEmailAlreadyExists)
		}
		return nil, storeError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

// LogIn checks credentials and returns the user with a fresh token.
// Unknown emails and wrong passwords fail with the same message.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.logger.Info("login rejected", "reason", "unknown email")
			return nil, unauthorized(msgBadCredentials)
		}
		return nil, storeError("failed to look up user", err)
	}

	ok, err := s.hasher.Compare(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, unauthorized(msgBadCredentials)
	}

	return s.issue(user)
}

// Authorize resolves the token in ac to a user whose role is one of allowed.
// The returned user carries no password hash.
func (s *AuthService) Authorize(ctx context.Context, allowed []models.Role, ac AuthContext) (*models.User, error) {
	if ac.Token == "" {
		return nil, unauthorized(msgTokenMissing)
	}

	claims, err := s.tokens.Verify(ac.Token)
	if err != nil {
		s.logger.Debug("token verification failed", "error", err)
		return nil, unauthorized(msgTokenInvalid)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, unauthorized(msgTokenInvalid)
		}
		return nil, storeError("failed to load user", err)
	}

	if !slices.Contains(allowed, user.Role) {
		s.logger.Info("role rejected", "user_id", user.ID, "role", user.Role, "allowed", allowed)
		return nil, unauthorized(msgForbidden)
	}

	return user.Redacted(), nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{User: user.Redacted(), Token: token}, nil
}
