package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	userRepo "counselbook/database/repository/user"
	"counselbook/models"
	"counselbook/utils"
)

var (
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when the username is already taken
	// (case-insensitively).
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrAccountLimit is returned when the requesting IP already owns the
	// maximum number of accounts.
	ErrAccountLimit = errors.New("account limit reached for this IP address")
)

// ValidationError carries the user-facing description of a rejected input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

// AuthService registers and authenticates users.
type AuthService interface {
	// Register creates an account and returns the new user.
	Register(ctx context.Context, username, password, ip string) (*models.User, error)
	// Login verifies credentials and returns the matching user.
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// DefaultAuthService implements AuthService over a user repository and a
// password hasher.
type DefaultAuthService struct {
	Repo             userRepo.UserRepository
	Hasher           utils.PasswordHasher
	MaxAccountsPerIP int
	Logger           *zap.Logger
}

func (s *DefaultAuthService) Register(ctx context.Context, username, password, ip string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if len(username) < usernameMinLen || len(username) > usernameMaxLen || len(password) < passwordMinLen {
		return nil, ValidationError{Message: "Invalid username or password. Username must be 3-30 characters, password must be at least 8 characters."}
	}

	count, err := s.Repo.CountBySignupIP(ctx, ip)
	if err != nil {
		s.Logger.Error("Register: IP count failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if count >= s.MaxAccountsPerIP {
		return nil, ErrAccountLimit
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		s.Logger.Error("Register: password hashing failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		SignupIP:     ip,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		s.Logger.Error("Register: user insert failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return user, nil
}

func (s *DefaultAuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error("Login: user lookup failed", zap.Error(err))
		return nil, fmt.Errorf("login failed: %w", err)
	}

	ok, err := s.Hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.Logger.Error("Login: password verify failed", zap.Error(err))
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
