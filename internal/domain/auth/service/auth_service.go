// Package service coordinates authentication: registration, login, and
// access-token validation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-exterminator/backend/internal/domain/auth/repository"
)

const defaultTokenTTL = 72 * time.Hour

var (
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword is returned when a password fails the minimum policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// RegisterParams contains the required data for user registration.
type RegisterParams struct {
	Email    string
	Username string
	Password string
}

// AuthResult is produced after a successful registration or login.
type AuthResult struct {
	User        *repository.User
	AccessToken string
}

// AuthService coordinates auth business logic.
type AuthService struct {
	repo       repository.AuthRepository
	tokens     *TokenManager
	bcryptCost int
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(repo repository.AuthRepository, tokens *TokenManager, bcryptCost int, logger *slog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a new user account and issues an access token.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	if len(params.Password) < 8 {
		return nil, ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, repository.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, strings.TrimSpace(params.Username), string(hash))
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))
	return &AuthResult{User: user, AccessToken: token}, nil
}

// Login authenticates a user against stored credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}

// ValidateAccessToken verifies a token and returns its claims.
func (s *AuthService) ValidateAccessToken(_ context.Context, accessToken string) (*Claims, error) {
	return s.tokens.Validate(accessToken)
}

// GetProfile returns the account for the given user id.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}
