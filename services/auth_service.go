package services

import (
	"context"
	"fmt"

	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/models"
	"github.com/andyrosty/diet-fitness/repository"
	"github.com/andyrosty/diet-fitness/utils"
)

// AuthService handles signup and credential-based login.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Signup creates a new account. It fails with ErrUsernameTaken or
// ErrEmailTaken when either field is already registered, regardless of
// the other field's value.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Infof("registered user %d (%s)", user.ID, user.Username)
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the
// username as subject. All failure modes collapse into
// ErrInvalidCredentials so callers cannot probe for account existence.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token for user %d: %w", user.ID, err)
	}
	return token, nil
}
