package service

import (
	"context"
	"errors"
	"fmt"

	"mercadinho/internal/common"
	"mercadinho/internal/common/security"
	"mercadinho/internal/domain/model"
	"mercadinho/internal/domain/repository"
)

// AuthService implements registration and login. It never stores a
// plaintext password and never reveals whether a failed login was due to
// an unknown username or a wrong password.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, bcryptCost int) *AuthService {
	return &AuthService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// Register hashes the password and creates the user. Duplicate usernames
// surface as common.ErrConflict; the uniqueness decision is made by the
// store's constraint, not by a prior read.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return common.ErrValidation
	}

	hash, err := security.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.Create(ctx, username, hash); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns the user on success. An
// unknown username and a wrong password both return common.ErrUnauthorized
// with no distinguishing detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrValidation
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	user.PasswordHash = ""
	return user, nil
}
