package user

import (
	"context"
	"errors"
	"time"
)

// Service checks credentials and creates accounts.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate returns the user for email if password matches. An unknown
// email and a wrong password both give ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !ComparePassword(u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register hashes password and stores a new user.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	if password == "" {
		return User{}, ErrEmptyPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	now := time.Now()
	return s.repo.Create(ctx, User{
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
