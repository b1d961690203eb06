package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"account_ledger/internal/models"
	"account_ledger/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// AuthService handles user registration and credential checks.
type AuthService struct {
	users repository.Users
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.Users, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: bcryptCost}
}

// Register hashes password and creates a new user. The username is stored
// exactly as given.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, invalid("username", "must not be empty")
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("register %q: %w", username, err)
	}
	return u, nil
}

// VerifyCredentials returns the user when password matches the stored hash.
// An unknown username and a wrong password both yield ErrInvalidCredentials,
// and both cost one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

// FindUser looks a user up by exact username; nil when absent.
func (s *AuthService) FindUser(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", invalid("password", "must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", invalid("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// dummy returns a hash of a fixed string at the configured cost,
// used to keep unknown-user logins as slow as real ones.
func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
