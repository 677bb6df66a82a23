package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/trumall/market/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmptyCredentials   = errors.New("username and password required")
)

// UserStorage is the persistence surface the credential store needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CredentialStore implements password-based authentication using bcrypt.
// Only the bcrypt verifier is ever persisted.
type CredentialStore struct {
	storage UserStorage
}

// NewCredentialStore creates a credential store backed by the given storage.
func NewCredentialStore(storage UserStorage) *CredentialStore {
	return &CredentialStore{storage: storage}
}

var _ Authenticator = (*CredentialStore)(nil)

// Register creates a new identity with a bcrypt-hashed password.
// Usernames are matched case-sensitively.
func (s *CredentialStore) Register(ctx context.Context, username, displayName, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	existing, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, displayName, string(hash))

	if err := s.storage.CreateUser(ctx, user); err != nil {
		// Concurrent registration of the same username loses the race at
		// the unique index rather than at the lookup above.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the password against the stored verifier.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
