package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/trumall/market/internal/models"
)

// memStorage is an in-memory UserStorage for tests.
type memStorage struct {
	mu    sync.Mutex
	users map[string]*models.User // by username
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[string]*models.User)}
}

func (m *memStorage) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return errors.New("constraint failed: UNIQUE constraint failed: users.username")
	}
	m.users[user.Username] = user
	return nil
}

func (m *memStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[username], nil
}

func (m *memStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestCredentialStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Register stores verifier, not plaintext", func(t *testing.T) {
		store := NewCredentialStore(newMemStorage())

		user, err := store.Register(ctx, "alice", "", "pw1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "pw1" || user.PasswordHash == "" {
			t.Error("Expected a derived verifier, not the plaintext password")
		}
		if user.DisplayName != "alice" {
			t.Errorf("Expected display name to default to username, got %q", user.DisplayName)
		}
	})

	t.Run("Duplicate username is rejected", func(t *testing.T) {
		store := NewCredentialStore(newMemStorage())

		if _, err := store.Register(ctx, "alice", "", "pw1"); err != nil {
			t.Fatalf("First Register failed: %v", err)
		}
		if _, err := store.Register(ctx, "alice", "", "pw2"); !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("Expected ErrUsernameTaken, got %v", err)
		}

		// The original registration still holds.
		if _, err := store.Authenticate(ctx, "alice", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Password of rejected registration must not work, got %v", err)
		}
		if _, err := store.Authenticate(ctx, "alice", "pw1"); err != nil {
			t.Errorf("Original password must keep working, got %v", err)
		}
	})

	t.Run("Username matching is case-sensitive", func(t *testing.T) {
		store := NewCredentialStore(newMemStorage())

		if _, err := store.Register(ctx, "alice", "", "pw1"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if _, err := store.Register(ctx, "Alice", "", "pw1"); err != nil {
			t.Errorf("Differently-cased username should register, got %v", err)
		}
	})

	t.Run("Unknown user and wrong password fail identically", func(t *testing.T) {
		store := NewCredentialStore(newMemStorage())

		if _, err := store.Register(ctx, "alice", "", "letmein12"); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		_, ghostErr := store.Authenticate(ctx, "ghost", "anything")
		_, wrongErr := store.Authenticate(ctx, "alice", "wrong")

		if !errors.Is(ghostErr, ErrInvalidCredentials) {
			t.Errorf("Unknown user: expected ErrInvalidCredentials, got %v", ghostErr)
		}
		if !errors.Is(wrongErr, ErrInvalidCredentials) {
			t.Errorf("Wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
		}
		if ghostErr.Error() != wrongErr.Error() {
			t.Error("Unknown-user and wrong-password errors must be indistinguishable")
		}
	})

	t.Run("Empty credentials are rejected", func(t *testing.T) {
		store := NewCredentialStore(newMemStorage())

		if _, err := store.Register(ctx, "", "", "pw"); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("Expected ErrEmptyCredentials, got %v", err)
		}
		if _, err := store.Register(ctx, "bob", "", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("Expected ErrEmptyCredentials, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "alice"}

	t.Run("Issued token validates and carries the subject", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)

		token, err := m.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.Subject != "user-1" {
			t.Errorf("Expected subject user-1, got %s", claims.Subject)
		}
		if claims.Username != "alice" {
			t.Errorf("Expected username alice, got %s", claims.Username)
		}
	})

	t.Run("Expired token fails with ErrTokenExpired", func(t *testing.T) {
		m := NewJWTManager("test-secret", -time.Second)

		token, err := m.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := m.Validate(token); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Garbage token fails with ErrTokenMalformed", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)

		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Expected ErrTokenMalformed, got %v", err)
		}
	})

	t.Run("Token signed with a different key fails", func(t *testing.T) {
		issuer := NewJWTManager("secret-a", time.Hour)
		verifier := NewJWTManager("secret-b", time.Hour)

		token, err := issuer.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := verifier.Validate(token); !errors.Is(err, ErrBadSignature) {
			t.Errorf("Expected ErrBadSignature, got %v", err)
		}
	})
}
