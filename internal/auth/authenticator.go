package auth

import (
	"context"

	"github.com/trumall/market/internal/models"
)

// Authenticator is the credential-store contract. The abstraction keeps the
// HTTP layer independent of the verification scheme (password today, maybe
// passkeys later).
type Authenticator interface {
	// Register creates a new identity for the given username.
	// Fails with ErrUsernameTaken if the username is already registered.
	Register(ctx context.Context, username, displayName, password string) (*models.User, error)

	// Authenticate verifies the username/password pair and returns the
	// identity. Unknown usernames and wrong passwords both fail with
	// ErrInvalidCredentials, with no distinguishing signal.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}
