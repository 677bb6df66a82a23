package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered identity.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the login name (unique, case-sensitive).
	Username string `json:"username"`

	// DisplayName is the name shown to other users.
	DisplayName string `json:"display_name"`

	// PasswordHash is the bcrypt verifier derived from the password.
	// The plaintext password itself is never stored or logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(username, displayName, passwordHash string) *User {
	if displayName == "" {
		displayName = username
	}
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
