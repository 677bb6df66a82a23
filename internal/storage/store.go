// Package storage provides abstractions for marketplace data storage.
package storage

import (
	"context"

	"github.com/trumall/market/internal/models"
)

// Store defines the persistence operations for users and catalog items.
// This abstraction allows swapping storage backends without changing the
// credential store or the catalog service.
type Store interface {
	// CreateUser persists a new user. Fails if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username (case-sensitive).
	// Returns (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateItem persists a new catalog item.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by ID. Returns (nil, nil) when absent.
	GetItem(ctx context.Context, id string) (*models.Item, error)

	// ListItems returns all catalog items in listing order.
	ListItems(ctx context.Context) ([]models.Item, error)

	// SearchItems returns items whose name or description contains the
	// keyword, case-insensitively.
	SearchItems(ctx context.Context, keyword string) ([]models.Item, error)

	// Close releases any resources held by the store.
	Close() error
}
