// Package catalog is the read-mostly gateway to sellable items. The
// transaction engine only ever reads from it; writes happen on the sell path
// and at startup seeding.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trumall/market/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

// ItemStorage is the persistence surface the catalog needs.
type ItemStorage interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	SearchItems(ctx context.Context, keyword string) ([]models.Item, error)
}

// Service exposes catalog lookups and listing.
type Service struct {
	storage ItemStorage
}

// NewService creates a catalog service backed by the given storage.
func NewService(storage ItemStorage) *Service {
	return &Service{storage: storage}
}

// Get returns the item with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.storage.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// List returns all items, or only those matching keyword when it is
// non-empty. Matching is a case-insensitive contains over name and
// description.
func (s *Service) List(ctx context.Context, keyword string) ([]models.Item, error) {
	if keyword == "" {
		return s.storage.ListItems(ctx)
	}
	return s.storage.SearchItems(ctx, keyword)
}

// Add registers a new item, assigning an ID and listing time if unset.
func (s *Service) Add(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	if item.Price < 0 {
		return fmt.Errorf("item price must not be negative, got %d", item.Price)
	}
	return s.storage.CreateItem(ctx, item)
}

// Seed inserts the given items if the catalog is empty. Safe to call on
// every startup.
func (s *Service) Seed(ctx context.Context, items []models.Item) error {
	existing, err := s.storage.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range items {
		item := items[i]
		if err := s.Add(ctx, &item); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", item.Name, err)
		}
	}
	return nil
}

// DefaultInventory is the reference starter catalog.
func DefaultInventory() []models.Item {
	return []models.Item{
		{Name: "Laptop", Price: 1200, Description: "A powerful laptop"},
		{Name: "Keyboard", Price: 75, Description: "A mechanical keyboard"},
		{Name: "Mouse", Price: 25, Description: "Wireless mouse"},
	}
}
