package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/trumall/market/internal/models"
)

// newTestStore opens a uniquely-named in-memory database so tests in this
// package never share state through the shared cache.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	store, err := New(dsn)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and GetUserByUsername round-trip", func(t *testing.T) {
		user := models.NewUser("alice", "Alice", "hash-1")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected user, got nil")
		}
		if got.ID != user.ID || got.DisplayName != "Alice" || got.PasswordHash != "hash-1" {
			t.Errorf("Round-trip mismatch: %+v", got)
		}
	})

	t.Run("GetUserByID finds the same user", func(t *testing.T) {
		user := models.NewUser("bob", "", "hash-2")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Username != "bob" {
			t.Errorf("Expected bob, got %+v", got)
		}
	})

	t.Run("Unknown lookups return nil without error", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "ghost")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}

		got, err = store.GetUserByID(ctx, "no-such-id")
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("Duplicate username violates unique constraint", func(t *testing.T) {
		if err := store.CreateUser(ctx, models.NewUser("carol", "", "h1")); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		err := store.CreateUser(ctx, models.NewUser("carol", "", "h2"))
		if err == nil {
			t.Fatal("Expected unique constraint violation")
		}
		if !strings.Contains(err.Error(), "UNIQUE constraint") {
			t.Errorf("Expected UNIQUE constraint error, got %v", err)
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []models.Item{
		{ID: uuid.New().String(), Name: "Laptop", Price: 1200, Description: "A powerful laptop", CreatedAt: 1},
		{ID: uuid.New().String(), Name: "Keyboard", Price: 75, Description: "A mechanical keyboard", CreatedAt: 2},
		{ID: uuid.New().String(), Name: "Mouse", Price: 25, Description: "Wireless mouse", CreatedAt: 3},
	}
	for i := range seed {
		if err := store.CreateItem(ctx, &seed[i]); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	t.Run("ListItems returns all in listing order", func(t *testing.T) {
		items, err := store.ListItems(ctx)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(items))
		}
		if items[0].Name != "Laptop" || items[2].Name != "Mouse" {
			t.Errorf("Unexpected order: %s, %s, %s", items[0].Name, items[1].Name, items[2].Name)
		}
	})

	t.Run("GetItem round-trip", func(t *testing.T) {
		got, err := store.GetItem(ctx, seed[0].ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got == nil || got.Name != "Laptop" || got.Price != 1200 {
			t.Errorf("Round-trip mismatch: %+v", got)
		}
	})

	t.Run("GetItem returns nil for unknown id", func(t *testing.T) {
		got, err := store.GetItem(ctx, "no-such-item")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("SearchItems matches name case-insensitively", func(t *testing.T) {
		items, err := store.SearchItems(ctx, "laptop")
		if err != nil {
			t.Fatalf("SearchItems failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Laptop" {
			t.Errorf("Expected the laptop, got %+v", items)
		}
	})

	t.Run("SearchItems matches description", func(t *testing.T) {
		items, err := store.SearchItems(ctx, "wireless")
		if err != nil {
			t.Fatalf("SearchItems failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Mouse" {
			t.Errorf("Expected the mouse, got %+v", items)
		}
	})

	t.Run("SearchItems with no match returns empty", func(t *testing.T) {
		items, err := store.SearchItems(ctx, "submarine")
		if err != nil {
			t.Fatalf("SearchItems failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("Expected no items, got %+v", items)
		}
	})

	t.Run("Seller reference survives round-trip", func(t *testing.T) {
		seller := models.NewUser("dave", "", "h")
		if err := store.CreateUser(ctx, seller); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		item := &models.Item{
			ID: uuid.New().String(), Name: "Headphones", Price: 150,
			SellerID: seller.ID, CreatedAt: 4,
		}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		got, err := store.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got.SellerID != seller.ID {
			t.Errorf("Expected seller %s, got %s", seller.ID, got.SellerID)
		}
	})
}
