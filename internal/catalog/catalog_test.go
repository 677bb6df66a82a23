package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/trumall/market/internal/models"
	"github.com/trumall/market/internal/storage/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := sqlite.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed populates an empty catalog once", func(t *testing.T) {
		svc := newTestService(t)

		if err := svc.Seed(ctx, DefaultInventory()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		if err := svc.Seed(ctx, DefaultInventory()); err != nil {
			t.Fatalf("Second Seed failed: %v", err)
		}

		items, err := svc.List(ctx, "")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(items) != 3 {
			t.Errorf("Expected 3 seeded items, got %d", len(items))
		}
	})

	t.Run("Get returns ErrItemNotFound for unknown id", func(t *testing.T) {
		svc := newTestService(t)

		if _, err := svc.Get(ctx, "nope"); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("Expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("Add assigns id and listing time", func(t *testing.T) {
		svc := newTestService(t)

		item := &models.Item{Name: "Monitor", Price: 300}
		if err := svc.Add(ctx, item); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if item.ID == "" {
			t.Error("Expected an assigned ID")
		}
		if item.CreatedAt == 0 {
			t.Error("Expected a listing timestamp")
		}

		got, err := svc.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "Monitor" {
			t.Errorf("Expected Monitor, got %s", got.Name)
		}
	})

	t.Run("Add rejects negative price", func(t *testing.T) {
		svc := newTestService(t)

		if err := svc.Add(ctx, &models.Item{Name: "Broken", Price: -1}); err == nil {
			t.Error("Expected error for negative price")
		}
	})

	t.Run("List with keyword filters the catalog", func(t *testing.T) {
		svc := newTestService(t)
		if err := svc.Seed(ctx, DefaultInventory()); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}

		items, err := svc.List(ctx, "keyboard")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Keyboard" {
			t.Errorf("Expected the keyboard, got %+v", items)
		}
	})
}
