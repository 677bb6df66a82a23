package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trumall/market/internal/models"
)

// CreateItem inserts a new catalog item.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, name, price, description, seller_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var sellerID any
	if item.SellerID != "" {
		sellerID = item.SellerID
	}

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Price,
		item.Description,
		sellerID,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(ctx context.Context, id string) (*models.Item, error) {
	query := `
		SELECT id, name, price, description, seller_id, created_at
		FROM items
		WHERE id = ?
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Item not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListItems returns all catalog items, oldest listing first.
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, name, price, description, seller_id, created_at
		FROM items
		ORDER BY created_at, id
	`

	return s.queryItems(ctx, query)
}

// SearchItems returns items whose name or description contains the keyword.
// SQLite LIKE is case-insensitive for ASCII, which matches the lowercase
// contains search of the interactive flow.
func (s *Store) SearchItems(ctx context.Context, keyword string) ([]models.Item, error) {
	query := `
		SELECT id, name, price, description, seller_id, created_at
		FROM items
		WHERE name LIKE ? OR description LIKE ?
		ORDER BY created_at, id
	`

	pattern := "%" + keyword + "%"
	return s.queryItems(ctx, query, pattern, pattern)
}

func (s *Store) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*models.Item, error) {
	item := &models.Item{}
	var sellerID sql.NullString
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.Description,
		&sellerID,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	item.SellerID = sellerID.String
	return item, nil
}
