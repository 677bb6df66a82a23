package models

// Item is a sellable catalog entry.
type Item struct {
	// ID is the unique identifier within the catalog (UUID format).
	ID string `json:"id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Price is the unit price in minor currency units (never negative).
	Price int64 `json:"price"`

	// Description is free-form seller-provided text.
	Description string `json:"description"`

	// SellerID is the user who listed the item. Empty for seeded inventory.
	SellerID string `json:"seller_id,omitempty"`

	// CreatedAt is the Unix timestamp when the item was listed.
	CreatedAt int64 `json:"created_at"`
}
