package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a transaction.
type Kind string

const (
	KindBuy  Kind = "buy"
	KindSell Kind = "sell"

	// KindTransfer is declared for wire compatibility but never
	// constructed: there is no transfer path in the engine yet.
	KindTransfer Kind = "transfer"
)

// Status is the lifecycle state of a transaction. Every transaction starts
// Pending and moves to exactly one terminal status, never back.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether s is a final status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCanceled
}

// Transaction is a single buy or sell operation. It is owned exclusively by
// the transaction engine while it executes; once terminal, only its Record
// is shared.
type Transaction struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Kind     Kind   `json:"kind"`
	ItemID   string `json:"item_id"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`

	// Amount is Price * Quantity, fixed at creation.
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`

	Fee         int64  `json:"fee"`
	FeeCurrency string `json:"fee_currency"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Metadata carries free-form context (client tags, notes).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewTransaction creates a Pending transaction of the given kind.
func NewTransaction(kind Kind, userID, itemID string, price, quantity, fee int64, currency string) *Transaction {
	return &Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Kind:        kind,
		ItemID:      itemID,
		Price:       price,
		Quantity:    quantity,
		Amount:      price * quantity,
		Currency:    currency,
		Fee:         fee,
		FeeCurrency: currency,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

// Record is the immutable summary of a terminal transaction as appended to a
// ledger's history.
type Record struct {
	TransactionID string    `json:"transaction_id"`
	Kind          Kind      `json:"kind"`
	ItemID        string    `json:"item_id"`
	Quantity      int64     `json:"quantity"`
	Amount        int64     `json:"amount"`
	Fee           int64     `json:"fee"`
	Currency      string    `json:"currency"`
	Status        Status    `json:"status"`

	// Delta is the signed effect on the ledger balance in minor units:
	// negative for buys, positive for sell proceeds.
	Delta int64 `json:"delta"`

	CreatedAt time.Time `json:"created_at"`
}

// Record builds the history summary for t with the given balance delta.
func (t *Transaction) Record(delta int64) Record {
	return Record{
		TransactionID: t.ID,
		Kind:          t.Kind,
		ItemID:        t.ItemID,
		Quantity:      t.Quantity,
		Amount:        t.Amount,
		Fee:           t.Fee,
		Currency:      t.Currency,
		Status:        t.Status,
		Delta:         delta,
		CreatedAt:     t.CreatedAt,
	}
}
