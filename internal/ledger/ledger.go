// Package ledger holds per-account balances and append-only transaction
// history. Each ledger guards its own state with its own lock, so operations
// on unrelated accounts never serialize against each other.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Rhymond/go-money"

	"github.com/trumall/market/internal/models"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrNegativeAmount    = errors.New("amount must not be negative")
)

// Ledger is one account's balance and history. The balance is never
// negative: Debit checks and applies under the lock, so no partial debit is
// ever observable.
type Ledger struct {
	mu      sync.Mutex
	ownerID string
	balance *money.Money
	history []models.Record
}

// New creates a ledger for the given owner with an opening balance.
// A nil or negative opening balance degrades to zero.
func New(ownerID string, opening *money.Money) *Ledger {
	if opening == nil {
		opening = money.New(0, money.USD)
	}
	amount := opening.Amount()
	if amount < 0 {
		amount = 0
	}
	return &Ledger{
		ownerID: ownerID,
		balance: money.New(amount, opening.Currency().Code),
	}
}

// OwnerID returns the identity that owns this ledger.
func (l *Ledger) OwnerID() string {
	return l.ownerID
}

// Balance returns a copy of the current balance.
func (l *Ledger) Balance() *money.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return money.New(l.balance.Amount(), l.balance.Currency().Code)
}

// Debit subtracts amount from the balance. Fails with ErrInsufficientFunds
// when amount exceeds the balance, leaving the balance untouched.
func (l *Ledger) Debit(amount *money.Money) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	short, err := l.balance.LessThan(amount)
	if err != nil {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, l.balance.Currency().Code, amount.Currency().Code)
	}
	if short {
		return ErrInsufficientFunds
	}

	next, err := l.balance.Subtract(amount)
	if err != nil {
		return fmt.Errorf("debit failed: %w", err)
	}
	l.balance = next
	return nil
}

// Credit adds amount to the balance. No upper bound is enforced.
func (l *Ledger) Credit(amount *money.Money) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.balance.Add(amount)
	if err != nil {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, l.balance.Currency().Code, amount.Currency().Code)
	}
	l.balance = next
	return nil
}

// Append adds a record to the history. Records are immutable once added and
// are never reordered or removed.
func (l *Ledger) Append(rec models.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, rec)
}

// History returns a copy of the ordered history.
func (l *Ledger) History() []models.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Record, len(l.history))
	copy(out, l.history)
	return out
}
