package ledger

import (
	"sync"

	"github.com/Rhymond/go-money"
)

// Registry maps user IDs to their ledgers. One ledger per identity, created
// at signup and never destroyed during a run. The registry lock only guards
// the map; balance operations take the per-ledger lock instead.
type Registry struct {
	mu      sync.RWMutex
	ledgers map[string]*Ledger

	opening  int64
	currency string
}

// NewRegistry creates a registry whose new ledgers start with the given
// opening balance in minor units of currency.
func NewRegistry(opening int64, currency string) *Registry {
	return &Registry{
		ledgers:  make(map[string]*Ledger),
		opening:  opening,
		currency: currency,
	}
}

// Create creates the ledger for userID and returns it. Creating an existing
// ledger is a no-op returning the existing one.
func (r *Registry) Create(userID string) *Ledger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.ledgers[userID]; ok {
		return l
	}
	l := New(userID, money.New(r.opening, r.currency))
	r.ledgers[userID] = l
	return l
}

// Get returns the ledger for userID, if one exists.
func (r *Registry) Get(userID string) (*Ledger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.ledgers[userID]
	return l, ok
}
