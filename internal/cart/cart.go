// Package cart keeps per-user shopping carts in memory. A cart is staging
// only: nothing in it touches a ledger until checkout turns its lines into
// buy transactions.
package cart

import (
	"errors"
	"sync"

	"github.com/trumall/market/internal/models"
)

var ErrNotInCart = errors.New("item not in cart")

// Line is one item with a quantity.
type Line struct {
	Item     models.Item `json:"item"`
	Quantity int64       `json:"quantity"`
}

// Cart is one user's cart. Guarded by its own lock so carts of unrelated
// users never serialize.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string // item IDs in first-added order
}

func newCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// Add puts one unit of item in the cart, incrementing the quantity if the
// item is already present. Returns the new quantity.
func (c *Cart) Add(item models.Item) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[item.ID]; ok {
		line.Quantity++
		return line.Quantity
	}
	c.lines[item.ID] = &Line{Item: item, Quantity: 1}
	c.order = append(c.order, item.ID)
	return 1
}

// Reduce removes one unit of the item, dropping the line when the last unit
// goes. Returns the remaining quantity.
func (c *Cart) Reduce(itemID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[itemID]
	if !ok {
		return 0, ErrNotInCart
	}
	line.Quantity--
	if line.Quantity <= 0 {
		c.removeLocked(itemID)
		return 0, nil
	}
	return line.Quantity, nil
}

// Remove drops the whole line for itemID.
func (c *Cart) Remove(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lines[itemID]; !ok {
		return ErrNotInCart
	}
	c.removeLocked(itemID)
	return nil
}

func (c *Cart) removeLocked(itemID string) {
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns a copy of the cart contents in first-added order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Carts hands out per-user carts, creating them lazily.
type Carts struct {
	mu     sync.RWMutex
	byUser map[string]*Cart
}

// NewCarts creates an empty cart registry.
func NewCarts() *Carts {
	return &Carts{byUser: make(map[string]*Cart)}
}

// ForUser returns the cart for userID, creating it if needed.
func (cs *Carts) ForUser(userID string) *Cart {
	cs.mu.RLock()
	c, ok := cs.byUser[userID]
	cs.mu.RUnlock()
	if ok {
		return c
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if c, ok := cs.byUser[userID]; ok {
		return c
	}
	c = newCart()
	cs.byUser[userID] = c
	return c
}
