package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trumall/market/internal/cart"
	"github.com/trumall/market/internal/catalog"
	"github.com/trumall/market/internal/ledger"
	"github.com/trumall/market/internal/middleware"
	"github.com/trumall/market/internal/models"
)

type cartResponse struct {
	Lines []cart.Line `json:"lines"`
	Total int64       `json:"total"`
}

// GetCart returns the user's cart contents and running total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.ForUser(middleware.GetUserID(r.Context()))

	lines := c.Lines()
	var total int64
	for _, line := range lines {
		total += line.Item.Price * line.Quantity
	}
	respondWithJSON(w, http.StatusOK, cartResponse{Lines: lines, Total: total})
}

type addToCartRequest struct {
	ItemID string `json:"item_id"`
}

// AddToCart puts one unit of a catalog item in the cart; repeating the call
// increments the quantity.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	item, err := h.catalog.Get(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", "item_id", req.ItemID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	quantity := h.carts.ForUser(userID).Add(*item)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"item_id":  item.ID,
		"quantity": quantity,
	})
}

// RemoveFromCart reduces a cart line by one unit, or removes it entirely
// with ?all=true.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	itemID := mux.Vars(r)["id"]
	c := h.carts.ForUser(userID)

	var (
		remaining int64
		err       error
	)
	if r.URL.Query().Get("all") == "true" {
		err = c.Remove(itemID)
	} else {
		remaining, err = c.Reduce(itemID)
	}
	if err != nil {
		respondWithError(w, http.StatusNotFound, "item not in cart")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"item_id":  itemID,
		"quantity": remaining,
	})
}

type checkoutLineResult struct {
	ItemID        string        `json:"item_id"`
	Quantity      int64         `json:"quantity"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Status        models.Status `json:"status"`
	Error         string        `json:"error,omitempty"`
}

type checkoutResponse struct {
	Results  []checkoutLineResult `json:"results"`
	Balance  int64                `json:"balance"`
	Currency string               `json:"currency"`
}

// Checkout buys every cart line in order, stopping at the first failure.
// Purchased lines leave the cart; a failed line and everything after it stay.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	l, ok := h.ledgers.Get(userID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "account not found")
		return
	}

	c := h.carts.ForUser(userID)
	lines := c.Lines()
	if len(lines) == 0 {
		respondWithError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	results := make([]checkoutLineResult, 0, len(lines))
	for _, line := range lines {
		item := line.Item

		tx, err := h.engine.BeginBuy(userID, &item, line.Quantity, 0)
		if err != nil {
			results = append(results, checkoutLineResult{
				ItemID:   item.ID,
				Quantity: line.Quantity,
				Status:   models.StatusFailed,
				Error:    err.Error(),
			})
			break
		}

		if err := h.engine.ExecuteBuy(tx, l); err != nil {
			result := checkoutLineResult{
				ItemID:        item.ID,
				Quantity:      line.Quantity,
				TransactionID: tx.ID,
				Status:        tx.Status,
				Error:         err.Error(),
			}
			if !errors.Is(err, ledger.ErrInsufficientFunds) {
				h.logger.Error("Checkout line failed", "user_id", userID, "item_id", item.ID, "error", err)
			}
			results = append(results, result)
			break
		}

		c.Remove(item.ID)
		results = append(results, checkoutLineResult{
			ItemID:        item.ID,
			Quantity:      line.Quantity,
			TransactionID: tx.ID,
			Status:        tx.Status,
		})
	}

	balance := l.Balance()
	respondWithJSON(w, http.StatusOK, checkoutResponse{
		Results:  results,
		Balance:  balance.Amount(),
		Currency: balance.Currency().Code,
	})
}
