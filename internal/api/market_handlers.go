package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/trumall/market/internal/catalog"
	"github.com/trumall/market/internal/ledger"
	"github.com/trumall/market/internal/middleware"
	"github.com/trumall/market/internal/models"
)

type buyRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Fee      int64  `json:"fee"`
}

type sellRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	Fee         int64  `json:"fee"`
}

type tradeResponse struct {
	Transaction *models.Transaction `json:"transaction"`
	Item        *models.Item        `json:"item,omitempty"`
	Balance     int64               `json:"balance"`
	Currency    string              `json:"currency"`
}

// Buy purchases an item from the catalog, debiting price*quantity+fee.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req buyRequest
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

	l, ok := h.ledgers.Get(userID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "account not found")
		return
	}

	tx, err := h.engine.BeginBuy(userID, item, req.Quantity, req.Fee)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.engine.ExecuteBuy(tx, l); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			respondWithError(w, http.StatusUnprocessableEntity, "insufficient funds")
			return
		}
		h.logger.Error("Buy failed", "user_id", userID, "item_id", item.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "transaction failed")
		return
	}

	balance := l.Balance()
	respondWithJSON(w, http.StatusCreated, tradeResponse{
		Transaction: tx,
		Balance:     balance.Amount(),
		Currency:    balance.Currency().Code,
	})
}

// Sell lists a new item in the catalog and credits price*quantity-fee.
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req sellRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "item name required")
		return
	}
	if req.Price < 0 {
		respondWithError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	l, ok := h.ledgers.Get(userID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "account not found")
		return
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SellerID:    userID,
		CreatedAt:   time.Now().Unix(),
	}

	tx, err := h.engine.BeginSell(userID, item, req.Quantity, req.Fee)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	// The listing is registered before the proceeds settle; a credit
	// failure below leaves the item on sale, which is acceptable since
	// credits only fail on configuration-level currency mismatches.
	if err := h.catalog.Add(r.Context(), item); err != nil {
		h.logger.Error("Failed to list item", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list item")
		return
	}
	tx.ItemID = item.ID

	if err := h.engine.ExecuteSell(tx, l); err != nil {
		h.logger.Error("Sell failed", "user_id", userID, "item_id", item.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "transaction failed")
		return
	}

	balance := l.Balance()
	respondWithJSON(w, http.StatusCreated, tradeResponse{
		Transaction: tx,
		Item:        item,
		Balance:     balance.Amount(),
		Currency:    balance.Currency().Code,
	})
}

type accountResponse struct {
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// Account returns the authenticated user's balance.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	l, ok := h.ledgers.Get(userID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "account not found")
		return
	}

	balance := l.Balance()
	respondWithJSON(w, http.StatusOK, accountResponse{
		UserID:    userID,
		Balance:   balance.Amount(),
		Currency:  balance.Currency().Code,
		Formatted: balance.Display(),
	})
}

// History returns the ordered transaction history of the account.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	l, ok := h.ledgers.Get(userID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "account not found")
		return
	}

	records := l.History()
	if records == nil {
		records = []models.Record{}
	}
	respondWithJSON(w, http.StatusOK, records)
}
