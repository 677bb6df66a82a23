package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trumall/market/internal/catalog"
	"github.com/trumall/market/internal/models"
)

// ListProducts returns the catalog, optionally filtered by the q keyword.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("Failed to list products", "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// GetProduct returns a single item by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", "item_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}
