// Package api exposes the marketplace over plain JSON HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trumall/market/internal/auth"
	"github.com/trumall/market/internal/cart"
	"github.com/trumall/market/internal/catalog"
	"github.com/trumall/market/internal/ledger"
	"github.com/trumall/market/internal/market"
	"github.com/trumall/market/internal/middleware"
	"github.com/trumall/market/internal/storage"
)

// Handler wires the HTTP surface to the core services.
type Handler struct {
	store   storage.Store
	creds   auth.Authenticator
	tokens  *auth.JWTManager
	catalog *catalog.Service
	ledgers *ledger.Registry
	engine  *market.Engine
	carts   *cart.Carts
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	store storage.Store,
	creds auth.Authenticator,
	tokens *auth.JWTManager,
	cat *catalog.Service,
	ledgers *ledger.Registry,
	engine *market.Engine,
	carts *cart.Carts,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   store,
		creds:   creds,
		tokens:  tokens,
		catalog: cat,
		ledgers: ledgers,
		engine:  engine,
		carts:   carts,
		logger:  logger,
	}
}

// Routes builds the router. Catalog and auth endpoints are public; account,
// trade and cart endpoints sit behind the Bearer-token middleware.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.GetProduct).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	authed := r.PathPrefix("/").Subrouter()
	authed.Use(middleware.RequireAuth(h.tokens))
	authed.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	authed.HandleFunc("/account", h.Account).Methods(http.MethodGet)
	authed.HandleFunc("/account/history", h.History).Methods(http.MethodGet)
	authed.HandleFunc("/buy", h.Buy).Methods(http.MethodPost)
	authed.HandleFunc("/sell", h.Sell).Methods(http.MethodPost)
	authed.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	authed.HandleFunc("/cart/items", h.AddToCart).Methods(http.MethodPost)
	authed.HandleFunc("/cart/items/{id}", h.RemoveFromCart).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/checkout", h.Checkout).Methods(http.MethodPost)

	return r
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
