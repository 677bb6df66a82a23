package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/trumall/market/internal/api"
	"github.com/trumall/market/internal/auth"
	"github.com/trumall/market/internal/cart"
	"github.com/trumall/market/internal/catalog"
	"github.com/trumall/market/internal/config"
	"github.com/trumall/market/internal/ledger"
	"github.com/trumall/market/internal/market"
	"github.com/trumall/market/internal/storage/sqlite"
	"github.com/trumall/market/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.UsingDevSecret() {
		slog.Warn("MARKET_JWT_SECRET not set, using insecure development key")
	}

	dsn := cfg.DBPath
	if dsn == "" {
		dsn = sqlite.MemoryDSN
	}
	store, err := sqlite.New(dsn)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "dsn", dsn)

	cat := catalog.NewService(store)
	if err := cat.Seed(context.Background(), catalog.DefaultInventory()); err != nil {
		slog.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}

	creds := auth.NewCredentialStore(store)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	ledgers := ledger.NewRegistry(cfg.OpeningBalance, cfg.Currency)
	engine := market.NewEngine(cfg.Currency, market.NewSlogJournal(slog.Default()))
	carts := cart.NewCarts()

	handler := api.NewHandler(store, creds, tokens, cat, ledgers, engine, carts, slog.Default())

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Marketplace server starting", "address", addr, "currency", cfg.Currency)
	if err := http.ListenAndServe(addr, handler.Routes()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
