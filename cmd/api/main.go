// Package main is the entry point for the Budget Ledger API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/infra/dependency"
	"github.com/budget-ledger/backend/internal/infra/storage"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Budget Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"backend", cfg.Storage.Backend,
	)

	store, err := storage.Open(cfg)
	if err != nil {
		slog.Error("Failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, store.Store, store.HealthCheck)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Reconciler.CommitTimeout)
	err = injector.Reconciler.Load(loadCtx)
	cancelLoad()
	if err != nil {
		slog.Error("Failed to load budget ledger", "error", err)
		os.Exit(1)
	}
	slog.Info("Budget ledger loaded", "categories", len(injector.Reconciler.Visible()))

	stopCleanup := make(chan struct{})
	go injector.RateLimiter.RunCleanup(stopCleanup)

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Let in-flight commits settle before the store is closed.
	if err := injector.Reconciler.Drain(ctx); err != nil {
		slog.Warn("Pending mutations did not settle before shutdown",
			"in_flight", injector.Reconciler.InFlight(),
			"error", err,
		)
	}

	slog.Info("Server exited properly")
}
