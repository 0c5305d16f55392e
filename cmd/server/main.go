package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"imperium-server/internal/ledger"
	"imperium-server/internal/middleware"
	"imperium-server/internal/server"
	"imperium-server/internal/shared/config"
	"imperium-server/internal/shared/database"
	"imperium-server/internal/shared/logger"
	"imperium-server/internal/shared/redis"
	"imperium-server/internal/snapshot"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	logger.Init()

	cfg := config.GlobalConfig
	mainLogger := slog.With("component", "main")
	mainLogger.Info("Starting Imperium companion server",
		"environment", cfg.Server.Environment,
		"storage_backend", cfg.Storage.Backend,
	)

	store, cleanup, err := setupStorage(mainLogger)
	if err != nil {
		mainLogger.Error("Failed to initialize snapshot storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	gameLedger, err := ledger.New(store, slog.Default())
	if err != nil {
		mainLogger.Error("Failed to initialize game ledger", "error", err)
		os.Exit(1)
	}

	routes := server.NewRoutes(gameLedger, store, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		Enabled:           cfg.RateLimit.Enabled,
		TrustProxy:        cfg.Server.Environment == "production",
	})
	corsMiddleware := middleware.NewCORS()

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		mainLogger.Info("Server listening", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	mainLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		mainLogger.Error("Server shutdown failed", "error", err)
	}

	// Drain deferred accrual and pending snapshot saves before exit.
	gameLedger.Close()

	mainLogger.Info("Server stopped")
}

// setupStorage connects the configured snapshot backend. The returned cleanup
// closes the underlying connection; it is a no-op for the memory backend.
func setupStorage(logger *slog.Logger) (snapshot.Store, func(), error) {
	cfg := config.GlobalConfig

	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.Connect()
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return snapshot.NewPostgresStore(db, slog.Default()), func() { db.Close() }, nil

	case "redis":
		client, err := redis.Connect()
		if err != nil {
			return nil, nil, err
		}
		return snapshot.NewRedisStore(client, slog.Default()), func() { _ = client.Close() }, nil

	default:
		logger.Info("Using in-memory snapshot storage, state will not survive restarts")
		return snapshot.NewMemoryStore(), func() {}, nil
	}
}
