/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the envelope budgeting engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment (.env supported)
  2. Initialize SQLite store
  3. Wire the paycheck processor
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION (environment variables):
  PORT              HTTP server port (default: 8080)
  SQLITE_DB_PATH    SQLite database path (default: ./data/envelope.db)
                    Use ":memory:" for an in-memory database
  LOG_LEVEL         debug | info | warn | error (default: info)
  ALLOWED_ORIGINS   Comma-separated CORS origins

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketfold/envelope-engine/api"
	"github.com/pocketfold/envelope-engine/config"
	"github.com/pocketfold/envelope-engine/logging"
	"github.com/pocketfold/envelope-engine/paycheck"
	"github.com/pocketfold/envelope-engine/store/sqlite"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.ParseLevel(cfg.LogLevel), "server")

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize store
	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to initialize database", "path", cfg.SQLiteDBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Wire the paycheck pipeline and HTTP surface
	processor := paycheck.NewProcessor(store, nil, logger.WithComponent("paycheck"))
	handler := api.NewHandler(store, processor, logger.WithComponent("api"))
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "addr", "http://localhost:"+cfg.Port, "db", cfg.SQLiteDBPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
