/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the task billing server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Load billing configuration (defaults when missing)
  3. Open the task store (JSON file or SQLite)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080, env PORT)
  -config    Billing config path (default: ~/.config/tasklog/config.json)
  -tasks     JSON task file path (default: tasks.json)
  -db        SQLite database path; overrides -tasks when set
             (use ":memory:" for an in-memory database)
  -currency  ISO currency code for display (default: USD, env CURRENCY)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

EXAMPLES:
  # Run against the default JSON task file
  ./server -tasks=./tasks.json

  # Run against SQLite
  ./server -db=./tasks.db

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fluteroute/task-management/api"
	"github.com/fluteroute/task-management/config"
	"github.com/fluteroute/task-management/store/jsonfile"
	"github.com/fluteroute/task-management/store/sqlite"
	"github.com/fluteroute/task-management/tasklog"
)

func main() {
	// .env is optional; flags override env, env overrides defaults.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	configPath := flag.String("config", "", "billing config path (default ~/.config/tasklog/config.json)")
	tasksPath := flag.String("tasks", "tasks.json", "JSON task file path")
	dbPath := flag.String("db", "", "SQLite database path (overrides -tasks)")
	currency := flag.String("currency", envStr("CURRENCY", "USD"), "ISO currency code for display")
	flag.Parse()

	// Billing configuration
	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve config path: %v", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := cfg.Settings(); err != nil {
		log.Fatalf("Invalid billing configuration: %v", err)
	}

	// Task store
	var store tasklog.Store
	var closeStore func() error
	if *dbPath != "" {
		s, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		store, closeStore = s, s.Close
	} else {
		store, closeStore = jsonfile.New(*tasksPath), func() error { return nil }
	}
	defer closeStore()

	// Wire up
	service := tasklog.NewService(store, cfg)
	handler := api.NewHandler(service, cfg, *currency)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
