// Package main implements the entry point for the appforge API server,
// which accepts externally submitted build tasks, generates web apps via
// an LLM backend, publishes them to GitHub, and notifies the caller's
// evaluation endpoint, all under a hard wall-clock deadline.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/platform/logger"
)

// main is the entry point for the appforge-api server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the assembled application and any initialization error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"audit_db_configured", cfg.Database.URL != "",
		"llm_configured", cfg.LLM.GeminiAPIKey != "")

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if db != nil {
		if err := runMigrations(db, appLogger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	app, err := newApplication(context.Background(), cfg, appLogger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble application: %w", err)
	}

	return app, nil
}
