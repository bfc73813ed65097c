package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/appforge-api/internal/auth"
	"github.com/phrazzld/appforge-api/internal/config"
	"github.com/phrazzld/appforge-api/internal/generation"
	"github.com/phrazzld/appforge-api/internal/notify"
	"github.com/phrazzld/appforge-api/internal/platform/gemini"
	"github.com/phrazzld/appforge-api/internal/platform/github"
	"github.com/phrazzld/appforge-api/internal/platform/postgres"
	"github.com/phrazzld/appforge-api/internal/publish"
	"github.com/phrazzld/appforge-api/internal/roundstate"
	"github.com/phrazzld/appforge-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Collaborator interfaces
	verifier  *auth.SecretVerifier
	generator generation.Generator
	publisher publish.Publisher
	notifier  notify.Notifier
	audit     task.AuditStore

	// Pipeline state
	records      *roundstate.Store
	orchestrator *task.Orchestrator
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and the (possibly nil) audit database connection that must be
// established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.verifier, err = auth.NewSecretVerifier(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secret verifier: %w", err)
	}

	app.generator, err = gemini.NewGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	app.publisher, err = github.NewPublisher(
		logger.With("component", "publisher"),
		cfg.GitHub,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize publisher: %w", err)
	}

	app.notifier = notify.NewHTTPNotifier(notify.Config{
		Attempts: cfg.Pipeline.NotifyAttempts,
		Delay:    time.Duration(cfg.Pipeline.NotifyDelaySeconds) * time.Second,
		Timeout:  time.Duration(cfg.Pipeline.NotifyTimeoutSeconds) * time.Second,
	})

	if db != nil {
		app.audit = postgres.NewAuditStore(db)
	} else {
		app.audit = task.NoopAuditStore{}
	}

	app.records = roundstate.NewStore()

	app.orchestrator, err = task.NewOrchestrator(
		app.generator,
		app.publisher,
		app.records,
		app.notifier,
		app.audit,
		logger.With("component", "orchestrator"),
		task.OrchestratorConfig{
			TotalCeiling: time.Duration(cfg.Pipeline.TotalCeilingSeconds) * time.Second,
			StageCeiling: time.Duration(cfg.Pipeline.StageCeilingSeconds) * time.Second,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orchestrator: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
