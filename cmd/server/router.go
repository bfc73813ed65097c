package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/appforge-api/internal/api"
	apiMiddleware "github.com/phrazzld/appforge-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.orchestrator, app.verifier, app.logger)
	statusHandler := api.NewStatusHandler(
		app.orchestrator,
		app.records,
		app.config.GitHub.Token != "",
		app.config.LLM.GeminiAPIKey != "",
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/task", taskHandler.SubmitTask)
	})

	// Auxiliary read-only status endpoints
	r.Get("/", statusHandler.Banner)
	r.Get("/health", statusHandler.Health)
	r.Get("/tasks", statusHandler.ListTasks)

	return r
}
