package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"benchgate/internal"
	"benchgate/internal/errors"
	"benchgate/internal/validation"
	"benchgate/ports"
)

// App is the HTTP surface of the validation service: file upload
// validation plus read access to the run ledger.
type App struct {
	router *chi.Mux
	runner *validation.Runner
	opts   validation.Options
	ledger ports.RunLedger
	logger *internal.Logger
}

// Config holds HTTP application configuration.
type Config struct {
	Port string
}

// NewApp creates the HTTP application. The ledger may be nil, in which
// case the run-history endpoints report an empty ledger.
func NewApp(opts validation.Options, ledger ports.RunLedger) *App {
	app := &App{
		router: chi.NewRouter(),
		runner: validation.NewRunner(),
		opts:   opts,
		ledger: ledger,
		logger: internal.NewDefaultLogger(),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/validate", a.handleValidate)
		r.Get("/runs", a.handleListRuns)
		r.Get("/runs/{id}", a.handleGetRun)
		r.Get("/summary", a.handleSummary)
	})
}

// Router exposes the configured handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port.
func (a *App) Start(config Config) error {
	addr := ":" + config.Port
	a.logger.Info("Validation service listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondJSONError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"error": fmt.Sprintf("internal error: %v", err),
		"code":  errors.GetCode(err),
	})
}
