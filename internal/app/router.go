package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-ops/meridian/internal/auth"
	"github.com/meridian-ops/meridian/internal/clients"
	"github.com/meridian-ops/meridian/internal/expenses"
	"github.com/meridian-ops/meridian/internal/invoices"
	"github.com/meridian-ops/meridian/internal/observability"
	"github.com/meridian-ops/meridian/internal/projects"
	"github.com/meridian-ops/meridian/internal/shared"
	"github.com/meridian-ops/meridian/internal/subscriptions"
	trendshttp "github.com/meridian-ops/meridian/internal/trends/http"
	"github.com/meridian-ops/meridian/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler          *auth.Handler
	ClientsHandler       *clients.Handler
	ProjectsHandler      *projects.Handler
	InvoicesHandler      *invoices.Handler
	ExpensesHandler      *expenses.Handler
	SubscriptionsHandler *subscriptions.Handler
	TrendsHandler        *trendshttp.Handler
	JobsHandler          *jobs.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession)
		if params.ClientsHandler != nil {
			params.ClientsHandler.MountRoutes(r)
		}
		if params.ProjectsHandler != nil {
			params.ProjectsHandler.MountRoutes(r)
		}
		if params.InvoicesHandler != nil {
			params.InvoicesHandler.MountRoutes(r)
		}
		if params.ExpensesHandler != nil {
			params.ExpensesHandler.MountRoutes(r)
		}
		if params.SubscriptionsHandler != nil {
			params.SubscriptionsHandler.MountRoutes(r)
		}
		if params.TrendsHandler != nil {
			params.TrendsHandler.MountRoutes(r)
		}
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
