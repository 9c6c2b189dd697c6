package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cisystem/cisystem/internal/drafts"
	"github.com/cisystem/cisystem/internal/inventory"
	"github.com/cisystem/cisystem/internal/rbac"
	reporthttp "github.com/cisystem/cisystem/internal/reports/http"
	"github.com/cisystem/cisystem/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	ReportHandler    *reporthttp.Handler
	InventoryHandler *inventory.Handler
	DraftsHandler    *drafts.Handler
	RBACHandler      *rbac.Handler
	RBACMiddleware   rbac.Middleware
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.ReportHandler.MountRoutes(r, params.RBACMiddleware)
		params.InventoryHandler.MountRoutes(r, params.RBACMiddleware)
		params.DraftsHandler.MountRoutes(r, params.RBACMiddleware)
		params.RBACHandler.MountRoutes(r)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
