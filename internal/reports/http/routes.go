package reporthttp

import (
	"github.com/go-chi/chi/v5"

	"github.com/cisystem/cisystem/internal/rbac"
)

// MountRoutes registers the report endpoints, all gated on report view
// capability.
func (h *Handler) MountRoutes(r chi.Router, mw rbac.Middleware) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(mw.RequireView(rbac.ModuleReports))
		r.Get("/daily", h.daily)
		r.Get("/monthly", h.monthly)
		r.Get("/yearly", h.yearly)
		r.Get("/weekly", h.weekly)
		r.Get("/top-products", h.topProducts)
		r.Get("/expense-breakdown", h.expenseBreakdown)
	})
	r.With(mw.RequireView(rbac.ModuleReports)).Get("/dashboard", h.dashboard)
}
