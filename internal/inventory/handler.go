package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cisystem/cisystem/internal/platform/httpx"
	"github.com/cisystem/cisystem/internal/rbac"
)

// Handler serves the stock alert endpoints.
type Handler struct {
	logger           *slog.Logger
	service          *Service
	defaultThreshold int
	defaultDays      int
}

// NewHandler constructs the alerts handler. Defaults apply when the caller
// omits the threshold or day-window query parameters.
func NewHandler(logger *slog.Logger, service *Service, defaultThreshold, defaultDays int) *Handler {
	return &Handler{
		logger:           logger,
		service:          service,
		defaultThreshold: defaultThreshold,
		defaultDays:      defaultDays,
	}
}

// MountRoutes registers the alert endpoints under /alerts, gated on
// inventory view capability.
func (h *Handler) MountRoutes(r chi.Router, mw rbac.Middleware) {
	r.Route("/alerts", func(r chi.Router) {
		r.Use(mw.RequireView(rbac.ModuleInventory))
		r.Get("/low-stock", h.lowStock)
		r.Get("/expiry", h.expiry)
	})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	threshold, ok := positiveIntQuery(r, "threshold", h.defaultThreshold)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "threshold must be a positive integer")
		return
	}
	items, err := h.service.LowStock(r.Context(), threshold)
	if err != nil {
		h.logger.Error("low stock alerts", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Upstream Error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) expiry(w http.ResponseWriter, r *http.Request) {
	days, ok := positiveIntQuery(r, "days", h.defaultDays)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "days must be a positive integer")
		return
	}
	items, err := h.service.Expiring(r.Context(), days)
	if err != nil {
		h.logger.Error("expiry alerts", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Upstream Error", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func positiveIntQuery(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
