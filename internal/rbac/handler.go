package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cisystem/cisystem/internal/cisapi"
	"github.com/cisystem/cisystem/internal/platform/httpx"
)

// Handler exposes the resolver over HTTP: the identity view and an explicit
// reload trigger.
type Handler struct {
	logger   *slog.Logger
	resolver *Resolver
}

// NewHandler constructs the permissions handler.
func NewHandler(logger *slog.Logger, resolver *Resolver) *Handler {
	return &Handler{logger: logger, resolver: resolver}
}

// MountRoutes registers the identity endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/permissions/reload", h.reload)
}

type meResponse struct {
	User        *cisapi.User            `json:"user"`
	Admin       bool                    `json:"admin"`
	Permissions []cisapi.UserPermission `json:"permissions"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user := h.resolver.Identity()
	if user == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Identity Unavailable",
			"no identity snapshot is loaded; the upstream API may be unreachable")
		return
	}
	perms := h.resolver.Permissions()
	if perms == nil {
		perms = []cisapi.UserPermission{}
	}
	httpx.JSON(w, http.StatusOK, meResponse{
		User:        user,
		Admin:       h.resolver.IsAdmin(),
		Permissions: perms,
	})
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	h.resolver.Reload(r.Context())
	if h.resolver.Identity() == nil {
		h.logger.Warn("permission reload left the resolver without identity")
		httpx.Problem(w, http.StatusBadGateway, "Upstream Error",
			"permission reload failed; capabilities are now denied until the next successful reload")
		return
	}
	h.logger.Info("permissions reloaded",
		slog.Int("records", len(h.resolver.Permissions())),
		slog.Bool("admin", h.resolver.IsAdmin()))
	httpx.JSON(w, http.StatusOK, map[string]any{"reloaded": true})
}
