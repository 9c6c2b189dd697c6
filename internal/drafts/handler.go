package drafts

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cisystem/cisystem/internal/platform/httpx"
	"github.com/cisystem/cisystem/internal/rbac"
)

const maxDraftBytes = 256 << 10

// Handler serves the draft endpoints.
type Handler struct {
	logger *slog.Logger
	store  *Store
}

// NewHandler constructs the drafts handler.
func NewHandler(logger *slog.Logger, store *Store) *Handler {
	return &Handler{logger: logger, store: store}
}

// MountRoutes registers the draft endpoints under /drafts. Saving requires
// sales create capability; reading requires sales view.
func (h *Handler) MountRoutes(r chi.Router, mw rbac.Middleware) {
	r.Route("/drafts", func(r chi.Router) {
		r.With(mw.RequireView(rbac.ModuleSales)).Get("/", h.list)
		r.With(mw.RequireView(rbac.ModuleSales)).Get("/{id}", h.get)
		r.With(mw.RequireCreate(rbac.ModuleSales)).Post("/", h.save)
		r.With(mw.RequireCreate(rbac.ModuleSales)).Delete("/{id}", h.remove)
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes+1))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unreadable body")
		return
	}
	if len(payload) == 0 || len(payload) > maxDraftBytes {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "draft payload must be 1 byte to 256 KiB of JSON")
		return
	}
	draft, err := h.store.Save(r.Context(), payload)
	if err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, draft)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list drafts", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if all == nil {
		all = []Draft{}
	}
	httpx.JSON(w, http.StatusOK, all)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	draft, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "draft does not exist or has expired")
		return
	}
	if err != nil {
		h.logger.Error("get draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "draft does not exist or has expired")
		return
	}
	if err != nil {
		h.logger.Error("delete draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
