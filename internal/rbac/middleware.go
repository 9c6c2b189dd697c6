package rbac

import (
	"log/slog"
	"net/http"
)

// Middleware gates HTTP handlers on resolver capabilities.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// Require ensures the credential holds the given capability on the module.
func (m Middleware) Require(action Action, module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.Resolver == nil || !m.Resolver.Can(action, module) {
				if m.Logger != nil {
					m.Logger.Warn("capability denied",
						slog.String("module", module),
						slog.String("action", string(action)),
						slog.String("path", r.URL.Path))
				}
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireView gates a route on view capability.
func (m Middleware) RequireView(module string) func(http.Handler) http.Handler {
	return m.Require(ActionView, module)
}

// RequireCreate gates a route on create capability.
func (m Middleware) RequireCreate(module string) func(http.Handler) http.Handler {
	return m.Require(ActionCreate, module)
}

// RequireDelete gates a route on delete capability.
func (m Middleware) RequireDelete(module string) func(http.Handler) http.Handler {
	return m.Require(ActionDelete, module)
}
