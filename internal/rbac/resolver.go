package rbac

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/cisystem/cisystem/internal/cisapi"
)

// Source supplies identity and permission records for the resolver.
type Source interface {
	Me(ctx context.Context) (*cisapi.User, error)
	MyPermissions(ctx context.Context) ([]cisapi.UserPermission, error)
}

// snapshot is an immutable identity + permission view. Readers always see a
// complete snapshot; Load swaps the pointer wholesale, never mutates one.
type snapshot struct {
	user    *cisapi.User
	records []cisapi.UserPermission
	perms   map[string]cisapi.UserPermission
}

func emptySnapshot() *snapshot {
	return &snapshot{perms: map[string]cisapi.UserPermission{}}
}

func buildSnapshot(user *cisapi.User, records []cisapi.UserPermission) *snapshot {
	perms := make(map[string]cisapi.UserPermission, len(records))
	// Last record wins when the server returns duplicate modules.
	for _, rec := range records {
		perms[NormalizeModule(rec.Module)] = rec
	}
	return &snapshot{user: user, records: records, perms: perms}
}

// Resolver answers capability queries against the most recent snapshot.
type Resolver struct {
	source Source
	logger *slog.Logger
	snap   atomic.Pointer[snapshot]
}

// NewResolver constructs a Resolver that starts with no identity and no
// permissions.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	r := &Resolver{source: source, logger: logger}
	r.snap.Store(emptySnapshot())
	return r
}

// Load fetches identity and permissions and atomically replaces the current
// snapshot. On fetch failure the empty snapshot is installed instead: the
// resolver fails closed rather than surfacing the error to capability
// queries. In-flight readers keep observing the previous snapshot until the
// swap completes.
func (r *Resolver) Load(ctx context.Context) {
	user, err := r.source.Me(ctx)
	if err != nil {
		r.failClosed("identity", err)
		return
	}
	records, err := r.source.MyPermissions(ctx)
	if err != nil {
		r.failClosed("permissions", err)
		return
	}
	r.snap.Store(buildSnapshot(user, records))
}

// Reload is an explicit re-fetch; both identity and permissions are replaced
// together.
func (r *Resolver) Reload(ctx context.Context) {
	r.Load(ctx)
}

func (r *Resolver) failClosed(what string, err error) {
	if r.logger != nil {
		r.logger.Warn("permission load failed, failing closed",
			slog.String("fetch", what), slog.Any("error", err))
	}
	r.snap.Store(emptySnapshot())
}

// Identity returns the loaded user, or nil when none is available.
func (r *Resolver) Identity() *cisapi.User {
	return r.snap.Load().user
}

// Permissions returns the raw permission records of the current snapshot.
func (r *Resolver) Permissions() []cisapi.UserPermission {
	return r.snap.Load().records
}

// IsAdmin reports whether the loaded identity carries the admin role.
func (r *Resolver) IsAdmin() bool {
	user := r.snap.Load().user
	if user == nil {
		return false
	}
	for _, role := range user.Roles {
		if role == AdminRole {
			return true
		}
	}
	return false
}

// Can answers a capability query. Admin short-circuits before the per-module
// lookup; an absent module record resolves to false.
func (r *Resolver) Can(action Action, module string) bool {
	if r.IsAdmin() {
		return true
	}
	rec, ok := r.snap.Load().perms[NormalizeModule(module)]
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return rec.CanView
	case ActionCreate:
		return rec.CanCreate
	case ActionEdit:
		return rec.CanEdit
	case ActionDelete:
		return rec.CanDelete
	default:
		return false
	}
}

// CanView reports view capability on the module.
func (r *Resolver) CanView(module string) bool { return r.Can(ActionView, module) }

// CanCreate reports create capability on the module.
func (r *Resolver) CanCreate(module string) bool { return r.Can(ActionCreate, module) }

// CanEdit reports edit capability on the module.
func (r *Resolver) CanEdit(module string) bool { return r.Can(ActionEdit, module) }

// CanDelete reports delete capability on the module.
func (r *Resolver) CanDelete(module string) bool { return r.Can(ActionDelete, module) }
