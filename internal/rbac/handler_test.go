package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cisystem/cisystem/internal/cisapi"
)

func newHandlerRouter(resolver *Resolver) http.Handler {
	r := chi.NewRouter()
	NewHandler(slog.Default(), resolver).MountRoutes(r)
	return r
}

func TestMeReturnsIdentityAndPermissions(t *testing.T) {
	src := &fakeSource{
		user: &cisapi.User{ID: "u1", Name: "Aye", Roles: []string{"STAFF"}},
		perms: []cisapi.UserPermission{
			{Module: "REPORTS", CanView: true},
		},
	}
	resolver := NewResolver(src, nil)
	resolver.Load(context.Background())

	rec := httptest.NewRecorder()
	newHandlerRouter(resolver).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"admin":false`)
	require.Contains(t, body, `"REPORTS"`)
}

func TestMeWithoutSnapshotIs503(t *testing.T) {
	resolver := NewResolver(&fakeSource{userErr: errors.New("down")}, nil)
	resolver.Load(context.Background())

	rec := httptest.NewRecorder()
	newHandlerRouter(resolver).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	src := &fakeSource{user: &cisapi.User{ID: "u1"}}
	resolver := NewResolver(src, nil)
	resolver.Load(context.Background())
	require.False(t, resolver.CanView(ModuleReports))

	src.perms = []cisapi.UserPermission{{Module: "REPORTS", CanView: true}}

	rec := httptest.NewRecorder()
	newHandlerRouter(resolver).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/permissions/reload", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resolver.CanView(ModuleReports))
}

func TestReloadFailureReports502AndFailsClosed(t *testing.T) {
	src := &fakeSource{
		user:  &cisapi.User{ID: "u1", Roles: []string{AdminRole}},
		perms: nil,
	}
	resolver := NewResolver(src, nil)
	resolver.Load(context.Background())
	require.True(t, resolver.IsAdmin())

	src.userErr = errors.New("upstream down")

	rec := httptest.NewRecorder()
	newHandlerRouter(resolver).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/permissions/reload", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.False(t, resolver.IsAdmin())
}
