package reporthttp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cisystem/cisystem/internal/cisapi"
	"github.com/cisystem/cisystem/internal/rbac"
	"github.com/cisystem/cisystem/internal/reports"
)

type fakeAPI struct {
	reports  map[string]*cisapi.DailySalesReport
	expenses []cisapi.Expense
}

func (f *fakeAPI) DailySalesReport(ctx context.Context, date string) (*cisapi.DailySalesReport, error) {
	return f.reports[date], nil
}

func (f *fakeAPI) Expenses(ctx context.Context, filter cisapi.ExpenseFilter) ([]cisapi.Expense, error) {
	var out []cisapi.Expense
	for _, e := range f.expenses {
		if filter.Date != "" && e.Date != filter.Date {
			continue
		}
		if filter.From != "" && e.Date < filter.From {
			continue
		}
		if filter.To != "" && e.Date > filter.To {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type adminSource struct{}

func (adminSource) Me(ctx context.Context) (*cisapi.User, error) {
	return &cisapi.User{ID: "u1", Roles: []string{"ADMIN"}}, nil
}

func (adminSource) MyPermissions(ctx context.Context) ([]cisapi.UserPermission, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, api *fakeAPI) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	service := reports.NewService(api, nil, reports.ServiceConfig{FanOutLimit: 4})
	handler := NewHandler(logger, service).WithClock(func() time.Time {
		return time.Date(2024, time.May, 7, 12, 0, 0, 0, time.UTC)
	})

	resolver := rbac.NewResolver(adminSource{}, nil)
	resolver.Load(context.Background())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.MountRoutes(r, rbac.Middleware{Resolver: resolver})
	})
	return r
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func get(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestDailyDefaultsToToday(t *testing.T) {
	api := &fakeAPI{reports: map[string]*cisapi.DailySalesReport{
		"2024-05-07": {Date: "2024-05-07", TotalProfitAmount: 12},
	}}
	rec := get(t, newTestRouter(t, api), "/api/reports/daily")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"netProfit":12`)
}

func TestDailyRejectsMalformedDate(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeAPI{}), "/api/reports/daily?date=07-05-2024")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthlyJSONAndCSV(t *testing.T) {
	api := &fakeAPI{reports: map[string]*cisapi.DailySalesReport{}}
	router := newTestRouter(t, api)

	rec := get(t, router, "/api/reports/monthly?year=2024&month=2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"rows"`)

	rec = get(t, router, "/api/reports/monthly?year=2024&month=2&format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "Gross Profit")

	rec = get(t, router, "/api/reports/monthly?year=2024&month=13")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthlyXLSXHasWorkbookContentType(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeAPI{}), "/api/reports/monthly?year=2024&month=3&format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
}

func TestWeeklySVG(t *testing.T) {
	rec := get(t, newTestRouter(t, &fakeAPI{}), "/api/reports/weekly?anchor=2024-05-07&format=svg")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "<svg")
}

func TestDashboardComposes(t *testing.T) {
	api := &fakeAPI{
		reports: map[string]*cisapi.DailySalesReport{
			"2024-05-07": {
				Date:              "2024-05-07",
				TotalProfitAmount: 30,
				Items:             []cisapi.DailySalesReportItem{{ProductName: "A", QuantitySold: 2}},
			},
		},
		expenses: []cisapi.Expense{{Date: "2024-05-07", Amount: 5}},
	}
	rec := get(t, newTestRouter(t, api), "/api/dashboard?date=2024-05-07")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"today"`)
	require.Contains(t, body, `"week"`)
	require.Contains(t, body, `"products"`)
}

func TestReportsRequireViewCapability(t *testing.T) {
	service := reports.NewService(&fakeAPI{}, nil, reports.ServiceConfig{})
	handler := NewHandler(slog.Default(), service)

	// Empty resolver: no identity was ever loaded.
	resolver := rbac.NewResolver(adminSource{}, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.MountRoutes(r, rbac.Middleware{Resolver: resolver})
	})

	rec := get(t, r, "/api/reports/daily?date=2024-05-07")
	require.Equal(t, http.StatusForbidden, rec.Code)
}
