package reports

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/cisystem/cisystem/internal/cisapi"
)

type fakeAPI struct {
	mu          sync.Mutex
	reports     map[string]*cisapi.DailySalesReport
	expenses    []cisapi.Expense
	reportCalls int
	inFlight    int
	maxInFlight int
	reportErr   error
	expenseErr  error
}

func (f *fakeAPI) DailySalesReport(ctx context.Context, date string) (*cisapi.DailySalesReport, error) {
	f.mu.Lock()
	f.reportCalls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return f.reports[date], nil
}

func (f *fakeAPI) Expenses(ctx context.Context, filter cisapi.ExpenseFilter) ([]cisapi.Expense, error) {
	if f.expenseErr != nil {
		return nil, f.expenseErr
	}
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

func newTestService(t *testing.T, api *fakeAPI, fanout int) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(api, NewCache(client, time.Minute), ServiceConfig{FanOutLimit: fanout})
}

func TestMonthlyProfitRowsAndCaching(t *testing.T) {
	api := &fakeAPI{
		reports: map[string]*cisapi.DailySalesReport{
			"2024-02-01": {Date: "2024-02-01", TotalProfitAmount: 40},
			"2024-02-29": {Date: "2024-02-29", TotalProfitAmount: 10},
		},
		expenses: []cisapi.Expense{{Date: "2024-02-01", Amount: 15}},
	}
	svc := newTestService(t, api, 4)
	ctx := context.Background()

	rows, err := svc.MonthlyProfit(ctx, 2024, 2)
	require.NoError(t, err)
	require.Len(t, rows, 29)
	require.Equal(t, 25.0, rows[0].NetProfit)
	require.Equal(t, 10.0, rows[28].NetProfit)
	require.Equal(t, 29, api.reportCalls)

	// Second call must come from cache.
	rows, err = svc.MonthlyProfit(ctx, 2024, 2)
	require.NoError(t, err)
	require.Len(t, rows, 29)
	require.Equal(t, 29, api.reportCalls)

	// Bumping the version forces a refresh.
	require.NoError(t, svc.InvalidateCache(ctx))
	_, err = svc.MonthlyProfit(ctx, 2024, 2)
	require.NoError(t, err)
	require.Equal(t, 58, api.reportCalls)
}

func TestFanOutIsBounded(t *testing.T) {
	api := &fakeAPI{reports: map[string]*cisapi.DailySalesReport{}}
	svc := newTestService(t, api, 3)

	_, err := svc.MonthlyProfit(context.Background(), 2024, 1)
	require.NoError(t, err)
	require.Equal(t, 31, api.reportCalls)
	require.LessOrEqual(t, api.maxInFlight, 3)
}

func TestWeeklyTrendScenario(t *testing.T) {
	api := &fakeAPI{reports: map[string]*cisapi.DailySalesReport{}}
	profits := []float64{10, 20, 15, 0, 5, 30, 12}
	days := []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05", "2024-05-06", "2024-05-07"}
	for i, d := range days {
		api.reports[d] = &cisapi.DailySalesReport{Date: d, TotalProfitAmount: profits[i]}
	}
	api.expenses = []cisapi.Expense{
		{Date: "2024-05-03", Amount: 8},
	}
	svc := newTestService(t, api, 4)

	rows, err := svc.WeeklyTrend(context.Background(), "2024-05-07")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	nets := make([]float64, 0, 7)
	labels := make([]string, 0, 7)
	for _, r := range rows {
		nets = append(nets, r.NetProfit)
		labels = append(labels, r.Label)
	}
	require.Equal(t, []float64{10, 20, 7, 0, 5, 30, 12}, nets)
	require.Equal(t, days, labels)
}

func TestYearlyProfitTwelveRows(t *testing.T) {
	api := &fakeAPI{
		reports: map[string]*cisapi.DailySalesReport{
			"2023-01-05": {Date: "2023-01-05", TotalProfitAmount: 100},
			"2023-06-10": {Date: "2023-06-10", TotalProfitAmount: 60},
		},
		expenses: []cisapi.Expense{
			{Date: "2023-01-31", Amount: 20},
			{Date: "2023-06-01", Amount: 10},
		},
	}
	svc := newTestService(t, api, 16)

	rows, err := svc.YearlyProfit(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, rows, 12)
	require.Equal(t, 80.0, rows[0].NetProfit)
	require.Equal(t, 50.0, rows[5].NetProfit)
	require.Equal(t, 365, api.reportCalls)
}

func TestFetchFailureSurfacesOnce(t *testing.T) {
	api := &fakeAPI{reportErr: errors.New("upstream 502")}
	svc := newTestService(t, api, 4)

	_, err := svc.DailyProfit(context.Background(), "2024-05-07")
	require.Error(t, err)
	require.Contains(t, err.Error(), "upstream 502")
}

func TestDashboardLegsDegradeIndependently(t *testing.T) {
	api := &fakeAPI{
		reports: map[string]*cisapi.DailySalesReport{
			"2024-05-07": {
				Date:              "2024-05-07",
				TotalProfitAmount: 12,
				Items: []cisapi.DailySalesReportItem{
					{ProductName: "A", QuantitySold: 2},
				},
			},
		},
		expenseErr: errors.New("expenses query down"),
	}
	svc := newTestService(t, api, 4)

	dash := svc.LoadDashboard(context.Background(), "2024-05-07")
	require.Equal(t, "2024-05-07", dash.Date)
	// Expense-backed legs fell back to their zero values.
	require.Empty(t, dash.Expenses)
	require.Zero(t, dash.Today)
	// The products leg has no expense dependency and still populated.
	require.Len(t, dash.Products, 1)
}

func TestMonthValidation(t *testing.T) {
	svc := newTestService(t, &fakeAPI{}, 4)
	_, err := svc.MonthlyProfit(context.Background(), 2024, 13)
	require.Error(t, err)
}
