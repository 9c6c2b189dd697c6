package reports

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cisystem/cisystem/internal/cisapi"
	"github.com/cisystem/cisystem/internal/dates"
)

const defaultFanOutLimit = 8

// API is the slice of the upstream client the aggregation service uses.
type API interface {
	DailySalesReport(ctx context.Context, date string) (*cisapi.DailySalesReport, error)
	Expenses(ctx context.Context, filter cisapi.ExpenseFilter) ([]cisapi.Expense, error)
}

// ServiceConfig tunes the aggregation service.
type ServiceConfig struct {
	// FanOutLimit bounds concurrent per-day report fetches.
	FanOutLimit int
	Logger      *slog.Logger
}

// Service composes upstream fetches with the pure aggregation core and an
// optional cache for the derived rows. The raw per-day reports themselves
// are never cached; only derived output is.
type Service struct {
	api    API
	cache  *Cache
	fanout int
	logger *slog.Logger
}

// NewService wires the upstream API with the cache helper.
func NewService(api API, cache *Cache, cfg ServiceConfig) *Service {
	fanout := cfg.FanOutLimit
	if fanout <= 0 {
		fanout = defaultFanOutLimit
	}
	return &Service{api: api, cache: cache, fanout: fanout, logger: cfg.Logger}
}

// fetchRange fetches per-day reports for [from, from+days) with bounded
// concurrency. Results are indexed by day position, so ordering is stable
// regardless of completion order, and the group joins before returning.
func (s *Service) fetchRange(ctx context.Context, from string, days int) ([]*cisapi.DailySalesReport, error) {
	results := make([]*cisapi.DailySalesReport, days)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i := 0; i < days; i++ {
		date := dates.AddDaysISO(from, i)
		g.Go(func() error {
			report, err := s.api.DailySalesReport(ctx, date)
			if err != nil {
				return err
			}
			results[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DailyProfit derives the profit row for one date.
func (s *Service) DailyProfit(ctx context.Context, date string) (ProfitRow, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		report, err := s.api.DailySalesReport(ctx, date)
		if err != nil {
			return nil, err
		}
		expenses, err := s.api.Expenses(ctx, cisapi.ExpenseFilter{Date: date})
		if err != nil {
			return nil, err
		}
		return DayRow(date, report, expenses), nil
	}
	var row ProfitRow
	if err := s.cached(ctx, keyDaily(date), &row, loader); err != nil {
		return ProfitRow{}, err
	}
	return row, nil
}

// MonthlyProfit derives one row per calendar day of the month.
func (s *Service) MonthlyProfit(ctx context.Context, year, month int) ([]ProfitRow, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("reports: month %d out of range", month)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		from := dates.StartOfMonth(year, month)
		to := dates.EndOfMonth(year, month)
		reports, expenses, err := s.fetchPeriod(ctx, from, to, dates.DaysInMonth(year, month))
		if err != nil {
			return nil, err
		}
		return MonthRows(year, month, reports, expenses), nil
	}
	var rows []ProfitRow
	if err := s.cached(ctx, keyMonthly(year, month), &rows, loader); err != nil {
		return nil, err
	}
	return rows, nil
}

// YearlyProfit derives twelve month rows for the year.
func (s *Service) YearlyProfit(ctx context.Context, year int) ([]ProfitRow, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		from := dates.StartOfMonth(year, 1)
		to := dates.EndOfMonth(year, 12)
		days := 0
		for month := 1; month <= 12; month++ {
			days += dates.DaysInMonth(year, month)
		}
		reports, expenses, err := s.fetchPeriod(ctx, from, to, days)
		if err != nil {
			return nil, err
		}
		return YearRows(year, reports, expenses), nil
	}
	var rows []ProfitRow
	if err := s.cached(ctx, keyYearly(year), &rows, loader); err != nil {
		return nil, err
	}
	return rows, nil
}

// WeeklyTrend derives the rolling seven-day series ending at anchor.
func (s *Service) WeeklyTrend(ctx context.Context, anchor string) ([]ProfitRow, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		from := dates.AddDaysISO(anchor, -6)
		reports, expenses, err := s.fetchPeriod(ctx, from, anchor, 7)
		if err != nil {
			return nil, err
		}
		return WeekRows(anchor, reports, expenses), nil
	}
	var rows []ProfitRow
	if err := s.cached(ctx, keyWeekly(anchor), &rows, loader); err != nil {
		return nil, err
	}
	return rows, nil
}

// fetchPeriod fans out the per-day report fetches and issues one ranged
// expenses query for the whole period.
func (s *Service) fetchPeriod(ctx context.Context, from, to string, days int) ([]*cisapi.DailySalesReport, []cisapi.Expense, error) {
	var (
		reports  []*cisapi.DailySalesReport
		expenses []cisapi.Expense
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reports, err = s.fetchRange(ctx, from, days)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.api.Expenses(ctx, cisapi.ExpenseFilter{From: from, To: to})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return reports, expenses, nil
}

// TopSellingProducts ranks the date's report items by quantity sold.
func (s *Service) TopSellingProducts(ctx context.Context, date string, n int) ([]ProductRank, error) {
	report, err := s.api.DailySalesReport(ctx, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return []ProductRank{}, nil
	}
	return TopProducts(report.Items, n), nil
}

// CategoryBreakdown groups the date's expenses by category.
func (s *Service) CategoryBreakdown(ctx context.Context, date string, n int) ([]CategoryAmount, error) {
	expenses, err := s.api.Expenses(ctx, cisapi.ExpenseFilter{Date: date})
	if err != nil {
		return nil, err
	}
	return ExpenseBreakdown(expenses, n), nil
}

// LoadDashboard composes the dashboard view-model. The four legs run
// concurrently and each degrades to its zero value on failure instead of
// failing the whole page; that fallback is deliberate, mirroring the
// independent error channels of the source screens.
func (s *Service) LoadDashboard(ctx context.Context, date string) Dashboard {
	dash := Dashboard{Date: date}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		row, err := s.DailyProfit(ctx, date)
		if err != nil {
			s.warn("dashboard daily leg", err)
			return nil
		}
		dash.Today = row
		return nil
	})
	g.Go(func() error {
		rows, err := s.WeeklyTrend(ctx, date)
		if err != nil {
			s.warn("dashboard weekly leg", err)
			return nil
		}
		dash.Week = rows
		dash.WeekTotal = Totals(rows)
		return nil
	})
	g.Go(func() error {
		ranks, err := s.TopSellingProducts(ctx, date, DefaultTopProducts)
		if err != nil {
			s.warn("dashboard products leg", err)
			return nil
		}
		dash.Products = ranks
		return nil
	})
	g.Go(func() error {
		groups, err := s.CategoryBreakdown(ctx, date, DefaultBreakdownGroups)
		if err != nil {
			s.warn("dashboard expenses leg", err)
			return nil
		}
		dash.Expenses = groups
		return nil
	})

	_ = g.Wait()
	return dash
}

// Warmup primes the cache for the given date's dashboard buckets.
func (s *Service) Warmup(ctx context.Context, date string) error {
	if _, err := s.DailyProfit(ctx, date); err != nil {
		return err
	}
	if _, err := s.WeeklyTrend(ctx, date); err != nil {
		return err
	}
	t, err := dates.ParseISO(date)
	if err != nil {
		return fmt.Errorf("reports: warmup date %q: %w", date, err)
	}
	_, err = s.MonthlyProfit(ctx, t.Year(), int(t.Month()))
	return err
}

// InvalidateCache bumps the shared cache version.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) cached(ctx context.Context, keyParts []string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func (s *Service) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}
