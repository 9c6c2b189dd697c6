// Package reporthttp serves the derived report view-models as JSON, CSV,
// XLSX and SVG.
package reporthttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cisystem/cisystem/internal/dates"
	"github.com/cisystem/cisystem/internal/platform/httpx"
	"github.com/cisystem/cisystem/internal/reports"
	"github.com/cisystem/cisystem/internal/reports/export"
	"github.com/cisystem/cisystem/internal/reports/svg"
)

// Handler wires the report endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *reports.Service
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *reports.Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

type dailyQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type monthlyQuery struct {
	Year   int    `validate:"required,min=2000,max=2100"`
	Month  int    `validate:"required,min=1,max=12"`
	Format string `validate:"omitempty,oneof=csv xlsx"`
}

type yearlyQuery struct {
	Year   int    `validate:"required,min=2000,max=2100"`
	Format string `validate:"omitempty,oneof=csv"`
}

type weeklyQuery struct {
	Anchor string `validate:"required,datetime=2006-01-02"`
	Format string `validate:"omitempty,oneof=svg"`
}

func (h *Handler) dateOrToday(r *http.Request, param string) string {
	if v := r.URL.Query().Get(param); v != "" {
		return v
	}
	return dates.ToISO(h.now())
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	q := dailyQuery{Date: h.dateOrToday(r, "date")}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	row, err := h.service.DailyProfit(r.Context(), q.Date)
	if err != nil {
		h.fail(w, "daily profit", err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	q := monthlyQuery{
		Year:   intParam(r, "year"),
		Month:  intParam(r, "month"),
		Format: r.URL.Query().Get("format"),
	}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "year and month are required")
		return
	}
	rows, err := h.service.MonthlyProfit(r.Context(), q.Year, q.Month)
	if err != nil {
		h.fail(w, "monthly profit", err)
		return
	}
	switch q.Format {
	case "csv":
		name := fmt.Sprintf("profit-%04d-%02d.csv", q.Year, q.Month)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+name)
		if err := export.WriteProfitRowsCSV(w, rows); err != nil {
			h.logger.Error("write csv", slog.Any("error", err))
		}
	case "xlsx":
		name := fmt.Sprintf("profit-%04d-%02d.xlsx", q.Year, q.Month)
		title := fmt.Sprintf("Profit %04d-%02d", q.Year, q.Month)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+name)
		if err := export.WriteProfitWorkbook(w, title, rows); err != nil {
			h.logger.Error("write xlsx", slog.Any("error", err))
		}
	default:
		httpx.JSON(w, http.StatusOK, monthlyResponse{
			Year:   q.Year,
			Month:  q.Month,
			Rows:   rows,
			Totals: reports.Totals(rows),
		})
	}
}

type monthlyResponse struct {
	Year   int                 `json:"year"`
	Month  int                 `json:"month"`
	Rows   []reports.ProfitRow `json:"rows"`
	Totals reports.Summary     `json:"totals"`
}

func (h *Handler) yearly(w http.ResponseWriter, r *http.Request) {
	q := yearlyQuery{
		Year:   intParam(r, "year"),
		Format: r.URL.Query().Get("format"),
	}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "year is required")
		return
	}
	rows, err := h.service.YearlyProfit(r.Context(), q.Year)
	if err != nil {
		h.fail(w, "yearly profit", err)
		return
	}
	if q.Format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=profit-%04d.csv", q.Year))
		if err := export.WriteProfitRowsCSV(w, rows); err != nil {
			h.logger.Error("write csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, yearlyResponse{Year: q.Year, Rows: rows, Totals: reports.Totals(rows)})
}

type yearlyResponse struct {
	Year   int                 `json:"year"`
	Rows   []reports.ProfitRow `json:"rows"`
	Totals reports.Summary     `json:"totals"`
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	q := weeklyQuery{
		Anchor: h.dateOrToday(r, "anchor"),
		Format: r.URL.Query().Get("format"),
	}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "anchor must be YYYY-MM-DD")
		return
	}
	rows, err := h.service.WeeklyTrend(r.Context(), q.Anchor)
	if err != nil {
		h.fail(w, "weekly trend", err)
		return
	}
	if q.Format == "svg" {
		series := make([]float64, 0, len(rows))
		labels := make([]string, 0, len(rows))
		for _, row := range rows {
			series = append(series, row.NetProfit)
			// Day-month keeps the axis readable.
			labels = append(labels, row.Label[5:])
		}
		chart, err := svg.Line(0, 0, series, labels, svg.LineOpts{Title: "Net profit, last 7 days"})
		if err != nil {
			h.fail(w, "render trend", err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(chart))
		return
	}
	httpx.JSON(w, http.StatusOK, weeklyResponse{Anchor: q.Anchor, Rows: rows, Totals: reports.Totals(rows)})
}

type weeklyResponse struct {
	Anchor string              `json:"anchor"`
	Rows   []reports.ProfitRow `json:"rows"`
	Totals reports.Summary     `json:"totals"`
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	q := dailyQuery{Date: h.dateOrToday(r, "date")}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	ranks, err := h.service.TopSellingProducts(r.Context(), q.Date, reports.DefaultTopProducts)
	if err != nil {
		h.fail(w, "top products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranks)
}

func (h *Handler) expenseBreakdown(w http.ResponseWriter, r *http.Request) {
	q := dailyQuery{Date: h.dateOrToday(r, "date")}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	groups, err := h.service.CategoryBreakdown(r.Context(), q.Date, reports.DefaultBreakdownGroups)
	if err != nil {
		h.fail(w, "expense breakdown", err)
		return
	}
	httpx.JSON(w, http.StatusOK, groups)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q := dailyQuery{Date: h.dateOrToday(r, "date")}
	if err := h.validate.Struct(q); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.LoadDashboard(r.Context(), q.Date))
}

func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.logger.Error(what, slog.Any("error", err))
	httpx.Problem(w, http.StatusBadGateway, "Upstream Error", err.Error())
}

func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
