package reports

import (
	"sort"

	"github.com/cisystem/cisystem/internal/cisapi"
	"github.com/cisystem/cisystem/internal/dates"
)

const (
	// DefaultTopProducts caps the product-by-quantity ranking.
	DefaultTopProducts = 10
	// DefaultBreakdownGroups caps the expense category breakdown.
	DefaultBreakdownGroups = 7
	// OtherCategory labels expenses with no category record.
	OtherCategory = "Other"
)

// DayRow derives the profit row for a single calendar date. A nil report
// contributes zero gross profit; expenses are summed over records dated
// exactly on the target date.
func DayRow(date string, report *cisapi.DailySalesReport, expenses []cisapi.Expense) ProfitRow {
	var gross float64
	if report != nil {
		gross = report.TotalProfitAmount
	}
	var spent float64
	for _, e := range expenses {
		if e.Date == date {
			spent += e.Amount
		}
	}
	return ProfitRow{
		Label:       date,
		From:        date,
		To:          date,
		GrossProfit: gross,
		Expenses:    spent,
		NetProfit:   gross - spent,
	}
}

// MonthRows derives one row per calendar day of the month, ascending. The
// reports slice is positional: index i holds day i+1 (nil for days without a
// report).
func MonthRows(year, month int, reports []*cisapi.DailySalesReport, expenses []cisapi.Expense) []ProfitRow {
	days := dates.DaysInMonth(year, month)
	rows := make([]ProfitRow, 0, days)
	start := dates.StartOfMonth(year, month)
	for i := 0; i < days; i++ {
		date := dates.AddDaysISO(start, i)
		var report *cisapi.DailySalesReport
		if i < len(reports) {
			report = reports[i]
		}
		rows = append(rows, DayRow(date, report, expenses))
	}
	return rows
}

// YearRows derives twelve month rows. The reports slice is positional over
// the whole year: the ordered concatenation of every calendar day from
// January 1st onward. Month gross profit sums the per-day gross amounts;
// month expenses sum records dated within the month's inclusive ISO range
// (lexicographic comparison, equivalent to chronological order for
// well-formed dates).
func YearRows(year int, reports []*cisapi.DailySalesReport, expenses []cisapi.Expense) []ProfitRow {
	rows := make([]ProfitRow, 0, 12)
	offset := 0
	for month := 1; month <= 12; month++ {
		from := dates.StartOfMonth(year, month)
		to := dates.EndOfMonth(year, month)

		var gross float64
		days := dates.DaysInMonth(year, month)
		for i := 0; i < days; i++ {
			idx := offset + i
			if idx < len(reports) && reports[idx] != nil {
				gross += reports[idx].TotalProfitAmount
			}
		}
		offset += days

		var spent float64
		for _, e := range expenses {
			if e.Date >= from && e.Date <= to {
				spent += e.Amount
			}
		}

		rows = append(rows, ProfitRow{
			Label:       from[:7],
			From:        from,
			To:          to,
			GrossProfit: gross,
			Expenses:    spent,
			NetProfit:   gross - spent,
		})
	}
	return rows
}

// WeekRows derives exactly seven day rows for [anchor-6 .. anchor]. The
// reports slice is positional over the same range.
func WeekRows(anchor string, reports []*cisapi.DailySalesReport, expenses []cisapi.Expense) []ProfitRow {
	rows := make([]ProfitRow, 0, 7)
	start := dates.AddDaysISO(anchor, -6)
	for i := 0; i < 7; i++ {
		date := dates.AddDaysISO(start, i)
		var report *cisapi.DailySalesReport
		if i < len(reports) {
			report = reports[i]
		}
		rows = append(rows, DayRow(date, report, expenses))
	}
	return rows
}

// TopProducts ranks report items by quantity sold, descending. Ties keep the
// report's original order (stable sort); the first n entries are returned.
func TopProducts(items []cisapi.DailySalesReportItem, n int) []ProductRank {
	if n <= 0 {
		n = DefaultTopProducts
	}
	sorted := append([]cisapi.DailySalesReportItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].QuantitySold > sorted[j].QuantitySold
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	ranks := make([]ProductRank, 0, len(sorted))
	for i, item := range sorted {
		ranks = append(ranks, ProductRank{
			Rank:         i + 1,
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			ProductName:  item.ProductName,
			QuantitySold: item.QuantitySold,
			SalesAmount:  item.SalesAmount,
			ProfitAmount: item.ProfitAmount,
		})
	}
	return ranks
}

// ExpenseBreakdown groups expenses by category name, summing amounts.
// Categoryless records fall into the "Other" group. Groups sort descending
// by total, ties keeping first-seen order; the first n groups are returned.
func ExpenseBreakdown(expenses []cisapi.Expense, n int) []CategoryAmount {
	if n <= 0 {
		n = DefaultBreakdownGroups
	}
	totals := map[string]float64{}
	var order []string
	for _, e := range expenses {
		name := OtherCategory
		if e.Category != nil && e.Category.Name != "" {
			name = e.Category.Name
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += e.Amount
	}
	groups := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		groups = append(groups, CategoryAmount{Category: name, Amount: totals[name]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Amount > groups[j].Amount
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// Totals recomputes collection-level sums from the rows.
func Totals(rows []ProfitRow) Summary {
	return Summary{
		GrossProfit: SumBy(rows, func(r ProfitRow) float64 { return r.GrossProfit }),
		Expenses:    SumBy(rows, func(r ProfitRow) float64 { return r.Expenses }),
		NetProfit:   SumBy(rows, func(r ProfitRow) float64 { return r.NetProfit }),
	}
}
