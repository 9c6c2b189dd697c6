// Package export serialises derived report rows for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cisystem/cisystem/internal/reports"
)

// WriteProfitRowsCSV emits profit rows plus a recomputed totals line.
func WriteProfitRowsCSV(w io.Writer, rows []reports.ProfitRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Label", "From", "To", "Gross Profit", "Expenses", "Net Profit"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Label,
			row.From,
			row.To,
			formatFloat(row.GrossProfit),
			formatFloat(row.Expenses),
			formatFloat(row.NetProfit),
		}); err != nil {
			return err
		}
	}
	totals := reports.Totals(rows)
	if err := writer.Write([]string{"Total", "", "",
		formatFloat(totals.GrossProfit),
		formatFloat(totals.Expenses),
		formatFloat(totals.NetProfit),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteBreakdownCSV emits the expense category breakdown.
func WriteBreakdownCSV(w io.Writer, groups []reports.CategoryAmount) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Category", "Amount"}); err != nil {
		return err
	}
	for _, group := range groups {
		if err := writer.Write([]string{group.Category, formatFloat(group.Amount)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTopProductsCSV emits the product-by-quantity ranking.
func WriteTopProductsCSV(w io.Writer, ranks []reports.ProductRank) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Rank", "SKU", "Product", "Quantity Sold", "Sales Amount", "Profit"}); err != nil {
		return err
	}
	for _, rank := range ranks {
		if err := writer.Write([]string{
			strconv.Itoa(rank.Rank),
			rank.SKU,
			rank.ProductName,
			formatFloat(rank.QuantitySold),
			formatFloat(rank.SalesAmount),
			formatFloat(rank.ProfitAmount),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
