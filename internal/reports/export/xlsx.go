package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cisystem/cisystem/internal/reports"
)

const profitSheet = "Profit"

// WriteProfitWorkbook emits an xlsx workbook with one row per profit bucket
// and a totals line.
func WriteProfitWorkbook(w io.Writer, title string, rows []reports.ProfitRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(profitSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	_ = f.SetCellValue(profitSheet, "A1", title)
	headers := []string{"Label", "From", "To", "Gross Profit", "Expenses", "Net Profit"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(profitSheet, cell, h)
	}

	for i, row := range rows {
		line := i + 3
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("A%d", line), row.Label)
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("B%d", line), row.From)
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("C%d", line), row.To)
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("D%d", line), row.GrossProfit)
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("E%d", line), row.Expenses)
		_ = f.SetCellValue(profitSheet, fmt.Sprintf("F%d", line), row.NetProfit)
	}

	totals := reports.Totals(rows)
	line := len(rows) + 3
	_ = f.SetCellValue(profitSheet, fmt.Sprintf("A%d", line), "Total")
	_ = f.SetCellValue(profitSheet, fmt.Sprintf("D%d", line), totals.GrossProfit)
	_ = f.SetCellValue(profitSheet, fmt.Sprintf("E%d", line), totals.Expenses)
	_ = f.SetCellValue(profitSheet, fmt.Sprintf("F%d", line), totals.NetProfit)

	return f.Write(w)
}
