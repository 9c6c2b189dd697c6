package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cisystem/cisystem/internal/reports"
)

var sampleRows = []reports.ProfitRow{
	{Label: "2024-05-01", From: "2024-05-01", To: "2024-05-01", GrossProfit: 10, Expenses: 4, NetProfit: 6},
	{Label: "2024-05-02", From: "2024-05-02", To: "2024-05-02", GrossProfit: 20, Expenses: 0, NetProfit: 20},
}

func TestWriteProfitRowsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfitRowsCSV(&buf, sampleRows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"Label", "From", "To", "Gross Profit", "Expenses", "Net Profit"}, records[0])
	require.Equal(t, "6.00", records[1][5])
	require.Equal(t, []string{"Total", "", "", "30.00", "4.00", "26.00"}, records[3])
}

func TestWriteBreakdownCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBreakdownCSV(&buf, []reports.CategoryAmount{
		{Category: "Rent", Amount: 150},
		{Category: "Other", Amount: 20},
	}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Rent", "150.00"}, records[1])
	require.Equal(t, []string{"Other", "20.00"}, records[2])
}

func TestWriteTopProductsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTopProductsCSV(&buf, []reports.ProductRank{
		{Rank: 1, SKU: "SKU1", ProductName: "Aspirin", QuantitySold: 9, SalesAmount: 90, ProfitAmount: 30},
	}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Aspirin", records[1][2])
}

func TestWriteProfitWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfitWorkbook(&buf, "May 2024", sampleRows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue("Profit", "A1")
	require.NoError(t, err)
	require.Equal(t, "May 2024", title)

	net, err := f.GetCellValue("Profit", "F3")
	require.NoError(t, err)
	require.Equal(t, "6", net)

	total, err := f.GetCellValue("Profit", "F5")
	require.NoError(t, err)
	require.Equal(t, "26", total)
}
