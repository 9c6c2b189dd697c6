package cisapi

// DailySalesReportItem is one product line of a per-day sales report.
type DailySalesReportItem struct {
	ProductID    string  `json:"productId"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"productName"`
	QuantitySold float64 `json:"quantitySold"`
	SalesAmount  float64 `json:"salesAmount"`
	CostAmount   float64 `json:"costAmount"`
	ProfitAmount float64 `json:"profitAmount"`
}

// DailySalesReport is the upstream per-day sales summary. The server returns
// null when no sales were recorded for the date; callers receive nil then.
type DailySalesReport struct {
	Date              string                 `json:"date"`
	TotalSalesAmount  float64                `json:"totalSalesAmount"`
	TotalCostAmount   float64                `json:"totalCostAmount"`
	TotalProfitAmount float64                `json:"totalProfitAmount"`
	Items             []DailySalesReportItem `json:"items"`
}

// ExpenseCategory labels an expense record.
type ExpenseCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Expense is a single operating expense record.
type Expense struct {
	ID            string           `json:"id"`
	Date          string           `json:"date"`
	Description   string           `json:"description"`
	Amount        float64          `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	CreatedAt     string           `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	Category      *ExpenseCategory `json:"category"`
}

// ExpenseFilter narrows the expenses query. Zero-value fields are omitted.
type ExpenseFilter struct {
	Date string `json:"date,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// UserPermission is one per-module capability record.
type UserPermission struct {
	Module    string `json:"module"`
	CanView   bool   `json:"canView"`
	CanCreate bool   `json:"canCreate"`
	CanEdit   bool   `json:"canEdit"`
	CanDelete bool   `json:"canDelete"`
}

// User is the authenticated upstream identity.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// LowStockAlert flags a batch whose on-hand quantity fell under the threshold.
type LowStockAlert struct {
	BatchID   string  `json:"batchId"`
	Location  string  `json:"location"`
	QtyOnHand float64 `json:"qtyOnHand"`
	Threshold int     `json:"threshold"`
}

// ExpiryAlert flags a batch expiring within the requested day window.
type ExpiryAlert struct {
	ProductID    string  `json:"productId"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"productName"`
	BatchID      string  `json:"batchId"`
	BatchNumber  string  `json:"batchNumber"`
	ExpiryDate   string  `json:"expiryDate"`
	QtyOnHand    float64 `json:"qtyOnHand"`
	DaysToExpiry int     `json:"daysToExpiry"`
}
