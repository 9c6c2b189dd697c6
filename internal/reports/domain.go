// Package reports turns raw sales, expense and purchase records fetched from
// the upstream API into time-bucketed profit view-models.
package reports

// ProfitRow is one derived time bucket. NetProfit is always recomputed from
// the other two fields, never stored independently.
type ProfitRow struct {
	Label       string  `json:"label"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	GrossProfit float64 `json:"grossProfit"`
	Expenses    float64 `json:"expenses"`
	NetProfit   float64 `json:"netProfit"`
}

// Summary carries the recomputed totals for a row collection.
type Summary struct {
	GrossProfit float64 `json:"grossProfit"`
	Expenses    float64 `json:"expenses"`
	NetProfit   float64 `json:"netProfit"`
}

// ProductRank is one entry of the top-products-by-quantity ranking.
type ProductRank struct {
	Rank         int     `json:"rank"`
	ProductID    string  `json:"productId"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"productName"`
	QuantitySold float64 `json:"quantitySold"`
	SalesAmount  float64 `json:"salesAmount"`
	ProfitAmount float64 `json:"profitAmount"`
}

// CategoryAmount is one group of the expense category breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Dashboard combines the derived view-models shown on the landing page. Each
// field degrades to its zero value when its backing fetch fails.
type Dashboard struct {
	Date      string           `json:"date"`
	Today     ProfitRow        `json:"today"`
	Week      []ProfitRow      `json:"week"`
	WeekTotal Summary          `json:"weekTotal"`
	Products  []ProductRank    `json:"products"`
	Expenses  []CategoryAmount `json:"expenses"`
}
