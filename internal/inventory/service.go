package inventory

import (
	"context"
	"time"

	"github.com/cisystem/cisystem/internal/cisapi"
)

// API is the slice of the upstream client the inventory service relies on.
type API interface {
	LowStockBatchAlerts(ctx context.Context, threshold int) ([]cisapi.LowStockAlert, error)
	ExpiryAlerts(ctx context.Context, days int) ([]cisapi.ExpiryAlert, error)
}

// LowStockItem is a low-stock alert row.
type LowStockItem struct {
	BatchID   string  `json:"batchId"`
	Location  string  `json:"location"`
	QtyOnHand float64 `json:"qtyOnHand"`
	Threshold int     `json:"threshold"`
}

// ExpiryItem is an expiry alert annotated with the classifier verdict.
type ExpiryItem struct {
	ProductID    string  `json:"productId"`
	SKU          string  `json:"sku"`
	ProductName  string  `json:"productName"`
	BatchID      string  `json:"batchId"`
	BatchNumber  string  `json:"batchNumber"`
	ExpiryDate   string  `json:"expiryDate"`
	QtyOnHand    float64 `json:"qtyOnHand"`
	DaysToExpiry int     `json:"daysToExpiry"`
	Status       Status  `json:"status"`
}

// Service fetches stock alerts and annotates them with derived status.
type Service struct {
	api API
	now func() time.Time
}

// NewService constructs a Service over the upstream API.
func NewService(api API) *Service {
	return &Service{api: api, now: time.Now}
}

// WithClock overrides the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// LowStock returns batches at or below the on-hand threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]LowStockItem, error) {
	alerts, err := s.api.LowStockBatchAlerts(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, LowStockItem{
			BatchID:   a.BatchID,
			Location:  a.Location,
			QtyOnHand: a.QtyOnHand,
			Threshold: a.Threshold,
		})
	}
	return items, nil
}

// Expiring returns batches expiring within the day window, each classified
// against today's date.
func (s *Service) Expiring(ctx context.Context, days int) ([]ExpiryItem, error) {
	alerts, err := s.api.ExpiryAlerts(ctx, days)
	if err != nil {
		return nil, err
	}
	today := s.now()
	items := make([]ExpiryItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, ExpiryItem{
			ProductID:    a.ProductID,
			SKU:          a.SKU,
			ProductName:  a.ProductName,
			BatchID:      a.BatchID,
			BatchNumber:  a.BatchNumber,
			ExpiryDate:   a.ExpiryDate,
			QtyOnHand:    a.QtyOnHand,
			DaysToExpiry: a.DaysToExpiry,
			Status:       Classify(a.QtyOnHand, a.ExpiryDate, today),
		})
	}
	return items, nil
}
