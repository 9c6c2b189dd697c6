package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/cisystem/cisystem/internal/inventory"
)

// ExpiryScanJob surveys expiring stock daily and logs the counts per status
// so operators see the shape of the problem without opening the dashboard.
type ExpiryScanJob struct {
	Inventory   *inventory.Service
	Logger      *slog.Logger
	DefaultDays int
}

// NewExpiryScanJob wires dependencies for the expiry scan handler.
func NewExpiryScanJob(inventorySvc *inventory.Service, logger *slog.Logger, defaultDays int) *ExpiryScanJob {
	return &ExpiryScanJob{Inventory: inventorySvc, Logger: logger, DefaultDays: defaultDays}
}

// Handle processes expiry scan tasks.
func (j *ExpiryScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Inventory == nil {
		return errors.New("expiry scan: handler not configured")
	}
	var payload ExpiryScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	days := payload.Days
	if days <= 0 {
		days = j.DefaultDays
	}

	items, err := j.Inventory.Expiring(ctx, days)
	if err != nil {
		j.logger().Error("expiry scan", slog.Int("days", days), slog.Any("error", err))
		return err
	}

	counts := map[inventory.Status]int{}
	for _, item := range items {
		counts[item.Status]++
	}
	j.logger().Info("expiry scan complete",
		slog.Int("days", days),
		slog.Int("total", len(items)),
		slog.Int("expired", counts[inventory.StatusExpired]),
		slog.Int("near_expiry", counts[inventory.StatusNearExpiry]),
		slog.Int("out_of_stock", counts[inventory.StatusOutOfStock]))
	return nil
}

func (j *ExpiryScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeExpiryScan))
	}
	return slog.Default().With(slog.String("job", TaskTypeExpiryScan))
}
