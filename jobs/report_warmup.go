package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/cisystem/cisystem/internal/dates"
	"github.com/cisystem/cisystem/internal/reports"
)

// ReportWarmupJob bumps the cache version and re-primes the dashboard
// buckets so the first morning request hits warm rows.
type ReportWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reportsSvc *reports.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Reports: reportsSvc,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	date := payload.Date
	if date == "" {
		date = dates.ToISO(j.now())
	}

	logger := j.logger().With(slog.String("date", date))
	logger.Info("starting report warmup")

	started := j.now()
	if err := j.Reports.InvalidateCache(ctx); err != nil {
		logger.Error("bump cache version", slog.Any("error", err))
		return err
	}
	if err := j.Reports.Warmup(ctx, date); err != nil {
		logger.Error("warm report buckets", slog.Any("error", err))
		return err
	}

	logger.Info("completed report warmup", slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTypeReportWarmup))
}

func (j *ReportWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
