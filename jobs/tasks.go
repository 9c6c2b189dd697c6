// Package jobs holds the background task types and the asynq worker glue:
// nightly cache warmup for the dashboard buckets and a daily expiry scan.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeReportWarmup primes the report cache for one date.
	TaskTypeReportWarmup = "reports:warmup"
	// TaskTypeExpiryScan surveys expiring stock and logs the counts.
	TaskTypeExpiryScan = "inventory:expiry_scan"
)

// ReportWarmupPayload selects the date whose buckets get primed. An empty
// date means "today" at execution time.
type ReportWarmupPayload struct {
	Date string `json:"date,omitempty"`
}

// NewReportWarmupTask constructs an Asynq task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeReportWarmup, data), nil
}

// ExpiryScanPayload selects the look-ahead window in days. Zero means the
// configured default.
type ExpiryScanPayload struct {
	Days int `json:"days,omitempty"`
}

// NewExpiryScanTask constructs an Asynq task.
func NewExpiryScanTask(payload ExpiryScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeExpiryScan, data), nil
}
