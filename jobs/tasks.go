package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTrendsWarmup pre-computes the financial trend series so the
	// first dashboard request of the day hits a warm cache.
	TaskTrendsWarmup = "trends:warmup"
)

// TrendsWarmupPayload selects which fiscal year to warm. A zero Year
// means the current year.
type TrendsWarmupPayload struct {
	Year int `json:"year"`
}

// NewTrendsWarmupTask constructs an Asynq task.
func NewTrendsWarmupTask(payload TrendsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTrendsWarmup, data), nil
}
