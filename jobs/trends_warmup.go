package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-ops/meridian/internal/trends"
)

// TrendsWarmupJob pre-populates the trend cache for a fiscal year.
type TrendsWarmupJob struct {
	Trends *trends.Service
	Logger *slog.Logger
	clock  func() time.Time
}

// NewTrendsWarmupJob wires dependencies for the warmup handler.
func NewTrendsWarmupJob(trendsSvc *trends.Service, logger *slog.Logger) *TrendsWarmupJob {
	return &TrendsWarmupJob{
		Trends: trendsSvc,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes trends warmup tasks.
func (j *TrendsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Trends == nil {
		return errors.New("trends warmup: handler not configured")
	}
	var payload TrendsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	year := payload.Year
	if year == 0 {
		year = j.now().Year()
	}

	logger := j.logger().With(slog.Int("year", year))
	logger.Info("starting trends warmup")

	started := j.now()
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	points, err := j.Trends.Monthly(warmCtx, year)
	if err != nil {
		logger.Error("warm trend series", slog.Any("error", err))
		return err
	}

	logger.Info("completed trends warmup",
		slog.Int("points", len(points)),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *TrendsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTrendsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTrendsWarmup))
}

func (j *TrendsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
