package jobs

import (
	"context"
	"fmt"

	"github.com/4tenlab/prism-insight/internal/batch"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// SignalBatchJob runs one trigger batch (morning or afternoon) on schedule
// ⭐ SSOT: 시그널 배치 스케줄은 이 Job에서만
type SignalBatchJob struct {
	runner   *batch.Runner
	mode     batch.Mode
	schedule string
	logger   *logger.Logger
}

// NewSignalBatchJob creates a signal batch job for one mode
func NewSignalBatchJob(runner *batch.Runner, mode batch.Mode, schedule string, log *logger.Logger) *SignalBatchJob {
	return &SignalBatchJob{
		runner:   runner,
		mode:     mode,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *SignalBatchJob) Name() string {
	return fmt.Sprintf("signal_batch_%s", j.mode)
}

// Schedule returns the configured cron expression
func (j *SignalBatchJob) Schedule() string {
	return j.schedule
}

// Run executes the batch
func (j *SignalBatchJob) Run(ctx context.Context) error {
	j.logger.WithField("mode", string(j.mode)).Info("Starting scheduled signal batch")

	path, err := j.runner.Run(ctx, j.mode)
	if err != nil {
		return fmt.Errorf("signal batch %s: %w", j.mode, err)
	}

	j.logger.WithFields(map[string]interface{}{
		"mode": string(j.mode),
		"path": path,
	}).Info("Scheduled signal batch completed")

	return nil
}
