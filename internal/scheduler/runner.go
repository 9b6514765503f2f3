package scheduler

import (
	"context"
	"time"

	"github.com/chittyos/chittyregistry/internal/logger"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Runner executes a named task immediately on Start and then on every
// interval tick until Stop or context cancellation. An optional manual
// trigger channel forces a run between ticks.
//
// Task errors are logged, never fatal: the next tick retries.
type Runner struct {
	name          string
	task          Task
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRunner creates a runner. manualTrigger may be nil when no manual
// runs are needed.
func NewRunner(
	name string,
	task Task,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Runner {
	return &Runner{
		name:          name,
		task:          task,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs the task once, then begins the periodic loop.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.task(ctx); err != nil {
		r.logger.Warn("initial run failed",
			logger.String("task", r.name),
			logger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.run(ctx)
			case <-r.manualTrigger:
				r.logger.Info("manual run triggered", logger.String("task", r.name))
				r.run(ctx)
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (r *Runner) run(ctx context.Context) {
	if err := r.task(ctx); err != nil {
		r.logger.Error("task run failed",
			logger.String("task", r.name),
			logger.Error(err))
	}
}

// Stop stops the periodic loop. Call at most once.
func (r *Runner) Stop() {
	close(r.stopCh)
}
