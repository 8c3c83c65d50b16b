// Package scheduler runs tasks on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on every tick until ctx is done.
// Runs never overlap: a slow run delays the next tick.
func Every(ctx context.Context, interval time.Duration, name string, task Task, log *logging.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error("scheduled task failed", "task", name, "error", err)
			return
		}
		log.Debug("scheduled task finished", "task", name, "duration", time.Since(start))
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
