package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful blocks until one of signals arrives or ctx is done, then stops
// targets in order under a shared timeout. Every target is stopped even when
// an earlier one fails; the errors are joined.
func Graceful(ctx context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) error {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	<-sigCtx.Done()
	if ctx.Err() == nil {
		log.Info("shutdown signal received")
	} else {
		log.Info("shutdown requested")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, t := range targets {
		if t == nil {
			continue
		}
		if err := t.Shutdown(stopCtx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
		return err
	}
	log.Info("graceful shutdown completed successfully")
	return nil
}
