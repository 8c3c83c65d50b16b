package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobmarket-tracker/internal/app"
	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/httpapi"
	"github.com/honeycarbs/jobmarket-tracker/internal/scheduler"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
	"github.com/honeycarbs/jobmarket-tracker/pkg/shutdown"
	"github.com/honeycarbs/jobmarket-tracker/pkg/telemetry"
)

const version = "0.2.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTLPEndpoint != "" {
		stopTracer, err := telemetry.InitTracer(ctx, "jobmarket-tracker", version, cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("tracing disabled", "err", err)
		} else {
			defer func() { _ = stopTracer(context.Background()) }()
		}
	}

	a, cleanup, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	if a.Bus != nil {
		if _, err := a.Bus.SubscribeIngested(func(ctx context.Context, res domain.IngestResult) {
			logger.Info("ingest event received, refreshing skill trends", "added", res.Added)
			a.RunAnalysis(ctx, "")
		}); err != nil {
			logger.Error("failed to subscribe to ingest events", "err", err)
			os.Exit(1)
		}
	}

	srv := httpapi.NewServer(logger, cfg.Host, cfg.Port, a.Handler())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Run)

	g.Go(func() error {
		scheduler.Every(gctx, cfg.AnalyzeInterval, "analyze", func(ctx context.Context) error {
			if res := a.RunAnalysis(ctx, ""); res.Error != "" {
				return fmt.Errorf("analysis: %s", res.Error)
			}
			return nil
		}, logger)
		return nil
	})

	g.Go(func() error {
		scheduler.Every(gctx, cfg.Ingest.Interval, "ingest", func(ctx context.Context) error {
			_, err := a.RunIngest(ctx, a.SearchQuery())
			return err
		}, logger)
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return shutdown.Graceful(
			gctx,
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			srv,
		)
	})

	logger.Info("server initialized and starting",
		"addr", srv.Addr(),
		"store", cfg.Store.Driver,
		"providers", cfg.Ingest.Providers,
	)

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", "err", err)
	} else {
		logger.Info("server stopped")
	}
}
