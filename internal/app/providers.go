package app

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
	adzunaprovider "github.com/honeycarbs/jobmarket-tracker/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job/providers/mock"
	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
	"github.com/honeycarbs/jobmarket-tracker/internal/events"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/internal/storage/memory"
	storageneo4j "github.com/honeycarbs/jobmarket-tracker/internal/storage/neo4j"
	"github.com/honeycarbs/jobmarket-tracker/internal/storage/postgres"
	"github.com/honeycarbs/jobmarket-tracker/internal/storage/sqlite"
	"github.com/honeycarbs/jobmarket-tracker/pkg/adzuna"
	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
	"github.com/honeycarbs/jobmarket-tracker/pkg/cache/redis"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
	n4j "github.com/honeycarbs/jobmarket-tracker/pkg/neo4j"
	"github.com/honeycarbs/jobmarket-tracker/pkg/sheets"
)

func provideHeuristics(cfg config.Config) (config.Heuristics, error) {
	return config.LoadHeuristics(cfg.HeuristicsFile)
}

// provideGraphClient connects to Neo4j only for the neo4j store driver
func provideGraphClient(ctx context.Context, cfg config.Config) (*n4j.Client, error) {
	if cfg.Store.Driver != config.DriverNeo4j {
		return nil, nil
	}
	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		return nil, apperrors.Unavailable("app: connect neo4j", err)
	}
	return client, nil
}

// provideStore opens the configured backend and applies its migrations.
// The store owns the graph client when both exist.
func provideStore(ctx context.Context, cfg config.Config, graph *n4j.Client, logger *logging.Logger) (repository.Store, func(), error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store = memory.New()
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.Store.SQLitePath)
	case config.DriverPostgres:
		store, err = postgres.Open(ctx, cfg.Store.PostgresDSN)
	case config.DriverNeo4j:
		if graph == nil {
			return nil, nil, fmt.Errorf("app: neo4j client not configured")
		}
		store = storageneo4j.NewStore(graph)
	default:
		return nil, nil, fmt.Errorf("app: unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, nil, apperrors.Unavailable(fmt.Sprintf("app: open %s store", cfg.Store.Driver), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("app: migrate %s store: %w", cfg.Store.Driver, err)
	}
	logger.Info("store ready", "driver", cfg.Store.Driver)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}
	return store, cleanup, nil
}

func providePostings(store repository.Store) repository.PostingRepository {
	return store
}

// provideCache connects to Redis when REDIS_ADDR is set; otherwise caching is off
func provideCache(ctx context.Context, cfg config.Config, logger *logging.Logger) (cache.Cache, func(), error) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}, nil
	}

	opts := cache.DefaultOptions()
	opts.Addr = cfg.Redis.Addr
	opts.Password = cfg.Redis.Password
	opts.DB = cfg.Redis.DB
	opts.DefaultTTL = cfg.Redis.TTL

	c := redis.New(opts)
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, nil, apperrors.Unavailable("app: redis ping "+cfg.Redis.Addr, err)
	}
	logger.Info("report cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)

	return c, func() { _ = c.Close() }, nil
}

// provideBus connects to NATS when NATS_URL is set
func provideBus(cfg config.Config, logger *logging.Logger) (*events.Bus, func(), error) {
	if cfg.NATSURL == "" {
		return nil, func() {}, nil
	}
	bus, err := events.Connect(cfg.NATSURL, logger)
	if err != nil {
		return nil, nil, apperrors.Unavailable("app: connect nats", err)
	}
	return bus, func() {
		if err := bus.Drain(); err != nil {
			logger.Warn("nats drain failed", "err", err)
		}
	}, nil
}

// providePublisher keeps a nil bus a nil interface
func providePublisher(bus *events.Bus) job.Publisher {
	if bus == nil {
		return nil
	}
	return bus
}

func provideProviders(cfg config.Config) ([]job.Provider, error) {
	providers := make([]job.Provider, 0, len(cfg.Ingest.Providers))
	for _, name := range cfg.Ingest.Providers {
		switch name {
		case "mock":
			providers = append(providers, mock.NewProvider())
		case "adzuna":
			client, err := adzuna.NewClient(adzuna.Config{
				AppID:   cfg.Adzuna.AppID,
				AppKey:  cfg.Adzuna.AppKey,
				Country: cfg.Adzuna.Country,
			})
			if err != nil {
				return nil, err
			}
			p, err := adzunaprovider.NewProvider(client, 0)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("app: unknown ingest provider %q", name)
		}
	}
	return providers, nil
}

// provideSheets creates a Sheets client when credentials are configured
func provideSheets(ctx context.Context, cfg config.Config) (*sheets.Client, error) {
	if cfg.SheetsCredentialsPath == "" {
		return nil, nil
	}
	return sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.SheetsCredentialsPath})
}
