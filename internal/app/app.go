// Package app assembles the service graph shared by the server and the CLI.
package app

import (
	"context"
	"net/http"

	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
	"github.com/honeycarbs/jobmarket-tracker/internal/events"
	"github.com/honeycarbs/jobmarket-tracker/internal/export"
	"github.com/honeycarbs/jobmarket-tracker/internal/httpapi"
	"github.com/honeycarbs/jobmarket-tracker/internal/mcp"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
	n4j "github.com/honeycarbs/jobmarket-tracker/pkg/neo4j"
	"github.com/honeycarbs/jobmarket-tracker/pkg/sheets"
)

// App holds the wired services. Cache, Bus, Sheets and Graph are nil when
// their backends are not configured.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Store    repository.Store
	Analysis *analysis.Service
	Ingest   *job.Service
	Exporter *export.Exporter
	Cache    cache.Cache
	Bus      *events.Bus
	Sheets   *sheets.Client
	Graph    *n4j.Client
}

func newApp(
	cfg config.Config,
	logger *logging.Logger,
	store repository.Store,
	analysisSvc *analysis.Service,
	ingestSvc *job.Service,
	exporter *export.Exporter,
	c cache.Cache,
	bus *events.Bus,
	sheetsClient *sheets.Client,
	graph *n4j.Client,
) *App {
	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Analysis: analysisSvc,
		Ingest:   ingestSvc,
		Exporter: exporter,
		Cache:    c,
		Bus:      bus,
		Sheets:   sheetsClient,
		Graph:    graph,
	}
}

// SearchQuery is the configured default ingest query
func (a *App) SearchQuery() domain.SearchQuery {
	return domain.SearchQuery{Keywords: a.Config.Ingest.Query, Location: a.Config.Ingest.Location}
}

// RunIngest performs one ingest pass and drops cached reports when postings were added
func (a *App) RunIngest(ctx context.Context, query domain.SearchQuery) (domain.IngestResult, error) {
	res, err := a.Ingest.Ingest(ctx, query)
	if err != nil {
		return res, err
	}
	if res.Added > 0 {
		a.InvalidateCache(ctx)
	}
	return res, nil
}

// RunAnalysis refreshes stored skill trends and drops cached reports
func (a *App) RunAnalysis(ctx context.Context, role string) analysis.SkillAnalysis {
	res := a.Analysis.AnalyzeSkills(ctx, role)
	if res.Error == "" {
		a.InvalidateCache(ctx)
	}
	return res
}

// InvalidateCache clears the report cache, if any
func (a *App) InvalidateCache(ctx context.Context) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Clear(ctx); err != nil {
		a.Logger.Warn("cache clear failed", "err", err)
	}
}

// MCPServer builds the MCP server over the app's services
func (a *App) MCPServer() *mcp.Server {
	res := mcp.Resources{
		Analyzer:       a.Analysis,
		Ingester:       a.Ingest,
		IngestDefaults: a.SearchQuery(),
		OnIngest:       a.InvalidateCache,
		Exporter:       a.Exporter,
	}
	if a.Sheets != nil {
		res.Sheets = a.Sheets
	}
	if a.Graph != nil {
		res.Graph = a.Graph
	}
	return mcp.NewServer(a.Logger, res)
}

// Handler is the full HTTP surface: REST API, metrics and MCP stream
func (a *App) Handler() http.Handler {
	return httpapi.NewRouter(httpapi.Deps{
		Analyzer: a.Analysis,
		Postings: a.Store,
		Trends:   a.Store,
		Cache:    a.Cache,
		CacheTTL: a.Config.Redis.TTL,
		MCP:      a.MCPServer().Handler(),
		Logger:   a.Logger,
	})
}
