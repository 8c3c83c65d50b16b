// Package httpapi serves the REST API over the analysis service and stores.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

// Analyzer is the reporting surface the API exposes
type Analyzer interface {
	AnalyzeSkills(ctx context.Context, role string) analysis.SkillAnalysis
	SkillDemand(ctx context.Context, role string, top int) analysis.SkillDemand
	StoredSkillDemand(ctx context.Context, role string, top int) analysis.SkillDemand
	JobVolume(ctx context.Context, days int, role string) analysis.VolumeTrend
	AvgSalaryByRole(ctx context.Context, role string) analysis.SalaryByRole
	CompanyDistribution(ctx context.Context, role string, topN int) analysis.Distribution
	LocationDistribution(ctx context.Context, role string) analysis.Distribution
	ExperienceBreakdown(ctx context.Context, role string) analysis.Distribution
	SalaryHistogram(ctx context.Context, role string, bins int) analysis.SalaryHistogram
	SkillCorrelation(ctx context.Context, role string, topSkills int, mode analysis.CorrelationMode) analysis.SkillCorrelation
	RoleDistribution(ctx context.Context, limit int) analysis.Distribution
	MarketSummary(ctx context.Context) analysis.MarketSummary
}

var _ Analyzer = (*analysis.Service)(nil)

// Deps are the collaborators of the router. Cache and MCP are optional.
type Deps struct {
	Analyzer Analyzer
	Postings repository.PostingRepository
	Trends   repository.SkillTrendRepository
	Cache    cache.Cache
	CacheTTL time.Duration
	MCP      http.Handler
	Logger   *logging.Logger
	Clock    func() time.Time
}

type handler struct {
	analyzer Analyzer
	postings repository.PostingRepository
	trends   repository.SkillTrendRepository
	cache    cache.Cache
	logger   *logging.Logger
	clock    func() time.Time
}

// NewRouter builds the chi router with every route mounted
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}

	h := &handler{
		analyzer: d.Analyzer,
		postings: d.Postings,
		trends:   d.Trends,
		cache:    d.Cache,
		logger:   logger.Named("http"),
		clock:    clock,
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(accessLog(h.logger))
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	if d.MCP != nil {
		router.Handle("/mcp/stream", d.MCP)
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.listJobs)
			r.Get("/recent", h.recentJobs)
		})
		r.Get("/skills", h.listSkills)
		r.Get("/dashboard", h.dashboard)

		r.Route("/analytics", func(r chi.Router) {
			r.Post("/analyze", h.analyze)

			r.Group(func(r chi.Router) {
				r.Use(cached(h.cache, d.CacheTTL, h.logger))

				r.Get("/", h.analytics)
				r.Get("/skill-demand", h.skillDemand)
				r.Get("/role-volume", h.roleVolume)
				r.Get("/avg-salary", h.avgSalary)
				r.Get("/company-distribution", h.companyDistribution)
				r.Get("/location-distribution", h.locationDistribution)
				r.Get("/experience-level", h.experienceLevel)
				r.Get("/salary-distribution", h.salaryDistribution)
				r.Get("/skill-correlation", h.skillCorrelation)
				r.Get("/role-distribution", h.roleDistribution)
				r.Get("/summary", h.summary)
			})
		})
	})

	return router
}
