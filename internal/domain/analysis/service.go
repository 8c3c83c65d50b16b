// Package analysis turns stored postings into labor-market statistics.
package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/roles"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/skills"
	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
	"github.com/honeycarbs/jobmarket-tracker/pkg/telemetry"
)

var tracer = telemetry.GetTracer("jobmarket-tracker/analysis")

// Option configures Service
type Option func(*config)

type config struct {
	postings   repository.PostingRepository
	trends     repository.SkillTrendRepository
	lexicon    skills.Lexicon
	normalizer roles.Normalizer
	classifier roles.Classifier
	clock      func() time.Time
	logger     *logging.Logger
}

// WithPostings sets the posting store
func WithPostings(repo repository.PostingRepository) Option {
	return func(c *config) { c.postings = repo }
}

// WithSkillTrends sets the skill-trend store
func WithSkillTrends(repo repository.SkillTrendRepository) Option {
	return func(c *config) { c.trends = repo }
}

// WithLexicon replaces the default skill lexicon
func WithLexicon(lx skills.Lexicon) Option {
	return func(c *config) { c.lexicon = lx }
}

// WithNormalizer replaces the default role rules
func WithNormalizer(n roles.Normalizer) Option {
	return func(c *config) { c.normalizer = n }
}

// WithClassifier replaces the default experience rules
func WithClassifier(cl roles.Classifier) Option {
	return func(c *config) { c.classifier = cl }
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Service runs the skill aggregator and every statistical reporter.
// It is safe for concurrent use; only AnalyzeSkills writes.
type Service struct {
	postings   repository.PostingRepository
	trends     repository.SkillTrendRepository
	lexicon    skills.Lexicon
	normalizer roles.Normalizer
	classifier roles.Classifier
	clock      func() time.Time
	logger     *logging.Logger
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		lexicon:    skills.Default(),
		normalizer: roles.DefaultNormalizer(),
		classifier: roles.DefaultClassifier(),
		clock:      time.Now,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.postings == nil {
		return nil, fmt.Errorf("analysis.Service: posting repository is required")
	}
	if cfg.trends == nil {
		return nil, fmt.Errorf("analysis.Service: skill trend repository is required")
	}

	return &Service{
		postings:   cfg.postings,
		trends:     cfg.trends,
		lexicon:    cfg.lexicon,
		normalizer: cfg.normalizer,
		classifier: cfg.classifier,
		clock:      cfg.clock,
		logger:     cfg.logger.Named("analysis"),
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	store repository.Store,
	lexicon skills.Lexicon,
	normalizer roles.Normalizer,
	classifier roles.Classifier,
	logger *logging.Logger,
) (*Service, error) {
	return NewService(
		WithPostings(store),
		WithSkillTrends(store),
		WithLexicon(lexicon),
		WithNormalizer(normalizer),
		WithClassifier(classifier),
		WithLogger(logger),
	)
}

// Lexicon exposes the configured lexicon to exporters
func (s *Service) Lexicon() skills.Lexicon { return s.lexicon }

// Classifier exposes the configured experience rules to exporters
func (s *Service) Classifier() roles.Classifier { return s.classifier }

type result[T any] interface {
	withError(msg string) T
}

// run executes fn as one reporter call. Errors and panics become the zero
// result annotated with the message; metrics and a span are recorded.
func run[T result[T]](ctx context.Context, s *Service, op, role string, fn func(context.Context) (T, error)) (out T) {
	ctx, span := tracer.Start(ctx, "analysis."+op)
	defer span.End()
	span.SetAttributes(telemetry.String("role", role))

	start := time.Now()
	status := "ok"

	defer func() {
		if r := recover(); r != nil {
			err := apperrors.Recovered(op+" failed", r)
			s.logFailure(op, role, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			out = zero.withError(err.Error())
			status = "error"
		}
		reportsTotal.WithLabelValues(op, status).Inc()
		reportDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	res, err := fn(ctx)
	if err != nil {
		derr := apperrors.Internal(op+" failed", err)
		s.logFailure(op, role, derr)
		span.RecordError(derr)
		span.SetStatus(codes.Error, derr.Error())
		status = "error"
		var zero T
		return zero.withError(derr.Error())
	}
	return res
}

func (s *Service) logFailure(op, role string, err *apperrors.Error) {
	s.logger.Error("report failed",
		"op", op,
		"role", role,
		"err", err.Error(),
		"stack", string(err.Stack()),
	)
}

// find loads postings matching role since the given date, or all dates when since is zero
func (s *Service) find(ctx context.Context, role string, since time.Time, withSalary bool) ([]domain.Posting, error) {
	f := repository.PostingFilter{Text: normRole(role), WithSalary: withSalary}
	if !since.IsZero() {
		f.Since = &since
	}
	return s.postings.FindPostings(ctx, f)
}

func (s *Service) daysAgo(days int) time.Time {
	return s.clock().AddDate(0, 0, -days)
}

func normRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func repositoryFilterSince(since time.Time) repository.PostingFilter {
	return repository.PostingFilter{Since: &since}
}
