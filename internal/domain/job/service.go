// Package job fetches postings from providers, cleans them and stores them.
package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	repo      repository.PostingRepository
	publisher Publisher
	clock     func() time.Time
	logger    *logging.Logger
}

// WithProviders sets job providers
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithRepository sets the repository
func WithRepository(repo repository.PostingRepository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithPublisher announces ingest runs after they are stored
func WithPublisher(p Publisher) Option {
	return func(c *config) {
		c.publisher = p
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Service runs ingest: fetch from every provider, clean, deduplicate, store.
type Service struct {
	providers []Provider
	repo      repository.PostingRepository
	publisher Publisher
	clock     func() time.Time
	logger    *logging.Logger
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		clock:  time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}
	if len(cfg.providers) == 0 {
		return nil, fmt.Errorf("job.Service: at least one provider is required")
	}

	return &Service{
		providers: cfg.providers,
		repo:      cfg.repo,
		publisher: cfg.publisher,
		clock:     cfg.clock,
		logger:    cfg.logger.Named("ingest"),
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	repo repository.PostingRepository,
	providers []Provider,
	publisher Publisher,
	logger *logging.Logger,
) (*Service, error) {
	return NewService(
		WithRepository(repo),
		WithProviders(providers...),
		WithPublisher(publisher),
		WithLogger(logger),
	)
}

// Ingest queries all providers concurrently. A failing provider is logged
// and recorded in the result; the run only fails when storing fails.
func (s *Service) Ingest(ctx context.Context, query domain.SearchQuery) (domain.IngestResult, error) {
	now := s.clock()
	result := domain.IngestResult{RunAt: now.UTC()}

	var (
		mu      sync.Mutex
		fetched = make([][]RawPosting, len(s.providers))
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.providers {
		g.Go(func() error {
			raws, err := p.Fetch(gctx, query)
			if err != nil {
				s.logger.Warn("provider fetch failed", "provider", p.Name(), "error", err)
				mu.Lock()
				result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", p.Name(), err))
				mu.Unlock()
				return nil
			}
			for j := range raws {
				if raws[j].Source == "" {
					raws[j].Source = p.Name()
				}
			}
			fetched[i] = raws
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	seen := make(map[string]struct{})
	postings := make([]domain.Posting, 0)
	for _, raws := range fetched {
		if len(raws) > 0 {
			result.Sources++
		}
		for _, raw := range raws {
			result.Fetched++
			p, ok := Clean(raw, now)
			if !ok {
				continue
			}
			key := p.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			postings = append(postings, p)
		}
	}

	if len(postings) > 0 {
		added, err := s.repo.InsertPostings(ctx, postings)
		if err != nil {
			return result, fmt.Errorf("store postings: %w", err)
		}
		result.Added = added
	}

	s.logger.Info("ingest finished",
		"keywords", query.Keywords,
		"fetched", result.Fetched,
		"added", result.Added,
		"sources", result.Sources,
	)

	if s.publisher != nil && result.Added > 0 {
		if err := s.publisher.PublishIngested(ctx, result); err != nil {
			s.logger.Warn("publish ingest event failed", "error", err)
		}
	}

	return result, nil
}
