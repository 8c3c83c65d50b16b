// Package memory is an in-process store used by tests and demo runs.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type trendKey struct {
	skill string
	role  string
}

// Store keeps postings and skill trends in maps guarded by one mutex
type Store struct {
	mu       sync.RWMutex
	postings []domain.Posting
	keys     map[string]struct{}
	trends   map[trendKey]domain.SkillTrend
}

func New() *Store {
	return &Store{
		keys:   make(map[string]struct{}),
		trends: make(map[trendKey]domain.SkillTrend),
	}
}

func (s *Store) Migrate(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) InsertPostings(_ context.Context, postings []domain.Posting) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, p := range postings {
		p.PostedDate = domain.Date(p.PostedDate)
		k := p.DedupKey()
		if _, dup := s.keys[k]; dup {
			continue
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.keys[k] = struct{}{}
		s.postings = append(s.postings, p)
		added++
	}
	return added, nil
}

// Remove deletes postings matching pred, for retention scenarios in tests
func (s *Store) Remove(pred func(domain.Posting) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.postings[:0]
	removed := 0
	for _, p := range s.postings {
		if pred(p) {
			delete(s.keys, p.DedupKey())
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.postings = kept
	return removed
}

func (s *Store) FindPostings(_ context.Context, f repository.PostingFilter) ([]domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Posting, 0, len(s.postings))
	for _, p := range s.postings {
		if match(p, f) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Posting) int {
		return b.PostedDate.Compare(a.PostedDate)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) CountPostings(ctx context.Context, f repository.PostingFilter) (int, error) {
	f.Limit = 0
	found, err := s.FindPostings(ctx, f)
	return len(found), err
}

func (s *Store) UpsertSkillTrends(_ context.Context, trends []domain.SkillTrend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range trends {
		s.trends[trendKey{skill: t.SkillName, role: t.Role}] = t
	}
	return nil
}

func (s *Store) ListSkillTrends(_ context.Context, role string, limit int) ([]domain.SkillTrend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SkillTrend, 0)
	for k, t := range s.trends {
		if k.role == role {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.SkillTrend) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return strings.Compare(a.SkillName, b.SkillName)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Trend returns one stored row, for assertions
func (s *Store) Trend(skill, role string) (domain.SkillTrend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trends[trendKey{skill: skill, role: role}]
	return t, ok
}

func match(p domain.Posting, f repository.PostingFilter) bool {
	if f.Since != nil && p.PostedDate.Before(domain.Date(*f.Since)) {
		return false
	}
	if f.WithSalary && !p.HasSalary() {
		return false
	}
	return p.Matches(f.Text)
}
