package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

const (
	defaultCompanyTop = 10
	defaultRoleLimit  = 10
	unknownLabel      = "Unknown"
)

// CompanyDistribution returns the topN hiring companies. Total counts every
// considered posting, not only the listed ones.
func (s *Service) CompanyDistribution(ctx context.Context, role string, topN int) Distribution {
	if topN <= 0 {
		topN = defaultCompanyTop
	}
	return run(ctx, s, "company_distribution", role, func(ctx context.Context) (Distribution, error) {
		postings, err := s.find(ctx, role, time.Time{}, false)
		if err != nil {
			return Distribution{}, err
		}
		return countBy(postings, topN, func(p domain.Posting) string {
			return orUnknown(p.Company)
		}), nil
	})
}

// LocationDistribution counts postings per city, the part of the location
// before the first comma.
func (s *Service) LocationDistribution(ctx context.Context, role string) Distribution {
	return run(ctx, s, "location_distribution", role, func(ctx context.Context) (Distribution, error) {
		postings, err := s.find(ctx, role, time.Time{}, false)
		if err != nil {
			return Distribution{}, err
		}
		return countBy(postings, 0, func(p domain.Posting) string {
			return City(p.Location)
		}), nil
	})
}

// ExperienceBreakdown counts postings per experience level, inferring the
// level from text when a posting has none. Known levels are always listed.
func (s *Service) ExperienceBreakdown(ctx context.Context, role string) Distribution {
	return run(ctx, s, "experience_breakdown", role, func(ctx context.Context) (Distribution, error) {
		postings, err := s.find(ctx, role, time.Time{}, false)
		if err != nil {
			return Distribution{}, err
		}

		t := newTally()
		for _, lvl := range domain.Levels {
			t.add(string(lvl), 0)
		}
		for _, p := range postings {
			t.add(string(s.classifier.Level(p)), 1)
		}

		items := make([]NamedCount, 0, len(t.order))
		for _, k := range t.order {
			items = append(items, NamedCount{Name: k, Count: t.counts[k]})
		}
		return Distribution{Items: items, Total: len(postings)}, nil
	})
}

// RoleDistribution returns the limit most common canonical roles
func (s *Service) RoleDistribution(ctx context.Context, limit int) Distribution {
	if limit <= 0 {
		limit = defaultRoleLimit
	}
	return run(ctx, s, "role_distribution", "", func(ctx context.Context) (Distribution, error) {
		postings, err := s.find(ctx, "", time.Time{}, false)
		if err != nil {
			return Distribution{}, err
		}
		return countBy(postings, limit, func(p domain.Posting) string {
			return s.normalizer.Normalize(p.Title)
		}), nil
	})
}

// countBy tallies postings by key; ties keep first-seen order
func countBy(postings []domain.Posting, limit int, key func(domain.Posting) string) Distribution {
	t := newTally()
	for _, p := range postings {
		t.add(key(p), 1)
	}
	items := t.namedCounts()
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return Distribution{Items: items, Total: len(postings)}
}

// City returns the text before the first comma of a location
func City(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return orUnknown(city)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknownLabel
	}
	return s
}
