package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	recentDays         = 7
	recentFallbackDays = 365
)

// MarketSummary reports headline counts over the whole posting collection
func (s *Service) MarketSummary(ctx context.Context) MarketSummary {
	return run(ctx, s, "market_summary", "", func(ctx context.Context) (MarketSummary, error) {
		postings, err := s.find(ctx, "", time.Time{}, false)
		if err != nil {
			return MarketSummary{}, err
		}

		companies := make(map[string]struct{})
		locations := make(map[string]struct{})
		titles := make(map[string]struct{})
		var sumMin, sumMax float64
		var nMin, nMax, withSalary int

		for _, p := range postings {
			companies[strings.ToLower(orUnknown(p.Company))] = struct{}{}
			locations[strings.ToLower(orUnknown(p.Location))] = struct{}{}
			titles[strings.ToLower(strings.TrimSpace(p.Title))] = struct{}{}
			if p.SalaryMin != nil {
				sumMin += *p.SalaryMin
				nMin++
			}
			if p.SalaryMax != nil {
				sumMax += *p.SalaryMax
				nMax++
			}
			if p.HasSalary() {
				withSalary++
			}
		}

		out := MarketSummary{
			TotalPostings: len(postings),
			Companies:     len(companies),
			Locations:     len(locations),
			UniqueTitles:  len(titles),
			WithSalary:    withSalary,
			RecentDays:    recentDays,
		}
		if nMin > 0 {
			out.AvgSalaryMin = round2(sumMin / float64(nMin))
		}
		if nMax > 0 {
			out.AvgSalaryMax = round2(sumMax / float64(nMax))
		}

		recent, err := s.postings.CountPostings(ctx, repositoryFilterSince(s.daysAgo(recentDays)))
		if err != nil {
			return MarketSummary{}, fmt.Errorf("count recent postings: %w", err)
		}
		if recent == 0 {
			out.RecentDays = recentFallbackDays
			if recent, err = s.postings.CountPostings(ctx, repositoryFilterSince(s.daysAgo(recentFallbackDays))); err != nil {
				return MarketSummary{}, fmt.Errorf("count postings: %w", err)
			}
		}
		out.RecentPostings = recent
		return out, nil
	})
}
