package analysis

import (
	"context"
	"sort"
	"time"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

const defaultVolumeDays = 30

// JobVolume counts postings per calendar date over the last days. An empty
// window retries over all dates, still filtered by role.
func (s *Service) JobVolume(ctx context.Context, days int, role string) VolumeTrend {
	if days <= 0 {
		days = defaultVolumeDays
	}
	return run(ctx, s, "job_volume", role, func(ctx context.Context) (VolumeTrend, error) {
		postings, err := s.find(ctx, role, s.daysAgo(days), false)
		if err != nil {
			return VolumeTrend{}, err
		}
		if len(postings) == 0 {
			if postings, err = s.find(ctx, role, time.Time{}, false); err != nil {
				return VolumeTrend{}, err
			}
		}
		return volumeSeries(postings), nil
	})
}

func volumeSeries(postings []domain.Posting) VolumeTrend {
	perDay := make(map[string]int)
	for _, p := range postings {
		perDay[p.PostedDate.Format(domain.DateLayout)]++
	}

	dates := make([]string, 0, len(perDay))
	for d := range perDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	counts := make([]int, len(dates))
	for i, d := range dates {
		counts[i] = perDay[d]
	}
	return VolumeTrend{Dates: dates, Counts: counts}
}
