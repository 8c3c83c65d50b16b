package analysis

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/roles"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/skills"
)

const (
	aggregateWindowDays = 365
	topSkillsLimit      = 50
)

// tally counts items and remembers the order each was first seen
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// ranked returns entries by count desc, ties in first-seen order
func (t *tally) ranked() []SkillCount {
	out := make([]SkillCount, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, SkillCount{Skill: k, Count: t.counts[k]})
	}
	slices.SortStableFunc(out, func(a, b SkillCount) int {
		return b.Count - a.Count
	})
	return out
}

func (t *tally) namedCounts() []NamedCount {
	ranked := t.ranked()
	out := make([]NamedCount, len(ranked))
	for i, r := range ranked {
		out[i] = NamedCount{Name: r.Skill, Count: r.Count}
	}
	return out
}

// skillAggregate is the pure result of counting skills over postings
type skillAggregate struct {
	global     *tally
	buckets    *tally
	roleSkills map[string]*tally
}

// aggregateSkills counts each posting's skill set once globally and once in
// its role bucket. With a role, every posting falls into that role's bucket.
func aggregateSkills(postings []domain.Posting, role string, lx skills.Lexicon) skillAggregate {
	agg := skillAggregate{
		global:     newTally(),
		buckets:    newTally(),
		roleSkills: make(map[string]*tally),
	}
	fixed := normRole(role)

	for _, p := range postings {
		found := lx.ExtractOrdered(p.SearchText())
		if len(found) == 0 {
			continue
		}

		bucket := fixed
		if bucket == "" {
			bucket = roles.Bucket(p.Title)
		}
		bt, ok := agg.roleSkills[bucket]
		if !ok {
			bt = newTally()
			agg.roleSkills[bucket] = bt
			agg.buckets.add(bucket, 0)
		}

		for _, sk := range found {
			agg.global.add(sk, 1)
			bt.add(sk, 1)
		}
	}
	return agg
}

// trendRows flattens an aggregate into skill-trend rows: one per
// (skill, bucket) plus one global (skill, "") row per skill.
func (a skillAggregate) trendRows(runID string, now time.Time) []domain.SkillTrend {
	rows := make([]domain.SkillTrend, 0, len(a.global.order)*2)
	for _, bucket := range a.buckets.order {
		bt := a.roleSkills[bucket]
		for _, sk := range bt.order {
			rows = append(rows, domain.SkillTrend{
				SkillName:   sk,
				Role:        bucket,
				Frequency:   bt.counts[sk],
				RunID:       runID,
				LastUpdated: now,
			})
		}
	}
	for _, sk := range a.global.order {
		rows = append(rows, domain.SkillTrend{
			SkillName:   sk,
			Role:        "",
			Frequency:   a.global.counts[sk],
			RunID:       runID,
			LastUpdated: now,
		})
	}
	return rows
}

// AnalyzeSkills counts lexicon skills over the last year of postings (or all
// postings when the year is empty), optionally restricted to role, persists
// the counts as skill trends and returns the top skills.
func (s *Service) AnalyzeSkills(ctx context.Context, role string) SkillAnalysis {
	return run(ctx, s, "analyze_skills", role, func(ctx context.Context) (SkillAnalysis, error) {
		start := time.Now()
		postings, err := s.windowed(ctx, role)
		if err != nil {
			return SkillAnalysis{}, err
		}

		if len(postings) == 0 {
			s.logger.Warn("no job postings found for analysis", "role", role)
			return SkillAnalysis{
				Skills:     map[string]int{},
				Ranked:     []SkillCount{},
				RoleSkills: map[string]map[string]int{},
			}, nil
		}

		agg := aggregateSkills(postings, role, s.lexicon)
		runID := uuid.NewString()
		rows := agg.trendRows(runID, s.clock().UTC())

		if err := s.trends.UpsertSkillTrends(ctx, rows); err != nil {
			return SkillAnalysis{}, fmt.Errorf("upsert skill trends: %w", err)
		}
		trendsUpserted.Add(float64(len(rows)))

		ranked := agg.global.ranked()
		if len(ranked) > topSkillsLimit {
			ranked = ranked[:topSkillsLimit]
		}
		top := make(map[string]int, len(ranked))
		for _, r := range ranked {
			top[r.Skill] = r.Count
		}

		roleSkills := make(map[string]map[string]int, len(agg.roleSkills))
		for bucket, t := range agg.roleSkills {
			roleSkills[bucket] = t.counts
		}

		s.logger.Info("skill analysis complete",
			"role", role,
			"postings", len(postings),
			"unique_skills", len(agg.global.order),
			"rows", len(rows),
			"run_id", runID,
			"duration", time.Since(start),
		)

		return SkillAnalysis{
			Skills:     top,
			Ranked:     ranked,
			TotalJobs:  len(postings),
			RoleSkills: roleSkills,
			RunID:      runID,
		}, nil
	})
}

// windowed selects the last year of postings, falling back to every posting
// when the year is empty, then applies the role filter with no fallback.
func (s *Service) windowed(ctx context.Context, role string) ([]domain.Posting, error) {
	since := s.daysAgo(aggregateWindowDays)
	recent, err := s.postings.CountPostings(ctx, repositoryFilterSince(since))
	if err != nil {
		return nil, fmt.Errorf("count recent postings: %w", err)
	}
	if recent == 0 {
		since = time.Time{}
	}
	return s.find(ctx, role, since, false)
}
