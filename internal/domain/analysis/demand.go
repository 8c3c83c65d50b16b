package analysis

import (
	"context"
	"fmt"
)

const defaultDemandTop = 20

// SkillDemand ranks the most demanded skills with their share of the total.
// With a role the aggregator is run live for that role and shares are taken
// over every skill it ranked; without one the stored global trends are read.
func (s *Service) SkillDemand(ctx context.Context, role string, top int) SkillDemand {
	if normRole(role) == "" {
		return s.StoredSkillDemand(ctx, "", top)
	}
	if top <= 0 {
		top = defaultDemandTop
	}
	return run(ctx, s, "skill_demand", role, func(ctx context.Context) (SkillDemand, error) {
		res := s.AnalyzeSkills(ctx, role)
		if res.Error != "" {
			return SkillDemand{}, fmt.Errorf("analyze %q: %s", role, res.Error)
		}

		counts := res.Ranked
		total := sumCounts(counts)
		if len(counts) > top {
			counts = counts[:top]
		}
		return demandOf(normRole(role), counts, total), nil
	})
}

// StoredSkillDemand ranks the trends persisted for role by the last aggregator
// run. An empty role reads the global trends. Shares are taken over the
// returned rows.
func (s *Service) StoredSkillDemand(ctx context.Context, role string, top int) SkillDemand {
	if top <= 0 {
		top = defaultDemandTop
	}
	return run(ctx, s, "stored_skill_demand", role, func(ctx context.Context) (SkillDemand, error) {
		key := normRole(role)
		rows, err := s.trends.ListSkillTrends(ctx, key, top)
		if err != nil {
			return SkillDemand{}, fmt.Errorf("list skill trends: %w", err)
		}

		counts := make([]SkillCount, 0, len(rows))
		for _, r := range rows {
			counts = append(counts, SkillCount{Skill: r.SkillName, Count: r.Frequency})
		}

		label := key
		if label == "" {
			label = "all"
		}
		return demandOf(label, counts, sumCounts(counts)), nil
	})
}

func demandOf(label string, counts []SkillCount, total int) SkillDemand {
	denom := total
	if denom == 0 {
		denom = 1
	}

	entries := make([]SkillDemandEntry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, SkillDemandEntry{
			Skill:      c.Skill,
			Frequency:  c.Count,
			Percentage: round2(float64(c.Count) / float64(denom) * 100),
		})
	}
	return SkillDemand{Role: label, Skills: entries, Total: total}
}

func sumCounts(counts []SkillCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
