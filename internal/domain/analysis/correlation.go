package analysis

import (
	"context"
	"slices"
	"strings"
	"time"

	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
)

// CorrelationMode selects the shape of a skill correlation result
type CorrelationMode string

const (
	ModePairs CorrelationMode = "pairs"
	ModeGraph CorrelationMode = "graph"

	defaultCorrelationSkills = 15
	pairsLimit               = 20
	graphEdgeLimit           = 30
)

// ParseCorrelationMode accepts "pairs" or "graph"; empty means pairs
func ParseCorrelationMode(s string) (CorrelationMode, error) {
	switch CorrelationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePairs:
		return ModePairs, nil
	case ModeGraph:
		return ModeGraph, nil
	}
	return "", apperrors.Invalidf("unknown correlation mode %q, use pairs or graph", s)
}

// SkillCorrelation counts how often pairs of the topSkills most frequent
// skills appear in the same posting.
func (s *Service) SkillCorrelation(ctx context.Context, role string, topSkills int, mode CorrelationMode) SkillCorrelation {
	if topSkills <= 0 {
		topSkills = defaultCorrelationSkills
	}
	if mode == "" {
		mode = ModePairs
	}
	return run(ctx, s, "skill_correlation", role, func(ctx context.Context) (SkillCorrelation, error) {
		postings, err := s.find(ctx, role, time.Time{}, false)
		if err != nil {
			return SkillCorrelation{}, err
		}

		perPosting := make([][]string, 0, len(postings))
		freq := newTally()
		for _, p := range postings {
			found := s.lexicon.ExtractOrdered(p.SearchText())
			perPosting = append(perPosting, found)
			for _, sk := range found {
				freq.add(sk, 1)
			}
		}

		ranked := freq.ranked()
		if len(ranked) > topSkills {
			ranked = ranked[:topSkills]
		}
		top := make(map[string]struct{}, len(ranked))
		for _, r := range ranked {
			top[r.Skill] = struct{}{}
		}

		pairs := cooccurrences(perPosting, top)

		switch mode {
		case ModeGraph:
			if len(pairs) > graphEdgeLimit {
				pairs = pairs[:graphEdgeLimit]
			}
			nodes := make([]GraphNode, 0, len(ranked))
			for _, r := range ranked {
				nodes = append(nodes, GraphNode{ID: r.Skill, Frequency: r.Count})
			}
			edges := make([]GraphEdge, 0, len(pairs))
			for _, p := range pairs {
				edges = append(edges, GraphEdge{Source: p.SkillA, Target: p.SkillB, Weight: p.Count})
			}
			return SkillCorrelation{Mode: ModeGraph, Nodes: nodes, Edges: edges}, nil
		default:
			if len(pairs) > pairsLimit {
				pairs = pairs[:pairsLimit]
			}
			return SkillCorrelation{Mode: ModePairs, Pairs: pairs}, nil
		}
	})
}

// cooccurrences counts unordered pairs within each posting's skill set,
// restricted to keep. Pair order is (a < b); results sort by count desc then
// by pair.
func cooccurrences(perPosting [][]string, keep map[string]struct{}) []SkillPair {
	type key struct{ a, b string }
	counts := make(map[key]int)

	for _, found := range perPosting {
		set := make([]string, 0, len(found))
		for _, sk := range found {
			if _, ok := keep[sk]; ok {
				set = append(set, sk)
			}
		}
		slices.Sort(set)
		set = slices.Compact(set)

		for i := 0; i < len(set); i++ {
			for j := i + 1; j < len(set); j++ {
				counts[key{set[i], set[j]}]++
			}
		}
	}

	out := make([]SkillPair, 0, len(counts))
	for k, n := range counts {
		out = append(out, SkillPair{SkillA: k.a, SkillB: k.b, Count: n})
	}
	slices.SortFunc(out, func(x, y SkillPair) int {
		if x.Count != y.Count {
			return y.Count - x.Count
		}
		if c := strings.Compare(x.SkillA, y.SkillA); c != 0 {
			return c
		}
		return strings.Compare(x.SkillB, y.SkillB)
	})
	return out
}
