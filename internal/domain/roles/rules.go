// Package roles classifies postings into canonical role buckets and
// experience levels. Every heuristic is an ordered list of keyword rules;
// the first rule with a matching keyword wins.
package roles

import "strings"

// Rule maps any of its keywords to Label
type Rule struct {
	Label string   `yaml:"label" json:"label"`
	Any   []string `yaml:"any" json:"any"`
}

// matches is a case-insensitive substring test against already-lowercased text
func (r Rule) matches(lower string) bool {
	for _, kw := range r.Any {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// firstMatch returns the label of the first matching rule
func firstMatch(rules []Rule, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.Label, true
		}
	}
	return "", false
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Label: r.Label, Any: append([]string(nil), r.Any...)}
	}
	return out
}
