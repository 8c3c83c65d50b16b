package roles

import (
	"strings"
	"unicode/utf8"
)

// DefaultRoleRules are the built-in title heuristics, in priority order
var DefaultRoleRules = []Rule{
	{Label: "Python Developer", Any: []string{"python"}},
	{Label: "Data Scientist", Any: []string{"data scientist", "data science"}},
	{Label: "Full Stack Developer", Any: []string{"full stack", "fullstack"}},
	{Label: "Backend Developer", Any: []string{"backend"}},
	{Label: "Frontend Developer", Any: []string{"frontend", "front-end"}},
	{Label: "AI/ML Engineer", Any: []string{"ai", "ml", "machine learning"}},
	{Label: "Mobile Developer", Any: []string{"mobile", "android", "ios"}},
	{Label: "DevOps Engineer", Any: []string{"devops"}},
}

// OtherRole is the bucket for empty titles
const OtherRole = "Other"

// Normalizer maps free-text titles to canonical role buckets
type Normalizer struct {
	rules []Rule
}

// NewNormalizer copies rules so later edits by the caller have no effect
func NewNormalizer(rules []Rule) Normalizer {
	return Normalizer{rules: cloneRules(rules)}
}

// DefaultNormalizer uses DefaultRoleRules
func DefaultNormalizer() Normalizer {
	return NewNormalizer(DefaultRoleRules)
}

// Rules returns a copy of the rule list
func (n Normalizer) Rules() []Rule {
	return cloneRules(n.rules)
}

// Normalize returns the canonical role for title
func (n Normalizer) Normalize(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return OtherRole
	}
	if label, ok := firstMatch(n.rules, title); ok {
		return label
	}

	first := strings.Fields(title)[0]
	if utf8.RuneCountInString(first) > 3 {
		return first + " Developer"
	}
	return title
}

// Bucket is the grouping key used when no role filter is given: the first
// whitespace token of the lowercased title, or "other".
func Bucket(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	if len(fields) == 0 {
		return "other"
	}
	return fields[0]
}
