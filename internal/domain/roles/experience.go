package roles

import (
	"strings"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

// DefaultExperienceRules are scanned in order against title and description
var DefaultExperienceRules = []Rule{
	{Label: string(domain.LevelSenior), Any: []string{"4+", "5+", "senior", "4-5", "5-7"}},
	{Label: string(domain.LevelEntry), Any: []string{"0-1", "1-2", "junior", "entry", "0-2"}},
	{Label: string(domain.LevelMid), Any: []string{"2-3", "3-4", "2-4", "mid"}},
}

// Classifier infers experience levels for postings that carry none
type Classifier struct {
	rules    []Rule
	fallback domain.ExperienceLevel
}

// NewClassifier builds a classifier that falls back to mid when nothing matches
func NewClassifier(rules []Rule) Classifier {
	return Classifier{rules: cloneRules(rules), fallback: domain.LevelMid}
}

func DefaultClassifier() Classifier {
	return NewClassifier(DefaultExperienceRules)
}

// Rules returns a copy of the rule list
func (c Classifier) Rules() []Rule {
	return cloneRules(c.rules)
}

// Infer scans text and reports whether any rule matched
func (c Classifier) Infer(text string) (domain.ExperienceLevel, bool) {
	if label, ok := firstMatch(c.rules, text); ok {
		return domain.ExperienceLevel(label), true
	}
	return c.fallback, false
}

// Level returns the stored level of p, or the inferred one when unset
func (c Classifier) Level(p domain.Posting) domain.ExperienceLevel {
	if lvl := domain.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(p.ExperienceLevel)))); lvl != "" {
		return lvl
	}
	lvl, _ := c.Infer(p.SearchText())
	return lvl
}

// Label is the human-readable band used in exports
func Label(level domain.ExperienceLevel, matched bool) string {
	if !matched {
		return "Not Specified"
	}
	switch level {
	case domain.LevelSenior, domain.LevelLead:
		return "Senior (4+ years)"
	case domain.LevelMid:
		return "Mid (2-4 years)"
	case domain.LevelEntry:
		return "Entry (0-2 years)"
	default:
		return "Not Specified"
	}
}
