package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

func TestNormalize(t *testing.T) {
	n := DefaultNormalizer()

	cases := map[string]string{
		"Senior Python Developer":   "Python Developer",
		"Data Scientist":            "Data Scientist",
		"Head of Data Science":      "Data Scientist",
		"Fullstack Engineer":        "Full Stack Developer",
		"Backend Engineer (Go)":     "Backend Developer",
		"Front-End Developer":       "Frontend Developer",
		"Machine Learning Engineer": "AI/ML Engineer",
		"iOS Developer":             "Mobile Developer",
		"DevOps Engineer":           "DevOps Engineer",
		"Java Developer":            "Java Developer",
		"Golang Engineer":           "Golang Developer",
		"QA Tester":                 "QA Tester",
		"":                          "Other",
		"   ":                       "Other",
	}
	for title, want := range cases {
		assert.Equal(t, want, n.Normalize(title), title)
	}
}

func TestNormalizeFirstRuleWins(t *testing.T) {
	n := DefaultNormalizer()
	assert.Equal(t, "Python Developer", n.Normalize("Python Data Scientist"))
}

func TestNormalizerOwnsRules(t *testing.T) {
	rules := []Rule{{Label: "Rustacean", Any: []string{"rust"}}}
	n := NewNormalizer(rules)
	rules[0].Label = "changed"

	assert.Equal(t, "Rustacean", n.Normalize("Rust Engineer"))
}

func TestBucket(t *testing.T) {
	assert.Equal(t, "python", Bucket("Python Developer"))
	assert.Equal(t, "other", Bucket(""))
}

func TestClassifierOrder(t *testing.T) {
	c := DefaultClassifier()

	lvl, ok := c.Infer("Senior engineer, 5+ years")
	assert.True(t, ok)
	assert.Equal(t, domain.LevelSenior, lvl)

	lvl, ok = c.Infer("Junior role, 0-2 years")
	assert.True(t, ok)
	assert.Equal(t, domain.LevelEntry, lvl)

	lvl, ok = c.Infer("2-3 years of experience")
	assert.True(t, ok)
	assert.Equal(t, domain.LevelMid, lvl)

	lvl, ok = c.Infer("Great team")
	assert.False(t, ok)
	assert.Equal(t, domain.LevelMid, lvl)
}

func TestClassifierPrefersStoredLevel(t *testing.T) {
	c := DefaultClassifier()
	p := domain.Posting{Title: "Senior Developer", ExperienceLevel: domain.LevelLead}
	assert.Equal(t, domain.LevelLead, c.Level(p))

	p.ExperienceLevel = ""
	assert.Equal(t, domain.LevelSenior, c.Level(p))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Senior (4+ years)", Label(domain.LevelSenior, true))
	assert.Equal(t, "Entry (0-2 years)", Label(domain.LevelEntry, true))
	assert.Equal(t, "Not Specified", Label(domain.LevelMid, false))
}

func TestSuggest(t *testing.T) {
	got := Suggest(DefaultSuggestions, "Python Developer", []string{"redis", "kubernetes"})

	assert.Contains(t, got, "FastAPI")
	assert.NotContains(t, got, "Redis")
	assert.NotContains(t, got, "Kubernetes")
	assert.IsIncreasing(t, got)

	assert.Empty(t, Suggest(DefaultSuggestions, "Accountant", nil))
}
