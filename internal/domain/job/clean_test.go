package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

var cleanNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in       string
		min, max float64
		ok       bool
	}{
		{"80000 - 120000", 80000, 120000, true},
		{"$80,000 - $120,000", 80000, 120000, true},
		{"80k-120k", 80000, 120000, true},
		{"90K – 110K", 90000, 110000, true},
		{"$95,000", 95000, 95000, true},
		{"Competitive", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lo, hi := ParseSalary(tt.in)
			if !tt.ok {
				assert.Nil(t, lo)
				assert.Nil(t, hi)
				return
			}
			require.NotNil(t, lo)
			require.NotNil(t, hi)
			assert.Equal(t, tt.min, *lo)
			assert.Equal(t, tt.max, *hi)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01", "2024-05-01"},
		{"05/20/2024", "2024-05-20"},
		{"March 5, 2024", "2024-03-05"},
		{"Mar 5, 2024", "2024-03-05"},
		{"5 March 2024", "2024-03-05"},
		{"3 days ago", "2024-06-12"},
		{"Posted 10 days ago", "2024-06-05"},
		{"yesterday", "2024-06-14"},
		{"Today", "2024-06-15"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in, cleanNow)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Format(domain.DateLayout))
		})
	}

	_, ok := ParseDate("sometime soon", cleanNow)
	assert.False(t, ok)
	_, ok = ParseDate("  ", cleanNow)
	assert.False(t, ok)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "senior python developer", NormalizeTitle("Sr. Python Dev"))
	assert.Equal(t, "junior software engineer", NormalizeTitle("  Jr SW Eng "))
	assert.Equal(t, "engineering manager", NormalizeTitle("Engineering Mgr"))
	assert.Equal(t, "", NormalizeTitle("   "))
}

func TestClean(t *testing.T) {
	p, ok := Clean(RawPosting{
		Title:      "  Python Developer ",
		Company:    "TechCorp",
		Location:   " Austin, TX ",
		SalaryText: "80k - 100k",
		PostedText: "2 days ago",
		Source:     "mock",
	}, cleanNow)
	require.True(t, ok)
	assert.Equal(t, "Python Developer", p.Title)
	assert.Equal(t, "Austin, TX", p.Location)
	assert.Equal(t, 80000.0, *p.SalaryMin)
	assert.Equal(t, 100000.0, *p.SalaryMax)
	assert.Equal(t, "2024-06-13", p.PostedDate.Format(domain.DateLayout))
	assert.Empty(t, p.ExperienceLevel)

	_, ok = Clean(RawPosting{Title: "Developer"}, cleanNow)
	assert.False(t, ok, "company is required")
}

func TestCleanStructuredFields(t *testing.T) {
	zero := 0.0
	hi := 120000.0
	p, ok := Clean(RawPosting{
		Title:     "Dev",
		Company:   "Acme",
		SalaryMin: &zero,
		SalaryMax: &hi,
		PostedAt:  time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
	}, cleanNow)
	require.True(t, ok)
	assert.Nil(t, p.SalaryMin)
	assert.Equal(t, hi, *p.SalaryMax)
	assert.Equal(t, "2024-06-01", p.PostedDate.Format(domain.DateLayout))

	p, ok = Clean(RawPosting{Title: "Dev", Company: "Acme", PostedText: "whenever"}, cleanNow)
	require.True(t, ok)
	assert.Equal(t, "2024-06-15", p.PostedDate.Format(domain.DateLayout))
}
