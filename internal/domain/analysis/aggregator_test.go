package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
)

func TestAnalyzeSkillsTwoPostings(t *testing.T) {
	svc, store := newTestService(t,
		posting("Python Developer", "TechCorp", "San Francisco, CA", "Python, Django, PostgreSQL, AWS", 1),
		posting("JavaScript Developer", "WebWorks", "Austin, TX", "JavaScript, React, Node.js, MongoDB", 2),
	)

	res := svc.AnalyzeSkills(context.Background(), "")
	require.Empty(t, res.Error)

	assert.Equal(t, 2, res.TotalJobs)
	for _, sk := range []string{"python", "django", "postgresql", "aws", "javascript", "react", "mongodb", "node.js"} {
		assert.Equal(t, 1, res.Skills[sk], sk)
	}
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, map[string]int{"python": 1, "django": 1, "postgresql": 1, "aws": 1}, res.RoleSkills["python"])
	assert.Contains(t, res.RoleSkills, "javascript")

	global, ok := store.Trend("python", "")
	require.True(t, ok)
	assert.Equal(t, 1, global.Frequency)
	assert.Equal(t, res.RunID, global.RunID)

	bucket, ok := store.Trend("react", "javascript")
	require.True(t, ok)
	assert.Equal(t, 1, bucket.Frequency)
}

func TestAnalyzeSkillsRoleBucket(t *testing.T) {
	svc, store := newTestService(t,
		posting("Senior Python Developer", "A", "", "python aws", 1),
		posting("Data Engineer", "B", "", "Python and SQL", 1),
		posting("Rust Engineer", "C", "", "rust", 1),
	)

	res := svc.AnalyzeSkills(context.Background(), "Python")
	require.Empty(t, res.Error)

	assert.Equal(t, 2, res.TotalJobs)
	assert.Equal(t, 2, res.Skills["python"])
	assert.Equal(t, []string{"python"}, keysOf(res.RoleSkills))

	row, ok := store.Trend("python", "python")
	require.True(t, ok)
	assert.Equal(t, 2, row.Frequency)

	_, ok = store.Trend("rust", "")
	assert.False(t, ok)
}

func TestAnalyzeSkillsRoleFilterHasNoFallback(t *testing.T) {
	svc, _ := newTestService(t, posting("Python Developer", "A", "", "python", 1))

	res := svc.AnalyzeSkills(context.Background(), "cobol")
	assert.Empty(t, res.Error)
	assert.Zero(t, res.TotalJobs)
	assert.Empty(t, res.Skills)
}

func TestAnalyzeSkillsWindowFallsBackToAll(t *testing.T) {
	svc, _ := newTestService(t, posting("Go Developer", "A", "", "golang kubernetes", 800))

	res := svc.AnalyzeSkills(context.Background(), "")
	require.Empty(t, res.Error)
	assert.Equal(t, 1, res.TotalJobs)
	assert.Equal(t, 1, res.Skills["kubernetes"])
}

func TestAnalyzeSkillsWindowExcludesOldWhenRecentExist(t *testing.T) {
	svc, _ := newTestService(t,
		posting("Go Developer", "A", "", "golang", 10),
		posting("Java Developer", "B", "", "java", 800),
	)

	res := svc.AnalyzeSkills(context.Background(), "")
	assert.Equal(t, 1, res.TotalJobs)
	assert.NotContains(t, res.Skills, "java")
}

func TestAnalyzeSkillsIsIdempotent(t *testing.T) {
	svc, store := newTestService(t,
		posting("Python Developer", "A", "", "python docker", 1),
		posting("Python Developer", "B", "", "python", 2),
	)

	first := svc.AnalyzeSkills(context.Background(), "")
	second := svc.AnalyzeSkills(context.Background(), "")

	assert.Equal(t, first.Skills, second.Skills)
	row, _ := store.Trend("python", "")
	assert.Equal(t, 2, row.Frequency, "frequency is overwritten, not incremented")
}

func TestAnalyzeSkillsKeepsStaleRows(t *testing.T) {
	svc, store := newTestService(t,
		posting("Scala Developer", "A", "", "scala spark", 1),
		posting("Python Developer", "B", "", "python", 1),
	)

	first := svc.AnalyzeSkills(context.Background(), "")
	require.Empty(t, first.Error)

	store.Remove(func(p domain.Posting) bool { return p.Company == "A" })
	second := svc.AnalyzeSkills(context.Background(), "")
	require.Empty(t, second.Error)
	assert.NotContains(t, second.Skills, "scala")

	stale, ok := store.Trend("scala", "scala")
	require.True(t, ok)
	assert.Equal(t, 1, stale.Frequency)
	assert.Equal(t, first.RunID, stale.RunID)

	fresh, _ := store.Trend("python", "")
	assert.Equal(t, second.RunID, fresh.RunID)
}

func TestAnalyzeSkillsTopRankingIsStable(t *testing.T) {
	svc, _ := newTestService(t,
		posting("Dev", "A", "", "docker aws", 1),
		posting("Dev", "B", "", "aws python", 2),
	)

	res := svc.AnalyzeSkills(context.Background(), "")
	require.Len(t, res.Ranked, 3)
	assert.Equal(t, SkillCount{Skill: "aws", Count: 2}, res.Ranked[0])
	assert.Equal(t, []string{"docker", "python"}, []string{res.Ranked[1].Skill, res.Ranked[2].Skill})
}

func TestAnalyzeSkillsCapsAtFifty(t *testing.T) {
	svc, _ := newTestService(t, posting("Everything", "A", "", joinDefaultLexicon(), 1))

	res := svc.AnalyzeSkills(context.Background(), "")
	assert.Len(t, res.Skills, 50)
	assert.Len(t, res.Ranked, 50)
}

func TestAnalyzeSkillsStoreFailure(t *testing.T) {
	svc, err := NewService(WithPostings(failingStore{}), WithSkillTrends(failingStore{}))
	require.NoError(t, err)

	res := svc.AnalyzeSkills(context.Background(), "")
	assert.Contains(t, res.Error, "store down")
	assert.Zero(t, res.TotalJobs)
	assert.NotNil(t, res.Skills)
}

func TestAggregateSkillsCountsOncePerPosting(t *testing.T) {
	agg := aggregateSkills([]domain.Posting{
		{Title: "Python Developer", Description: "Python python PYTHON"},
	}, "", defaultLexicon())

	assert.Equal(t, 1, agg.global.counts["python"])
	rows := agg.trendRows("run", testNow)
	assert.Len(t, rows, 2)
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
