package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func posting(title, company, date string) domain.Posting {
	d, _ := time.Parse(domain.DateLayout, date)
	return domain.Posting{
		Title:       title,
		Company:     company,
		Location:    "Austin, TX",
		PostedDate:  d,
		Description: "Python and Docker",
		ScrapedAt:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestInsertAndFindPostings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := posting("Python Developer", "Acme", "2024-06-10")
	a.SalaryMin, a.SalaryMax = domain.Float(80000), domain.Float(100000)
	b := posting("Go Developer", "Gophers", "2024-06-12")
	c := posting("Rust Developer", "Crabs", "2024-06-10")

	added, err := s.InsertPostings(ctx, []domain.Posting{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	dup := posting("PYTHON DEVELOPER", "acme", "2024-06-10")
	added, err = s.InsertPostings(ctx, []domain.Posting{dup})
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	all, err := s.FindPostings(ctx, repository.PostingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Go Developer", all[0].Title)
	assert.Equal(t, "Python Developer", all[1].Title, "same date keeps insertion order")
	assert.Equal(t, "Rust Developer", all[2].Title)
	assert.Equal(t, 80000.0, *all[1].SalaryMin)
	assert.Nil(t, all[2].SalaryMin)

	since := time.Date(2024, 6, 11, 15, 0, 0, 0, time.UTC)
	recent, err := s.FindPostings(ctx, repository.PostingFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)

	text, err := s.FindPostings(ctx, repository.PostingFilter{Text: " PYTHON "})
	require.NoError(t, err)
	assert.Len(t, text, 3, "description matches too")

	paid, err := s.FindPostings(ctx, repository.PostingFilter{WithSalary: true})
	require.NoError(t, err)
	require.Len(t, paid, 1)

	limited, err := s.FindPostings(ctx, repository.PostingFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	n, err := s.CountPostings(ctx, repository.PostingFilter{Text: "developer"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpsertSkillTrends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertSkillTrends(ctx, []domain.SkillTrend{
		{SkillName: "python", Role: "", Frequency: 3, RunID: "r1", LastUpdated: now},
		{SkillName: "docker", Role: "", Frequency: 3, RunID: "r1", LastUpdated: now},
		{SkillName: "python", Role: "data", Frequency: 1, RunID: "r1", LastUpdated: now},
	}))
	require.NoError(t, s.UpsertSkillTrends(ctx, []domain.SkillTrend{
		{SkillName: "python", Role: "", Frequency: 5, RunID: "r2", LastUpdated: now.Add(time.Hour)},
	}))

	global, err := s.ListSkillTrends(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, global, 2)
	assert.Equal(t, "python", global[0].SkillName)
	assert.Equal(t, 5, global[0].Frequency)
	assert.Equal(t, "r2", global[0].RunID)
	assert.True(t, global[0].LastUpdated.Equal(now.Add(time.Hour)))
	assert.Equal(t, "r1", global[1].RunID, "rows not in the latest run are kept")

	data, err := s.ListSkillTrends(ctx, "data", 1)
	require.NoError(t, err)
	require.Len(t, data, 1)
}

func TestFindPostingsRejectsMalformedDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.InsertPostings(ctx, []domain.Posting{posting("Python Developer", "Acme", "2024-06-10")})
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE postings SET posted_date = '10/06/2024'`)
	require.NoError(t, err)

	_, err = s.FindPostings(ctx, repository.PostingFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posted_date")
}
