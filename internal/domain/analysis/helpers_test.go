package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/skills"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/internal/storage/memory"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return domain.Date(testNow.AddDate(0, 0, -offset))
}

func posting(title, company, location, desc string, daysAgo int) domain.Posting {
	return domain.Posting{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: desc,
		PostedDate:  day(daysAgo),
	}
}

func withSalary(p domain.Posting, lo, hi float64) domain.Posting {
	p.SalaryMin = domain.Float(lo)
	p.SalaryMax = domain.Float(hi)
	return p
}

func newTestService(t *testing.T, postings ...domain.Posting) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	_, err := store.InsertPostings(context.Background(), postings)
	require.NoError(t, err)

	svc, err := NewService(
		WithPostings(store),
		WithSkillTrends(store),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return svc, store
}

// failingStore errors on every call
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) FindPostings(context.Context, repository.PostingFilter) ([]domain.Posting, error) {
	return nil, errStoreDown
}

func (failingStore) CountPostings(context.Context, repository.PostingFilter) (int, error) {
	return 0, errStoreDown
}

func (failingStore) InsertPostings(context.Context, []domain.Posting) (int, error) {
	return 0, errStoreDown
}

func (failingStore) UpsertSkillTrends(context.Context, []domain.SkillTrend) error {
	return errStoreDown
}

func (failingStore) ListSkillTrends(context.Context, string, int) ([]domain.SkillTrend, error) {
	return nil, errStoreDown
}

// panickingStore returns postings with a malformed salary that the
// reporters dereference.
type panickingStore struct {
	failingStore
}

func (panickingStore) FindPostings(context.Context, repository.PostingFilter) ([]domain.Posting, error) {
	return []domain.Posting{{Title: "broken", SalaryMin: domain.Float(1)}}, nil
}

func defaultLexicon() skills.Lexicon {
	return skills.Default()
}

func joinDefaultLexicon() string {
	return strings.Join(skills.DefaultEntries, " ; ")
}
