package mock

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	jobdomain "github.com/honeycarbs/jobmarket-tracker/internal/domain/job"
)

func TestFetchSamplesCatalogue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := NewProvider(
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return now }),
	)

	raws, err := p.Fetch(context.Background(), domain.SearchQuery{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raws), minSample)
	assert.LessOrEqual(t, len(raws), maxSample)

	for _, r := range raws {
		assert.Equal(t, "mock", r.Source)
		assert.True(t, strings.HasPrefix(r.URL, "https://example.com/jobs/"))

		posted, ok := jobdomain.ParseDate(r.PostedText, now)
		require.True(t, ok)
		assert.False(t, posted.After(now))
		assert.False(t, posted.Before(now.AddDate(0, 0, -maxAgeDays-1)))

		posting, ok := jobdomain.Clean(r, now)
		require.True(t, ok)
		assert.True(t, posting.HasSalary())
	}
}

func TestFetchFiltersByKeywords(t *testing.T) {
	p := NewProvider(WithRand(rand.New(rand.NewPCG(3, 4))))

	raws, err := p.Fetch(context.Background(), domain.SearchQuery{Keywords: "kubernetes"})
	require.NoError(t, err)
	for _, r := range raws {
		assert.Contains(t, strings.ToLower(r.Title+" "+r.Description), "kubernetes")
	}
}

func TestCatalogueSize(t *testing.T) {
	assert.Equal(t, 10, Size())
}
