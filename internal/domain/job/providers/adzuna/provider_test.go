package adzuna

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/pkg/adzuna"
)

type fakeClient struct {
	pages map[int][]adzuna.Job
	fail  map[int]error
	seen  []adzuna.SearchParams
}

func (f *fakeClient) SearchJobs(_ context.Context, _ string, params adzuna.SearchParams) ([]adzuna.Job, error) {
	f.seen = append(f.seen, params)
	if err := f.fail[params.Page]; err != nil {
		return nil, err
	}
	return f.pages[params.Page], nil
}

func TestFetchMapsJobs(t *testing.T) {
	posted := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{pages: map[int][]adzuna.Job{
		1: {{Title: "Go Developer", CompanyName: "Gophers", Location: "Portland, OR", SalaryMin: 90000, PostedAt: posted}},
	}}

	p, err := NewProvider(client, 3)
	require.NoError(t, err)

	raws, err := p.Fetch(context.Background(), domain.SearchQuery{Keywords: "go", Location: "Oregon"})
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "adzuna", raws[0].Source)
	assert.Equal(t, 90000.0, *raws[0].SalaryMin)
	assert.Nil(t, raws[0].SalaryMax)
	assert.Equal(t, posted, raws[0].PostedAt)

	require.Len(t, client.seen, 2, "stops after the first empty page")
	assert.Equal(t, "Oregon", client.seen[0].Location)
}

func TestFetchKeepsEarlierPagesOnError(t *testing.T) {
	client := &fakeClient{
		pages: map[int][]adzuna.Job{1: {{Title: "Dev", CompanyName: "Acme"}}},
		fail:  map[int]error{2: errors.New("quota")},
	}
	p, err := NewProvider(client, 2)
	require.NoError(t, err)

	raws, err := p.Fetch(context.Background(), domain.SearchQuery{Keywords: "dev"})
	require.NoError(t, err)
	assert.Len(t, raws, 1)

	client.fail[1] = errors.New("down")
	_, err = p.Fetch(context.Background(), domain.SearchQuery{Keywords: "dev"})
	require.Error(t, err)
}

func TestNewProviderRequiresClient(t *testing.T) {
	_, err := NewProvider(nil, 1)
	require.Error(t, err)
}
