package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	pkgneo4j "github.com/honeycarbs/jobmarket-tracker/pkg/neo4j"
)

func TestStoreIntegration(t *testing.T) {
	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		t.Skip("NEO4J_TEST_URI must be set to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_TEST_USERNAME"),
		Password: os.Getenv("NEO4J_TEST_PASSWORD"),
	})
	require.NoError(t, err)

	s := NewStore(client)
	defer s.Close()
	require.NoError(t, s.Migrate(ctx))

	_, err = client.Write(ctx, `MATCH (n) WHERE n:Posting OR n:Company OR n:SkillTrend OR n:Skill DETACH DELETE n`, nil)
	require.NoError(t, err)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	added, err := s.InsertPostings(ctx, []domain.Posting{
		{Title: "Python Developer", Company: "Acme", PostedDate: day, SalaryMin: domain.Float(80000), SalaryMax: domain.Float(100000)},
		{Title: "PYTHON developer", Company: "acme", PostedDate: day},
		{Title: "Go Developer", Company: "Gophers", PostedDate: day.AddDate(0, 0, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	got, err := s.FindPostings(ctx, repository.PostingFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Go Developer", got[0].Title)

	n, err := s.CountPostings(ctx, repository.PostingFilter{WithSalary: true})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.UpsertSkillTrends(ctx, []domain.SkillTrend{
		{SkillName: "python", Frequency: 2, RunID: "r1", LastUpdated: day},
		{SkillName: "python", Frequency: 3, RunID: "r2", LastUpdated: day},
	}))
	trends, err := s.ListSkillTrends(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, 3, trends[0].Frequency)
}
