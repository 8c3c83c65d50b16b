package neo4j

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
)

func TestPostingProps(t *testing.T) {
	p := domain.Posting{
		ID:          uuid.New(),
		Title:       "Python Developer",
		Company:     "Acme",
		PostedDate:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		SalaryMin:   domain.Float(80000),
		Description: "Django",
		ScrapedAt:   time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC),
	}

	props := toProps(p, 7)
	assert.Equal(t, "python developer", props["titleLc"])
	assert.Equal(t, "2024-06-10", props["postedDate"])
	_, hasMax := props["salaryMax"]
	assert.False(t, hasMax)

	back, err := fromProps(props)
	require.NoError(t, err)
	assert.Equal(t, p.ID, back.ID)
	assert.True(t, p.PostedDate.Equal(back.PostedDate))
	require.NotNil(t, back.SalaryMin)
	assert.Equal(t, 80000.0, *back.SalaryMin)
	assert.Nil(t, back.SalaryMax)
}

func TestPostingPropsRejectsMalformedDate(t *testing.T) {
	props := toProps(domain.Posting{ID: uuid.New(), Title: "Dev", Company: "Acme"}, 1)
	props["postedDate"] = "10/06/2024"

	_, err := fromProps(props)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postedDate")
}

func TestWhereClause(t *testing.T) {
	where, params := whereClause(repository.PostingFilter{})
	assert.Empty(t, where)
	assert.Empty(t, params)

	since := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC)
	where, params = whereClause(repository.PostingFilter{Since: &since, Text: " Python ", WithSalary: true})
	assert.Contains(t, where, "p.postedDate >= $since")
	assert.Contains(t, where, "CONTAINS $text")
	assert.Contains(t, where, "p.salaryMin IS NOT NULL")
	assert.Equal(t, "2024-06-01", params["since"])
	assert.Equal(t, "python", params["text"])
}
