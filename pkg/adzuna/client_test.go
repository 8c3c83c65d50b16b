package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	require.Error(t, err)
}

func TestSearchJobs(t *testing.T) {
	var gotPath, gotWhat, gotWhere string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWhat = r.URL.Query().Get("what")
		gotWhere = r.URL.Query().Get("where")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"results":[{
			"id":"42","title":"Go Developer",
			"company":{"display_name":"Gophers"},
			"location":{"display_name":"Portland, OR"},
			"description":"Go and Kubernetes",
			"created":"2024-06-01T10:00:00Z",
			"redirect_url":"https://adzuna.example/42",
			"salary_min":90000,"salary_max":120000}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL, RequestsPerSecond: 100})
	require.NoError(t, err)

	jobs, err := client.SearchJobs(context.Background(), "golang", SearchParams{Location: "Oregon", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, "/v1/api/jobs/us/search/2", gotPath)
	assert.Equal(t, "golang", gotWhat)
	assert.Equal(t, "Oregon", gotWhere)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0].Title)
	assert.Equal(t, "Gophers", jobs[0].CompanyName)
	assert.Equal(t, 90000.0, jobs[0].SalaryMin)
	assert.Equal(t, 2024, jobs[0].PostedAt.Year())
}

func TestSearchJobsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL, RequestsPerSecond: 100})
	require.NoError(t, err)

	_, err = client.SearchJobs(context.Background(), "golang", SearchParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSearchJobsRequiresQuery(t *testing.T) {
	client, err := NewClient(Config{AppID: "id", AppKey: "key"})
	require.NoError(t, err)

	_, err = client.SearchJobs(context.Background(), "", SearchParams{})
	require.Error(t, err)
}
