package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/analysis"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/internal/storage/memory"
	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string]string)}
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(string)
	return nil
}

func (c *mapCache) Get(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return cache.ErrNotFound
	}
	*value.(*string) = v
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *mapCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]string)
	return nil
}

func (c *mapCache) Close() error { return nil }

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

func salary(v float64) *float64 { return &v }

func newTestRouter(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()

	store := memory.New()
	_, err := store.InsertPostings(context.Background(), []domain.Posting{
		{
			Title:       "Python Developer",
			Company:     "Acme",
			Location:    "Berlin, DE",
			Description: "Python and Django with PostgreSQL",
			PostedDate:  testNow.AddDate(0, 0, -1),
			SalaryMin:   salary(80000),
			SalaryMax:   salary(100000),
		},
		{
			Title:       "Go Engineer",
			Company:     "Globex",
			Location:    "Remote",
			Description: "Go, Docker and Kubernetes",
			PostedDate:  testNow.AddDate(0, 0, -90),
		},
	})
	require.NoError(t, err)

	clock := func() time.Time { return testNow }
	svc, err := analysis.NewService(
		analysis.WithPostings(store),
		analysis.WithSkillTrends(store),
		analysis.WithClock(clock),
	)
	require.NoError(t, err)

	deps := Deps{
		Analyzer: svc,
		Postings: store,
		Trends:   store,
		CacheTTL: time.Minute,
		Clock:    clock,
	}
	if c != nil {
		deps.Cache = c
	}
	return NewRouter(deps)
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListJobsSearch(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/jobs/?search=python")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse[domain.Posting]](t, rec)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Python Developer", body.Results[0].Title)

	rec = do(t, h, http.MethodGet, "/api/jobs/")
	body = decode[listResponse[domain.Posting]](t, rec)
	assert.Equal(t, 2, body.Count)
}

func TestRecentJobs(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/api/jobs/recent?days=7")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse[domain.Posting]](t, rec)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "Acme", body.Results[0].Company)
}

func TestInvalidParameter(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, target := range []string{
		"/api/jobs/?limit=abc",
		"/api/jobs/recent?days=0",
		"/api/analytics/salary-distribution?bins=-1",
		"/api/analytics/skill-correlation?mode=tree",
	} {
		rec := do(t, h, http.MethodGet, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		body := decode[APIError](t, rec)
		assert.Equal(t, "invalid_parameter", body.Error.Code, target)
		assert.NotEmpty(t, body.Error.RequestID, target)
	}
}

func TestLegacyAnalyticsType(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/analytics/?type=unknown")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_type", decode[APIError](t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/api/analytics/?type=avg-salary")
	require.Equal(t, http.StatusOK, rec.Code)
	salaries := decode[analysis.SalaryByRole](t, rec)
	require.Len(t, salaries.Rows, 1)
	assert.Equal(t, 90000.0, salaries.Rows[0].AvgSalary)
}

func skillNames(d analysis.SkillDemand) []string {
	names := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		names = append(names, s.Skill)
	}
	return names
}

func TestLegacyAnalyticsDefaultsToStoredSkillDemand(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/analytics/?role=Python")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[analysis.SkillDemand](t, rec).Skills, "legacy route must not run an analysis")

	rec = do(t, h, http.MethodPost, "/api/analytics/analyze?role=python")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/analytics/?role=Python")
	require.Equal(t, http.StatusOK, rec.Code)
	demand := decode[analysis.SkillDemand](t, rec)
	assert.Equal(t, "python", demand.Role)
	assert.ElementsMatch(t, []string{"django", "postgresql", "python"}, skillNames(demand))

	rec = do(t, h, http.MethodGet, "/api/analytics/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all", decode[analysis.SkillDemand](t, rec).Role)
}

func TestAnalyzeThenSkillDemand(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/analytics/analyze")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[analysis.SkillAnalysis](t, rec).TotalJobs)

	rec = do(t, h, http.MethodGet, "/api/analytics/skill-demand?top=10")
	require.Equal(t, http.StatusOK, rec.Code)

	demand := decode[analysis.SkillDemand](t, rec)
	assert.Equal(t, "all", demand.Role)
	assert.Len(t, demand.Skills, 6)
	assert.Contains(t, skillNames(demand), "python")

	// equal frequencies fall back to name order
	rec = do(t, h, http.MethodGet, "/api/analytics/skill-demand?top=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]string{"django", "docker", "go", "kubernetes", "postgresql"},
		skillNames(decode[analysis.SkillDemand](t, rec)))

	rec = do(t, h, http.MethodGet, "/api/skills?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.LessOrEqual(t, decode[listResponse[domain.SkillTrend]](t, rec).Count, 3)
}

func TestReportsAreCached(t *testing.T) {
	c := newMapCache()
	h := newTestRouter(t, c)

	first := do(t, h, http.MethodGet, "/api/analytics/summary")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(t, h, http.MethodGet, "/api/analytics/summary")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	require.Equal(t, 1, c.len())
	do(t, h, http.MethodPost, "/api/analytics/analyze")
	assert.Zero(t, c.len())
}

func TestErrorsAreNotCached(t *testing.T) {
	c := newMapCache()
	h := newTestRouter(t, c)

	rec := do(t, h, http.MethodGet, "/api/analytics/skill-correlation?mode=tree")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, c.len())
}

// downStore fails every call
type downStore struct{}

var errDown = errors.New("connection refused")

func (downStore) FindPostings(context.Context, repository.PostingFilter) ([]domain.Posting, error) {
	return nil, errDown
}

func (downStore) CountPostings(context.Context, repository.PostingFilter) (int, error) {
	return 0, errDown
}

func (downStore) InsertPostings(context.Context, []domain.Posting) (int, error) {
	return 0, errDown
}

func (downStore) UpsertSkillTrends(context.Context, []domain.SkillTrend) error { return errDown }

func (downStore) ListSkillTrends(context.Context, string, int) ([]domain.SkillTrend, error) {
	return nil, errDown
}

func newDownRouter(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	svc, err := analysis.NewService(
		analysis.WithPostings(downStore{}),
		analysis.WithSkillTrends(downStore{}),
	)
	require.NoError(t, err)

	deps := Deps{Analyzer: svc, Postings: downStore{}, Trends: downStore{}, CacheTTL: time.Minute}
	if c != nil {
		deps.Cache = c
	}
	return NewRouter(deps)
}

func TestReportErrorKeepsResultShape(t *testing.T) {
	c := newMapCache()
	h := newDownRouter(t, c)

	rec := do(t, h, http.MethodGet, "/api/analytics/role-volume")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["dates"])
	assert.Equal(t, []any{}, body["counts"])
	assert.Contains(t, body["error"], "connection refused")

	rec = do(t, h, http.MethodGet, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[dashboardResponse](t, rec).Summary.Error)

	assert.Zero(t, c.len())
}

func TestStorageErrorStatus(t *testing.T) {
	rec := do(t, newDownRouter(t, nil), http.MethodGet, "/api/jobs/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[APIError](t, rec)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection refused")
}

func TestDashboard(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[dashboardResponse](t, rec)
	assert.Equal(t, 2, body.Summary.TotalPostings)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}
