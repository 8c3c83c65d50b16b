package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/internal/config"
	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
	"github.com/honeycarbs/jobmarket-tracker/internal/repository"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

func testConfig(driver string) config.Config {
	var cfg config.Config
	cfg.Store.Driver = driver
	cfg.Ingest.Providers = []string{"mock"}
	return cfg
}

func TestInitializeMemory(t *testing.T) {
	ctx := context.Background()

	a, cleanup, err := Initialize(ctx, testConfig(config.DriverMemory), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.Nil(t, a.Cache)
	assert.Nil(t, a.Bus)
	assert.Nil(t, a.Sheets)
	assert.Nil(t, a.Graph)

	res, err := a.RunIngest(ctx, a.SearchQuery())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sources)

	n, err := a.Store.CountPostings(ctx, repository.PostingFilter{})
	require.NoError(t, err)
	assert.Equal(t, res.Added, n)

	analysis := a.RunAnalysis(ctx, "")
	assert.Empty(t, analysis.Error)

	tools := a.MCPServer().Tools()
	assert.Contains(t, tools, "job_ingest")
	assert.NotContains(t, tools, "graph_tool")
	assert.NotContains(t, tools, "sheets_export")
}

func TestInitializeSQLite(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "jobs.db")

	a, cleanup, err := Initialize(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInitializeUnknownProvider(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.Ingest.Providers = []string{"linkedin"}

	_, _, err := Initialize(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linkedin")
}

func TestBackendFailuresAreUnavailable(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(config.DriverSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "missing", "jobs.db")
	_, _, err := Initialize(ctx, cfg, logging.NewNop())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))

	cfg = testConfig(config.DriverMemory)
	cfg.Redis.Addr = "127.0.0.1:1"
	_, _, err = provideCache(ctx, cfg, logging.NewNop())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}
