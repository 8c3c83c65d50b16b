package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
)

func TestCacheIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR must be set to run this test")
	}

	ctx := context.Background()
	c := New(cache.Options{Addr: addr, Prefix: "jobmarket-test:"})
	defer c.Close()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Clear(ctx))

	var got string
	require.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	var n int
	require.ErrorIs(t, c.Get(ctx, "k", &n), cache.ErrInvalidValue)

	require.NoError(t, c.Clear(ctx))
	require.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrNotFound)
}
