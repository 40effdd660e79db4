package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	client := Disabled()
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestCache_DisabledIsAlwaysMiss(t *testing.T) {
	cache := NewCache(Disabled(), "prism")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, SnapshotKey("20260830"), map[string]int{"a": 1}, TTLDaily))

	var dest map[string]int
	found, err := cache.Get(ctx, SnapshotKey("20260830"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	assert.NoError(t, cache.Delete(ctx, SnapshotKey("20260830")))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "snapshot:ohlcv:20260830", SnapshotKey("20260830"))
	assert.Equal(t, "snapshot:cap:20260830", MarketCapKey("20260830"))
	assert.Equal(t, "ticker:name:005930", TickerNameKey("005930"))
}

func TestTTLs(t *testing.T) {
	assert.Equal(t, 24*time.Hour, TTLDaily)
	assert.Equal(t, 10*time.Minute, TTLShort)
}
