package iocache_test

import (
	"context"
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetAdd(t *testing.T) {
	ctx := context.Background()
	m := iocache.NewMemory()

	t.Run("missing key reads as nil", func(t *testing.T) {
		v, err := m.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("round trip", func(t *testing.T) {
		err := m.Add(ctx, "k", []byte("v"), time.Now().Add(time.Minute))
		require.NoError(t, err)

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("add replaces", func(t *testing.T) {
		expiry := time.Now().Add(time.Minute)
		require.NoError(t, m.Add(ctx, "k", []byte("v1"), expiry))
		require.NoError(t, m.Add(ctx, "k", []byte("v2"), expiry))

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
	})
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := iocache.NewMemoryWithClock(func() time.Time { return now })

	require.NoError(t, m.Add(ctx, "k", []byte("v"), now.Add(5*time.Minute)))

	t.Run("valid within the window", func(t *testing.T) {
		now = now.Add(4 * time.Minute)
		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("expired at the boundary", func(t *testing.T) {
		now = now.Add(time.Minute)
		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("stays gone after expiry", func(t *testing.T) {
		now = now.Add(-2 * time.Minute)
		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "db1_meyer_MODULES", cache.Key("db1", "meyer", "MODULES"))
	assert.Equal(t, "meyer_Diversity Collection_TAXONLISTS",
		cache.Key("meyer", "Diversity Collection", "TAXONLISTS"))
}
