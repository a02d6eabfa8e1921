package iocache_test

import (
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsBackend(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		c, err := iocache.New(config.CacheConfig{
			Backend: "memory",
			TTL:     5 * time.Minute,
		})
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.NoError(t, c.Close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := iocache.New(config.CacheConfig{Backend: "memcached"})
		require.Error(t, err)
	})
}
