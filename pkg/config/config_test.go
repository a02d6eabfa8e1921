package config_test

import (
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)

		assert.Equal(t, ":8080", cfg.API.Addr)
		assert.Equal(t, 30*time.Second, cfg.API.ReadTimeout)
		assert.Equal(t, 60*time.Second, cfg.API.WriteTimeout)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "stderr", cfg.Log.Destination)

		assert.Equal(t, 1000, cfg.PageSize)
	})
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		msg    string
		opts   []config.Option
		verify func(t *testing.T, cfg *config.Config)
	}{
		{
			msg:  "cache backend accepts redis",
			opts: []config.Option{config.OptCacheBackend("redis")},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "redis", cfg.Cache.Backend)
			},
		},
		{
			msg:  "invalid cache backend keeps default",
			opts: []config.Option{config.OptCacheBackend("memcached")},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "memory", cfg.Cache.Backend)
			},
		},
		{
			msg:  "non-positive TTL keeps default",
			opts: []config.Option{config.OptCacheTTL(0)},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
			},
		},
		{
			msg:  "positive TTL wins",
			opts: []config.Option{config.OptCacheTTL(time.Minute)},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, time.Minute, cfg.Cache.TTL)
			},
		},
		{
			msg:  "invalid log level keeps default",
			opts: []config.Option{config.OptLogLevel("verbose")},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			msg:  "page size rejects zero",
			opts: []config.Option{config.OptPageSize(0)},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 1000, cfg.PageSize)
			},
		},
		{
			msg: "several options apply in order",
			opts: []config.Option{
				config.OptAPIAddr(":9090"),
				config.OptLogFormat("text"),
				config.OptPageSize(500),
			},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, ":9090", cfg.API.Addr)
				assert.Equal(t, "text", cfg.Log.Format)
				assert.Equal(t, 500, cfg.PageSize)
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update(v.opts)
			v.verify(t, cfg)
		})
	}
}

func TestRepositoryByName(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptRepositories([]config.Repository{
			{Name: "Diversity Collection", Server: "db1", Catalog: "DiversityCollection"},
			{Name: "Test Collection", Server: "db2", Catalog: "DiversityCollection_Test"},
		}),
	})

	t.Run("finds configured repository", func(t *testing.T) {
		repo := cfg.RepositoryByName("Test Collection")
		require.NotNil(t, repo)
		assert.Equal(t, "db2", repo.Server)
	})

	t.Run("unknown name returns nil", func(t *testing.T) {
		assert.Nil(t, cfg.RepositoryByName("nope"))
	})
}
