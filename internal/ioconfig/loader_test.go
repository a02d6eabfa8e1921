package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diversityworkbench/divservice/internal/ioconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "divservice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
repositories:
  - name: Diversity Collection
    server: db1.example.org
    catalog: DiversityCollection
public_taxa:
  server: tnt.example.org
  catalog: master
  user: taxareader
  password: secret
cache:
  backend: redis
  ttl: 10m
  redis_addr: localhost:6379
api:
  addr: ":9090"
log:
  level: debug
page_size: 500
`)

	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "db1.example.org", cfg.Repositories[0].Server)
	assert.Equal(t, "taxareader", cfg.PublicTaxa.User)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500, cfg.PageSize)

	// Untouched fields keep their defaults.
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
cache:
  backend: memcached
log:
  level: verbose
page_size: -5
`)

	cfg, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1000, cfg.PageSize)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := ioconfig.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	// Run from an empty directory so no stray divservice.yaml is found.
	t.Chdir(t.TempDir())

	cfg, err := ioconfig.Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, ":8080", cfg.API.Addr)
}
