package config

import (
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config. Options validate their
// inputs and reject invalid values with a warning, leaving the config in
// a valid state.
type Option func(*Config)

// OptRepositories sets the list of selectable Diversity installations.
func OptRepositories(rr []Repository) Option {
	return func(c *Config) {
		if len(rr) > 0 {
			c.Repositories = rr
		}
	}
}

// OptPublicTaxa sets the public taxon-names connection target.
func OptPublicTaxa(slc ServerLoginCatalog) Option {
	return func(c *Config) {
		c.PublicTaxa = slc
	}
}

// OptScientificTerms sets the scientific-terms connection target.
func OptScientificTerms(slc ServerLoginCatalog) Option {
	return func(c *Config) {
		c.ScientificTerms = slc
	}
}

// OptCacheBackend selects the cache backend, "memory" or "redis".
func OptCacheBackend(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "memory", "redis":
			c.Cache.Backend = s
		default:
			gn.Warn("Ignoring invalid cache backend <em>%s</em>", s)
		}
	}
}

// OptCacheTTL sets the validity window of cached results.
func OptCacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Cache.TTL = d
		} else {
			gn.Warn("Ignoring non-positive cache TTL")
		}
	}
}

// OptRedisAddr sets the redis address for the redis cache backend.
func OptRedisAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Cache.RedisAddr = s
		}
	}
}

// OptRedisPassword sets the redis password.
func OptRedisPassword(s string) Option {
	return func(c *Config) {
		c.Cache.RedisPassword = s
	}
}

// OptRedisDB sets the redis database number.
func OptRedisDB(i int) Option {
	return func(c *Config) {
		if i >= 0 {
			c.Cache.RedisDB = i
		}
	}
}

// OptAPIAddr sets the HTTP listen address.
func OptAPIAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.API.Addr = s
		}
	}
}

// OptLogLevel sets the log level: error, warn, info or debug.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "error", "warn", "info", "debug":
			c.Log.Level = s
		default:
			gn.Warn("Ignoring invalid log level <em>%s</em>", s)
		}
	}
}

// OptLogFormat sets the log format, "json" or "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "json", "text":
			c.Log.Format = s
		default:
			gn.Warn("Ignoring invalid log format <em>%s</em>", s)
		}
	}
}

// OptPageSize sets the download page size.
func OptPageSize(i int) Option {
	return func(c *Config) {
		if i > 0 {
			c.PageSize = i
		} else {
			gn.Warn("Ignoring non-positive page size")
		}
	}
}

// Update applies the given options to the config in order.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}
