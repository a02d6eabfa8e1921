// Package config provides configuration for the divservice server.
//
// This package has no I/O dependencies. The configuration value is
// constructed once at startup (see internal/ioconfig for the file
// loader) and passed to every component explicitly; there is no global
// configuration state.
//
// Precedence (highest to lowest): CLI flags > env vars > config file >
// defaults. Environment variables use the DIVSERVICE_ prefix with
// underscores for nesting (cache.backend -> DIVSERVICE_CACHE_BACKEND).
package config

import (
	"time"
)

// Config is the complete divservice configuration.
type Config struct {
	// Repositories lists the Diversity installations clients may pick.
	// Loaded once, read-only afterwards.
	Repositories []Repository `mapstructure:"repositories" yaml:"repositories"`

	// PublicTaxa points at the shared public taxon-names server reached
	// with its own credentials.
	PublicTaxa ServerLoginCatalog `mapstructure:"public_taxa" yaml:"public_taxa"`

	// ScientificTerms points at the shared scientific-terms catalog.
	ScientificTerms ServerLoginCatalog `mapstructure:"scientific_terms" yaml:"scientific_terms"`

	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	API APIConfig `mapstructure:"api" yaml:"api"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// PageSize is the number of rows per download page for taxon names
	// and property values.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// Repository describes one configured Diversity installation.
type Repository struct {
	// Name is the display name clients select a repository by.
	Name string `mapstructure:"name" yaml:"name"`

	// Server is the host (host or host:port) of the database server.
	Server string `mapstructure:"server" yaml:"server"`

	// Catalog is the default catalog opened for this repository.
	Catalog string `mapstructure:"catalog" yaml:"catalog"`
}

// ServerLoginCatalog is a fully specified connection target with its own
// service credentials.
type ServerLoginCatalog struct {
	Server   string `mapstructure:"server"   yaml:"server"`
	Catalog  string `mapstructure:"catalog"  yaml:"catalog"`
	User     string `mapstructure:"user"     yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
}

// CacheConfig selects and configures the result-cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// TTL is the validity window of discovery and taxon-list results.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`

	RedisAddr     string `mapstructure:"redis_addr"     yaml:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"       yaml:"redis_db"`
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr" yaml:"addr"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be STDERR or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values. The returned config
// is always valid; defaults are overridden via Option functions passed
// to Update.
func New() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     5 * time.Minute,
		},
		API: APIConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "stderr",
		},
		PageSize: 1000,
	}
}

// RepositoryByName looks up a configured repository by its display name.
// Returns nil when the name is unknown.
func (c *Config) RepositoryByName(name string) *Repository {
	for i := range c.Repositories {
		if c.Repositories[i].Name == name {
			return &c.Repositories[i]
		}
	}
	return nil
}
