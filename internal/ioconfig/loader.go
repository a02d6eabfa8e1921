// Package ioconfig loads the service configuration from a YAML file and
// the environment. This is an impure package; the resulting value lives
// in pkg/config and is immutable afterwards.
package ioconfig

import (
	"fmt"
	"strings"

	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file (or the defaults
// when the path is empty and no file is found) and returns a validated
// Config. Precedence: env vars > config file > defaults.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DIVSERVICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults must be registered before reading so env overrides work
	// even without a config file.
	defaults := config.New()
	v.SetDefault("cache.backend", defaults.Cache.Backend)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("cache.redis_addr", defaults.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", defaults.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", defaults.Cache.RedisDB)
	v.SetDefault("api.addr", defaults.API.Addr)
	v.SetDefault("api.read_timeout", defaults.API.ReadTimeout)
	v.SetDefault("api.write_timeout", defaults.API.WriteTimeout)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("page_size", defaults.PageSize)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("divservice")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/divservice")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &gn.Error{
				Code: errcode.ConfigLoadError,
				Msg:  fmt.Sprintf("Cannot read config file %s", configPath),
				Err:  err,
			}
		}
		// No file found: defaults and env vars still apply.
	}

	// viper's default decode hooks already parse "5m"-style durations.
	var fileCfg config.Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, &gn.Error{
			Code: errcode.ConfigLoadError,
			Msg:  "Cannot parse configuration",
			Err:  err,
		}
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptRepositories(fileCfg.Repositories),
		config.OptPublicTaxa(fileCfg.PublicTaxa),
		config.OptScientificTerms(fileCfg.ScientificTerms),
		config.OptCacheBackend(fileCfg.Cache.Backend),
		config.OptCacheTTL(fileCfg.Cache.TTL),
		config.OptRedisAddr(fileCfg.Cache.RedisAddr),
		config.OptRedisPassword(fileCfg.Cache.RedisPassword),
		config.OptRedisDB(fileCfg.Cache.RedisDB),
		config.OptAPIAddr(fileCfg.API.Addr),
		config.OptLogLevel(fileCfg.Log.Level),
		config.OptLogFormat(fileCfg.Log.Format),
		config.OptPageSize(fileCfg.PageSize),
	})
	return cfg, nil
}
