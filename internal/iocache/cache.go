// Package iocache implements the result-cache contract with an
// in-process memory backend and an optional shared redis backend.
package iocache

import (
	"fmt"

	"github.com/diversityworkbench/divservice/pkg/cache"
	"github.com/diversityworkbench/divservice/pkg/config"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/gnames/gn"
)

// New creates a cache selected by configuration: "memory" for a single
// process, "redis" when several service instances should share one
// result cache.
func New(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, &gn.Error{
			Code: errcode.CacheBackendError,
			Msg:  fmt.Sprintf("Unsupported cache backend '%s'", cfg.Backend),
		}
	}
}
