package iocache

import (
	"context"
	"errors"
	"time"

	"github.com/diversityworkbench/divservice/pkg/cache"
	"github.com/diversityworkbench/divservice/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/redis/go-redis/v9"
)

// Redis backs the result cache with a shared redis instance so that
// several service replicas amortize the same catalog scans.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(addr, password string, dbNum int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &gn.Error{
			Code: errcode.CacheBackendError,
			Msg:  "Cannot connect to redis at " + addr,
			Err:  err,
		}
	}
	return &Redis{client: client}, nil
}

// Get returns the stored value, or nil when absent. Redis expires
// entries itself, so no expiry check is needed here.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Add stores a value until the expiry instant.
func (r *Redis) Add(ctx context.Context, key string, value []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the redis connection.
func (r *Redis) Close() error { return r.client.Close() }

var _ cache.Cache = (*Redis)(nil)
