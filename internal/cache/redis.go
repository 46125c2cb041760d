package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on a redis client. Keys are namespaced by service
// name so multiple services can share one instance.
type Redis struct {
	client      *redis.Client
	serviceName string
}

// NewRedis constructs a Redis cache for the given address.
func NewRedis(addr, serviceName string) *Redis {
	return &Redis{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.namespaced(key), value, ttl).Err()
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.namespaced(key)).Err()
}

func (r *Redis) namespaced(key string) string {
	return fmt.Sprintf("%s:%s", r.serviceName, key)
}
