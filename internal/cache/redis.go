package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis keeps entries as plain keys and every tag as a set of keys.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string    { return r.prefix + "v:" + k }
func (r *Redis) tagKey(t string) string { return r.prefix + "t:" + t }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags ...string) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), val, ttl)
	for _, t := range tags {
		pipe.SAdd(ctx, r.tagKey(t), r.key(key))
		if ttl > 0 {
			// tag sets outlive their members by one TTL at most
			pipe.Expire(ctx, r.tagKey(t), 2*ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) InvalidateTags(ctx context.Context, tags ...string) error {
	for _, t := range tags {
		tk := r.tagKey(t)
		keys, err := r.client.SMembers(ctx, tk).Result()
		if err != nil {
			return fmt.Errorf("redis smembers %s: %w", t, err)
		}
		keys = append(keys, tk)
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", t, err)
		}
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
