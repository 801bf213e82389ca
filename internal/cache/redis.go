package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisNamespace = "charactervault:"

// Redis is a Store shared by every server process pointing at the same
// redis database. All keys live under a fixed namespace.
type Redis struct {
	RedisClient *redis.Client
}

// NewRedis connects to the redis server described by url
// (redis://[:password@]host:port/db).
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{RedisClient: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.RedisClient.Get(ctx, redisNamespace+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.RedisClient.Set(ctx, redisNamespace+key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.RedisClient.Del(ctx, redisNamespace+key).Err()
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.RedisClient.Scan(ctx, 0, redisNamespace+prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.RedisClient.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.RedisClient.Del(ctx, batch...).Err()
	}
	return nil
}

// Clear drops the whole namespace, leaving unrelated keys alone.
func (r *Redis) Clear(ctx context.Context) error {
	return r.DeletePrefix(ctx, "")
}
