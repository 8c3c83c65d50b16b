package redis

import (
	"context"
	"encoding"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobmarket-tracker/pkg/cache"
)

var _ cache.Cache = (*Cache)(nil)

// Cache implements cache.Cache on a Redis database
type Cache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

func New(opts cache.Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}

	return &Cache{client: client, prefix: opts.Prefix, defaultTTL: ttl}
}

// Ping checks the server is reachable
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cache.ErrNotFound
	}
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case *string:
		*v = string(val)
	case *[]byte:
		*v = val
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(val)
	default:
		return cache.ErrInvalidValue
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *Cache) Clear(ctx context.Context) error {
	if c.prefix == "" {
		return c.client.FlushDB(ctx).Err()
	}

	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
