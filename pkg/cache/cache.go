// Package cache defines a small byte-oriented key/value cache contract.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
)

// Cache stores values under string keys with a per-entry TTL.
// Get fills value, which must be *string, *[]byte or an encoding.BinaryUnmarshaler.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	// Clear drops every key under the cache's prefix
	Clear(ctx context.Context) error

	Close() error
}

// Options configures a cache backend
type Options struct {
	DefaultTTL time.Duration

	Addr string

	Password string

	DB int

	// Prefix namespaces keys so Clear never touches foreign data
	Prefix string
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL: 5 * time.Minute,
		Prefix:     "jobmarket:",
	}
}
