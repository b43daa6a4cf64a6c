// Package cache stores rendered artifacts keyed by content hashes.
//
// # Overview
//
// Rendering a molecule is deterministic: the same document and the same
// options always give the same output. The pipeline therefore hashes both
// into a key and keeps the result in a [Cache]. Three implementations are
// provided:
//
//   - [FileCache] stores entries as JSON files, for the CLI
//   - [RedisCache] stores entries in Redis, for the HTTP server
//   - [NullCache] stores nothing, for tests and --no-cache
//
// Keys are built by a [Keyer] so callers never assemble them by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for
// backend failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live values.
const (
	// ArtifactTTL applies to rendered outputs. They never go stale, so
	// the TTL only bounds disk and memory use.
	ArtifactTTL = 7 * 24 * time.Hour
)
