// Package repository holds the in-process query cache shared by the engine.
package repository

import (
	"context"
	"strings"
)

// Key prefixes keep each operation's results in their own namespace.
const (
	searchPrefix = "search_"
	actorPrefix  = "actor_"
	popularKey   = "popular_actors"
)

// Store caches query results for the lifetime of the process. Values are
// returned by identity: a Get after a Put yields the same value, not a copy.
type Store interface {
	Get(ctx context.Context, key string) (any, bool)
	Put(ctx context.Context, key string, value any)
	Clear(ctx context.Context)
	Len(ctx context.Context) int
}

// SearchKey is the cache key for a search query. Case-insensitive.
func SearchKey(query string) string { return searchPrefix + strings.ToLower(query) }

// ActorKey is the cache key for a career lookup by name. Case-insensitive.
func ActorKey(name string) string { return actorPrefix + strings.ToLower(name) }

// PopularKey is the cache key for the popular listing.
func PopularKey() string { return popularKey }

// Lookup fetches key and asserts its type. A value of another type is
// reported as a miss.
func Lookup[T any](ctx context.Context, s Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(ctx, key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// keyKind labels a key for metrics.
func keyKind(key string) string {
	switch {
	case strings.HasPrefix(key, searchPrefix):
		return "search"
	case strings.HasPrefix(key, actorPrefix):
		return "actor"
	case key == popularKey:
		return "popular"
	default:
		return "other"
	}
}
