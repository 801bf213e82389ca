// Package cache holds short-lived derived data (dropdown options, dashboard
// counts). Keys are grouped by prefix so one user's entries can be dropped
// without touching anyone else's.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// Store is a key-value cache with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Clear(ctx context.Context) error
}

// TaxonomyPrefix groups the shared house/role/strength option lists.
const TaxonomyPrefix = "taxonomy:"

// TaxonomyKey is the key of the option list for one taxonomy kind.
func TaxonomyKey(kind string) string { return TaxonomyPrefix + kind }

// UserPrefix groups every entry derived from one user's data.
func UserPrefix(userID uint) string { return fmt.Sprintf("user:%d:", userID) }

// UserSummaryKey is the key of a user's dashboard summary.
func UserSummaryKey(userID uint) string { return UserPrefix(userID) + "summary" }

// SessionKey is the key marking the session with token id jti as live.
func SessionKey(jti string) string { return "session:" + jti }

// New returns a redis-backed store when redisURL is set, otherwise an
// in-process one.
func New(redisURL string) (Store, error) {
	if redisURL == "" {
		return NewMemory(), nil
	}
	return NewRedis(redisURL)
}

var (
	mu           sync.RWMutex
	defaultStore Store = NewMemory()
	defaultTTL         = 10 * time.Minute
)

// Init replaces the process-wide store and entry lifetime.
func Init(s Store, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	defaultStore = s
	if ttl > 0 {
		defaultTTL = ttl
	}
}

// GetStore returns the process-wide store.
func GetStore() Store {
	mu.RLock()
	defer mu.RUnlock()
	return defaultStore
}

// Remember returns the cached JSON value for key, computing and storing it
// with load on a miss. Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, key string, load func() (T, error)) (T, error) {
	store := GetStore()
	mu.RLock()
	ttl := defaultTTL
	mu.RUnlock()

	if b, ok, err := store.Get(ctx, key); err != nil {
		log.Printf("cache: get %s: %v", key, err)
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
		log.Printf("cache: discarding undecodable entry %s", key)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(v); err == nil {
		if err := store.Set(ctx, key, b, ttl); err != nil {
			log.Printf("cache: set %s: %v", key, err)
		}
	}
	return v, nil
}

// Forget drops every entry under prefix, logging failures.
func Forget(ctx context.Context, prefix string) {
	if err := GetStore().DeletePrefix(ctx, prefix); err != nil {
		log.Printf("cache: delete %s*: %v", prefix, err)
	}
}
