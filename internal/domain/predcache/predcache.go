// Package predcache memoizes fixture predictions. Features and scoring
// are pure over an immutable snapshot, so a cached distribution for a
// pairing stays valid for the lifetime of the process.
package predcache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/afcon/internal/domain/oracle"
	"github.com/okian/afcon/pkg/metrics"
)

// defaultMaxSize bounds the cache; a full bracket run touches well under
// a hundred pairings.
const defaultMaxSize = 4096

// Cache stores outcome distributions keyed by ordered fixture pairing.
type Cache interface {
	// Get returns the cached distribution for a pairing, if present.
	Get(ctx context.Context, team1, team2 string) (oracle.Distribution, bool)

	// Put records a distribution for a pairing. When the cache is full the
	// oldest insertion is evicted.
	Put(ctx context.Context, team1, team2 string, d oracle.Distribution)

	Size() int64
}

// inMemoryCache implements Cache with a map plus FIFO eviction ring.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]oracle.Distribution
	order   []string // insertion order for eviction
	maxSize int
	size    atomic.Int64
}

// Option applies a configuration option to the cache.
type Option func(*inMemoryCache)

// WithMaxSize sets the maximum number of cached pairings; <= 0 keeps the
// default bound.
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		if maxSize > 0 {
			c.maxSize = maxSize
		}
	}
}

// New creates an in-memory prediction cache.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]oracle.Distribution, c.maxSize)
	return c
}

// key is orientation-sensitive: (a,b) and (b,a) are distinct fixtures,
// team1 defines the perspective of the distribution.
func key(team1, team2 string) string {
	return team1 + "|" + team2
}

func (c *inMemoryCache) Get(ctx context.Context, team1, team2 string) (oracle.Distribution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.entries[key(team1, team2)]
	if ok {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
	}
	return d, ok
}

func (c *inMemoryCache) Put(ctx context.Context, team1, team2 string, d oracle.Distribution) {
	k := key(team1, team2)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[k]; exists {
		c.entries[k] = d
		return
	}
	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.size.Add(-1)
	}
	c.entries[k] = d
	c.order = append(c.order, k)
	c.size.Add(1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
