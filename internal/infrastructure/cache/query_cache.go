// Package cache implements the tag-indexed resource cache shared by all
// read paths. Queries declare the tags they provide, mutations declare
// the tags they invalidate, and staled queries are refetched so reads
// converge on server state after every write.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

// Query is one cacheable read. Key identifies the endpoint plus its
// serialized arguments; two queries with equal keys share one cache
// entry and one in-flight request.
type Query struct {
	Key   string
	Fetch func(ctx context.Context) (any, domain.TagSet, error)
}

// Mutation is one write. Invalidates is issued only after Run succeeds.
type Mutation struct {
	Name        string
	Run         func(ctx context.Context) (any, error)
	Invalidates domain.TagSet
}

// Key builds a cache key from an endpoint identity and its arguments.
func Key(endpoint string, args any) string {
	if args == nil {
		return endpoint
	}
	raw, err := json.Marshal(args)
	if err != nil {
		// Unserializable args cannot be shared; key by pointer formatting.
		return fmt.Sprintf("%s#%v", endpoint, args)
	}
	return endpoint + "#" + string(raw)
}

type entry struct {
	data      any
	provides  domain.TagSet
	stale     bool
	fetchedAt time.Time
}

// QueryCache is the process-wide resource cache. Writes happen only in
// fetch and mutation completion paths; any number of readers may peek
// concurrently. Last completion wins per key.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	subs    map[string]Query
	group   singleflight.Group
	ttl     time.Duration
	logger  *slog.Logger

	refetchWG sync.WaitGroup
}

// New creates a cache. Entries older than ttl are refetched on the next
// read even without an invalidation; ttl <= 0 disables age-based expiry
// so only invalidation forces a refetch.
func New(ttl time.Duration, logger *slog.Logger) *QueryCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryCache{
		entries: make(map[string]*entry),
		subs:    make(map[string]Query),
		ttl:     ttl,
		logger:  logger,
	}
}

// Fetch returns the cached value when fresh, otherwise executes the
// query. Concurrent fetches for the same key collapse into a single
// request. A failed fetch leaves any prior entry untouched.
func (c *QueryCache) Fetch(ctx context.Context, q Query) (any, error) {
	if data, ok := c.fresh(q.Key); ok {
		return data, nil
	}

	v, err, _ := c.group.Do(q.Key, func() (any, error) {
		// A concurrent flight may have refilled the entry while this
		// caller waited on the group lock.
		if data, ok := c.fresh(q.Key); ok {
			return data, nil
		}

		data, provides, err := q.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[q.Key] = &entry{
			data:      data,
			provides:  provides,
			fetchedAt: time.Now(),
		}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek returns the last good value for a key without touching the
// network, along with whether it has been staled. Callers use it to
// keep showing previous data while a refetch is in flight.
func (c *QueryCache) Peek(key string) (any, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, domain.ErrNoCacheEntry
	}
	return e.data, e.stale, nil
}

// Subscribe registers a query for automatic refetch when one of its
// provided tags is invalidated.
func (c *QueryCache) Subscribe(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[q.Key] = q
}

// Unsubscribe removes a registered query. Its cache entry survives.
func (c *QueryCache) Unsubscribe(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, key)
}

// Mutate validates nothing itself; it runs the mutation and, on
// success, issues invalidation for the declared tags before returning.
// Refetch of affected subscriptions happens asynchronously. A failed
// mutation performs no invalidation.
func (c *QueryCache) Mutate(ctx context.Context, m Mutation) (any, error) {
	data, err := m.Run(ctx)
	if err != nil {
		return nil, err
	}
	c.Invalidate(m.Invalidates)
	return data, nil
}

// Invalidate marks every entry whose provided tags intersect the given
// set as stale, then kicks off background refetch of subscribed queries
// for the staled keys. Marking is synchronous; refetch is not.
func (c *QueryCache) Invalidate(tags domain.TagSet) {
	if len(tags) == 0 {
		return
	}

	c.mu.Lock()
	var refetch []Query
	for key, e := range c.entries {
		if !tags.Invalidates(e.provides) {
			continue
		}
		e.stale = true
		if q, ok := c.subs[key]; ok {
			refetch = append(refetch, q)
		}
	}
	c.mu.Unlock()

	if len(refetch) == 0 {
		return
	}

	c.refetchWG.Add(1)
	go func() {
		defer c.refetchWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		for _, q := range refetch {
			g.Go(func() error {
				if _, err := c.Fetch(ctx, q); err != nil {
					// The stale entry stays; the next read retries.
					c.logger.Debug("refetch failed", "key", q.Key, "error", err)
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Flush blocks until all background refetches kicked off so far have
// completed.
func (c *QueryCache) Flush() {
	c.refetchWG.Wait()
}

// fresh returns the cached value when the entry exists, is not stale,
// and is within the ttl window.
func (c *QueryCache) fresh(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.data, true
}
