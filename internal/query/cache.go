package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/ZeyadMohamed5/Morph/pkg/errors"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_query_cache_hits_total",
		Help: "Cache hits served without a network call",
	}, []string{"resource"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_query_cache_misses_total",
		Help: "Cache misses that triggered a fetch",
	}, []string{"resource"})

	fetchRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_query_fetch_retries_total",
		Help: "Fetch attempts beyond the first, by resource",
	}, []string{"resource"})
)

// FetchFunc loads a value from the remote data access layer.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

type inflight struct {
	done  chan struct{}
	value any
	err   error
}

// Cache is the process-wide query cache. A Get with a fresh entry returns it
// without a network call; a Get whose key is already being fetched joins the
// in-flight request instead of issuing a duplicate; everything else fetches
// with the resource's retry policy.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	pending map[Key]*inflight
	logger  *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCache creates an empty cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		pending: make(map[Key]*inflight),
		logger:  logger,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the cached value for key, fetching it when absent or stale.
// Concurrent Gets for the same key share one fetch; callers with different
// keys race independently.
func (c *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	policy := PolicyFor(key.Resource)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && policy.fresh(e.fetchedAt, c.now()) {
		c.mu.Unlock()
		cacheHits.WithLabelValues(string(key.Resource)).Inc()
		return e.value, nil
	}

	if fl, ok := c.pending[key]; ok {
		c.mu.Unlock()
		select {
		case <-fl.done:
			return fl.value, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	fl := &inflight{done: make(chan struct{})}
	c.pending[key] = fl
	c.mu.Unlock()

	cacheMisses.WithLabelValues(string(key.Resource)).Inc()
	value, err := c.fetchWithRetry(ctx, key.Resource, policy, fetch)

	c.mu.Lock()
	delete(c.pending, key)
	if err == nil {
		c.entries[key] = &entry{value: value, fetchedAt: c.now()}
	}
	c.mu.Unlock()

	fl.value, fl.err = value, err
	close(fl.done)
	return value, err
}

// fetchWithRetry runs fetch under the policy's retry budget. The budget is
// picked per failure class: client errors (4xx) usually get none, transport
// and server errors get a few attempts with exponential backoff.
func (c *Cache) fetchWithRetry(ctx context.Context, resource Resource, policy Policy, fetch FetchFunc) (any, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			fetchRetries.WithLabelValues(string(resource)).Inc()
			if err := c.sleep(ctx, policy.backoff(attempt)); err != nil {
				return nil, err
			}
		}

		value, err := fetch(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		budget := policy.retryBudget(apperrors.IsClientError(err))
		if attempt >= budget {
			return nil, lastErr
		}

		c.logger.WarnContext(ctx, "fetch failed, retrying",
			slog.String("resource", string(resource)),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
}

// GetTyped is Get with the value asserted to T.
func GetTyped[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	value, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry for %s/%s holds %T, want %T", key.Resource, key.Op, value, zero)
	}
	return typed, nil
}

// Peek returns the cached value for key without fetching or freshness
// checks. Used by the optimistic mutation path.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Put stores a value under key, stamping it as freshly fetched.
func (c *Cache) Put(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
}

// Invalidate drops every entry belonging to the given resource families, so
// the next read re-fetches ground truth.
func (c *Cache) Invalidate(resources ...Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, r := range resources {
			if key.Resource == r {
				delete(c.entries, key)
				break
			}
		}
	}
}

// InvalidateKey drops one entry.
func (c *Cache) InvalidateKey(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
