package marketdata

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	series    types.PriceSeries
	expiresAt time.Time
}

// CachedProvider keeps fetched series in memory for a fixed TTL. Concurrent
// fetches of the same key share one upstream call. Failed fetches are not cached.
// Callers always receive their own copy of the bars.
type CachedProvider struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

// NewCachedProvider wraps provider with a TTL cache.
func NewCachedProvider(provider Provider, ttl time.Duration, log *logger.Logger) *CachedProvider {
	return newCachedProviderWithClock(provider, ttl, time.Now, log)
}

func newCachedProviderWithClock(provider Provider, ttl time.Duration, now func() time.Time, log *logger.Logger) *CachedProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &CachedProvider{
		provider: provider,
		ttl:      ttl,
		now:      now,
		logger:   log,
		entries:  make(map[string]cacheEntry),
	}
}

// Fetch implements Provider.
func (c *CachedProvider) Fetch(ctx context.Context, ticker string, period string, interval string) (types.PriceSeries, error) {
	key := cacheKey(ticker, period, interval)

	if series, ok := c.lookup(key); ok {
		c.logger.Debug("Market data cache hit", zap.String("key", key))

		return series.Clone(), nil
	}

	// the shared fetch outlives any single caller's cancellation
	fetchCtx := context.WithoutCancel(ctx)

	results := c.group.DoChan(key, func() (interface{}, error) {
		// another caller may have filled the entry while we waited
		if series, ok := c.lookup(key); ok {
			return series, nil
		}

		series, err := c.provider.Fetch(fetchCtx, ticker, period, interval)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{series: series.Clone(), expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()

		return series, nil
	})

	var result singleflight.Result

	select {
	case <-ctx.Done():
		return types.PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, ctx.Err(), "fetch of %s cancelled", key)
	case result = <-results:
	}

	if result.Err != nil {
		return types.PriceSeries{}, result.Err
	}

	c.logger.Debug("Market data cache miss", zap.String("key", key), zap.Bool("shared", result.Shared))

	value := result.Val
	series, _ := value.(types.PriceSeries)

	return series.Clone(), nil
}

// Len returns the number of cached series, including expired ones not yet evicted.
func (c *CachedProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear drops every cached series.
func (c *CachedProvider) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *CachedProvider) lookup(key string) (types.PriceSeries, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return types.PriceSeries{}, false
	}

	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// only evict the entry we saw, a refresh may have replaced it
		if current, ok := c.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return types.PriceSeries{}, false
	}

	return entry.series, true
}

func cacheKey(ticker, period, interval string) string {
	return strings.ToUpper(strings.TrimSpace(ticker)) + "|" + period + "|" + interval
}
