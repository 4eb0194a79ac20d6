// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache wraps a weather.Provider with a TTL cache of fetched datasets.
package cache

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/weather"
)

// boundsPrecision is the precision used to quantize bounds (0.01 degrees ≈ 1.1 km)
const boundsPrecision = 1e-2

type cacheKey struct {
	Provider string
	// Latest marks lookups of the newest cycle; Hour is then the hour of the request.
	Latest bool
	Hour   int64
	Vars   string
	WestQ  int32
	EastQ  int32
	SouthQ int32
	NorthQ int32
}

type cacheEntry struct {
	Dataset *weather.Dataset
	Expiry  time.Time
}

// CachedProvider caches the datasets returned by a provider. Failed fetches are not cached. Cached
// datasets are shared and must not be mutated.
type CachedProvider struct {
	provider  weather.Provider
	ttlLatest time.Duration
	ttlAt     time.Duration
	clock     clockwork.Clock

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

// New wraps provider. ttlLatest applies to lookups of the newest cycle, ttlAt to fixed valid times.
func New(provider weather.Provider, ttlLatest, ttlAt time.Duration, clock clockwork.Clock) *CachedProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedProvider{
		provider:  provider,
		ttlLatest: ttlLatest,
		ttlAt:     ttlAt,
		clock:     clock,
		cache:     make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedProvider) Name() string {
	return c.provider.Name()
}

func (c *CachedProvider) Latest(ctx context.Context, now time.Time, vars []string, bounds geo.Bounds) (*weather.Dataset, error) {
	key := newKey(c.provider.Name(), true, now, vars, bounds)
	return c.lookup(key, c.ttlLatest, func() (*weather.Dataset, error) {
		return c.provider.Latest(ctx, now, vars, bounds)
	})
}

func (c *CachedProvider) At(ctx context.Context, valid time.Time, vars []string, bounds geo.Bounds) (*weather.Dataset, error) {
	key := newKey(c.provider.Name(), false, valid, vars, bounds)
	return c.lookup(key, c.ttlAt, func() (*weather.Dataset, error) {
		return c.provider.At(ctx, valid, vars, bounds)
	})
}

// Len returns the number of cached entries, expired ones included.
func (c *CachedProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *CachedProvider) lookup(key cacheKey, ttl time.Duration, fetch func() (*weather.Dataset, error)) (*weather.Dataset, error) {
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.cache[key]
	if ok && now.Before(entry.Expiry) {
		c.mu.RUnlock()
		return entry.Dataset, nil
	}
	c.mu.RUnlock()

	ds, err := fetch()
	if err != nil {
		return ds, err
	}
	if ttl <= 0 {
		return ds, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		Dataset: ds,
		Expiry:  now.Add(ttl),
	}
	c.prune(now)
	return ds, nil
}

// prune removes expired entries. The caller holds the write lock.
func (c *CachedProvider) prune(now time.Time) {
	for k, e := range c.cache {
		if !now.Before(e.Expiry) {
			delete(c.cache, k)
		}
	}
}

func quantize(val float64) int32 {
	return int32(math.Round(val / boundsPrecision))
}

func newKey(provider string, latest bool, t time.Time, vars []string, bounds geo.Bounds) cacheKey {
	sorted := slices.Clone(vars)
	slices.Sort(sorted)
	return cacheKey{
		Provider: provider,
		Latest:   latest,
		Hour:     t.UTC().Truncate(time.Hour).Unix(),
		Vars:     strings.Join(sorted, ","),
		WestQ:    quantize(bounds.West),
		EastQ:    quantize(bounds.East),
		SouthQ:   quantize(bounds.South),
		NorthQ:   quantize(bounds.North),
	}
}
