package yield

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/metrics"
)

// CachedSource wraps a Source and never fails: on error it serves the last
// successful result, or DefaultProtocols when nothing was fetched yet.
// Results younger than maxAge are served without calling the source.
type CachedSource struct {
	source Source
	maxAge time.Duration
	log    *slog.Logger

	mu        sync.RWMutex
	protocols []domain.YieldProtocol
	updatedAt time.Time
}

// NewCachedSource creates a cache around source. A zero maxAge calls the
// source on every Fetch.
func NewCachedSource(source Source, maxAge time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		maxAge: maxAge,
		log:    slog.Default().With("component", "yields"),
	}
}

// Fetch serves the cached list while it is fresh and refreshes otherwise.
func (c *CachedSource) Fetch(ctx context.Context) ([]domain.YieldProtocol, error) {
	if c.maxAge > 0 {
		c.mu.RLock()
		fresh := c.protocols != nil && time.Since(c.updatedAt) < c.maxAge
		c.mu.RUnlock()
		if fresh {
			return c.Latest(), nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh calls the wrapped source regardless of the cache age.
func (c *CachedSource) Refresh(ctx context.Context) ([]domain.YieldProtocol, error) {
	protocols, err := c.source.Fetch(ctx)
	if err != nil {
		metrics.YieldFetches.WithLabelValues("error").Inc()
		c.log.Warn("Failed to fetch yield data, serving cached", "error", err)
		return c.Latest(), nil
	}
	metrics.YieldFetches.WithLabelValues("ok").Inc()

	c.mu.Lock()
	c.protocols = append([]domain.YieldProtocol(nil), protocols...)
	c.updatedAt = time.Now()
	c.mu.Unlock()

	for _, chain := range domain.Chains {
		if best, ok := BestYield(protocols, &chain); ok {
			metrics.BestAPY.WithLabelValues(string(chain)).Set(best.APY)
		}
	}
	return protocols, nil
}

// Latest returns the cached list without fetching.
func (c *CachedSource) Latest() []domain.YieldProtocol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.protocols == nil {
		return DefaultProtocols()
	}
	return append([]domain.YieldProtocol(nil), c.protocols...)
}

// UpdatedAt returns when the cache was last refreshed, zero if never.
func (c *CachedSource) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}
