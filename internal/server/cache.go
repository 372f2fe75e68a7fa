package server

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/platform"
)

// SnapshotCache provides a TTL-based cache for window snapshots, so bursts of
// tool calls share one round trip to the window system.
type SnapshotCache struct {
	mu        sync.Mutex
	source    platform.WindowSource
	ttl       time.Duration
	snapshot  model.Snapshot
	timestamp time.Time
	valid     bool
	now       func() time.Time
}

// NewSnapshotCache creates a new cache. A ttl of 0 disables caching.
func NewSnapshotCache(source platform.WindowSource, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{source: source, ttl: ttl, now: time.Now}
}

// Snapshot returns the cached snapshot if within TTL, otherwise reads fresh.
func (c *SnapshotCache) Snapshot(ctx context.Context) (model.Snapshot, error) {
	if c.ttl == 0 {
		return c.source.Snapshot(ctx)
	}

	c.mu.Lock()
	if c.valid && c.now().Sub(c.timestamp) < c.ttl {
		snap := c.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	snap, err := c.source.Snapshot(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	c.mu.Lock()
	c.snapshot, c.timestamp, c.valid = snap, c.now(), true
	c.mu.Unlock()

	return snap, nil
}

// Invalidate drops the cached snapshot. Called after every action that
// changes the window system state.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
