package cache

import (
	"context"
	"sync"
)

type selection struct {
	id     uint64
	cancel context.CancelFunc
}

// SelectionCache tracks the in-flight table build of each viewer. Starting a new build for a
// viewer cancels the one it supersedes.
type SelectionCache struct {
	mu    sync.Mutex
	next  uint64
	store map[string]selection
}

func NewSelectionCache() *SelectionCache {
	return &SelectionCache{
		store: make(map[string]selection),
	}
}

// Begin registers a new build for viewer and returns its context plus a release func that must
// be called when the build finishes. An empty viewer is never superseded.
func (c *SelectionCache) Begin(ctx context.Context, viewer string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	if viewer == "" {
		return ctx, cancel
	}

	c.mu.Lock()
	if prev, ok := c.store[viewer]; ok {
		prev.cancel()
	}
	c.next++
	id := c.next
	c.store[viewer] = selection{id: id, cancel: cancel}
	c.mu.Unlock()

	return ctx, func() {
		cancel()
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := c.store[viewer]; ok && cur.id == id {
			delete(c.store, viewer)
		}
	}
}

// InFlight reports how many viewers have a build running.
func (c *SelectionCache) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}
