// Package cache provides the process-wide package cache.
package cache

import (
	"context"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var _ ports.PackageCache = (*Cache)(nil)

// Cache implements ports.PackageCache. Concurrent requests for one key
// share a single registry fetch; failed fetches are not stored. The shared
// fetch is detached from the caller that started it, so one run giving up
// never fails another run waiting on the same key.
type Cache struct {
	registry ports.Registry

	mu         sync.RWMutex
	nodes      map[domain.ResolvedPackageKey]*domain.ResolvedNode
	generation uint64

	requestGroup singleflight.Group
}

// New creates a Cache that fetches through registry.
func New(registry ports.Registry) *Cache {
	return &Cache{
		registry: registry,
		nodes:    make(map[domain.ResolvedPackageKey]*domain.ResolvedNode),
	}
}

// GetOrFetch returns the node for key, fetching it if needed.
func (c *Cache) GetOrFetch(ctx context.Context, key domain.ResolvedPackageKey) (*domain.ResolvedNode, error) {
	c.mu.RLock()
	node, ok := c.nodes[key]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		return node, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.requestGroup.DoChan(key.String(), func() (any, error) {
		c.mu.RLock()
		cached, ok := c.nodes[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		files, err := c.registry.FetchPackageFiles(fetchCtx, key.Name, key.Version)
		if err != nil {
			return nil, err
		}
		fetched := &domain.ResolvedNode{Key: key, Files: files}

		c.mu.Lock()
		// A fetch that raced with Invalidate is returned but not kept.
		if c.generation == gen {
			c.nodes[key] = fetched
		}
		c.mu.Unlock()
		return fetched, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.ResolvedNode), nil
	}
}

// Invalidate drops every cached node.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[domain.ResolvedPackageKey]*domain.ResolvedNode)
	c.generation++
}

// Len returns the number of cached nodes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nodes)
}
