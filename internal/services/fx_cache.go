package services

import (
	"sync"

	"github.com/alphavelocity/moneyclip/internal/repositories"
)

// maxGraphCacheDates bounds the number of as-of dates cached per store.
const maxGraphCacheDates = 32

// graphCache holds built rate graphs keyed by as-of date, stamped with the
// store's mutation generation. A stamp mismatch drops the whole cache: a single
// stale graph must never be served. The cache only affects latency, never the
// computed value; racing rebuilds are tolerated and the last writer wins.
type graphCache struct {
	mu     sync.RWMutex
	gen    repositories.Generation
	graphs map[string]*rateGraph
	order  []string // insertion-recency order, oldest first
}

func newGraphCache() *graphCache {
	return &graphCache{graphs: make(map[string]*rateGraph)}
}

// get returns the cached graph for the date key if the generation still
// matches, nil otherwise.
func (c *graphCache) get(gen repositories.Generation, key string) *rateGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gen != gen {
		return nil
	}
	return c.graphs[key]
}

// put stores a freshly built graph under the given generation, invalidating
// everything cached under an older one and evicting the least recently stored
// date beyond capacity.
func (c *graphCache) put(gen repositories.Generation, key string, g *rateGraph) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		c.gen = gen
		c.graphs = make(map[string]*rateGraph)
		c.order = c.order[:0]
	}

	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
	c.graphs[key] = g

	for len(c.order) > maxGraphCacheDates {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.graphs, oldest)
	}
}

// len reports the number of cached dates, for tests.
func (c *graphCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.graphs)
}
