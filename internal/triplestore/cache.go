package triplestore

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/roach88/semstore/internal/rdf"
)

// Cache holds decoded triples by primary key.
//
// A committed pk never changes its triple, so entries never go stale as
// long as the cache is only filled from committed storage. Readers over an
// uncommitted kv.Txn must not share a Cache.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache
}

// NewCache creates a cache holding up to size triples.
// A size of zero or less disables caching and returns nil.
func NewCache(size int) *Cache {
	if size <= 0 {
		return nil
	}
	return &Cache{lru: lru.New(size)}
}

func (c *Cache) get(pk uint64) (rdf.Triple, bool) {
	if c == nil {
		return rdf.Triple{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(pk)
	if !ok {
		return rdf.Triple{}, false
	}
	return v.(rdf.Triple), true
}

func (c *Cache) add(pk uint64, t rdf.Triple) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(pk, t)
}

// Len returns the number of cached triples.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
