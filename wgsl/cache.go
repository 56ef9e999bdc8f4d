// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgsl

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/gogpu/buffer"
)

// DefaultCacheCapacity is the number of compiled modules a Cache keeps
// when NewCache is given a non-positive capacity.
const DefaultCacheCapacity = 64

// CacheStats reports Cache usage.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type cacheEntry struct {
	source string
	spirv  []byte
}

// Cache is a thread-safe LRU of compiled SPIR-V keyed by WGSL source.
// Compilation errors are returned to the caller and never cached.
//
// Layouts that compare equal generate identical source, so PassThrough
// output for a layout used by many buffers compiles once.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	lru      *list.List // front is most recently used

	compile func(string) ([]byte, error)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewCache returns an empty cache holding at most capacity modules.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		compile:  Validate,
	}
}

// Compile returns the SPIR-V for source, compiling it on a miss.
//
// The returned slice is shared with the cache and must not be modified.
// The compiler runs with the lock held so concurrent misses on the same
// source compile once.
func (c *Cache) Compile(source string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[source]; ok {
		c.lru.MoveToFront(e)
		c.hits.Add(1)
		return e.Value.(*cacheEntry).spirv, nil
	}
	c.misses.Add(1)

	spirv, err := c.compile(source)
	if err != nil {
		return nil, err
	}

	for c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).source)
		c.evictions.Add(1)
	}
	c.entries[source] = c.lru.PushFront(&cacheEntry{source: source, spirv: spirv})
	buffer.Logger().Debug("wgsl: module compiled", "bytes", len(spirv), "cached", c.lru.Len())
	return spirv, nil
}

// PassThrough generates the pass-through shader for layout and compiles
// it through the cache.
func (c *Cache) PassThrough(layout *buffer.Layout) (string, []byte, error) {
	src, err := PassThrough(layout)
	if err != nil {
		return "", nil, err
	}
	spirv, err := c.Compile(src)
	if err != nil {
		return "", nil, err
	}
	return src, spirv, nil
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear drops every cached module. Statistics are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
}

// Stats returns current cache statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ResetStats resets all statistics counters to zero.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
