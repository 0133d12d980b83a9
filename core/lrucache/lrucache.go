// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache.
Keys are strings. The cache evicts the least recently used entry when it reaches capacity.

The localizers use it to keep compiled format templates keyed by their source text.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// LRUCache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type LRUCache[V any] struct {
	size      int                      // Maximum capacity of the cache (number of entries)
	evictList *list.List               // Front is the most recently used entry
	items     map[string]*list.Element // Maps keys to their linked-list elements
	lock      sync.Mutex
}

// cacheEntry holds the key/value pair stored in each linked-list element.
type cacheEntry[V any] struct {
	key   string
	value V
}

// New creates a cache holding at most size entries.
//
// It returns an error if size is not a positive integer.
func New[V any](size int) (*LRUCache[V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	return &LRUCache[V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}, nil
}

// Add adds or updates the value for key.
//
// If the key exists, it becomes the most recently used.
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *LRUCache[V]) Add(key string, value V) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*cacheEntry[V]).value = value

		return false
	}

	c.items[key] = c.evictList.PushFront(&cacheEntry[V]{key: key, value: value})

	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the value for key and marks it as most recently used.
// The second result reports whether the key was found.
func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V

		return zero, false
	}

	c.evictList.MoveToFront(ent)

	return ent.Value.(*cacheEntry[V]).value, true
}

// Peek retrieves the value for key without modifying the LRU order.
func (c *LRUCache[V]) Peek(key string) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V

		return zero, false
	}

	return ent.Value.(*cacheEntry[V]).value, true
}

// Remove deletes the entry associated with key from the cache.
//
// Remove reports whether the key was present and removed.
func (c *LRUCache[V]) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)

		return true
	}

	return false
}

// Keys returns a slice of all keys in the cache, from the oldest to the newest.
func (c *LRUCache[V]) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.items))

	for ent := c.evictList.Back(); ent != nil; ent = ent.Prev() {
		keys = append(keys, ent.Value.(*cacheEntry[V]).key)
	}

	return keys
}

// Len returns the current number of items in the cache.
func (c *LRUCache[V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

func (c *LRUCache[V]) removeOldest() {
	if ent := c.evictList.Back(); ent != nil {
		c.removeElement(ent)
	}
}

func (c *LRUCache[V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*cacheEntry[V]).key)
}
