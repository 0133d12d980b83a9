// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import (
	"strconv"
	"sync"
	"testing"
)

// TestNew checks cache creation with valid and invalid sizes.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := New[string](3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache.Len() != 0 {
			t.Errorf("expected cache length to be 0, got %d", cache.Len())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		t.Parallel()

		cache, err := New[string](0)
		if err == nil {
			t.Fatal("expected error when creating cache of size 0, got nil")
		}

		if cache != nil {
			t.Error("expected no cache to be returned on error")
		}
	})
}

// TestLRUCache_AddAndGet verifies retrieval and that the least recently used
// entry is evicted once capacity is reached.
func TestLRUCache_AddAndGet(t *testing.T) {
	t.Parallel()

	cache, err := New[int](2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if evicted := cache.Add("a", 1); evicted {
		t.Error("unexpected eviction when adding first key")
	}

	cache.Add("b", 2)

	// Touch "a" so that "b" becomes the oldest entry.
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v (found=%v)", v, ok)
	}

	if evicted := cache.Add("c", 3); !evicted {
		t.Error("expected eviction when exceeding capacity")
	}

	if _, ok := cache.Get("b"); ok {
		t.Error("expected b to be evicted")
	}

	if v, ok := cache.Get("c"); !ok || v != 3 {
		t.Errorf("expected c=3, got %v (found=%v)", v, ok)
	}
}

// TestLRUCache_AddExistingKey verifies updates replace the value without eviction.
func TestLRUCache_AddExistingKey(t *testing.T) {
	t.Parallel()

	cache, _ := New[string](2)
	cache.Add("k", "old")

	if evicted := cache.Add("k", "new"); evicted {
		t.Error("updating an existing key must not evict")
	}

	if v, _ := cache.Get("k"); v != "new" {
		t.Errorf("expected updated value, got %q", v)
	}

	if cache.Len() != 1 {
		t.Errorf("expected length 1, got %d", cache.Len())
	}
}

// TestLRUCache_Peek verifies Peek does not refresh recency.
func TestLRUCache_Peek(t *testing.T) {
	t.Parallel()

	cache, _ := New[int](2)
	cache.Add("a", 1)
	cache.Add("b", 2)

	if v, ok := cache.Peek("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v (found=%v)", v, ok)
	}

	cache.Add("c", 3)

	if _, ok := cache.Peek("a"); ok {
		t.Error("expected a to be evicted since Peek must not refresh it")
	}

	if _, ok := cache.Peek("missing"); ok {
		t.Error("expected missing key to report not found")
	}
}

// TestLRUCache_RemoveAndKeys verifies removal and key ordering.
func TestLRUCache_RemoveAndKeys(t *testing.T) {
	t.Parallel()

	cache, _ := New[int](3)
	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	if !cache.Remove("b") {
		t.Error("expected b to be removed")
	}

	if cache.Remove("b") {
		t.Error("removing twice must report false")
	}

	keys := cache.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("expected keys [a c], got %v", keys)
	}
}

// TestLRUCache_Concurrent exercises concurrent access under the race detector.
func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache, _ := New[int](16)

	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)

		go func(g int) {
			defer wg.Done()

			for i := range 100 {
				key := strconv.Itoa((g * i) % 32)
				cache.Add(key, i)
				cache.Get(key)
			}
		}(g)
	}

	wg.Wait()

	if cache.Len() > 16 {
		t.Errorf("cache exceeded capacity: %d", cache.Len())
	}
}
