package cache

import (
	"testing"
	"time"
)

const (
	episodeOne   = "https://animetosho.org/view/show-01.n1"
	episodeTwo   = "https://animetosho.org/view/show-02.n2"
	episodeThree = "https://animetosho.org/view/show-03.n3"
)

func newMemoryTestCache(t *testing.T, capacity int, ttl time.Duration, onEvict EvictCallback) Cache {
	t.Helper()
	c, err := Open(Options{Provider: ProviderMemory, Capacity: capacity, TTL: ttl, OnEvict: onEvict})
	if err != nil {
		t.Fatalf("New memory cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := newMemoryTestCache(t, 10, time.Hour, nil)

	val, ok := c.Get(episodeOne)
	if ok {
		t.Fatal("Expected miss for an uncached page")
	}
	if val != nil {
		t.Fatalf("Expected nil value on miss, got %v", val)
	}

	c.Set(episodeOne, []byte("<table></table>"))
	val, ok = c.Get(episodeOne)
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if string(val) != "<table></table>" {
		t.Fatalf("Expected cached body, got %s", string(val))
	}
}

func TestMemoryCache_ContainsAndLen(t *testing.T) {
	c := newMemoryTestCache(t, 10, time.Hour, nil)

	if c.Contains(episodeOne) {
		t.Fatal("Expected absent page to not be contained")
	}
	if c.Len() != 0 {
		t.Fatalf("Expected Len 0, got %d", c.Len())
	}

	c.Set(episodeOne, []byte("1"))
	c.Set(episodeTwo, []byte("2"))
	if !c.Contains(episodeOne) {
		t.Fatal("Expected cached page to be contained")
	}
	if c.Len() != 2 {
		t.Fatalf("Expected Len 2, got %d", c.Len())
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	evictedKeys := make([]string, 0)
	c := newMemoryTestCache(t, 2, time.Hour, func(key string, _ []byte) {
		evictedKeys = append(evictedKeys, key)
	})

	c.Set(episodeOne, []byte("1"))
	c.Set(episodeTwo, []byte("2"))
	c.Set(episodeThree, []byte("3")) // evicts episodeOne

	if len(evictedKeys) != 1 || evictedKeys[0] != episodeOne {
		t.Fatalf("Expected eviction of %q, got %v", episodeOne, evictedKeys)
	}
	if c.Contains(episodeOne) {
		t.Fatal("Evicted page should not be present")
	}
	if !c.Contains(episodeTwo) || !c.Contains(episodeThree) {
		t.Fatal("Newer pages should still be present")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newMemoryTestCache(t, 10, 50*time.Millisecond, nil)

	c.Set(episodeOne, []byte("1"))
	time.Sleep(150 * time.Millisecond)

	if _, ok := c.Get(episodeOne); ok {
		t.Fatal("Expected page to expire after its TTL")
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := newMemoryTestCache(t, 10, time.Hour, nil)

	c.Set(episodeOne, []byte("v1"))
	c.Set(episodeOne, []byte("v2"))

	val, ok := c.Get(episodeOne)
	if !ok {
		t.Fatal("Expected hit")
	}
	if string(val) != "v2" {
		t.Fatalf("Expected v2, got %s", string(val))
	}
	if c.Len() != 1 {
		t.Fatalf("Expected Len 1 after overwrite, got %d", c.Len())
	}
}
