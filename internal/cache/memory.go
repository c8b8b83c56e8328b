package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register(ProviderMemory, newMemoryCache)
}

// memoryCache keeps pages in an expirable LRU local to the process. The pages are
// gone when the process exits.
type memoryCache struct {
	pages *lru.LRU[string, []byte]
}

func newMemoryCache(opts Options) (Cache, error) {
	var onEvict lru.EvictCallback[string, []byte]
	if opts.OnEvict != nil {
		onEvict = lru.EvictCallback[string, []byte](opts.OnEvict)
	}
	return &memoryCache{pages: lru.NewLRU[string, []byte](opts.Capacity, onEvict, opts.TTL)}, nil
}

func (m *memoryCache) Get(pageURL string) ([]byte, bool) { return m.pages.Get(pageURL) }

func (m *memoryCache) Set(pageURL string, body []byte) { m.pages.Add(pageURL, body) }

func (m *memoryCache) Contains(pageURL string) bool { return m.pages.Contains(pageURL) }

func (m *memoryCache) Len() int { return m.pages.Len() }

func (m *memoryCache) Close() error { return nil }
