package cache

// instrumentedCache records lookups and stored bytes of a backend under its metrics
// group. Evictions are counted by the OnEvict hook that Open installs.
type instrumentedCache struct {
	Cache
	group string
}

func newInstrumentedCache(backend Cache, group string) *instrumentedCache {
	registerEntriesGauge(group, backend.Len)
	return &instrumentedCache{Cache: backend, group: group}
}

func (c *instrumentedCache) Get(pageURL string) ([]byte, bool) {
	body, ok := c.Cache.Get(pageURL)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return body, ok
}

func (c *instrumentedCache) Set(pageURL string, body []byte) {
	c.Cache.Set(pageURL, body)
	StoredBytesTotal.WithLabelValues(c.group).Add(float64(len(body)))
}

// Close drops the entries gauge of the group before closing the backend.
func (c *instrumentedCache) Close() error {
	unregisterEntriesGauge(c.group)
	return c.Cache.Close()
}
