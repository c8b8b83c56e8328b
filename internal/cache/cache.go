// Package cache keeps raw episode pages between fetch passes. Keys are absolute
// page URLs and values are the response bodies exactly as downloaded, so a cached
// page goes through the same charset detection and parsing as a fresh one.
package cache

// EvictCallback receives the URL of a page pushed out of a full cache. Backends that
// do not hold values locally pass a nil body.
type EvictCallback func(pageURL string, body []byte)

// Logger receives failures that a backend cannot return to the caller.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a bounded, expiring store of page bodies.
type Cache interface {
	// Get returns the cached body of pageURL and refreshes its recency.
	Get(pageURL string) ([]byte, bool)

	// Set stores body under pageURL, replacing any previous body.
	Set(pageURL string, body []byte)

	// Contains reports whether pageURL is cached, leaving its recency untouched.
	Contains(pageURL string) bool

	// Len returns the number of cached pages.
	Len() int

	// Close releases connections held by the backend.
	Close() error
}
