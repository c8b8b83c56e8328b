package cache

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Provider names accepted by Open.
const (
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
	ProviderNone   = "none"
)

// RedisOptions locates the Redis or Valkey server of the redis provider.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// Options describes the page cache to open.
type Options struct {
	// Provider selects the backend. Empty means ProviderMemory.
	Provider string

	// Capacity is the maximum number of pages kept. Must be positive.
	Capacity int

	// TTL is how long a page stays valid after it was stored.
	TTL time.Duration

	// OnEvict is called for every page dropped because the cache is full.
	OnEvict EvictCallback

	// Logger receives backend failures. Nil discards them.
	Logger Logger

	Redis RedisOptions

	// MetricsGroup labels the cache in Prometheus metrics. Empty disables instrumentation.
	MetricsGroup string
}

// Constructor builds a backend from validated options.
type Constructor func(opts Options) (Cache, error)

var (
	registryMu   sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register makes a backend available under name.
// It panics on a nil constructor or a name already taken.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c == nil {
		panic("cache: Register constructor is nil")
	}
	if _, taken := constructors[name]; taken {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	constructors[name] = c
}

// RegisteredProviders returns the registered backend names in sorted order.
func RegisteredProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open creates the cache named by opts.Provider.
func Open(opts Options) (Cache, error) {
	if opts.Provider == "" {
		opts.Provider = ProviderMemory
	}
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be positive, got %d", opts.Capacity)
	}

	registryMu.RLock()
	construct, ok := constructors[opts.Provider]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", opts.Provider, RegisteredProviders())
	}

	if opts.MetricsGroup == "" {
		return construct(opts)
	}

	group := opts.MetricsGroup
	onEvict := opts.OnEvict
	opts.OnEvict = func(pageURL string, body []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if onEvict != nil {
			onEvict(pageURL, body)
		}
	}

	backend, err := construct(opts)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(backend, group), nil
}

// OpenWithFallback tries opts.Provider first and then each fallback in turn. It returns
// the cache and the name of the provider that was actually opened. The error joins
// every failed attempt and is only returned when no provider could be opened.
func OpenWithFallback(opts Options, fallbacks ...string) (Cache, string, error) {
	if opts.Provider == "" {
		opts.Provider = ProviderMemory
	}

	var errs []error
	for _, provider := range append([]string{opts.Provider}, fallbacks...) {
		attempt := opts
		attempt.Provider = provider
		c, err := Open(attempt)
		if err == nil {
			return c, provider, nil
		}
		errs = append(errs, err)
		if opts.Logger != nil {
			opts.Logger.Error(fmt.Sprintf("cache: provider %q unavailable", provider), err)
		}
	}
	return nil, "", errors.Join(errs...)
}
