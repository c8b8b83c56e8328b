package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Page cache metrics, labelled with Options.MetricsGroup.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_hits_total",
			Help: "Total number of episode pages served from the cache.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_misses_total",
			Help: "Total number of episode page lookups that missed the cache.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_evictions_total",
			Help: "Total number of pages evicted from the cache.",
		},
		[]string{"cache"},
	)

	StoredBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_stored_bytes_total",
			Help: "Total size of the page bodies written to the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		HitsTotal,
		MissesTotal,
		EvictionsTotal,
		StoredBytesTotal,
	)
}

var (
	entriesMu sync.Mutex
	entries   = make(map[string]prometheus.Collector)
	// entriesReg is swapped for an isolated registry in tests.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesGauge exposes the cache size of a group, read at scrape time.
// A gauge already registered for the group is replaced.
func registerEntriesGauge(group string, lenFunc func() int) {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "page_cache_entries",
		Help:        "Current number of pages in the cache.",
		ConstLabels: prometheus.Labels{"cache": group},
	}, func() float64 {
		return float64(lenFunc())
	})

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entries[group]; ok {
		entriesReg.Unregister(old)
	}
	entries[group] = gauge
	_ = entriesReg.Register(gauge)
}

func unregisterEntriesGauge(group string) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entries[group]; ok {
		entriesReg.Unregister(old)
		delete(entries, group)
	}
}
