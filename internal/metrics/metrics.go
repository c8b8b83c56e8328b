package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Episode fetch metrics
var (
	EpisodesFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "episodes_fetched_total",
			Help: "Total number of episode pages processed, by resulting status.",
		},
		[]string{"status"},
	)

	PageFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time spent fetching pages from the site.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// Gauges describing the results of the last fetch pass
	StoredEpisodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_episodes",
			Help: "Number of episodes in the results of the last fetch pass.",
		},
	)

	DistinctSignatures = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "distinct_subtitle_signatures",
			Help: "Number of distinct subtitle captions found by the last fetch pass.",
		},
	)
)

// Subtitle download metrics
var (
	SubtitleDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_downloads_total",
			Help: "Total number of subtitle downloads.",
		},
		[]string{"status"},
	)

	SubtitleDownloadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subtitle_download_bytes_total",
			Help: "Total number of subtitle bytes downloaded.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		EpisodesFetchedTotal,
		PageFetchDuration,
		StoredEpisodes,
		DistinctSignatures,
		SubtitleDownloadsTotal,
		SubtitleDownloadBytes,
	)
}
