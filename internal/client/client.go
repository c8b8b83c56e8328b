package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/cache"
	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
	"github.com/Belphemur/ToshoSubtitles/internal/parser"

	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// Client defines the interface for querying AnimeTosho listing and episode pages
type Client interface {
	// ListEpisodes fetches a listing page and returns its episode links in document order.
	ListEpisodes(ctx context.Context, listingURL string) ([]models.EpisodeLink, error)

	// GetEpisodeSubtitles fetches an episode page and extracts its subtitle row.
	GetEpisodeSubtitles(ctx context.Context, episode models.EpisodeLink) (*models.SubtitleSection, error)

	// DownloadSubtitle retrieves the file behind a subtitle record.
	DownloadSubtitle(ctx context.Context, record models.SubtitleRecord) (*models.DownloadResult, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient     *http.Client
	baseURL        string
	pageCache      cache.Cache
	retryPolicy    retrypolicy.RetryPolicy[*response]
	subtitleParser parser.SubtitleExtractor
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Parse timeout duration
	timeout := parseDuration(cfg.ClientTimeout, 30*time.Second, "client_timeout")

	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			// Log error but continue without proxy
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Wrap transport with compression support (gzip, brotli, zstd)
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(baseTransport),
	}

	return &client{
		httpClient:     httpClient,
		baseURL:        cfg.SiteDomain,
		pageCache:      newPageCache(cfg),
		retryPolicy:    newRetryPolicy(cfg.Fetch.Retries, parseDuration(cfg.Fetch.RetryDelay, 2*time.Second, "fetch.retry_delay")),
		subtitleParser: parser.NewSubtitleParser(cfg.SiteDomain),
	}
}

// newPageCache opens the episode page cache. A backend that cannot be reached
// degrades to the in-memory provider, then to no cache at all.
func newPageCache(cfg *config.Config) cache.Cache {
	logger := config.GetLogger()

	opts := cache.Options{
		Provider: cfg.Cache.Provider,
		Capacity: cfg.Cache.Size,
		TTL:      parseDuration(cfg.Cache.TTL, time.Hour, "cache.ttl"),
		Logger:   cacheLogger{},
		Redis: cache.RedisOptions{
			Address:  cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		},
		MetricsGroup: "episode_pages",
	}
	if opts.Capacity <= 0 {
		opts.Capacity = 256
	}

	pageCache, provider, err := cache.OpenWithFallback(opts, cache.ProviderMemory, cache.ProviderNone)
	if err != nil {
		// Every registered provider failed, fetch without caching
		logger.Error().Err(err).Msg("Failed to open any page cache")
		pageCache, _ = cache.Open(cache.Options{Provider: cache.ProviderNone, Capacity: 1})
		return pageCache
	}

	logger.Debug().Str("provider", provider).Int("capacity", opts.Capacity).Msg("Episode page cache ready")
	return pageCache
}

func parseDuration(value string, fallback time.Duration, key string) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return parsed
}

// cacheLogger forwards cache backend errors to the application logger
type cacheLogger struct{}

func (cacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.pageCache.Close()
}
