package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultSiteDomain is the site the listing and episode pages are scraped from.
const DefaultSiteDomain = "https://animetosho.org"

type Config struct {
	SiteDomain            string `mapstructure:"site_domain"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	UserAgent             string `mapstructure:"user_agent"`
	LogLevel              string `mapstructure:"log_level"`
	Locale                string `mapstructure:"locale"` // "en" or "vi"
	Fetch                 struct {
		Concurrency int    `mapstructure:"concurrency"` // Episode pages in flight at once
		Retries     int    `mapstructure:"retries"`
		RetryDelay  string `mapstructure:"retry_delay"`
	} `mapstructure:"fetch"`
	Download struct {
		Directory       string `mapstructure:"directory"`
		Delay           string `mapstructure:"delay"` // Settling delay after each download
		ExtractArchives bool   `mapstructure:"extract_archives"`
	} `mapstructure:"download"`
	Cache struct {
		Provider string `mapstructure:"provider"` // "memory", "redis" or "none"
		Size     int    `mapstructure:"size"`     // Maximum number of cached episode pages
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Stdout carries tables and JSON output, logs go to stderr
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	applyLogLevel(config.LogLevel)
	globalConfig = config
	logger.Debug().Msg("Configuration loaded successfully")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal()
}

func setDefaults() {
	viper.SetDefault("site_domain", DefaultSiteDomain)
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("locale", "en")
	viper.SetDefault("fetch.concurrency", 1)
	viper.SetDefault("fetch.retries", 0)
	viper.SetDefault("fetch.retry_delay", "2s")
	viper.SetDefault("download.directory", ".")
	viper.SetDefault("download.delay", "1s")
	viper.SetDefault("download.extract_archives", false)
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 256)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.address", "localhost")
	viper.SetDefault("metrics.port", 9090)
}

func unmarshal() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.SiteDomain == "" {
		config.SiteDomain = DefaultSiteDomain
	}

	return &config, nil
}

// ApplyFlags binds command-line flags on top of the file and environment configuration.
// flagKeys maps a flag name to the configuration key it overrides. An explicit config
// file path (flag "config") is read before the flags are applied.
func ApplyFlags(flags *pflag.FlagSet, flagKeys map[string]string) (*Config, error) {
	if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
		viper.SetConfigFile(f.Value.String())
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	config, err := unmarshal()
	if err != nil {
		return nil, err
	}

	applyLogLevel(config.LogLevel)
	globalConfig = config
	return config, nil
}

func applyLogLevel(configured string) {
	level := zerolog.InfoLevel // default
	if configured != "" {
		if parsedLevel, err := zerolog.ParseLevel(configured); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", configured).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
