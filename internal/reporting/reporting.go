// Package reporting forwards tolerated failures to Sentry when a DSN is configured.
// Without a DSN every function is a no-op.
package reporting

import (
	"sync/atomic"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/config"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

// Init configures the Sentry client from the configuration. It reports whether
// reporting is active.
func Init(cfg *config.Config, release string) (bool, error) {
	if cfg == nil || cfg.Sentry.DSN == "" {
		return false, nil
	}
	err := initClient(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     release,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func initClient(opts sentry.ClientOptions) error {
	if err := sentry.Init(opts); err != nil {
		enabled.Store(false)
		return err
	}
	enabled.Store(true)

	logger := config.GetLogger()
	logger.Info().Str("environment", opts.Environment).Msg("Sentry error reporting enabled")
	return nil
}

// Enabled reports whether errors are sent to Sentry
func Enabled() bool {
	return enabled.Load()
}

// CaptureError sends err to Sentry with the given tags
func CaptureError(err error, tags map[string]string) {
	if err == nil || !enabled.Load() {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered events to be delivered
func Flush(timeout time.Duration) {
	if !enabled.Load() {
		return
	}
	if !sentry.Flush(timeout) {
		logger := config.GetLogger()
		logger.Warn().Dur("timeout", timeout).Msg("Timed out flushing Sentry events")
	}
}
