package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/metrics"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/prometheus/client_golang/prometheus"
)

// response is a fully read HTTP response
type response struct {
	URL    string
	Body   []byte
	Header http.Header
}

// newRetryPolicy retries transport failures and temporary HTTP statuses.
// With maxRetries == 0 every request is attempted exactly once.
func newRetryPolicy(maxRetries int, delay time.Duration) retrypolicy.RetryPolicy[*response] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return retrypolicy.NewBuilder[*response]().
		HandleIf(func(_ *response, err error) bool {
			return isRetryable(err)
		}).
		WithMaxRetries(maxRetries).
		WithDelay(delay).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[*response]) {
			logger := config.GetLogger()
			logger.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("Retrying request")
		}).
		Build()
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *apperrors.ErrUnexpectedStatus
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// fetch performs a GET request under the retry policy and records its duration under kind
func (c *client) fetch(ctx context.Context, kind, targetURL string) (*response, error) {
	timer := prometheus.NewTimer(metrics.PageFetchDuration.WithLabelValues(kind))
	defer timer.ObserveDuration()

	return failsafe.With(c.retryPolicy).WithContext(ctx).Get(func() (*response, error) {
		return c.get(ctx, targetURL)
	})
}

func (c *client) get(ctx context.Context, targetURL string) (*response, error) {
	logger := config.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("statusCode", resp.StatusCode).Str("url", targetURL).Msg("Request returned non-OK status")
		return nil, &apperrors.ErrUnexpectedStatus{URL: targetURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &response{URL: targetURL, Body: body, Header: resp.Header}, nil
}
