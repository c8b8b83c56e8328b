package pipeline

import (
	"context"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/metrics"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
	"github.com/Belphemur/ToshoSubtitles/internal/reporting"

	"github.com/google/uuid"
)

// SubtitleSource fetches and parses the subtitle section of one episode
type SubtitleSource interface {
	GetEpisodeSubtitles(ctx context.Context, episode models.EpisodeLink) (*models.SubtitleSection, error)
}

// Aggregator runs the subtitle lookup for every episode of a listing
type Aggregator struct {
	source SubtitleSource
	queue  *Queue
}

// NewAggregator creates an aggregator fetching at most concurrency episode pages at once
func NewAggregator(source SubtitleSource, concurrency int) *Aggregator {
	return &Aggregator{
		source: source,
		queue:  NewQueue(concurrency),
	}
}

// Run looks up subtitles for every episode and returns one result per episode in
// listing order. A failed episode becomes a NotFound result and the pass goes on.
// Progress is reported before each episode starts. An error is returned only when
// ctx is cancelled, in which case no results are returned.
func (a *Aggregator) Run(ctx context.Context, episodes []models.EpisodeLink, progress ProgressFunc) ([]models.EpisodeResult, models.FetchSummary, error) {
	passID := uuid.NewString()
	logger := config.GetLogger().With().Str("pass", passID).Logger()
	start := time.Now()

	logger.Info().
		Int("episodes", len(episodes)).
		Int("concurrency", a.queue.Concurrency()).
		Msg("Starting subtitle fetch pass")

	results := make([]models.EpisodeResult, len(episodes))
	err := a.queue.Run(ctx, len(episodes), func(ctx context.Context, i int) {
		episode := episodes[i]
		progress.report(Progress{
			Phase:   PhaseFetch,
			Current: i,
			Total:   len(episodes),
			Percent: Percent(i, len(episodes)),
			Episode: episode.Title,
		})

		section, err := a.source.GetEpisodeSubtitles(ctx, episode)
		if err != nil {
			logger.Warn().Err(err).Str("episode", episode.Title).Str("url", episode.URL).Msg("Failed to fetch subtitles for episode")
			if ctx.Err() == nil {
				reporting.CaptureError(err, map[string]string{
					"phase":   "fetch",
					"pass":    passID,
					"episode": episode.Title,
				})
			}
			results[i] = models.NewFailedEpisodeResult(episode, models.ReasonFetchFailed)
		} else {
			results[i] = models.NewEpisodeResult(episode, section)
		}

		metrics.EpisodesFetchedTotal.WithLabelValues(results[i].Status.String()).Inc()
		logger.Debug().
			Str("episode", episode.Title).
			Str("status", results[i].Status.String()).
			Str("reason", string(results[i].Reason)).
			Int("subtitles", len(results[i].Subtitles)).
			Msg("Episode processed")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Subtitle fetch pass cancelled")
		return nil, models.FetchSummary{}, err
	}

	summary := summarizeFetch(passID, results, time.Since(start))
	logger.Info().
		Int("fetched", summary.Fetched).
		Int("notFound", summary.NotFound).
		Int("signatures", len(summary.Signatures)).
		Dur("duration", summary.Duration).
		Msg("Completed subtitle fetch pass")

	return results, summary, nil
}

func summarizeFetch(passID string, results []models.EpisodeResult, duration time.Duration) models.FetchSummary {
	summary := models.FetchSummary{
		PassID:     passID,
		Episodes:   len(results),
		Signatures: make([]string, 0),
		Duration:   duration,
	}

	seen := make(map[string]struct{})
	for _, result := range results {
		if result.Status == models.EpisodeStatusFetched {
			summary.Fetched++
		} else {
			summary.NotFound++
		}
		for _, record := range result.Subtitles {
			if _, ok := seen[record.DisplayText]; !ok {
				seen[record.DisplayText] = struct{}{}
				summary.Signatures = append(summary.Signatures, record.DisplayText)
			}
		}
	}
	return summary
}
