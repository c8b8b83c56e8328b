package pipeline

import (
	"context"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/metrics"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
	"github.com/Belphemur/ToshoSubtitles/internal/reporting"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// SubtitleFetcher retrieves the file behind a subtitle record
type SubtitleFetcher interface {
	DownloadSubtitle(ctx context.Context, record models.SubtitleRecord) (*models.DownloadResult, error)
}

// Saver persists a downloaded subtitle and returns the paths it wrote
type Saver interface {
	Save(result *models.DownloadResult) ([]string, error)
}

// Downloader downloads the records of one signature strictly one after another
type Downloader struct {
	fetcher SubtitleFetcher
	saver   Saver
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewDownloader creates a downloader waiting delay after every download
func NewDownloader(fetcher SubtitleFetcher, saver Saver, delay time.Duration) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		saver:   saver,
		delay:   delay,
		sleep:   sleepContext,
	}
}

// Run downloads every record in order. Each download is followed by the settling
// delay and a progress report of floor(completed / total * 100). A failed download
// is logged and counted without stopping the pass. An error is returned only when
// ctx is cancelled.
func (d *Downloader) Run(ctx context.Context, signature string, records []models.SubtitleRecord, progress ProgressFunc) (models.DownloadSummary, error) {
	logger := config.GetLogger().With().Str("pass", uuid.NewString()).Str("signature", signature).Logger()

	summary := models.DownloadSummary{
		Signature: signature,
		Total:     len(records),
		Files:     make([]string, 0),
	}
	logger.Info().Int("total", len(records)).Msg("Starting subtitle download pass")

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("completed", i).Msg("Subtitle download pass cancelled")
			return summary, err
		}

		written, err := d.downloadOne(ctx, record)
		if err != nil {
			summary.Failed++
			metrics.SubtitleDownloadsTotal.WithLabelValues("error").Inc()
			logger.Error().Err(err).Str("episode", record.EpisodeTitle).Str("url", record.URL).Msg("Failed to download subtitle")
			if ctx.Err() == nil {
				reporting.CaptureError(err, map[string]string{
					"phase":   "download",
					"episode": record.EpisodeTitle,
					"url":     record.URL,
				})
			}
		} else {
			summary.Succeeded++
			summary.Bytes += written.bytes
			summary.Files = append(summary.Files, written.paths...)
			metrics.SubtitleDownloadsTotal.WithLabelValues("success").Inc()
			metrics.SubtitleDownloadBytes.Add(float64(written.bytes))
		}

		if err := d.sleep(ctx, d.delay); err != nil {
			logger.Warn().Err(err).Int("completed", i+1).Msg("Subtitle download pass cancelled")
			return summary, err
		}

		progress.report(Progress{
			Phase:   PhaseDownload,
			Current: i + 1,
			Total:   len(records),
			Percent: Percent(i+1, len(records)),
		})
	}

	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Str("size", humanize.Bytes(uint64(summary.Bytes))).
		Msg("Completed subtitle download pass")
	return summary, nil
}

type savedFiles struct {
	paths []string
	bytes int64
}

func (d *Downloader) downloadOne(ctx context.Context, record models.SubtitleRecord) (savedFiles, error) {
	result, err := d.fetcher.DownloadSubtitle(ctx, record)
	if err != nil {
		return savedFiles{}, err
	}
	paths, err := d.saver.Save(result)
	if err != nil {
		return savedFiles{}, err
	}
	return savedFiles{paths: paths, bytes: int64(len(result.Content))}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
