// Package app wires the fetch and download passes to the terminal surfaces.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/metrics"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
	"github.com/Belphemur/ToshoSubtitles/internal/pipeline"
	"github.com/Belphemur/ToshoSubtitles/internal/store"
	"github.com/Belphemur/ToshoSubtitles/internal/ui"

	"golang.org/x/text/message"
)

// EpisodeLister returns the episode links of a listing page
type EpisodeLister interface {
	ListEpisodes(ctx context.Context, listingURL string) ([]models.EpisodeLink, error)
}

// Overlay is the progress surface shown during a pass
type Overlay interface {
	Show(message string, percent int)
	Hide()
}

// Notifier shows blocking alerts and completion notices
type Notifier interface {
	Alert(message string)
	Notice(message string)
}

// Session holds the state of one user session: the results of the last fetch
// pass and the selected signature.
type Session struct {
	lister     EpisodeLister
	aggregator *pipeline.Aggregator
	downloader *pipeline.Downloader
	store      *store.Store
	overlay    Overlay
	notifier   Notifier
	table      *ui.StatusTable
	printer    *message.Printer
	out        io.Writer
	selected   string
}

// Options groups the collaborators of a Session
type Options struct {
	Lister     EpisodeLister
	Aggregator *pipeline.Aggregator
	Downloader *pipeline.Downloader
	Overlay    Overlay
	Notifier   Notifier
	Printer    *message.Printer
	Out        io.Writer // Receives the status table
}

// NewSession creates a session with an empty store
func NewSession(opts Options) *Session {
	printer := opts.Printer
	if printer == nil {
		printer = ui.NewPrinter("en")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Session{
		lister:     opts.Lister,
		aggregator: opts.Aggregator,
		downloader: opts.Downloader,
		store:      store.New(),
		overlay:    opts.Overlay,
		notifier:   opts.Notifier,
		table:      ui.NewStatusTable(printer),
		printer:    printer,
		out:        out,
	}
}

// Fetch runs a fetch pass over the listing page: it lists the episodes, looks up
// the subtitles of each one, replaces the stored results and prints the status
// table. A listing without episodes leaves the previous results untouched and
// returns apperrors.ErrNoEpisodes after a notice.
func (s *Session) Fetch(ctx context.Context, listingURL string) (models.FetchSummary, error) {
	logger := config.GetLogger()

	s.overlay.Show(s.printer.Sprintf(ui.MsgCollectingEpisodes), 0)
	defer s.overlay.Hide()

	episodes, err := s.lister.ListEpisodes(ctx, listingURL)
	if err != nil {
		return models.FetchSummary{}, fmt.Errorf("failed to list episodes: %w", err)
	}
	if len(episodes) == 0 {
		logger.Info().Str("url", listingURL).Msg("No episodes found on listing page")
		s.notifier.Notice(s.printer.Sprintf(ui.MsgNoEpisodes))
		return models.FetchSummary{}, apperrors.ErrNoEpisodes
	}

	results, summary, err := s.aggregator.Run(ctx, episodes, func(p pipeline.Progress) {
		s.overlay.Show(s.printer.Sprintf(ui.MsgFetchingEpisode, p.Episode), p.Percent)
	})
	if err != nil {
		return models.FetchSummary{}, err
	}

	s.store.Replace(results)
	metrics.StoredEpisodes.Set(float64(len(results)))
	metrics.DistinctSignatures.Set(float64(len(summary.Signatures)))
	// The picker is rebuilt from the new pass, an earlier choice does not carry over
	s.selected = ""

	s.overlay.Hide()
	fmt.Fprintln(s.out, s.table.Render(results))
	return summary, nil
}

// Signatures returns the distinct captions of the last fetch pass in first-seen order
func (s *Session) Signatures() []string {
	return s.store.Signatures()
}

// Results returns the per-episode results of the last fetch pass
func (s *Session) Results() []models.EpisodeResult {
	return s.store.Results()
}

// Select records the signature to download. An empty signature clears the selection.
func (s *Session) Select(signature string) {
	s.selected = signature
}

// Selected returns the selected signature, empty when nothing is selected
func (s *Session) Selected() string {
	return s.selected
}

// Download fetches every subtitle matching the selected signature, one at a time.
// Without a selection it alerts the user and returns apperrors.ErrNoSelection
// before any progress is shown.
func (s *Session) Download(ctx context.Context) (models.DownloadSummary, error) {
	signature := s.selected
	if signature == "" {
		s.notifier.Alert(s.printer.Sprintf(ui.MsgSelectFirst))
		return models.DownloadSummary{}, apperrors.ErrNoSelection
	}

	records := s.store.Select(signature)

	s.overlay.Show(s.printer.Sprintf(ui.MsgDownloadingSelected), 0)
	defer s.overlay.Hide()

	summary, err := s.downloader.Run(ctx, signature, records, func(p pipeline.Progress) {
		s.overlay.Show(s.printer.Sprintf(ui.MsgDownloadingProgress, p.Current, p.Total), p.Percent)
	})
	if err != nil {
		return summary, err
	}

	s.overlay.Hide()
	if summary.Failed > 0 {
		s.notifier.Alert(s.printer.Sprintf(ui.MsgDownloadFailures, summary.Failed, summary.Total))
	}
	s.notifier.Notice(s.printer.Sprintf(ui.MsgDownloadFinished))
	return summary, nil
}
