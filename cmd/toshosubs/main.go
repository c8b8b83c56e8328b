package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/app"
	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
	"github.com/Belphemur/ToshoSubtitles/internal/client"
	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/metrics"
	"github.com/Belphemur/ToshoSubtitles/internal/pipeline"
	"github.com/Belphemur/ToshoSubtitles/internal/reporting"
	"github.com/Belphemur/ToshoSubtitles/internal/services"
	"github.com/Belphemur/ToshoSubtitles/internal/ui"

	"github.com/spf13/pflag"
	"golang.org/x/text/message"
)

var version = "dev"

// flagKeys maps command-line flags onto configuration keys
var flagKeys = map[string]string{
	"output-dir":  "download.directory",
	"delay":       "download.delay",
	"extract":     "download.extract_archives",
	"locale":      "locale",
	"concurrency": "fetch.concurrency",
	"retries":     "fetch.retries",
	"log-level":   "log_level",
}

type options struct {
	signature  string
	list       bool
	jsonOutput bool
	accessible bool
}

func main() {
	flags := pflag.NewFlagSet("toshosubs", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: toshosubs [flags] <listing-url>\n\n")
		flags.PrintDefaults()
	}

	var opts options
	flags.StringVarP(&opts.signature, "select", "s", "", "Download every subtitle with this caption without prompting")
	flags.BoolVarP(&opts.list, "list", "l", false, "Print the distinct subtitle captions and exit")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the per-episode results as JSON and exit")
	flags.BoolVar(&opts.accessible, "accessible", false, "Use line-based prompts instead of full-screen menus")
	flags.String("config", "", "Path to a YAML configuration file")
	flags.StringP("output-dir", "o", ".", "Directory the subtitles are saved to")
	flags.String("delay", "1s", "Pause after every download")
	flags.Bool("extract", false, "Extract subtitle files from zip and rar attachments")
	flags.String("locale", "en", "Interface language (en, vi)")
	flags.Int("concurrency", 1, "Episode pages fetched at once")
	flags.Int("retries", 0, "Retries for failed page requests")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	showVersion := flags.Bool("version", false, "Print the version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println(version)
		return
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.ApplyFlags(flags, flagKeys)
	logger := config.GetLogger()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply command-line flags")
	}

	if err := run(cfg, flags.Arg(0), opts); err != nil {
		logger.Error().Err(err).Msg("toshosubs failed")
		reporting.Flush(2 * time.Second)
		os.Exit(1)
	}
	reporting.Flush(2 * time.Second)
}

func run(cfg *config.Config, listingURL string, opts options) error {
	logger := config.GetLogger()

	logger.Debug().
		Str("site_domain", cfg.SiteDomain).
		Str("locale", cfg.Locale).
		Int("concurrency", cfg.Fetch.Concurrency).
		Int("retries", cfg.Fetch.Retries).
		Str("cache_provider", cfg.Cache.Provider).
		Str("output_dir", cfg.Download.Directory).
		Msg("Application started with configuration")

	if _, err := reporting.Init(cfg, version); err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize error reporting")
	}

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.Download.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	siteClient := client.NewClient(cfg)
	defer func() {
		if err := siteClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()

	printer := ui.NewPrinter(cfg.Locale)
	session := app.NewSession(app.Options{
		Lister:     siteClient,
		Aggregator: pipeline.NewAggregator(siteClient, cfg.Fetch.Concurrency),
		Downloader: pipeline.NewDownloader(
			siteClient,
			services.NewSubtitleSaver(cfg.Download.Directory, cfg.Download.ExtractArchives),
			parseDelay(cfg.Download.Delay),
		),
		Overlay:  ui.NewProgressOverlay(os.Stderr),
		Notifier: ui.NewNotifier(os.Stdout),
		Printer:  printer,
		Out:      tableOutput(opts),
	})

	if _, err := session.Fetch(ctx, listingURL); err != nil {
		if errors.Is(err, apperrors.ErrNoEpisodes) {
			return nil
		}
		return err
	}

	switch {
	case opts.jsonOutput:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(session.Results())
	case opts.list:
		for _, signature := range session.Signatures() {
			fmt.Println(signature)
		}
		return nil
	case opts.signature != "":
		if !slices.Contains(session.Signatures(), opts.signature) {
			return apperrors.NewNotFoundError("subtitle caption", opts.signature)
		}
		session.Select(opts.signature)
		_, err := session.Download(ctx)
		return err
	default:
		return interactive(ctx, session, ui.NewSelector(printer, opts.accessible), printer, listingURL)
	}
}

// interactive loops over the action menu until the user quits
func interactive(ctx context.Context, session *app.Session, selector *ui.Selector, printer *message.Printer, listingURL string) error {
	logger := config.GetLogger()
	notifier := ui.NewNotifier(os.Stdout)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		action, err := selector.ChooseAction(session.Selected())
		if err != nil {
			return err
		}

		switch action {
		case ui.ActionQuit:
			return nil
		case ui.ActionFetch:
			_, err := session.Fetch(ctx, listingURL)
			switch {
			case err == nil, errors.Is(err, apperrors.ErrNoEpisodes):
			case ctx.Err() != nil:
				return nil
			default:
				// A broken listing leaves the previous results usable
				logger.Error().Err(err).Str("url", listingURL).Msg("Failed to fetch subtitles")
				notifier.Alert(err.Error())
			}
		case ui.ActionSelect:
			signature, err := selector.SelectSignature(session.Signatures(), session.Selected())
			if errors.Is(err, apperrors.ErrNoSelection) {
				notifier.Notice(printer.Sprintf(ui.MsgNoSubtitlesToSelect))
				continue
			}
			if err != nil {
				return err
			}
			session.Select(signature)
		case ui.ActionDownload:
			if _, err := session.Download(ctx); err != nil {
				if errors.Is(err, apperrors.ErrNoSelection) || ctx.Err() != nil {
					continue
				}
				return err
			}
		default:
			logger.Warn().Str("action", string(action)).Msg("Unknown action")
		}
	}
}

// tableOutput keeps stdout clean for machine-readable output
func tableOutput(opts options) *os.File {
	if opts.jsonOutput || opts.list {
		return os.Stderr
	}
	return os.Stdout
}

func parseDelay(value string) time.Duration {
	delay, err := time.ParseDuration(value)
	if err != nil || delay < 0 {
		logger := config.GetLogger()
		logger.Warn().Str("delay", value).Msg("Invalid download delay, using 1s")
		return time.Second
	}
	return delay
}
