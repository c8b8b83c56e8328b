package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
	"github.com/Belphemur/ToshoSubtitles/internal/parser"
)

// ListEpisodes fetches the listing page and extracts its episode links.
// Listing pages are never cached so that new releases show up on the next pass.
func (c *client) ListEpisodes(ctx context.Context, listingURL string) ([]models.EpisodeLink, error) {
	logger := config.GetLogger()
	logger.Info().Str("url", listingURL).Msg("Fetching listing page")

	resp, err := c.fetch(ctx, "listing", listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	episodes, err := parser.NewEpisodeParser(listingURL).ParseHtml(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	return episodes, nil
}

// GetEpisodeSubtitles returns the subtitle section of an episode page.
// Successfully fetched pages are served from the page cache until they expire.
func (c *client) GetEpisodeSubtitles(ctx context.Context, episode models.EpisodeLink) (*models.SubtitleSection, error) {
	logger := config.GetLogger()

	body, cached := c.pageCache.Get(episode.URL)
	if cached {
		logger.Debug().Str("episode", episode.Title).Msg("Episode page served from cache")
	} else {
		resp, err := c.fetch(ctx, "episode", episode.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch episode page %q: %w", episode.Title, err)
		}
		body = resp.Body
		c.pageCache.Set(episode.URL, body)
	}

	section, err := c.subtitleParser.ExtractSubtitles(bytes.NewReader(body), episode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse episode page %q: %w", episode.Title, err)
	}

	logger.Debug().
		Str("episode", episode.Title).
		Bool("cached", cached).
		Int("subtitles", len(section.Subtitles)).
		Msg("Extracted episode subtitles")
	return section, nil
}
