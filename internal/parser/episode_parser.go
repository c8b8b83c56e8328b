package parser

import (
	"fmt"
	"io"
	"net/url"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// episodeLinkSelector matches the title link of every entry on a listing page
const episodeLinkSelector = ".view_list_entry .link a"

// EpisodeParser implements the Parser interface for listing pages
type EpisodeParser struct {
	baseURL *url.URL
}

// NewEpisodeParser creates a parser resolving relative links against the listing page URL
func NewEpisodeParser(pageURL string) *EpisodeParser {
	return &EpisodeParser{
		baseURL: parseBaseURL(pageURL),
	}
}

// ParseHtml extracts the episode links of a listing page in document order
func (p *EpisodeParser) ParseHtml(body io.Reader) ([]models.EpisodeLink, error) {
	logger := config.GetLogger()
	logger.Debug().Msg("Starting HTML parsing for episode listing")

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	episodes := make([]models.EpisodeLink, 0)
	doc.Find(episodeLinkSelector).Each(func(i int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists || href == "" {
			logger.Debug().Int("entry", i).Msg("Episode link missing href attribute")
			return
		}

		title := visibleText(link)
		if title == "" {
			logger.Debug().Int("entry", i).Str("href", href).Msg("Episode link has no visible title")
			return
		}

		episode := models.EpisodeLink{
			Title: title,
			URL:   resolveURL(p.baseURL, href),
		}
		episodes = append(episodes, episode)
		logger.Debug().Str("title", episode.Title).Str("url", episode.URL).Msg("Extracted episode")
	})

	logger.Info().Int("total_episodes", len(episodes)).Msg("Completed HTML parsing for episode listing")
	return episodes, nil
}
