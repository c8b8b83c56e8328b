package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// subtitlesMarker identifies the header cell of the subtitle row. Matched case-sensitively.
const subtitlesMarker = "Subtitles"

// SubtitleParser implements the SubtitleExtractor interface for episode pages
type SubtitleParser struct {
	baseURL *url.URL
}

// NewSubtitleParser creates a new subtitle parser. baseURL is used to resolve links
// when the episode URL itself cannot serve as a base.
func NewSubtitleParser(baseURL string) *SubtitleParser {
	return &SubtitleParser{
		baseURL: parseBaseURL(baseURL),
	}
}

// ExtractSubtitles finds the first table row headed "Subtitles" and turns every anchor
// whose caption follows the caption grammar into a SubtitleRecord.
func (p *SubtitleParser) ExtractSubtitles(body io.Reader, episode models.EpisodeLink) (*models.SubtitleSection, error) {
	logger := config.GetLogger()
	logger.Debug().Str("episode", episode.Title).Msg("Starting HTML parsing for subtitles")

	utf8Body, err := NewUTF8Reader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	section := &models.SubtitleSection{Subtitles: make([]models.SubtitleRecord, 0)}

	row := p.findSubtitleRow(doc)
	if row == nil {
		logger.Debug().Str("episode", episode.Title).Msg("No subtitle row found")
		return section, nil
	}
	section.SectionFound = true

	base := parseBaseURL(episode.URL)
	if base == nil {
		base = p.baseURL
	}

	row.Find("a").Each(func(i int, link *goquery.Selection) {
		text := visibleText(link)

		caption, err := ParseCaption(text)
		if err != nil {
			section.Skipped++
			logger.Debug().Str("caption", text).Msg("Skipping link outside the caption grammar")
			return
		}

		href, exists := link.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			section.Skipped++
			logger.Debug().Str("caption", text).Msg("Subtitle link missing href attribute")
			return
		}

		record := models.SubtitleRecord{
			DisplayText:  caption.Text,
			URL:          resolveURL(base, href),
			Format:       caption.Format,
			Language:     caption.Language,
			EpisodeTitle: episode.Title,
		}
		section.Subtitles = append(section.Subtitles, record)

		logger.Debug().
			Str("caption", record.DisplayText).
			Str("language", record.Language).
			Str("format", record.Format.String()).
			Msg("Successfully extracted subtitle")
	})

	logger.Debug().
		Str("episode", episode.Title).
		Int("subtitles", len(section.Subtitles)).
		Int("skipped", section.Skipped).
		Msg("Completed HTML parsing for subtitles")

	return section, nil
}

// findSubtitleRow returns the first row whose first header cell contains the marker
func (p *SubtitleParser) findSubtitleRow(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		header := row.Find("th").First()
		if header.Length() == 0 {
			return true
		}
		if strings.Contains(header.Text(), subtitlesMarker) {
			found = row
			return false
		}
		return true
	})
	return found
}
