package parser

import (
	"io"

	"github.com/Belphemur/ToshoSubtitles/internal/models"
)

// Parser defines a generic interface for parsing HTML content
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SubtitleExtractor locates the subtitle section of an episode page
type SubtitleExtractor interface {
	ExtractSubtitles(body io.Reader, episode models.EpisodeLink) (*models.SubtitleSection, error)
}
