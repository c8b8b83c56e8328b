package parser

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Belphemur/ToshoSubtitles/internal/models"
)

// ErrCaptionMismatch is returned for link captions outside the caption grammar.
var ErrCaptionMismatch = errors.New("caption does not match subtitle pattern")

// captionPattern is the caption grammar, matched anywhere in the caption:
//
//	caption  = text "[" language "," ws format "]" text
//	language = shortest run of characters up to the first "," that is followed by a format
//	format   = "ASS" | "SRT" | "VTT"   (case-insensitive)
var captionPattern = regexp.MustCompile(`(?i)\[(.*?),\s*(ASS|SRT|VTT)\]`)

// Caption is a subtitle link caption split into its parts
type Caption struct {
	Text     string // The whole caption, unmodified
	Language string
	Format   models.SubtitleFormat
}

// ParseCaption applies the caption grammar to a link caption.
// Captions that do not conform return ErrCaptionMismatch and must be dropped by the caller.
func ParseCaption(caption string) (Caption, error) {
	matches := captionPattern.FindStringSubmatch(caption)
	if len(matches) < 3 {
		return Caption{}, ErrCaptionMismatch
	}

	return Caption{
		Text:     caption,
		Language: strings.TrimSpace(matches[1]),
		Format:   models.ParseSubtitleFormat(matches[2]),
	}, nil
}
