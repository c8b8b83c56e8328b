package models

import "strings"

// SubtitleFormat represents the file format of a subtitle track
type SubtitleFormat int

const (
	FormatUnknown SubtitleFormat = iota
	FormatASS
	FormatSRT
	FormatVTT
)

// String returns the upper-case name used in captions
func (f SubtitleFormat) String() string {
	switch f {
	case FormatASS:
		return "ASS"
	case FormatSRT:
		return "SRT"
	case FormatVTT:
		return "VTT"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for the format, including the leading dot
func (f SubtitleFormat) Extension() string {
	switch f {
	case FormatASS:
		return ".ass"
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	default:
		return ""
	}
}

// ParseSubtitleFormat converts a format string to SubtitleFormat, ignoring case
func ParseSubtitleFormat(format string) SubtitleFormat {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "ASS":
		return FormatASS
	case "SRT":
		return FormatSRT
	case "VTT":
		return FormatVTT
	default:
		return FormatUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (f SubtitleFormat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (f *SubtitleFormat) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*f = ParseSubtitleFormat(str)
	return nil
}
