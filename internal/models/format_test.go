// Tests for format.go: SubtitleFormat String(), Extension(), ParseSubtitleFormat() and JSON encoding.
package models

import (
	"encoding/json"
	"testing"
)

func TestSubtitleFormat_String(t *testing.T) {
	tests := []struct {
		name   string
		format SubtitleFormat
		want   string
	}{
		{"unknown", FormatUnknown, "unknown"},
		{"ass", FormatASS, "ASS"},
		{"srt", FormatSRT, "SRT"},
		{"vtt", FormatVTT, "VTT"},
		{"invalid high value", SubtitleFormat(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.String(); got != tt.want {
				t.Errorf("SubtitleFormat(%d).String() = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseSubtitleFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  SubtitleFormat
	}{
		{"upper ASS", "ASS", FormatASS},
		{"lower srt", "srt", FormatSRT},
		{"mixed Vtt", "Vtt", FormatVTT},
		{"padded", " srt ", FormatSRT},
		{"unsupported", "SUP", FormatUnknown},
		{"empty", "", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSubtitleFormat(tt.input); got != tt.want {
				t.Errorf("ParseSubtitleFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubtitleFormat_Extension(t *testing.T) {
	if got := FormatASS.Extension(); got != ".ass" {
		t.Errorf("FormatASS.Extension() = %q, want .ass", got)
	}
	if got := FormatUnknown.Extension(); got != "" {
		t.Errorf("FormatUnknown.Extension() = %q, want empty", got)
	}
}

func TestSubtitleFormat_JSON(t *testing.T) {
	data, err := json.Marshal(FormatVTT)
	if err != nil {
		t.Fatalf("MarshalJSON() unexpected error: %v", err)
	}
	if string(data) != `"VTT"` {
		t.Errorf("MarshalJSON() = %s, want \"VTT\"", data)
	}

	var f SubtitleFormat
	if err := json.Unmarshal([]byte(`"srt"`), &f); err != nil {
		t.Fatalf("UnmarshalJSON() unexpected error: %v", err)
	}
	if f != FormatSRT {
		t.Errorf("UnmarshalJSON(\"srt\") = %v, want SRT", f)
	}
}
