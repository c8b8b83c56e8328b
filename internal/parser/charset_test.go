package parser

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func readAllUTF8(t *testing.T, input []byte) string {
	t.Helper()
	reader, err := NewUTF8Reader(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}
	return string(output)
}

func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := []byte(`<html><head><meta charset="utf-8"></head><body>Tiếng Việt [Vietnamese, ASS] 字幕</body></html>`)

	if got := readAllUTF8(t, input); got != string(input) {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", got)
	}
}

func TestNewUTF8Reader_Windows1252ToUTF8(t *testing.T) {
	t.Parallel()
	// 0xE9 is 'é' in Windows-1252
	input := []byte(`<html><head><meta charset="windows-1252"></head><body>Fran` + string([]byte{0xE7}) + `ais [French, SRT] Caf` + string([]byte{0xE9}) + `</body></html>`)

	got := readAllUTF8(t, input)
	if !strings.Contains(got, "Français [French, SRT] Café") {
		t.Errorf("Expected decoded caption in UTF-8 output, got: %s", got)
	}
}

func TestNewUTF8Reader_ShiftJISToUTF8(t *testing.T) {
	t.Parallel()
	// "日本語" in Shift_JIS
	input := append([]byte(`<html><head><meta charset="shift_jis"></head><body>`), 0x93, 0xfa, 0x96, 0x7b, 0x8c, 0xea)
	input = append(input, []byte(` [Japanese, ASS]</body></html>`)...)

	got := readAllUTF8(t, input)
	if !strings.Contains(got, "日本語 [Japanese, ASS]") {
		t.Errorf("Expected Japanese caption in UTF-8 output, got: %s", got)
	}
}

func TestNewUTF8Reader_NoCharsetDeclaration(t *testing.T) {
	t.Parallel()
	got := readAllUTF8(t, []byte("<html><body>English [English, SRT]</body></html>"))
	if !strings.Contains(got, "English [English, SRT]") {
		t.Errorf("Expected caption in output, got: %s", got)
	}
}
