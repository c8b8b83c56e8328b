package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
	"github.com/Belphemur/ToshoSubtitles/internal/models"
)

func TestClient_DownloadSubtitle_ContentDisposition(t *testing.T) {
	content := "[Script Info]\nTitle: Show - 01\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="Show - 01 [English].ass"`)
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(content))
	}))
	defer server.Close()

	c := newTestClient(t, newTestConfig(server.URL))
	record := models.SubtitleRecord{
		DisplayText: "English [English, ASS]",
		URL:         server.URL + "/storage/attach/0001/track3.ass",
		Format:      models.FormatASS,
	}

	result, err := c.DownloadSubtitle(context.Background(), record)
	if err != nil {
		t.Fatalf("DownloadSubtitle failed: %v", err)
	}
	if result.Filename != "Show - 01 [English].ass" {
		t.Errorf("Expected filename from Content-Disposition, got %q", result.Filename)
	}
	if result.ContentType != "application/x-ass" {
		t.Errorf("Expected content type derived from filename, got %q", result.ContentType)
	}
	if string(result.Content) != content {
		t.Errorf("Expected content %q, got %q", content, result.Content)
	}
}

func TestClient_DownloadSubtitle_URLBasename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-xz")
		_, _ = w.Write([]byte{0xfd, '7', 'z', 'X', 'Z', 0x00})
	}))
	defer server.Close()

	c := newTestClient(t, newTestConfig(server.URL))
	result, err := c.DownloadSubtitle(context.Background(), models.SubtitleRecord{
		DisplayText: "English [English, ASS]",
		URL:         server.URL + "/storage/attach/0000a000/track3.ass.xz",
		Format:      models.FormatASS,
	})
	if err != nil {
		t.Fatalf("DownloadSubtitle failed: %v", err)
	}
	if result.Filename != "track3.ass.xz" {
		t.Errorf("Expected URL basename, got %q", result.Filename)
	}
	if result.ContentType != "application/x-xz" {
		t.Errorf("Expected server content type, got %q", result.ContentType)
	}
}

func TestClient_DownloadSubtitle_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(t, newTestConfig(server.URL))
	_, err := c.DownloadSubtitle(context.Background(), models.SubtitleRecord{URL: server.URL + "/storage/attach/missing.srt"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, &apperrors.ErrSubtitleResourceNotFound{}) {
		t.Fatalf("Expected ErrSubtitleResourceNotFound, got: %v", err)
	}
}

func TestFilenameFromResponse_CaptionFallback(t *testing.T) {
	resp := &response{URL: "https://animetosho.org/", Header: http.Header{}}
	record := models.SubtitleRecord{DisplayText: "English [English, SRT]", Format: models.FormatSRT}

	if got := filenameFromResponse(resp, record); got != "English [English, SRT].srt" {
		t.Errorf("Expected caption based filename, got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "track3.ass", want: "track3.ass"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: `C:\subs\ep1.srt`, want: "ep1.srt"},
		{in: "What? <Part 1>.vtt", want: "What_ _Part 1_.vtt"},
		{in: "  ", want: ""},
		{in: "..", want: ""},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
