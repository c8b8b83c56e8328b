package client

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"

	"github.com/dustin/go-humanize"
)

// DownloadSubtitle retrieves the file behind the record URL.
// The filename comes from Content-Disposition, then from the URL path, then from the caption.
func (c *client) DownloadSubtitle(ctx context.Context, record models.SubtitleRecord) (*models.DownloadResult, error) {
	logger := config.GetLogger()
	logger.Info().Str("url", record.URL).Str("caption", record.DisplayText).Msg("Downloading subtitle")

	resp, err := c.fetch(ctx, "subtitle", record.URL)
	if err != nil {
		var statusErr *apperrors.ErrUnexpectedStatus
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, &apperrors.ErrSubtitleResourceNotFound{URL: record.URL}
		}
		return nil, fmt.Errorf("failed to download subtitle: %w", err)
	}

	filename := filenameFromResponse(resp, record)
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = contentTypeFromFilename(filename)
	}

	logger.Info().
		Str("filename", filename).
		Str("contentType", contentType).
		Str("size", humanize.Bytes(uint64(len(resp.Body)))).
		Msg("Downloaded subtitle")

	return &models.DownloadResult{
		Filename:    filename,
		Content:     resp.Body,
		ContentType: contentType,
	}, nil
}

func filenameFromResponse(resp *response, record models.SubtitleRecord) string {
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := sanitizeFilename(params["filename"]); name != "" {
				return name
			}
		}
	}

	if u, err := url.Parse(resp.URL); err == nil {
		if base := path.Base(u.Path); base != "/" && base != "." {
			if name := sanitizeFilename(base); name != "" {
				return name
			}
		}
	}

	base := sanitizeFilename(record.DisplayText)
	if base == "" {
		base = "subtitle"
	}
	return base + record.Format.Extension()
}

// sanitizeFilename keeps only the last path element and drops characters
// that are invalid in filenames on common platforms
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "/" || name == "." || name == ".." {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	return name
}

// contentTypeFromFilename derives a MIME type from the file extension
func contentTypeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".srt":
		return "application/x-subrip"
	case ".ass", ".ssa":
		return "application/x-ass"
	case ".vtt":
		return "text/vtt"
	case ".xz":
		return "application/x-xz"
	case ".zip":
		return "application/zip"
	case ".rar":
		return "application/vnd.rar"
	default:
		return "application/octet-stream"
	}
}
