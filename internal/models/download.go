package models

import "time"

// DownloadResult represents the result of a subtitle download
type DownloadResult struct {
	Filename    string // Name of the subtitle file
	Content     []byte // Content of the subtitle file
	ContentType string // MIME type (e.g., "application/x-subrip", "application/zip")
}

// FetchSummary describes a finished fetch pass
type FetchSummary struct {
	PassID     string
	Episodes   int
	Fetched    int
	NotFound   int
	Signatures []string
	Duration   time.Duration
}

// DownloadSummary describes a finished download pass
type DownloadSummary struct {
	Signature string
	Total     int
	Succeeded int
	Failed    int
	Bytes     int64
	Files     []string
}
