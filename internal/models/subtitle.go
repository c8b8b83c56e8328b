package models

// SubtitleRecord represents one downloadable subtitle track found on an episode page
type SubtitleRecord struct {
	DisplayText  string         `json:"displayText"` // Full link caption, used as the selection signature
	URL          string         `json:"url"`
	Format       SubtitleFormat `json:"format"`
	Language     string         `json:"language"`
	EpisodeTitle string         `json:"episodeTitle"`
}

// SubtitleSection is the outcome of scanning an episode page for its subtitle row
type SubtitleSection struct {
	Subtitles    []SubtitleRecord
	SectionFound bool // A row headed "Subtitles" was present
	Skipped      int  // Anchors in the row whose caption did not match the caption grammar
}
