package models

// EpisodeStatus is the fetch outcome of a single episode
type EpisodeStatus string

const (
	// EpisodeStatusFetched means at least one subtitle was found
	EpisodeStatusFetched EpisodeStatus = "Fetched"

	// EpisodeStatusNotFound means no usable subtitle was found
	EpisodeStatusNotFound EpisodeStatus = "NotFound"
)

// String returns the string representation of EpisodeStatus
func (s EpisodeStatus) String() string {
	return string(s)
}

// NotFoundReason tells why an episode ended up with no subtitles
type NotFoundReason string

const (
	ReasonNone               NotFoundReason = ""
	ReasonFetchFailed        NotFoundReason = "fetch_failed"
	ReasonNoSubtitleSection  NotFoundReason = "no_subtitle_section"
	ReasonNoMatchingCaptions NotFoundReason = "no_matching_captions"
)

// EpisodeResult holds the subtitles discovered for one episode during a fetch pass
type EpisodeResult struct {
	Episode   EpisodeLink      `json:"episode"`
	Subtitles []SubtitleRecord `json:"subtitles"`
	Status    EpisodeStatus    `json:"status"`
	Reason    NotFoundReason   `json:"reason,omitempty"`
}

// NewEpisodeResult builds a result from a scanned section. The status is derived
// solely from whether any subtitle was found.
func NewEpisodeResult(episode EpisodeLink, section *SubtitleSection) EpisodeResult {
	if section == nil || len(section.Subtitles) == 0 {
		reason := ReasonNoSubtitleSection
		if section != nil && section.SectionFound {
			reason = ReasonNoMatchingCaptions
		}
		return NewFailedEpisodeResult(episode, reason)
	}
	return EpisodeResult{
		Episode:   episode,
		Subtitles: section.Subtitles,
		Status:    EpisodeStatusFetched,
	}
}

// NewFailedEpisodeResult builds a NotFound result with the given reason
func NewFailedEpisodeResult(episode EpisodeLink, reason NotFoundReason) EpisodeResult {
	return EpisodeResult{
		Episode:   episode,
		Subtitles: []SubtitleRecord{},
		Status:    EpisodeStatusNotFound,
		Reason:    reason,
	}
}
