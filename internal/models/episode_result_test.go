package models

import "testing"

func TestNewEpisodeResult(t *testing.T) {
	episode := EpisodeLink{Title: "Episode 1", URL: "https://example.org/view/1"}
	record := SubtitleRecord{DisplayText: "English [English, SRT]", Format: FormatSRT, Language: "English"}

	tests := []struct {
		name       string
		section    *SubtitleSection
		wantStatus EpisodeStatus
		wantReason NotFoundReason
		wantCount  int
	}{
		{"nil section", nil, EpisodeStatusNotFound, ReasonNoSubtitleSection, 0},
		{"no section row", &SubtitleSection{}, EpisodeStatusNotFound, ReasonNoSubtitleSection, 0},
		{"section without captions", &SubtitleSection{SectionFound: true, Skipped: 2}, EpisodeStatusNotFound, ReasonNoMatchingCaptions, 0},
		{"with subtitles", &SubtitleSection{SectionFound: true, Subtitles: []SubtitleRecord{record}}, EpisodeStatusFetched, ReasonNone, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEpisodeResult(episode, tt.section)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if len(got.Subtitles) != tt.wantCount {
				t.Errorf("len(Subtitles) = %d, want %d", len(got.Subtitles), tt.wantCount)
			}
			if got.Episode != episode {
				t.Errorf("Episode = %+v, want %+v", got.Episode, episode)
			}
		})
	}
}

func TestNewFailedEpisodeResult(t *testing.T) {
	got := NewFailedEpisodeResult(EpisodeLink{Title: "Episode 2"}, ReasonFetchFailed)
	if got.Status != EpisodeStatusNotFound {
		t.Errorf("Status = %q, want NotFound", got.Status)
	}
	if got.Subtitles == nil {
		t.Error("Subtitles should be an empty slice, not nil")
	}
	if got.Reason != ReasonFetchFailed {
		t.Errorf("Reason = %q, want %q", got.Reason, ReasonFetchFailed)
	}
}
