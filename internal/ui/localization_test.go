package ui

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatchLocale(t *testing.T) {
	t.Parallel()
	tests := map[string]language.Tag{
		"vi":      language.Vietnamese,
		"vi-VN":   language.Vietnamese,
		"en":      language.English,
		"en-GB":   language.English,
		"fr":      language.English,
		"":        language.English,
		"garbage": language.English,
	}
	for locale, want := range tests {
		if got := MatchLocale(locale); got != want {
			t.Errorf("MatchLocale(%q) = %s, want %s", locale, got, want)
		}
	}
}

func TestPrinter_Vietnamese(t *testing.T) {
	t.Parallel()
	p := NewPrinter("vi")

	if got := p.Sprintf(MsgFetchingEpisode, "Tập 1"); got != "Đang lấy phụ đề cho Tập 1..." {
		t.Errorf("Unexpected fetching message %q", got)
	}
	if got := p.Sprintf(MsgDownloadingProgress, 2, 3); got != "Đang tải phụ đề 2/3" {
		t.Errorf("Unexpected progress message %q", got)
	}
	if got := p.Sprintf(MsgSelectFirst); got != "Bạn cần chọn một loại phụ đề để tải." {
		t.Errorf("Unexpected alert %q", got)
	}
}

func TestPrinter_EnglishDefault(t *testing.T) {
	t.Parallel()
	p := NewPrinter("en")

	if got := p.Sprintf(MsgDownloadingProgress, 1, 3); got != "Downloading subtitle 1/3" {
		t.Errorf("Unexpected progress message %q", got)
	}
	if got := p.Sprintf(MsgDownloadLink, "English [English, ASS]"); got != "Download English [English, ASS]" {
		t.Errorf("Unexpected link text %q", got)
	}
}

func TestVietnameseCatalogComplete(t *testing.T) {
	t.Parallel()
	keys := []string{
		MsgPanelTitle, MsgFetchAction, MsgSelectAction, MsgDownloadAction, MsgQuitAction,
		MsgCollectingEpisodes, MsgFetchingEpisode, MsgNoEpisodes, MsgSelectFirst,
		MsgDownloadingSelected, MsgDownloadingProgress, MsgDownloadFinished, MsgDownloadFailures,
		MsgNoSubtitlesToSelect, MsgCurrentSelection, MsgStatusTableTitle, MsgColumnEpisode,
		MsgColumnStatus, MsgColumnDownload, MsgStatusFetched, MsgStatusNotFound, MsgDownloadLink,
		MsgNoSubtitles, MsgReasonFetchFailed, MsgReasonNoSection, MsgReasonNoMatchCaption,
	}
	for _, key := range keys {
		if _, ok := vietnamese[key]; !ok {
			t.Errorf("Missing Vietnamese translation for %q", key)
		}
	}
}
