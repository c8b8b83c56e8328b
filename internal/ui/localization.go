// Package ui renders the terminal surfaces: the subtitle picker, the progress
// overlay, notices and the per-episode status table.
package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key and as the default rendering.
const (
	MsgPanelTitle           = "Select subtitles to batch download"
	MsgFetchAction          = "Fetch subtitles"
	MsgSelectAction         = "Choose subtitle"
	MsgDownloadAction       = "Download subtitles"
	MsgQuitAction           = "Quit"
	MsgCollectingEpisodes   = "Collecting episode information..."
	MsgFetchingEpisode      = "Fetching subtitles for %s..."
	MsgNoEpisodes           = "No episodes found on this page."
	MsgSelectFirst          = "You need to select a subtitle to download."
	MsgDownloadingSelected  = "Downloading selected subtitles..."
	MsgDownloadingProgress  = "Downloading subtitle %d/%d"
	MsgDownloadFinished     = "Finished downloading the selected subtitles."
	MsgDownloadFailures     = "%d of %d subtitles could not be downloaded."
	MsgNoSubtitlesToSelect  = "No subtitles were found for this listing."
	MsgCurrentSelection     = "Selected: %s"
	MsgStatusTableTitle     = "Subtitle download status"
	MsgColumnEpisode        = "Episode"
	MsgColumnStatus         = "Status"
	MsgColumnDownload       = "Download"
	MsgStatusFetched        = "Fetched"
	MsgStatusNotFound       = "Not found"
	MsgDownloadLink         = "Download %s"
	MsgNoSubtitles          = "No subtitles"
	MsgReasonFetchFailed    = "fetch failed"
	MsgReasonNoSection      = "no subtitle section"
	MsgReasonNoMatchCaption = "no matching captions"
)

// SupportedLocales lists the locales with a translation catalog
var SupportedLocales = []language.Tag{language.English, language.Vietnamese}

var vietnamese = map[string]string{
	MsgPanelTitle:           "Chọn phụ đề để tải hàng loạt",
	MsgFetchAction:          "Lấy Phụ Đề",
	MsgSelectAction:         "Chọn phụ đề",
	MsgDownloadAction:       "Tải Phụ Đề",
	MsgQuitAction:           "Thoát",
	MsgCollectingEpisodes:   "Đang thu thập thông tin các tập phim...",
	MsgFetchingEpisode:      "Đang lấy phụ đề cho %s...",
	MsgNoEpisodes:           "Không tìm thấy tập phim nào trên trang này.",
	MsgSelectFirst:          "Bạn cần chọn một loại phụ đề để tải.",
	MsgDownloadingSelected:  "Đang tải phụ đề đã chọn...",
	MsgDownloadingProgress:  "Đang tải phụ đề %d/%d",
	MsgDownloadFinished:     "Đã tải xong phụ đề đã chọn.",
	MsgDownloadFailures:     "Không tải được %d trên %d phụ đề.",
	MsgNoSubtitlesToSelect:  "Không tìm thấy phụ đề nào cho danh sách này.",
	MsgCurrentSelection:     "Đã chọn: %s",
	MsgStatusTableTitle:     "Trạng thái tải phụ đề",
	MsgColumnEpisode:        "Tập phim",
	MsgColumnStatus:         "Trạng thái",
	MsgColumnDownload:       "Tải xuống",
	MsgStatusFetched:        "Đã lấy phụ đề",
	MsgStatusNotFound:       "Không tìm thấy phụ đề",
	MsgDownloadLink:         "Tải %s",
	MsgNoSubtitles:          "Không có phụ đề",
	MsgReasonFetchFailed:    "lỗi tải trang",
	MsgReasonNoSection:      "không có mục phụ đề",
	MsgReasonNoMatchCaption: "không có phụ đề hợp lệ",
}

func init() {
	for key, msg := range vietnamese {
		if err := message.SetString(language.Vietnamese, key, msg); err != nil {
			panic(err)
		}
	}
}

// NewPrinter returns a printer for locale ("en", "vi", "vi-VN", ...).
// Unknown or unsupported locales fall back to English.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(MatchLocale(locale))
}

// MatchLocale maps a locale string onto the closest supported locale
func MatchLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	matched, _, confidence := language.NewMatcher(SupportedLocales).Match(tag)
	if confidence == language.No {
		return language.English
	}
	base, _ := matched.Base()
	if base.String() == "vi" {
		return language.Vietnamese
	}
	return language.English
}
