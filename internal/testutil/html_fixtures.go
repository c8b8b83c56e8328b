package testutil

import (
	"fmt"
	"strings"
)

// ListingEntryOptions contains options for generating one entry of a listing page
type ListingEntryOptions struct {
	Title string
	Href  string // Defaults to /view/<slug>.n<index>
	Size  string // Shown next to the link, e.g. "1.4 GB"
}

// SubtitleLinkOptions contains options for generating one anchor of the subtitle row
type SubtitleLinkOptions struct {
	Caption string // e.g. "English [English, ASS]"
	Href    string // Defaults to /storage/attach/<n>/track.ass.xz
}

// EpisodePageOptions contains options for generating an episode detail page
type EpisodePageOptions struct {
	Title           string
	Subtitles       []SubtitleLinkOptions
	OmitSubtitleRow bool
	SubtitleHeader  string // Header cell text, defaults to "Subtitles"
}

// GenerateListingHTML generates a listing page with one view_list_entry per episode,
// following the structure of the animetosho.org search and series pages
func GenerateListingHTML(entries []ListingEntryOptions) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Search results</title></head>
<body>
<div id="content">
	<div class="home_list_pagination"><a href="?page=2">Next</a></div>
`)

	for i, entry := range entries {
		href := entry.Href
		if href == "" {
			href = fmt.Sprintf("/view/episode-%02d.n%d", i+1, 1000+i)
		}
		size := entry.Size
		if size == "" {
			size = "1.4 GB"
		}

		fmt.Fprintf(&sb, `
	<div class="home_list_entry view_list_entry">
		<div class="date" title="Date/time submitted">Today 10:%02d</div>
		<div class="link"><a href="%s">%s</a></div>
		<div class="size" title="Total file size">%s</div>
		<div class="links"><a href="magnet:?xt=urn:btih:%d" class="dllink">Magnet</a></div>
	</div>`, i, href, entry.Title, size, i)
	}

	sb.WriteString(`
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateEpisodePageHTML generates an episode detail page with a file info table and,
// unless omitted, a row headed "Subtitles" containing the given links
func GenerateEpisodePageHTML(opts EpisodePageOptions) string {
	var sb strings.Builder

	header := opts.SubtitleHeader
	if header == "" {
		header = "Subtitles"
	}

	fmt.Fprintf(&sb, `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<div id="content">
	<h2 id="title">%s</h2>
	<table class="view_info">
		<tr><th>Source</th><td><a href="https://nyaa.si/view/1">Nyaa</a></td></tr>
		<tr><th>Files</th><td>1 file (1.4 GB)</td></tr>
		<tr><th>Video</th><td>HEVC, 1920x1080</td></tr>
		<tr><th>Audio</th><td>AAC [Japanese, 2.0]</td></tr>
`, opts.Title, opts.Title)

	if !opts.OmitSubtitleRow {
		fmt.Fprintf(&sb, `		<tr><th>%s</th><td>`, header)
		for i, link := range opts.Subtitles {
			href := link.Href
			if href == "" {
				href = fmt.Sprintf("/storage/attach/%08x/track%d.ass.xz", 0xa000+i, i+3)
			}
			if i > 0 {
				sb.WriteString(" | ")
			}
			fmt.Fprintf(&sb, `<a href="%s">%s</a>`, href, link.Caption)
		}
		sb.WriteString("</td></tr>\n")
	}

	sb.WriteString(`		<tr><th>Attachments</th><td><a href="/storage/attach/fonts.zip">All fonts [ZIP]</a></td></tr>
	</table>
</div>
</body>
</html>`)

	return sb.String()
}
