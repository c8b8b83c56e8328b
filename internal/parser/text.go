package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// visibleText returns the rendered text of a selection with whitespace runs collapsed
func visibleText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// resolveURL resolves href against base. Hrefs that cannot be parsed are returned as-is.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// parseBaseURL parses a page URL for link resolution, returning nil when it is unusable
func parseBaseURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}
