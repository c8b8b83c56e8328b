package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts an HTML body to UTF-8 before it reaches goquery.
// The encoding is taken from a BOM, a <meta> charset declaration or, failing both,
// sniffed from the first bytes. UTF-8 input passes through untouched.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}
