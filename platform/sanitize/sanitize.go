// Package sanitize strips markup from free-text lead fields before they are stored.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// leftoverTag catches tags that only appear once entities are decoded.
var leftoverTag = regexp.MustCompile(`<[^>]*>`)

// StripHTML keeps the text content of s. Script and style bodies are dropped.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	skipDepth := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			out := leftoverTag.ReplaceAllString(b.String(), "")
			return strings.TrimSpace(out)
		case html.StartTagToken:
			if isRawText(z) {
				skipDepth++
			}
		case html.EndTagToken:
			if isRawText(z) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	default:
		return false
	}
}

// Text cleans a user supplied field such as notes, pets or employer.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr applies Text to an optional field.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	return &out
}
