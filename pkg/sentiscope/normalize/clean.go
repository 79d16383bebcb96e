package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Word characters are Unicode letters, combining marks, digits and underscore.
const wordClass = `\p{L}\p{M}\p{N}_`

var (
	urlPattern     = regexp.MustCompile(`(?i)(?:https?|ftp)://\S*|\bwww\.\S+`)
	mentionPattern = regexp.MustCompile(`@[` + wordClass + `]+`)
	hashtagPattern = regexp.MustCompile(`#[` + wordClass + `]+`)
	punctPattern   = regexp.MustCompile(`[^` + wordClass + `\s]+`)
)

// Clean strips links, mentions, hashtags and punctuation, then lowercases and
// trims. Each pattern is removed in place without inserting whitespace.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "")
	text = punctPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ToLower(text))
}

// StripMarkup removes HTML tags and decodes entities, so scraped posts like
// "Tom &amp; Jerry<br>" read as plain text. Only closed tags naming a known
// HTML element are removed; a stray "<" such as in "a<b and c" is kept as
// text. Script and style contents are dropped. Whitespace is collapsed.
// Text without markup characters is returned unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var buf strings.Builder
	var skip atom.Atom // set while inside script or style

	for {
		tt := z.Next()
		raw := string(z.Raw())

		switch tt {
		case html.ErrorToken:
			// Unterminated markup at the end of input stays as text.
			if skip == 0 {
				buf.WriteString(raw)
			}
			return strings.Join(strings.Fields(buf.String()), " ")

		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}

		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == 0 {
				if skip == 0 {
					buf.WriteString(raw)
				}
				continue
			}
			switch {
			case tt == html.StartTagToken && (a == atom.Script || a == atom.Style):
				skip = a
			case tt == html.EndTagToken && a == skip:
				skip = 0
			}
			buf.WriteByte(' ')

		case html.CommentToken:
			if skip == 0 && !(strings.HasPrefix(raw, "<!--") && strings.HasSuffix(raw, "-->")) {
				buf.WriteString(raw)
				continue
			}
			buf.WriteByte(' ')

		case html.DoctypeToken:
			if skip == 0 && !strings.HasSuffix(raw, ">") {
				buf.WriteString(raw)
				continue
			}
			buf.WriteByte(' ')
		}
	}
}
