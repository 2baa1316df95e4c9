package cards

import (
	"html"
	"regexp"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
)

// Layout engines only understand inline styles, so emphasis becomes styled
// spans rather than <strong>/<em>.
const (
	boldSpan   = `<span style="font-weight: 700">$1</span>`
	italicSpan = `<span style="font-style: italic">$1</span>`
	codeSpan   = `<span style="font-family: monospace; background-color: rgba(0,0,0,0.08); padding: 0 6px">$1</span>`
)

// FormatInline escapes s and converts **bold**, *italic* and `code` markers
// into styled spans.
func FormatInline(s string) string {
	s = html.EscapeString(s)
	s = reInlineCode.ReplaceAllString(s, codeSpan)
	s = reBold.ReplaceAllString(s, boldSpan)
	s = reBoldUnderscore.ReplaceAllString(s, boldSpan)
	s = reItalic.ReplaceAllString(s, italicSpan)
	s = reItalicUnderscore.ReplaceAllString(s, italicSpan)
	return s
}
