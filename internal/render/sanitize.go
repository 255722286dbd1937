package render

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sanitize reduces text to what the built-in Latin fonts can print: it
// decomposes to NFKD, drops combining marks and every code point outside
// printable ASCII, keeps newlines and turns tabs into spaces.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteByte(' ')
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// safeFilenamePart makes s usable inside a download file name.
func safeFilenamePart(s string) string {
	s = strings.TrimSpace(Sanitize(s))
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", "\n", "_")
	s = replacer.Replace(s)
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
