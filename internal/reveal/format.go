// Package reveal turns a raw completion into the word fragments of a typewriter reveal and schedules
// their appearance.
package reveal

import "strings"

const (
	emphasisDelimiter = "**"
	lineBreakMarker   = "*"

	boldOpen  = "<b>"
	boldClose = "</b>"
	lineBreak = "<br/>"
)

// Format applies the lightweight markup of a completion. Text between pairs of "**" is wrapped in bold
// tags, then every remaining single "*" becomes a line break. When the delimiters are unpaired, the
// text after the last "**" is emphasized as if it had been closed.
func Format(raw string) string {
	segments := strings.Split(raw, emphasisDelimiter)

	var sb strings.Builder
	for i, segment := range segments {
		if i%2 == 1 {
			sb.WriteString(boldOpen)
			sb.WriteString(segment)
			sb.WriteString(boldClose)
			continue
		}
		sb.WriteString(segment)
	}

	return strings.ReplaceAll(sb.String(), lineBreakMarker, lineBreak)
}

// Fragments splits a formatted completion on single spaces. Every fragment keeps a trailing space, so
// the concatenation of all fragments is the formatted text followed by one space.
func Fragments(formatted string) []string {
	words := strings.Split(formatted, " ")
	for i := range words {
		words[i] += " "
	}
	return words
}

// Join reassembles fragments into the text a completed reveal displays.
func Join(fragments []string) string {
	return strings.Join(fragments, "")
}
