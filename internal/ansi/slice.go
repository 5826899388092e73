package ansi

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Pad appends spaces to s until it is w columns wide. Strings already at
// least w columns wide are returned unchanged.
func Pad(s string, w int) string {
	return PadWith(s, w, ' ')
}

// PadWith is Pad with a custom fill rune. The fill is assumed to be one
// column wide.
func PadWith(s string, w int, fill rune) string {
	vw := VisualWidth(s)
	if vw >= w {
		return s
	}
	return s + strings.Repeat(string(fill), w-vw)
}

// Cut splits s after the first n visible columns. Control sequences that
// precede the cut stay in head, the rest go to tail, so head+tail == s.
// At least one printable rune is placed in head when s has any, even if
// that rune is wider than n.
func Cut(s string, n int) (head, tail string) {
	width := 0
	printed := false
	offset := 0
	for _, seg := range Segments(s) {
		if seg.Escape {
			if printed && width >= n {
				return s[:offset], s[offset:]
			}
			offset += len(seg.Text)
			continue
		}
		for j, r := range seg.Text {
			rw := runewidth.RuneWidth(r)
			if printed && width+rw > n {
				return s[:offset+j], s[offset+j:]
			}
			width += rw
			printed = true
		}
		offset += len(seg.Text)
	}
	return s, ""
}
