// Package ansi measures and pads text that carries terminal control
// sequences. Control sequences occupy zero columns.
package ansi

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// csi matches a complete CSI sequence: ESC '[', parameter bytes 0x30-0x3f,
// intermediate bytes 0x20-0x2f and one final byte 0x40-0x7e. Anything else
// starting with ESC is left alone and counted as text.
var csi = regexp.MustCompile("\x1b\\[[0-?]*[ -/]*[@-~]")

// Segment is a run of text that is either plain printable text or exactly
// one control sequence.
type Segment struct {
	Text   string
	Escape bool
}

// Segments splits s into alternating text and control-sequence segments.
// Concatenating the Text of every segment reproduces s.
func Segments(s string) []Segment {
	locs := csi.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		if s == "" {
			return nil
		}
		return []Segment{{Text: s}}
	}
	segs := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segs = append(segs, Segment{Text: s[prev:loc[0]]})
		}
		segs = append(segs, Segment{Text: s[loc[0]:loc[1]], Escape: true})
		prev = loc[1]
	}
	if prev < len(s) {
		segs = append(segs, Segment{Text: s[prev:]})
	}
	return segs
}

// Strip removes every recognized control sequence from s.
func Strip(s string) string {
	return csi.ReplaceAllLiteralString(s, "")
}

// VisualWidth returns the number of terminal columns s occupies once its
// control sequences are removed.
func VisualWidth(s string) int {
	return runewidth.StringWidth(Strip(s))
}
