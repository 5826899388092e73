package textwrap

import (
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
	"github.com/mattn/go-runewidth"
)

// whitespace is the set of characters that separate chunks.
const whitespace = "\t\n\v\f\r "

func isSpace(r rune) bool {
	return strings.ContainsRune(whitespace, r)
}

// isBlank reports whether chunk consists only of whitespace. A chunk that
// holds nothing but a control sequence is not blank and is never dropped.
func isBlank(chunk string) bool {
	return chunk != "" && strings.Trim(chunk, whitespace) == ""
}

// isZeroWidth reports whether chunk is made of control sequences only.
func isZeroWidth(chunk string) bool {
	return chunk != "" && !isBlank(chunk) && ansi.VisualWidth(chunk) == 0
}

// munge expands tabs and normalizes whitespace before chunking.
func (w Wrapper) munge(text string) string {
	if w.ExpandTabs {
		text = expandTabs(text, w.TabSize)
	}
	if w.ReplaceWhitespace {
		text = strings.Map(func(r rune) rune {
			if isSpace(r) {
				return ' '
			}
			return r
		}, text)
	}
	return text
}

// expandTabs replaces every tab with spaces up to the next multiple of size
// columns. Columns restart after a newline or carriage return and control
// sequences do not advance the column.
func expandTabs(text string, size int) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	var b strings.Builder
	col := 0
	for _, seg := range ansi.Segments(text) {
		if seg.Escape {
			b.WriteString(seg.Text)
			continue
		}
		for _, r := range seg.Text {
			switch r {
			case '\t':
				if size > 0 {
					n := size - col%size
					b.WriteString(strings.Repeat(" ", n))
					col += n
				}
			case '\n', '\r':
				b.WriteRune(r)
				col = 0
			default:
				b.WriteRune(r)
				col += runewidth.RuneWidth(r)
			}
		}
	}
	return b.String()
}

// split breaks text into alternating whitespace and word chunks. Control
// sequences are kept whole and attached to the word they touch; one that
// sits between two whitespace runs becomes a zero-width word of its own.
func split(text string) []string {
	var chunks []string
	var cur strings.Builder
	curBlank := false
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}
	for _, seg := range ansi.Segments(text) {
		if seg.Escape {
			if curBlank {
				flush()
				curBlank = false
			}
			cur.WriteString(seg.Text)
			continue
		}
		for _, r := range seg.Text {
			blank := isSpace(r)
			if cur.Len() > 0 && blank != curBlank {
				flush()
			}
			curBlank = blank
			cur.WriteRune(r)
		}
	}
	flush()
	return chunks
}
