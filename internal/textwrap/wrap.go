// Package textwrap wraps text that may carry terminal control sequences.
// Line breaks are chosen from visible widths only, so styled text wraps
// exactly where its plain rendering would, and no control sequence is ever
// split across lines.
package textwrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
)

var (
	// ErrInvalidWidth is returned when the wrap width is not positive.
	ErrInvalidWidth = errors.New("invalid width")
	// ErrPlaceholderTooLarge is returned when MaxLines is set and the indent
	// plus placeholder cannot fit on one line.
	ErrPlaceholderTooLarge = errors.New("placeholder too large for max width")
)

// DefaultPlaceholder marks content dropped by MaxLines truncation.
const DefaultPlaceholder = " [...]"

// Wrapper holds wrapping options. The zero value keeps whitespace and long
// words as they are; use New for the usual help-text behavior.
type Wrapper struct {
	// Width is the maximum number of visible columns per line.
	Width int
	// InitialIndent prefixes the first line, SubsequentIndent all others.
	// Both count toward Width.
	InitialIndent    string
	SubsequentIndent string
	// MaxLines truncates the output to this many lines, ending the last one
	// with Placeholder. Zero means no limit.
	MaxLines    int
	Placeholder string
	// DropWhitespace removes whitespace at the start and end of every line
	// except whitespace leading the very first line.
	DropWhitespace bool
	// BreakLongWords splits a word wider than the line. Without it such a
	// word is placed on a line of its own and overflows.
	BreakLongWords bool
	// ExpandTabs turns tabs into spaces, TabSize columns apart.
	ExpandTabs bool
	TabSize    int
	// ReplaceWhitespace turns every remaining whitespace character into a
	// single space before wrapping.
	ReplaceWhitespace bool
}

// New returns a Wrapper for width with the defaults used for help text.
func New(width int) Wrapper {
	return Wrapper{
		Width:             width,
		Placeholder:       DefaultPlaceholder,
		DropWhitespace:    true,
		BreakLongWords:    true,
		ExpandTabs:        true,
		TabSize:           8,
		ReplaceWhitespace: true,
	}
}

// Wrap wraps text with New(width).
func Wrap(text string, width int) ([]string, error) {
	return New(width).Wrap(text)
}

// Fill wraps text with New(width) and joins the lines with newlines.
func Fill(text string, width int) (string, error) {
	return New(width).Fill(text)
}

// Wrap splits text into lines of at most w.Width visible columns. A line is
// only wider when it holds a single word wider than the line and
// BreakLongWords is off.
func (w Wrapper) Wrap(text string) ([]string, error) {
	return w.wrapChunks(split(w.munge(text)))
}

// Fill is Wrap with the lines joined by newlines.
func (w Wrapper) Fill(text string) (string, error) {
	lines, err := w.Wrap(text)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (w Wrapper) validate() error {
	if w.Width <= 0 {
		return fmt.Errorf("%w %d (must be > 0)", ErrInvalidWidth, w.Width)
	}
	if w.MaxLines > 0 {
		indent := w.InitialIndent
		if w.MaxLines > 1 {
			indent = w.SubsequentIndent
		}
		need := ansi.VisualWidth(indent) + ansi.VisualWidth(strings.TrimLeft(w.Placeholder, whitespace))
		if need > w.Width {
			return fmt.Errorf("%w: indent plus placeholder need %d columns, width is %d",
				ErrPlaceholderTooLarge, need, w.Width)
		}
	}
	return nil
}

// wrapChunks fills lines greedily from chunks. Chunks are consumed from a
// reversed stack so the next chunk is always the last element.
func (w Wrapper) wrapChunks(chunks []string) ([]string, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	stack := make([]string, len(chunks))
	for i, c := range chunks {
		stack[len(chunks)-1-i] = c
	}
	top := func() string { return stack[len(stack)-1] }
	pop := func() string {
		c := top()
		stack = stack[:len(stack)-1]
		return c
	}

	var lines []string
	placeholderWidth := ansi.VisualWidth(w.Placeholder)

	for len(stack) > 0 {
		var line []string
		curLen := 0

		indent := w.InitialIndent
		if len(lines) > 0 {
			indent = w.SubsequentIndent
		}
		width := w.Width - ansi.VisualWidth(indent)

		if w.DropWhitespace && len(lines) > 0 {
			// Escapes between dropped blanks stay on the line.
			for len(stack) > 0 {
				if isBlank(top()) {
					pop()
				} else if isZeroWidth(top()) {
					line = append(line, pop())
				} else {
					break
				}
			}
		}

		for len(stack) > 0 {
			n := ansi.VisualWidth(top())
			if curLen+n > width {
				break
			}
			line = append(line, pop())
			curLen += n
		}

		if len(stack) > 0 && ansi.VisualWidth(top()) > width {
			line = w.handleLongWord(&stack, line, curLen, width)
			curLen = lineWidth(line)
		}

		if w.DropWhitespace {
			line, curLen = dropTrailingBlanks(line, curLen)
		}

		if len(line) == 0 {
			continue
		}

		rest := len(stack) == 0 || w.DropWhitespace && len(stack) == 1 && isBlank(stack[0])
		if w.MaxLines <= 0 || len(lines)+1 < w.MaxLines || rest && curLen <= width {
			lines = append(lines, indent+strings.Join(line, ""))
			continue
		}

		// Out of lines: cut back until the placeholder fits after the
		// last remaining word.
		for len(line) > 0 {
			last := line[len(line)-1]
			if strings.Trim(ansi.Strip(last), whitespace) != "" && curLen+placeholderWidth <= width {
				line = append(line, w.Placeholder)
				lines = append(lines, indent+strings.Join(line, ""))
				return lines, nil
			}
			curLen -= ansi.VisualWidth(last)
			line = line[:len(line)-1]
		}
		if len(lines) > 0 {
			prev := strings.TrimRight(lines[len(lines)-1], whitespace)
			if ansi.VisualWidth(prev)+placeholderWidth <= w.Width {
				lines[len(lines)-1] = prev + w.Placeholder
				return lines, nil
			}
		}
		lines = append(lines, indent+strings.TrimLeft(w.Placeholder, whitespace))
		return lines, nil
	}
	return lines, nil
}

// handleLongWord deals with a chunk wider than a whole line. With
// BreakLongWords the chunk is split at the space left on the current line;
// otherwise it is moved whole, but only onto an empty line.
func (w Wrapper) handleLongWord(stack *[]string, line []string, curLen, width int) []string {
	spaceLeft := 1
	if width >= 1 {
		spaceLeft = width - curLen
	}
	s := *stack
	if w.BreakLongWords {
		if spaceLeft <= 0 {
			return line
		}
		head, tail := ansi.Cut(s[len(s)-1], spaceLeft)
		if curLen > 0 && ansi.VisualWidth(head) > spaceLeft {
			// A wide rune that does not fit starts the next line.
			return line
		}
		line = append(line, head)
		if tail == "" {
			*stack = s[:len(s)-1]
		} else {
			s[len(s)-1] = tail
		}
		return line
	}
	if curLen == 0 {
		line = append(line, s[len(s)-1])
		*stack = s[:len(s)-1]
	}
	return line
}

// dropTrailingBlanks removes whitespace chunks from the end of line,
// looking past zero-width control sequences, which are kept.
func dropTrailingBlanks(line []string, curLen int) ([]string, int) {
	for i := len(line) - 1; i >= 0; i-- {
		switch {
		case isBlank(line[i]):
			curLen -= ansi.VisualWidth(line[i])
			line = append(line[:i], line[i+1:]...)
		case isZeroWidth(line[i]):
		default:
			return line, curLen
		}
	}
	return line, curLen
}

func lineWidth(chunks []string) int {
	n := 0
	for _, c := range chunks {
		n += ansi.VisualWidth(c)
	}
	return n
}
