// Package helpfmt lays out command-line help containing terminal control
// sequences: the two-column action table, the usage line and the text
// blocks around them. All width decisions use visible columns.
package helpfmt

import (
	"regexp"
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/textwrap"
)

// Hooks is the set of operations the page Formatter delegates to. Color
// implements all of them; a host can wrap Color to override single hooks.
type Hooks interface {
	// FillText wraps a description-style block to width, prefixing every
	// line with indent, and joins the lines.
	FillText(text string, width int, indent string) (string, error)
	// SplitLines wraps an action's help text to width.
	SplitLines(text string, width int) ([]string, error)
	// FormatAction renders one action row and its sub-actions.
	FormatAction(a Action, l ActionLayout) (string, error)
	// FormatUsage renders the usage block for the given text width.
	FormatUsage(u Usage, width int) (string, error)
	// FormatArgs renders an argument's value placeholder.
	FormatArgs(nargs Nargs, metavar ...string) (string, error)
}

// TextMode selects how free text is treated before layout.
type TextMode int

const (
	// WrapText collapses whitespace and re-wraps every text block.
	WrapText TextMode = iota
	// RawDescription keeps descriptions and epilogs verbatim but still
	// wraps action help.
	RawDescription
	// RawText keeps all text verbatim, including action help.
	RawText
)

// ParseTextMode maps a formatter class name to a TextMode.
func ParseTextMode(s string) (TextMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "color", "wrap":
		return WrapText, true
	case "raw-description", "raw_description":
		return RawDescription, true
	case "raw-text", "raw_text":
		return RawText, true
	}
	return 0, false
}

var whitespaceRun = regexp.MustCompile(`[ \t\n\v\f\r]+`)

// Color is the color-aware implementation of Hooks.
type Color struct {
	Mode TextMode
}

var _ Hooks = Color{}

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// FillText implements Hooks.
func (c Color) FillText(text string, width int, indent string) (string, error) {
	if c.Mode != WrapText {
		var b strings.Builder
		for _, line := range splitLinesKeepEnds(text) {
			b.WriteString(indent)
			b.WriteString(line)
		}
		return b.String(), nil
	}
	w := textwrap.New(width)
	w.InitialIndent = indent
	w.SubsequentIndent = indent
	return w.Fill(collapse(text))
}

// SplitLines implements Hooks.
func (c Color) SplitLines(text string, width int) ([]string, error) {
	if c.Mode == RawText {
		return splitLines(text), nil
	}
	return textwrap.New(width).Wrap(collapse(text))
}

// FormatArgs implements Hooks.
func (Color) FormatArgs(nargs Nargs, metavar ...string) (string, error) {
	return FormatArgs(nargs, metavar...)
}

// splitLines splits on line boundaries, dropping the terminators and a
// trailing empty line.
func splitLines(text string) []string {
	lines := splitLinesKeepEnds(text)
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r\n")
	}
	return lines
}

func splitLinesKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
