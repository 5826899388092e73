package helpfmt

import (
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
)

// DefaultUsagePrefix starts the usage block when Usage.Prefix is empty.
const DefaultUsagePrefix = "usage: "

// progToken is replaced by the program name in explicit usage and in text
// blocks.
const progToken = "{prog}"

// shortProgRatio is the share of the text width below which the program
// name is followed by arguments on the same line.
const shortProgRatio = 0.75

// Usage describes the usage line.
type Usage struct {
	// Prog is the program name, possibly colored.
	Prog string
	// Text, when set, is used verbatim instead of a computed usage line.
	// "{prog}" is replaced by Prog. It is never re-wrapped.
	Text string
	// Optionals and Positionals are pre-rendered usage fragments, e.g.
	// "[-h]" or "FILE [FILE ...]". Fragments are never split internally.
	Optionals   []string
	Positionals []string
	// Prefix defaults to DefaultUsagePrefix.
	Prefix string
}

// FormatUsage implements Hooks. When the one-line usage does not fit in
// width the fragments are re-flowed over several lines, aligned under
// the program name when it is short and under the prefix otherwise.
func (Color) FormatUsage(u Usage, width int) (string, error) {
	prefix := u.Prefix
	if prefix == "" {
		prefix = DefaultUsagePrefix
	}
	return prefix + assembleUsage(u, ansi.VisualWidth(prefix), width) + "\n\n", nil
}

func assembleUsage(u Usage, prefixLen, width int) string {
	if u.Text != "" {
		return strings.ReplaceAll(u.Text, progToken, u.Prog)
	}
	optUsage := joinNonEmpty(u.Optionals)
	posUsage := joinNonEmpty(u.Positionals)
	usage := joinNonEmpty([]string{u.Prog, optUsage, posUsage})
	if optUsage == "" && posUsage == "" {
		return u.Prog
	}
	if prefixLen+ansi.VisualWidth(usage) <= width {
		return usage
	}

	optParts, ok := usageParts(optUsage)
	if !ok {
		return usage
	}
	posParts, ok := usageParts(posUsage)
	if !ok {
		return usage
	}

	p := usagePacker{width: width, prefixLen: prefixLen}
	progLen := ansi.VisualWidth(u.Prog)
	var lines []string
	if float64(prefixLen+progLen) <= shortProgRatio*float64(width) {
		indent := strings.Repeat(" ", prefixLen+progLen+1)
		switch {
		case len(optParts) > 0:
			lines = p.lines(append([]string{u.Prog}, optParts...), indent, true)
			lines = append(lines, p.lines(posParts, indent, false)...)
		case len(posParts) > 0:
			lines = p.lines(append([]string{u.Prog}, posParts...), indent, true)
		default:
			lines = []string{u.Prog}
		}
	} else {
		indent := strings.Repeat(" ", prefixLen)
		parts := append(append([]string{}, optParts...), posParts...)
		lines = p.lines(parts, indent, false)
		if len(lines) > 1 {
			lines = append(p.lines(optParts, indent, false), p.lines(posParts, indent, false)...)
		}
		lines = append([]string{u.Prog}, lines...)
	}
	return strings.Join(lines, "\n")
}

type usagePacker struct {
	width     int
	prefixLen int
}

// lines packs parts greedily into lines prefixed by indent. When first is
// set the first line continues after the usage prefix and carries no
// indent of its own.
func (p usagePacker) lines(parts []string, indent string, first bool) []string {
	var (
		lines []string
		line  []string
	)
	indentLen := len(indent)
	lineLen := indentLen - 1
	if first {
		lineLen = p.prefixLen - 1
	}
	for _, part := range parts {
		n := ansi.VisualWidth(part)
		if lineLen+1+n > p.width && len(line) > 0 {
			lines = append(lines, indent+strings.Join(line, " "))
			line = nil
			lineLen = indentLen - 1
		}
		line = append(line, part)
		lineLen += n + 1
	}
	if len(line) > 0 {
		lines = append(lines, indent+strings.Join(line, " "))
	}
	if first && len(lines) > 0 {
		lines[0] = lines[0][indentLen:]
	}
	return lines
}

// usageParts splits a usage string into atomic parts: a parenthesized or
// bracketed group running up to a closing bracket followed by whitespace
// or the end, or else a run of non-space characters. ok is false when the
// parts do not join back into s.
func usageParts(s string) (parts []string, ok bool) {
	i := 0
	for i < len(s) {
		if isUsageSpace(s[i]) {
			i++
			continue
		}
		end := -1
		switch s[i] {
		case '(':
			end = groupEnd(s, i, ')')
		case '[':
			end = groupEnd(s, i, ']')
		}
		if end < 0 {
			end = i
			for end < len(s) && !isUsageSpace(s[end]) {
				end++
			}
		}
		parts = append(parts, s[i:end])
		i = end
	}
	return parts, strings.Join(parts, " ") == s
}

// groupEnd finds the shortest group starting at s[start] that ends in a
// run of closing characters followed by whitespace or the end of s.
// Groups do not span lines. It returns -1 when there is none.
func groupEnd(s string, start int, closer byte) int {
	for k := start + 1; k < len(s); k++ {
		if s[k] == '\n' {
			return -1
		}
		if s[k] != closer {
			continue
		}
		m := k
		for m < len(s) && s[m] == closer {
			m++
		}
		if m == len(s) || isUsageSpace(s[m]) {
			return m
		}
	}
	return -1
}

func isUsageSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
