package helpfmt

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
)

// minHelpWidth is the narrowest help column the table will wrap into.
const minHelpWidth = 11

// Action is one row of the help table as supplied by the host. The core
// reads it during a single formatting pass and keeps nothing.
type Action struct {
	// Invocation is the rendered flag spelling or placeholder, e.g.
	// "-o FILE, --output FILE". It may contain control sequences.
	Invocation string
	// Help is the already expanded help text. Empty means no help column.
	Help string
	// SubActions are rendered below the action, one indent step deeper.
	SubActions []Action
}

// ActionLayout carries the table geometry for one FormatAction call.
type ActionLayout struct {
	// Width is the total text width.
	Width int
	// Indent is the column the invocation starts at.
	Indent int
	// IndentIncrement is added to Indent for sub-actions.
	IndentIncrement int
	// MaxActionLength is the widest Indent+invocation seen in this pass,
	// measured in visible columns.
	MaxActionLength int
	// MaxHelpPosition caps the column the help text starts at.
	MaxHelpPosition int
}

// HelpPosition is the column help text starts at.
func (l ActionLayout) HelpPosition() int {
	return min(l.MaxActionLength+2, l.MaxHelpPosition)
}

// MeasureAction returns the visible width an action needs at indent: the
// widest invocation of the action and all its sub-actions, plus indent.
func MeasureAction(a Action, indent int) int {
	return widestInvocation(a) + indent
}

func widestInvocation(a Action) int {
	n := ansi.VisualWidth(a.Invocation)
	for _, sub := range a.SubActions {
		n = max(n, widestInvocation(sub))
	}
	return n
}

// FormatAction implements Hooks. A short invocation shares its line with
// the first line of help, padded to the action column; a long one gets a
// line of its own and the help starts on the next line.
func (c Color) FormatAction(a Action, l ActionLayout) (string, error) {
	helpPosition := l.HelpPosition()
	helpWidth := max(l.Width-helpPosition, minHelpWidth)
	actionWidth := helpPosition - l.Indent - 2
	pad := strings.Repeat(" ", max(l.Indent, 0))

	var b strings.Builder
	indentFirst := 0
	switch {
	case a.Help == "":
		b.WriteString(pad + a.Invocation + "\n")
	case ansi.VisualWidth(a.Invocation) <= actionWidth:
		b.WriteString(pad + ansi.Pad(a.Invocation, actionWidth) + "  ")
	default:
		b.WriteString(pad + a.Invocation + "\n")
		indentFirst = helpPosition
	}

	var lines []string
	if strings.TrimSpace(a.Help) != "" {
		var err error
		lines, err = c.SplitLines(a.Help, helpWidth)
		if err != nil {
			return "", fmt.Errorf("format action %q: %w", ansi.Strip(a.Invocation), err)
		}
	}
	for i, line := range lines {
		n := helpPosition
		if i == 0 {
			n = indentFirst
		}
		b.WriteString(strings.Repeat(" ", n) + line + "\n")
	}
	if len(lines) == 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}

	sub := l
	sub.Indent += l.IndentIncrement
	for _, s := range a.SubActions {
		out, err := c.FormatAction(s, sub)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}
