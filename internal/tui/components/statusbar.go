package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const hint = "<,>: width  0: reset  j,k: scroll  q: quit"

var faint = lipgloss.NewStyle().Faint(true)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	keyBuffer string
	err       error
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetKeyBuffer updates the pending count display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// SetError shows err in place of the key hint. A nil err clears it.
func (s *StatusBar) SetError(err error) {
	s.err = err
}

// Render renders the status bar. percent is the scroll position in [0,1].
func (s *StatusBar) Render(width int, percent float64) string {
	leftText := hint
	switch {
	case s.err != nil:
		leftText = "error: " + s.err.Error()
	case s.keyBuffer != "":
		leftText = s.keyBuffer
	}

	right := faint.Render(fmt.Sprintf("%3.0f%%", percent*100))
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	left := faint.Render(leftText)
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left += strings.Repeat(" ", avail-lipgloss.Width(left))
	}
	return left + " " + right
}
