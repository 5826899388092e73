package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// minPageWidth is the narrowest width the page can be squeezed to.
	minPageWidth = 20
	// widthStep is how many columns one < or > press moves.
	widthStep = 2
)

var dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Layout tracks the terminal size and the width the page is rendered at.
type Layout struct {
	width     int
	height    int
	pageWidth int // 0 follows the terminal
}

// NewLayout creates a layout. A positive pageWidth pins the page width.
func NewLayout(pageWidth int) *Layout {
	return &Layout{pageWidth: max(pageWidth, 0)}
}

// SetSize updates the terminal dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the terminal width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the terminal height.
func (l *Layout) Height() int {
	return l.height
}

// PageWidth is the width the help page is rendered at, never wider than
// the terminal.
func (l *Layout) PageWidth() int {
	if l.pageWidth == 0 {
		return l.width
	}
	return l.clamp(l.pageWidth)
}

// AdjustPageWidth narrows or widens the page by delta columns.
func (l *Layout) AdjustPageWidth(delta int) {
	l.pageWidth = l.clamp(l.PageWidth() + delta)
}

// ResetPageWidth makes the page follow the terminal width again.
func (l *Layout) ResetPageWidth() {
	l.pageWidth = 0
}

func (l *Layout) clamp(w int) int {
	return max(min(w, l.width), min(minPageWidth, l.width))
}

// ContentHeight returns the rows left for the page.
func (l *Layout) ContentHeight() int {
	// top bar + top rule + bottom rule + bottom bar
	return max(l.height-4, 1)
}

// RenderFrame renders the top bar, rules, body and bottom bar.
func (l *Layout) RenderFrame(topLeft, topRight string, body []string, bottomBar string) string {
	var b strings.Builder
	hr := dividerStyle.Render(strings.Repeat("─", l.width))

	b.WriteString(l.renderTopBar(topLeft, topRight))
	b.WriteByte('\n')
	b.WriteString(hr)
	b.WriteByte('\n')
	for i := 0; i < l.ContentHeight(); i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}
	b.WriteString(hr)
	b.WriteByte('\n')
	b.WriteString(bottomBar)
	return b.String()
}

func (l *Layout) renderTopBar(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}

	avail := l.width - rightW - 1
	return padToWidth(left, avail) + " " + right
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
