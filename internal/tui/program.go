// Package tui is the interactive preview of a help page. The page is
// re-rendered whenever its width changes, so wrapping can be checked at
// any terminal size.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/colorhelp/internal/tui/components"
)

// RenderFunc renders the page for a terminal width.
type RenderFunc func(width int) (string, error)

// Program is the bubbletea model of the preview.
type Program struct {
	title      string
	render     RenderFunc
	layout     *Layout
	keyHandler *KeyHandler
	status     *components.StatusBar
	vp         viewport.Model

	renderedWidth int
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// New creates the preview model. A positive width pins the page width
// until it is adjusted or reset.
func New(title string, render RenderFunc, width int) Program {
	return Program{
		title:      title,
		render:     render,
		layout:     NewLayout(width),
		keyHandler: NewKeyHandler(),
		status:     components.NewStatusBar(),
		vp:         viewport.New(0, 0),
	}
}

// Run instantiates and runs the Bubble Tea program.
func Run(title string, render RenderFunc, width int) error {
	p := tea.NewProgram(New(title, render, width), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

func (m Program) Init() tea.Cmd {
	return nil
}

func (m Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		action, count := m.keyHandler.Handle(msg)
		m.status.SetKeyBuffer(m.keyHandler.KeyBuffer())
		return m.apply(action, count)
	}
	return m, nil
}

func (m Program) apply(action KeyAction, count int) (tea.Model, tea.Cmd) {
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionNarrower:
		m.layout.AdjustPageWidth(-widthStep * count)
		m.refresh()
	case ActionWider:
		m.layout.AdjustPageWidth(widthStep * count)
		m.refresh()
	case ActionResetWidth:
		m.layout.ResetPageWidth()
		m.refresh()
	case ActionLineDown:
		m.vp.LineDown(count)
	case ActionLineUp:
		m.vp.LineUp(count)
	case ActionPageDown:
		for range count {
			m.vp.PageDown()
		}
	case ActionPageUp:
		for range count {
			m.vp.PageUp()
		}
	case ActionHalfPageDown:
		for range count {
			m.vp.HalfPageDown()
		}
	case ActionHalfPageUp:
		for range count {
			m.vp.HalfPageUp()
		}
	case ActionGoToTop:
		m.vp.GotoTop()
	case ActionGoToBottom:
		m.vp.GotoBottom()
	}
	return m, nil
}

// refresh sizes the viewport and re-renders the page if its width moved.
func (m *Program) refresh() {
	if m.layout.Width() == 0 || m.layout.Height() == 0 {
		return
	}
	m.vp.Width = m.layout.Width()
	m.vp.Height = m.layout.ContentHeight()

	w := m.layout.PageWidth()
	if w == m.renderedWidth {
		return
	}
	m.renderedWidth = w
	out, err := m.render(w)
	m.status.SetError(err)
	if err != nil {
		out = ""
	}
	m.vp.SetContent(strings.TrimRight(out, "\n"))
}

func (m Program) View() string {
	if m.layout.Width() == 0 || m.layout.Height() == 0 {
		return "Loading..."
	}
	right := fmt.Sprintf("width %d/%d", m.layout.PageWidth(), m.layout.Width())
	return m.layout.RenderFrame(
		titleStyle.Render(m.title),
		right,
		strings.Split(m.vp.View(), "\n"),
		m.status.Render(m.layout.Width(), m.vp.ScrollPercent()),
	)
}
