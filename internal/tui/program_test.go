package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func samplePage(width int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "rendered at %d\n", width)
	for i := 1; i <= 50; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String(), nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Program, msgs ...tea.Msg) Program {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Program)
	}
	return m
}

func sized(t *testing.T, width int) Program {
	t.Helper()
	return send(t, New("demo.yaml", samplePage, width), tea.WindowSizeMsg{Width: 80, Height: 16})
}

// rows returns the visible rows of the view without styling or padding.
func rows(m Program) []string {
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestView_Loading(t *testing.T) {
	m := New("demo.yaml", samplePage, 0)
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading view, got %q", got)
	}
}

func TestView_Frame(t *testing.T) {
	m := sized(t, 0)
	plain := ansi.Strip(m.View())
	lines := strings.Split(plain, "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "demo.yaml") || !strings.HasSuffix(lines[0], "width 80/80") {
		t.Fatalf("unexpected top bar: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "rendered at 80") {
		t.Fatalf("expected page at top, got %q", lines[2])
	}
	if !strings.Contains(lines[15], "q: quit") || !strings.HasSuffix(lines[15], "0%") {
		t.Fatalf("unexpected bottom bar: %q", lines[15])
	}
}

func TestUpdate_Width(t *testing.T) {
	tests := []struct {
		name  string
		start int
		keys  []string
		want  string
	}{
		{"narrow", 0, []string{"<"}, "rendered at 78"},
		{"count", 0, []string{"5", "<"}, "rendered at 70"},
		{"multi digit count", 0, []string{"1", "0", "<"}, "rendered at 60"},
		{"floor", 0, []string{"9", "9", "<"}, "rendered at 20"},
		{"widen capped", 0, []string{">"}, "rendered at 80"},
		{"pinned", 60, nil, "rendered at 60"},
		{"pinned widen", 60, []string{">", "L"}, "rendered at 64"},
		{"reset", 60, []string{"0"}, "rendered at 80"},
		{"pinned beyond terminal", 120, nil, "rendered at 80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sized(t, tt.start)
			for _, k := range tt.keys {
				m = send(t, m, runes(k))
			}
			if plain := ansi.Strip(m.View()); !strings.Contains(plain, tt.want) {
				t.Fatalf("expected %q in view:\n%s", tt.want, plain)
			}
		})
	}
}

func TestUpdate_Scroll(t *testing.T) {
	m := sized(t, 0)
	m = send(t, m, runes("G"))
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "line 50") || strings.Contains(plain, "rendered at") {
		t.Fatalf("expected bottom of page:\n%s", plain)
	}
	if !strings.Contains(plain, "100%") {
		t.Fatalf("expected full scroll percent:\n%s", plain)
	}

	m = send(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyDown})
	if got := rows(m)[2]; got != "line 1" {
		t.Fatalf("expected one line scrolled, first row %q", got)
	}
}

func TestUpdate_KeepsScrollOnResize(t *testing.T) {
	m := sized(t, 0)
	m = send(t, m, runes("3"), runes("j"), runes("<"))
	r := rows(m)
	if r[2] != "line 3" {
		t.Fatalf("expected offset kept after re-render, first row %q", r[2])
	}
	if !strings.HasSuffix(r[0], "width 78/80") {
		t.Fatalf("unexpected top bar %q", r[0])
	}
}

func TestUpdate_RenderError(t *testing.T) {
	failing := func(int) (string, error) { return "", errors.New("boom") }
	m := send(t, New("bad.yaml", failing, 0), tea.WindowSizeMsg{Width: 80, Height: 10})
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "error: boom") {
		t.Fatalf("expected error in status bar:\n%s", plain)
	}
}

func TestUpdate_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := sized(t, 0).Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestKeyHandler_Count(t *testing.T) {
	k := NewKeyHandler()
	if a, _ := k.Handle(runes("0")); a != ActionResetWidth {
		t.Fatalf("leading 0 should reset, got %v", a)
	}
	k.Handle(runes("1"))
	k.Handle(runes("2"))
	if k.KeyBuffer() != "12" {
		t.Fatalf("unexpected buffer %q", k.KeyBuffer())
	}
	a, n := k.Handle(runes("j"))
	if a != ActionLineDown || n != 12 {
		t.Fatalf("got action %v count %d", a, n)
	}
	if k.KeyBuffer() != "" {
		t.Fatalf("buffer not cleared: %q", k.KeyBuffer())
	}
	if a, n := k.Handle(runes("x")); a != ActionNone || n != 1 {
		t.Fatalf("unknown key: got %v %d", a, n)
	}
}
