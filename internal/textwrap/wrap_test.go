package textwrap

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
)

const (
	bold  = "\x1b[1m"
	green = "\x1b[1;32m"
	reset = "\x1b[0m"
)

func TestWrap_BadWidth(t *testing.T) {
	_, err := New(-1).Wrap("This is some text to wrap.")
	if !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
	if err.Error() != "invalid width -1 (must be > 0)" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if _, err := New(0).Wrap(""); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected width check before any processing, got %v", err)
	}
}

func TestWrap_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		w    Wrapper
		text string
		want []string
	}{
		{
			name: "starting whitespace",
			w:    New(20),
			text: "   01234 56789 01234 56789 01234 56789 01234 56789",
			want: []string{"   01234 56789 01234", "56789 01234 56789", "01234 56789"},
		},
		{
			name: "too big",
			w:    New(10),
			text: "0123456789 0123456789 01234567890123456789",
			want: []string{"0123456789", "0123456789", "0123456789", "0123456789"},
		},
		{
			name: "max lines and indent",
			w:    with(New(20), func(w *Wrapper) { w.MaxLines = 2; w.InitialIndent = "  " }),
			text: "01234 56789 01234 56789 01234 56789 01234 56789",
			want: []string{"  01234 56789 01234", "56789 01234 [...]"},
		},
		{
			name: "single line with placeholder",
			w: with(New(20), func(w *Wrapper) {
				w.MaxLines = 1
				w.InitialIndent = "   "
				w.SubsequentIndent = " "
			}),
			text: "01234 56789 01234 56789 01234 56789 01234 56789",
			want: []string{"   01234 56789 [...]"},
		},
		{
			name: "placeholder alone",
			w:    with(New(4), func(w *Wrapper) { w.MaxLines = 1; w.Placeholder = "***" }),
			text: "0123456789",
			want: []string{"***"},
		},
		{
			name: "placeholder on its own line",
			w:    with(New(5), func(w *Wrapper) { w.MaxLines = 2; w.Placeholder = "****" }),
			text: strings.Repeat("0123456789 ", 2),
			want: []string{"01234", "****"},
		},
		{
			name: "placeholder merged onto previous line",
			w:    with(New(10), func(w *Wrapper) { w.MaxLines = 2; w.BreakLongWords = false }),
			text: "abc 0123456789abcdef",
			want: []string{"abc [...]"},
		},
		{
			name: "last line fits exactly",
			w:    with(New(11), func(w *Wrapper) { w.MaxLines = 2 }),
			text: "hello world again here",
			want: []string{"hello world", "again here"},
		},
		{
			name: "long word kept whole",
			w:    with(New(5), func(w *Wrapper) { w.BreakLongWords = false }),
			text: "ab abcdefgh cd",
			want: []string{"ab", "abcdefgh", "cd"},
		},
		{
			name: "empty",
			w:    New(10),
			text: "",
			want: nil,
		},
		{
			name: "tabs expanded",
			w:    New(40),
			text: "a\tb",
			want: []string{"a       b"},
		},
		{
			name: "keep whitespace",
			w:    with(New(6), func(w *Wrapper) { w.DropWhitespace = false }),
			text: "abc def ghi",
			want: []string{"abc ", "def ", "ghi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.w.Wrap(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Wrap(%q)\n got  %q\n want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestWrap_PlaceholderTooLarge(t *testing.T) {
	w := New(10)
	w.MaxLines = 2
	w.Placeholder = strings.Repeat("**", 10)
	_, err := w.Wrap("01234 56789 01234 56789 01234 56789 01234 56789")
	if !errors.Is(err, ErrPlaceholderTooLarge) {
		t.Fatalf("expected ErrPlaceholderTooLarge, got %v", err)
	}

	// The first-line indent is what counts when only one line is allowed.
	w = New(10)
	w.MaxLines = 1
	w.InitialIndent = "        "
	w.SubsequentIndent = ""
	if _, err := w.Wrap("abc"); !errors.Is(err, ErrPlaceholderTooLarge) {
		t.Fatalf("expected initial indent to be checked, got %v", err)
	}
}

func TestWrap_ColorDoesNotMoveBreaks(t *testing.T) {
	words := []string{"color", "used", "when", "making", "rainbow,", "typically", "this", "would", "be", "green."}
	var plain, colored []string
	for i, word := range words {
		plain = append(plain, word)
		if i%2 == 0 {
			word = green + word + reset
		} else {
			word = bold + word
		}
		colored = append(colored, word)
	}

	for width := 6; width <= 40; width++ {
		want, err := Wrap(strings.Join(plain, " "), width)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Wrap(strings.Join(colored, " "), width)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("width %d: %d lines, want %d", width, len(got), len(want))
		}
		for i := range got {
			if ansi.Strip(got[i]) != want[i] {
				t.Fatalf("width %d line %d: %q, want %q", width, i, ansi.Strip(got[i]), want[i])
			}
			if ansi.VisualWidth(got[i]) > width {
				t.Fatalf("width %d line %d too wide: %q", width, i, got[i])
			}
		}
		if joined := strings.Join(got, ""); strings.Count(joined, "\x1b[") != strings.Count(strings.Join(colored, ""), "\x1b[") {
			t.Fatalf("width %d: control sequences lost", width)
		}
	}
}

func TestWrap_ShortLineIsIdempotent(t *testing.T) {
	line := green + "-h" + reset + ", " + green + "--help" + reset + "  show help"
	got, err := New(40).Wrap(line)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != line {
		t.Fatalf("expected the line back untouched, got %q", got)
	}
}

func TestWrap_TruncationEndsWithPlaceholder(t *testing.T) {
	w := New(16)
	w.MaxLines = 2
	text := green + "alpha" + reset + " beta gamma delta epsilon zeta eta theta"
	got, err := w.Wrap(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	last := got[len(got)-1]
	if !strings.HasSuffix(last, DefaultPlaceholder) {
		t.Fatalf("expected placeholder suffix, got %q", last)
	}
	if ansi.VisualWidth(last) > 16 {
		t.Fatalf("truncated line too wide: %q", last)
	}
	if !strings.HasPrefix(got[0], green+"alpha"+reset) {
		t.Fatalf("expected color codes kept on first word, got %q", got[0])
	}
}

func TestWrap_LongColoredWordBreaksOnVisibleColumns(t *testing.T) {
	word := green + "0123456789" + reset + "abcdefghij"
	got, err := New(10).Wrap(word)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{green + "0123456789", reset + "abcdefghij"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrap_WideRuneDoesNotOverflowLine(t *testing.T) {
	got, err := New(5).Wrap("abc 日本語日本")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abc", "日本", "語日", "本"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i, line := range got {
		if w := ansi.VisualWidth(line); w > 5 {
			t.Fatalf("line %d exceeds width 5: %q (%d)", i, line, w)
		}
	}
}

func TestWrap_BlanksAroundLoneEscapeAreDropped(t *testing.T) {
	text := "aaaa " + reset + " bbbb"
	tests := []struct {
		width int
		want  []string
	}{
		{4, []string{"aaaa", reset + "bbbb"}},
		{5, []string{"aaaa" + reset, "bbbb"}},
		{6, []string{"aaaa" + reset, "bbbb"}},
	}
	for _, tt := range tests {
		got, err := New(tt.width).Wrap(text)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("width %d: got %q, want %q", tt.width, got, tt.want)
		}
	}
	for width := 4; width <= 10; width++ {
		want, _ := New(width).Wrap("aaaa  bbbb")
		got, _ := New(width).Wrap(text)
		if len(got) != len(want) {
			t.Fatalf("width %d: %q, want %q", width, got, want)
		}
		for i := range got {
			if ansi.Strip(got[i]) != want[i] {
				t.Fatalf("width %d line %d: %q, want %q", width, i, ansi.Strip(got[i]), want[i])
			}
		}
	}
}

func TestFill(t *testing.T) {
	got, err := Fill("one two three four", 9)
	if err != nil {
		t.Fatal(err)
	}
	if got != "one two\nthree\nfour" {
		t.Fatalf("unexpected fill: %q", got)
	}
	if _, err := Fill("x", 0); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	got := split("ab " + bold + "cd" + reset + "  " + reset + " e")
	want := []string{"ab", " ", bold + "cd" + reset, "  ", reset, " ", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("split = %q, want %q", got, want)
	}
}

func TestExpandTabsIgnoresEscapes(t *testing.T) {
	got := expandTabs(bold+"ab"+reset+"\tc\n\td", 4)
	want := bold + "ab" + reset + "  c\n    d"
	if got != want {
		t.Fatalf("expandTabs = %q, want %q", got, want)
	}
}

func with(w Wrapper, f func(*Wrapper)) Wrapper {
	f(&w)
	return w
}
