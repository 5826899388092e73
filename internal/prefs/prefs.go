package prefs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"
)

// Prefs holds layout and color preferences for rendering help.
type Prefs struct {
	Width           int
	MaxHelpPosition int
	Color           bool
}

const (
	keyColumns         = "COLUMNS"
	keyMaxHelpPosition = "COLORHELP_MAX_HELP_POSITION"
	keyColor           = "COLORHELP_COLOR"
	keyNoColor         = "NO_COLOR"

	// DefaultWidth is used when neither COLUMNS nor the terminal say.
	DefaultWidth = 80
	// DefaultMaxHelpPosition caps the help column.
	DefaultMaxHelpPosition = 24
)

// Env is where preferences come from.
type Env struct {
	Lookup     func(key string) (string, bool)
	TermWidth  func() (int, error)
	IsTerminal bool
}

// System reads the process environment and stdout.
func System() Env {
	fd := os.Stdout.Fd()
	return Env{
		Lookup: os.LookupEnv,
		TermWidth: func() (int, error) {
			w, _, err := term.GetSize(fd)
			return w, err
		},
		IsTerminal: term.IsTerminal(fd),
	}
}

// Load resolves preferences from the process environment.
func Load() Prefs {
	return LoadEnv(System())
}

// LoadEnv resolves preferences from e. The width comes from COLUMNS, then
// the terminal, then DefaultWidth.
func LoadEnv(e Env) Prefs {
	p := Prefs{
		Width:           DefaultWidth,
		MaxHelpPosition: DefaultMaxHelpPosition,
		Color:           e.IsTerminal,
	}
	if n, ok := positive(get(e, keyColumns)); ok {
		p.Width = n
	} else if e.TermWidth != nil {
		if w, err := e.TermWidth(); err == nil && w > 0 {
			p.Width = w
		}
	}
	if n, ok := positive(get(e, keyMaxHelpPosition)); ok {
		p.MaxHelpPosition = n
	}
	if _, ok := lookup(e, keyNoColor); ok {
		p.Color = false
	}
	if s, ok := lookup(e, keyColor); ok {
		if v, err := ParseColorMode(s); err == nil {
			p.Color = v.Resolve(p.Color)
		}
	}
	return p
}

// ColorMode is the --color flag value.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto/always/never and the usual boolean
// spellings.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "1", "true", "yes", "on":
		return ColorAlways, nil
	case "never", "0", "false", "no", "off":
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Resolve applies the mode to the detected default.
func (m ColorMode) Resolve(detected bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return detected
	}
}

func lookup(e Env, key string) (string, bool) {
	if e.Lookup == nil {
		return "", false
	}
	return e.Lookup(key)
}

func get(e Env, key string) string {
	s, _ := lookup(e, key)
	return s
}

func positive(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
