package helpfmt

import (
	"regexp"
	"strings"
)

const (
	defaultIndentIncrement = 2
	defaultMaxHelpPosition = 24
	// widthMargin is kept free on the right of the terminal.
	widthMargin = 2
)

var longBreak = regexp.MustCompile(`\n\n\n+`)

// Options configures a Formatter. Zero fields take defaults.
type Options struct {
	// Width is the terminal width in columns. The formatter keeps two
	// columns free on the right.
	Width int
	// MaxHelpPosition caps the help column (default 24).
	MaxHelpPosition int
	// IndentIncrement is the indent step for sections and sub-actions
	// (default 2).
	IndentIncrement int
	// Hooks renders text blocks, actions and usage (default Color{}).
	Hooks Hooks
}

// Formatter assembles a help page from usage, text blocks and sections of
// actions. Items are rendered only by FormatHelp, once every action is
// known, so that all rows share one help column.
//
// A Formatter tracks state for a single page and must not be shared
// between goroutines.
type Formatter struct {
	prog            string
	hooks           Hooks
	width           int
	maxHelpPosition int
	indentIncrement int

	currentIndent   int
	actionMaxLength int

	root    *section
	current *section
}

type item func() (string, error)

type section struct {
	parent  *section
	heading string
	items   []item
}

// New returns a Formatter for prog.
func New(prog string, opts Options) *Formatter {
	if opts.IndentIncrement <= 0 {
		opts.IndentIncrement = defaultIndentIncrement
	}
	if opts.MaxHelpPosition <= 0 {
		opts.MaxHelpPosition = defaultMaxHelpPosition
	}
	if opts.Hooks == nil {
		opts.Hooks = Color{}
	}
	width := opts.Width - widthMargin
	root := &section{}
	return &Formatter{
		prog:            prog,
		hooks:           opts.Hooks,
		width:           width,
		maxHelpPosition: min(opts.MaxHelpPosition, max(width-20, 2*opts.IndentIncrement)),
		indentIncrement: opts.IndentIncrement,
		root:            root,
		current:         root,
	}
}

func (f *Formatter) indent() { f.currentIndent += f.indentIncrement }
func (f *Formatter) dedent() { f.currentIndent -= f.indentIncrement }

func (f *Formatter) add(it item) {
	f.current.items = append(f.current.items, it)
}

// StartSection opens a titled section. Actions and text added until the
// matching EndSection are indented one step.
func (f *Formatter) StartSection(heading string) {
	f.indent()
	s := &section{parent: f.current, heading: heading}
	f.add(s.format(f))
	f.current = s
}

// EndSection closes the innermost open section.
func (f *Formatter) EndSection() {
	if f.current.parent == nil {
		return
	}
	f.current = f.current.parent
	f.dedent()
}

// AddText adds a description-style block. Empty text is ignored.
func (f *Formatter) AddText(text string) {
	if text == "" {
		return
	}
	f.add(func() (string, error) {
		text := strings.ReplaceAll(text, progToken, f.prog)
		width := max(f.width-f.currentIndent, minHelpWidth)
		out, err := f.hooks.FillText(text, width, strings.Repeat(" ", f.currentIndent))
		if err != nil {
			return "", err
		}
		return out + "\n\n", nil
	})
}

// AddUsage adds the usage block. An empty u.Prog takes the formatter's.
func (f *Formatter) AddUsage(u Usage) {
	if u.Prog == "" {
		u.Prog = f.prog
	}
	f.add(func() (string, error) {
		return f.hooks.FormatUsage(u, f.width-f.currentIndent)
	})
}

// AddArgument adds one action row to the current section.
func (f *Formatter) AddArgument(a Action) {
	f.actionMaxLength = max(f.actionMaxLength, MeasureAction(a, f.currentIndent))
	f.add(func() (string, error) {
		return f.hooks.FormatAction(a, ActionLayout{
			Width:           f.width,
			Indent:          f.currentIndent,
			IndentIncrement: f.indentIncrement,
			MaxActionLength: f.actionMaxLength,
			MaxHelpPosition: f.maxHelpPosition,
		})
	})
}

// AddArguments adds every action in order.
func (f *Formatter) AddArguments(actions []Action) {
	for _, a := range actions {
		f.AddArgument(a)
	}
}

// FormatHelp renders everything added so far. Runs of blank lines are
// collapsed to one and the page ends in exactly one newline.
func (f *Formatter) FormatHelp() (string, error) {
	out, err := f.root.format(f)()
	if err != nil {
		return "", err
	}
	out = longBreak.ReplaceAllString(out, "\n\n")
	out = strings.Trim(out, "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

func (s *section) format(f *Formatter) item {
	return func() (string, error) {
		if s.parent != nil {
			f.indent()
		}
		parts := make([]string, 0, len(s.items))
		var err error
		for _, it := range s.items {
			var out string
			if out, err = it(); err != nil {
				break
			}
			parts = append(parts, out)
		}
		if s.parent != nil {
			f.dedent()
		}
		if err != nil {
			return "", err
		}

		body := strings.Join(parts, "")
		if body == "" {
			return "", nil
		}
		heading := ""
		if s.heading != "" {
			heading = strings.Repeat(" ", f.currentIndent) + s.heading + ":\n"
		}
		return "\n" + heading + body + "\n", nil
	}
}
