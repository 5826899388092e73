package helpfmt

import "strings"

var palette = []string{
	"\x1b[1;31m", "\x1b[1;38;5;214m", "\x1b[1;33m", "\x1b[1;32m",
	"\x1b[1;34m", "\x1b[1;38;5;54m", "\x1b[1;38;5;177m",
}

const reset = "\x1b[0m"

func paint(i int, s string) string { return palette[i%len(palette)] + s + reset }

func bold(s string) string      { return "\x1b[1m" + s + reset }
func underline(s string) string { return "\x1b[4m" + s + reset }

// rainbow colors every character of s with the next palette entry.
func rainbow(s string) string {
	var b strings.Builder
	for i, r := range []rune(s) {
		b.WriteString(paint(i, string(r)))
	}
	return b.String()
}

// expand replaces {name} markers with their colored rendering.
func expand(s string) string {
	repl := []string{
		"{color}", bold("color"),
		"{typically}", underline("typically"),
		"{colorful}", rainbow("colorful"),
		"{rainbow_maker}", rainbow("rainbow_maker"),
		"{bow}", rainbow("bow"),
		"{long_prog}", rainbow("red-orange-yellow-green-blue-indigo-violet"),
	}
	for i, p := range positions {
		repl = append(repl, "{"+p+"}", paint(i, p))
	}
	for i, c := range colorNames {
		repl = append(repl, "{"+c+"}", paint(i, c))
	}
	return strings.NewReplacer(repl...).Replace(s)
}

var (
	positions  = []string{"first", "second", "third", "forth", "fifth", "sixth", "seventh"}
	colorNames = []string{"red", "orange", "yellow", "green", "blue", "indigo", "violet"}
)

type page struct {
	prog        string
	usage       string
	description string
	epilog      string
}

func rainbowPage(p page, width int) (string, error) {
	f := New(expand(p.prog), Options{Width: width})
	var positionals []Action
	for i, name := range positions {
		positionals = append(positionals, Action{
			Invocation: name,
			Help:       expand("{color} used when making rainbow, {typically} this would be {" + colorNames[i] + "}."),
		})
	}
	f.AddUsage(Usage{
		Text:        expand(p.usage),
		Optionals:   []string{"[-h]"},
		Positionals: positions,
	})
	f.AddText(expand(p.description))
	f.StartSection("positional arguments")
	f.AddArguments(positionals)
	f.EndSection()
	f.StartSection("optional arguments")
	f.AddArgument(Action{Invocation: "-h, --help", Help: expand("displays this {colorful} help text")})
	f.EndSection()
	f.AddText(expand(p.epilog))
	return f.FormatHelp()
}

var rainbowMaker = page{
	prog:        "{rainbow_maker}",
	description: "This script is a test for {rainbow_maker}. This description consists of 140 chars. It should be able to fit onto two 80 char lines.",
	epilog:      "This epilog has some {colorful} escapes in it as well and should not wrap on 80.",
}

func (p page) withProg(prog string) page { p.prog = prog; return p }

func (p page) withUsage(usage string) page { p.usage = usage; return p }
