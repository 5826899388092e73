package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/interpretive-systems/colorhelp/internal/helpfmt"
)

// helpStyles color the parts of the tool's own help pages.
type helpStyles struct {
	prog       lipgloss.Style
	heading    lipgloss.Style
	invocation lipgloss.Style
}

func newHelpStyles(w io.Writer, color bool) helpStyles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return helpStyles{
		prog:       r.NewStyle().Bold(true),
		heading:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		invocation: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func writeHelp(cmd *cobra.Command, s settings) error {
	out, err := commandHelp(cmd, newHelpStyles(cmd.OutOrStdout(), s.color), s.options())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// commandHelp lays out the help page of a cobra command: usage,
// description, sub-commands, the command's flags and inherited flags.
func commandHelp(cmd *cobra.Command, st helpStyles, opts helpfmt.Options) (string, error) {
	f := helpfmt.New(st.prog.Render(cmd.CommandPath()), opts)

	var (
		usage    helpfmt.Usage
		commands []helpfmt.Action
		names    []string
	)
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		names = append(names, c.Name())
		commands = append(commands, helpfmt.Action{Invocation: st.invocation.Render(c.Name()), Help: c.Short})
	}

	local := flagRows(cmd.LocalFlags(), st)
	inherited := flagRows(cmd.InheritedFlags(), st)
	for _, r := range append(local, inherited...) {
		usage.Optionals = append(usage.Optionals, r.usage)
	}
	if use := strings.Fields(cmd.Use); len(use) > 1 {
		usage.Positionals = use[1:]
	}
	if len(names) > 0 {
		usage.Positionals = append(usage.Positionals, "{"+strings.Join(names, ",")+"} ...")
	}
	f.AddUsage(usage)

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	f.AddText(desc)

	section := func(title string, actions []helpfmt.Action) {
		f.StartSection(st.heading.Render(title))
		f.AddArguments(actions)
		f.EndSection()
	}
	section("commands", commands)
	section("options", actionsOf(local))
	section("global options", actionsOf(inherited))
	return f.FormatHelp()
}

type flagRow struct {
	action helpfmt.Action
	usage  string
}

func actionsOf(rows []flagRow) []helpfmt.Action {
	out := make([]helpfmt.Action, len(rows))
	for i, r := range rows {
		out[i] = r.action
	}
	return out
}

func flagRows(fs *pflag.FlagSet, st helpStyles) []flagRow {
	var rows []flagRow
	fs.VisitAll(func(fl *pflag.Flag) {
		if !fl.Hidden {
			rows = append(rows, flagRowOf(fl, st))
		}
	})
	return rows
}

// flagRowOf renders a flag as an option row: every spelling followed by
// the metavar, and the default appended to the help.
func flagRowOf(fl *pflag.Flag, st helpStyles) flagRow {
	name, help := pflag.UnquoteUsage(fl)
	metavar := ""
	if fl.Value.Type() != "bool" {
		metavar = strings.ToUpper(strings.ReplaceAll(fl.Name, "-", "_"))
		if strings.Contains(fl.Usage, "`") {
			metavar = name
		}
	}
	withArgs := func(spelling string) string {
		s := st.invocation.Render(spelling)
		if metavar != "" {
			s += " " + metavar
		}
		return s
	}

	var spellings []string
	if fl.Shorthand != "" {
		spellings = append(spellings, "-"+fl.Shorthand)
	}
	spellings = append(spellings, "--"+fl.Name)
	parts := make([]string, len(spellings))
	for i, s := range spellings {
		parts[i] = withArgs(s)
	}

	if !isZeroDefault(fl.DefValue) {
		def := fl.DefValue
		if fl.Value.Type() == "string" {
			def = fmt.Sprintf("%q", def)
		}
		help += " (default: " + def + ")"
	}
	return flagRow{
		action: helpfmt.Action{Invocation: strings.Join(parts, ", "), Help: help},
		usage:  "[" + withArgs(spellings[0]) + "]",
	}
}

func isZeroDefault(v string) bool {
	switch v {
	case "", "0", "false", "[]", "<nil>":
		return true
	}
	return false
}
