package parserdef

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/colorhelp/internal/helpfmt"
)

// Render formats the full help page of d. A nil opts.Hooks is replaced by
// the color-aware hooks for d's formatter class.
func Render(d *Definition, opts helpfmt.Options) (string, error) {
	mode, showDefaults, err := d.textMode()
	if err != nil {
		return "", err
	}
	if opts.Hooks == nil {
		opts.Hooks = helpfmt.Color{Mode: mode}
	}
	r := renderer{def: d, hooks: opts.Hooks, showDefaults: showDefaults}

	groups := d.groups()
	var usage helpfmt.Usage
	usage.Text = d.Usage
	for _, g := range groups {
		for _, a := range g.Arguments {
			if a.Suppress {
				continue
			}
			frag, err := r.usageFragment(a)
			if err != nil {
				return "", err
			}
			if a.positional() {
				usage.Positionals = append(usage.Positionals, frag)
			} else {
				usage.Optionals = append(usage.Optionals, frag)
			}
		}
	}

	f := helpfmt.New(d.Prog, opts)
	f.AddUsage(usage)
	f.AddText(d.Description)
	for _, g := range groups {
		f.StartSection(g.Title)
		f.AddText(g.Description)
		for _, a := range g.Arguments {
			if a.Suppress {
				continue
			}
			action, err := r.action(a)
			if err != nil {
				return "", err
			}
			f.AddArgument(action)
		}
		f.EndSection()
	}
	f.AddText(d.Epilog)
	return f.FormatHelp()
}

// groups returns the argument groups, with the help option added to the
// "options" group when AddHelp is set.
func (d *Definition) groups() []Group {
	groups := make([]Group, len(d.Groups))
	copy(groups, d.Groups)
	if !d.AddHelp {
		return groups
	}
	help := Argument{Flags: []string{"-h", "--help"}, Switch: true, Help: helpText}
	for i, g := range groups {
		if g.Title == helpGroupTitle {
			groups[i].Arguments = append([]Argument{help}, g.Arguments...)
			return groups
		}
	}
	return append(groups, Group{Title: helpGroupTitle, Arguments: []Argument{help}})
}

type renderer struct {
	def          *Definition
	hooks        helpfmt.Hooks
	showDefaults bool
}

func (a Argument) positional() bool { return len(a.Flags) == 0 }

func (a Argument) nargs() helpfmt.Nargs {
	if len(a.Commands) > 0 && a.Nargs == "" {
		return helpfmt.NargsParser
	}
	n, _ := helpfmt.ParseNargs(a.Nargs)
	return n
}

// dest is the attribute name the argument is stored under.
func (a Argument) dest() string {
	if a.positional() {
		return a.Name
	}
	for _, f := range a.Flags {
		if strings.HasPrefix(f, "--") {
			return strings.ReplaceAll(strings.TrimLeft(f, "-"), "-", "_")
		}
	}
	return strings.TrimLeft(a.Flags[0], "-")
}

func (a Argument) metavar() []string {
	switch {
	case len(a.Metavar) > 0:
		return a.Metavar
	case len(a.Commands) > 0:
		names := make([]string, len(a.Commands))
		for i, c := range a.Commands {
			names[i] = c.Name
		}
		return []string{"{" + strings.Join(names, ",") + "}"}
	case len(a.Choices) > 0:
		return []string{"{" + strings.Join(a.Choices, ",") + "}"}
	case a.positional():
		return []string{a.dest()}
	default:
		return []string{strings.ToUpper(a.dest())}
	}
}

func (r renderer) args(a Argument) (string, error) {
	s, err := r.hooks.FormatArgs(a.nargs(), a.metavar()...)
	if err != nil {
		return "", fmt.Errorf("argument %q: %w", a.dest(), err)
	}
	return s, nil
}

func (r renderer) invocation(a Argument) (string, error) {
	if a.positional() {
		return a.metavar()[0], nil
	}
	if a.Switch {
		return strings.Join(a.Flags, ", "), nil
	}
	args, err := r.args(a)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(a.Flags))
	for i, f := range a.Flags {
		parts[i] = f + " " + args
	}
	return strings.Join(parts, ", "), nil
}

func (r renderer) usageFragment(a Argument) (string, error) {
	if a.positional() {
		return r.args(a)
	}
	part := a.Flags[0]
	if !a.Switch {
		args, err := r.args(a)
		if err != nil {
			return "", err
		}
		part += " " + args
	}
	if !a.Required {
		part = "[" + part + "]"
	}
	return part, nil
}

// help expands {prog} and {default} in the help text, appending the
// default first when the argument-defaults class asks for it.
func (r renderer) help(a Argument) string {
	h := a.Help
	if h == "" {
		return ""
	}
	if r.showDefaults && a.Default != "" && !strings.Contains(h, defaultToken) {
		n := a.nargs()
		if !a.positional() || n == helpfmt.NargsOptional || n == helpfmt.NargsZeroOrMore {
			h += " (default: " + defaultToken + ")"
		}
	}
	return strings.NewReplacer("{prog}", r.def.Prog, defaultToken, a.Default).Replace(h)
}

func (r renderer) action(a Argument) (helpfmt.Action, error) {
	inv, err := r.invocation(a)
	if err != nil {
		return helpfmt.Action{}, err
	}
	action := helpfmt.Action{Invocation: inv, Help: r.help(a)}
	for _, c := range a.Commands {
		action.SubActions = append(action.SubActions, helpfmt.Action{Invocation: c.Name, Help: c.Help})
	}
	return action, nil
}
