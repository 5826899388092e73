// Package parserdef loads a command-line parser definition from YAML and
// renders its help page. It plays the host role for helpfmt: it owns the
// argument model and hands the formatter ready-made invocation strings,
// help strings and usage fragments.
package parserdef

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/interpretive-systems/colorhelp/internal/helpfmt"
)

// Definition is the root of a parser definition file.
type Definition struct {
	Prog        string  `yaml:"prog"`
	Usage       string  `yaml:"usage"`
	Description string  `yaml:"description"`
	Epilog      string  `yaml:"epilog"`
	Formatter   string  `yaml:"formatter"`
	AddHelp     bool    `yaml:"add_help"`
	Groups      []Group `yaml:"groups"`
}

// Group is a titled block of arguments.
type Group struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Arguments   []Argument `yaml:"arguments"`
}

// Argument is a positional (Name set) or an option (Flags set).
type Argument struct {
	Name     string   `yaml:"name"`
	Flags    []string `yaml:"flags"`
	Metavar  Metavar  `yaml:"metavar"`
	Nargs    string   `yaml:"nargs"`
	Switch   bool     `yaml:"switch"`
	Help     string   `yaml:"help"`
	Suppress bool     `yaml:"suppress"`
	Default  string   `yaml:"default"`
	Required bool     `yaml:"required"`
	Choices  []string `yaml:"choices"`
	// Commands turns the argument into a sub-command selector whose
	// choices are listed as sub-actions.
	Commands []Command `yaml:"commands"`
}

// Command is one sub-command choice.
type Command struct {
	Name string `yaml:"name"`
	Help string `yaml:"help"`
}

const (
	formatterDefaults = "argument-defaults"
	helpGroupTitle    = "options"
	helpText          = "show this help message and exit"
	defaultToken      = "{default}"
)

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a definition.
func Parse(b []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the fields the renderer depends on.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Prog) == "" {
		return fmt.Errorf("prog: required")
	}
	if _, _, err := d.textMode(); err != nil {
		return err
	}
	for gi, g := range d.Groups {
		for ai, a := range g.Arguments {
			if err := a.validate(); err != nil {
				return fmt.Errorf("groups[%d].arguments[%d]: %w", gi, ai, err)
			}
		}
	}
	return nil
}

func (a Argument) validate() error {
	switch {
	case a.Name == "" && len(a.Flags) == 0:
		return fmt.Errorf("name or flags: required")
	case a.Name != "" && len(a.Flags) > 0:
		return fmt.Errorf("name and flags are mutually exclusive")
	}
	for _, f := range a.Flags {
		if !strings.HasPrefix(f, "-") {
			return fmt.Errorf("flag %q must start with '-'", f)
		}
	}
	if a.Switch && a.Nargs != "" {
		return fmt.Errorf("switch cannot take nargs")
	}
	if _, err := helpfmt.ParseNargs(a.Nargs); err != nil {
		return fmt.Errorf("nargs: %w", err)
	}
	return nil
}

func (d *Definition) textMode() (helpfmt.TextMode, bool, error) {
	if strings.EqualFold(strings.TrimSpace(d.Formatter), formatterDefaults) {
		return helpfmt.WrapText, true, nil
	}
	m, ok := helpfmt.ParseTextMode(d.Formatter)
	if !ok {
		return 0, false, fmt.Errorf("formatter: unknown class %q", d.Formatter)
	}
	return m, false, nil
}

// Metavar names the values of an argument. In YAML it is either a single
// string or a list with one name per value.
type Metavar []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Metavar) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*m = Metavar{n.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := n.Decode(&names); err != nil {
			return err
		}
		*m = names
		return nil
	}
	return fmt.Errorf("line %d: metavar must be a string or a list of strings", n.Line)
}
