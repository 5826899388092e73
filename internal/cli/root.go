package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/colorhelp/internal/helpfmt"
	"github.com/interpretive-systems/colorhelp/internal/prefs"
)

// Execute runs the colorhelp command line.
func Execute() error {
	root := newRootCmd(prefs.Load())
	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd(p prefs.Prefs) *cobra.Command {
	root := &cobra.Command{
		Use:   "colorhelp",
		Short: "Wrap and lay out help text that contains color escapes",
		Long: "colorhelp wraps text and renders command-line help pages without " +
			"counting terminal color sequences toward line width.",
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().Int("width", 0, "Terminal width in columns (default: $COLUMNS or the terminal)")
	root.PersistentFlags().Int("max-help-position", 0, "Column cap for help text (default: 24)")
	root.PersistentFlags().String("color", string(prefs.ColorAuto), "Emit color: auto, always or never")

	root.AddCommand(newWrapCmd(p), newRenderCmd(p), newPreviewCmd(p))
	// Until registered, a leading --help takes the next argument as its value.
	root.InitDefaultHelpFlag()
	for _, c := range root.Commands() {
		c.InitDefaultHelpFlag()
	}
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		s, err := resolve(cmd, p)
		if err == nil {
			err = writeHelp(cmd, s)
		}
		if err != nil {
			cmd.PrintErrln("help:", err)
		}
	})
	return root
}

// settings are the preferences after flag overrides. widthSet reports
// an explicit --width.
type settings struct {
	width           int
	widthSet        bool
	maxHelpPosition int
	color           bool
}

func (s settings) options() helpfmt.Options {
	return helpfmt.Options{Width: s.width, MaxHelpPosition: s.maxHelpPosition}
}

func resolve(cmd *cobra.Command, p prefs.Prefs) (settings, error) {
	s := settings{
		width:           p.Width,
		maxHelpPosition: p.MaxHelpPosition,
		color:           p.Color,
	}
	flags := cmd.Flags()
	if f := flags.Lookup("width"); f != nil && f.Changed {
		w, err := flags.GetInt("width")
		if err != nil {
			return s, err
		}
		if w <= 0 {
			return s, fmt.Errorf("--width must be positive, got %d", w)
		}
		s.width, s.widthSet = w, true
	}
	if f := flags.Lookup("max-help-position"); f != nil && f.Changed {
		n, err := flags.GetInt("max-help-position")
		if err != nil {
			return s, err
		}
		s.maxHelpPosition = n
	}
	if f := flags.Lookup("color"); f != nil {
		mode, err := prefs.ParseColorMode(f.Value.String())
		if err != nil {
			return s, err
		}
		s.color = mode.Resolve(s.color)
	}
	return s, nil
}
