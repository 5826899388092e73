package cli

import (
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
	"github.com/interpretive-systems/colorhelp/internal/helpfmt"
	"github.com/interpretive-systems/colorhelp/internal/parserdef"
	"github.com/interpretive-systems/colorhelp/internal/prefs"
	"github.com/interpretive-systems/colorhelp/internal/tui"
)

func newPreviewCmd(p prefs.Prefs) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Browse a help page and resize it interactively",
		Long: "Browse a rendered help page. The page follows the terminal width; " +
			"< and > narrow or widen it, 0 resets it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, p)
			if err != nil {
				return err
			}
			d, err := parserdef.Load(args[0])
			if err != nil {
				return err
			}
			pinned := 0
			if s.widthSet {
				pinned = s.width
			}
			return tui.Run(args[0], previewRenderer(d, s), pinned)
		},
	}
}

// previewRenderer renders d at whatever width the viewer asks for, with
// escapes removed when color is off.
func previewRenderer(d *parserdef.Definition, s settings) tui.RenderFunc {
	return func(width int) (string, error) {
		out, err := parserdef.Render(d, helpfmt.Options{Width: width, MaxHelpPosition: s.maxHelpPosition})
		if err != nil {
			return "", err
		}
		if !s.color {
			out = ansi.Strip(out)
		}
		return out, nil
	}
}
