package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
	"github.com/interpretive-systems/colorhelp/internal/parserdef"
	"github.com/interpretive-systems/colorhelp/internal/prefs"
)

func newRenderCmd(p prefs.Prefs) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILE",
		Short: "Print the help page of a YAML parser definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, p)
			if err != nil {
				return err
			}
			d, err := parserdef.Load(args[0])
			if err != nil {
				return err
			}
			out, err := parserdef.Render(d, s.options())
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}
			if !s.color {
				out = ansi.Strip(out)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
