package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/colorhelp/internal/ansi"
	"github.com/interpretive-systems/colorhelp/internal/prefs"
	"github.com/interpretive-systems/colorhelp/internal/textwrap"
)

func newWrapCmd(p prefs.Prefs) *cobra.Command {
	w := textwrap.New(0)
	var keepWhitespace, noBreak bool
	cmd := &cobra.Command{
		Use:   "wrap [TEXT...]",
		Short: "Wrap text from arguments or standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, p)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				text = string(b)
			}

			w.Width = s.width
			w.DropWhitespace = !keepWhitespace
			w.BreakLongWords = !noBreak
			lines, err := w.Wrap(text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				if !s.color {
					line = ansi.Strip(line)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&w.InitialIndent, "initial-indent", "", "Prefix for the first line")
	f.StringVar(&w.SubsequentIndent, "subsequent-indent", "", "Prefix for every other line")
	f.IntVar(&w.MaxLines, "max-lines", 0, "Truncate the output to this many lines (0: no limit)")
	f.StringVar(&w.Placeholder, "placeholder", textwrap.DefaultPlaceholder, "Marker appended to truncated output")
	f.IntVar(&w.TabSize, "tab-size", w.TabSize, "Tab stop spacing")
	f.BoolVar(&keepWhitespace, "keep-whitespace", false, "Keep whitespace at line edges")
	f.BoolVar(&noBreak, "no-break-long-words", false, "Let words longer than the width overflow")
	return cmd
}
