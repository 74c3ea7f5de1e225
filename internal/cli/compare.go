package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go_mdconv/internal/compare"
)

func newCompareCommand(g *globalFlags, streams Streams) *cobra.Command {
	s := &settings{globalFlags: g}
	var saveDir string
	var diff bool
	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Convert with go_mdconv and the html-to-markdown engines side by side",
		Long: `Compare converts the same HTML with go_mdconv, html-to-markdown v1 and
html-to-markdown v2 and prints each output with its line and byte counts and
its line similarity to go_mdconv's output. A built-in sample document is used
when no file is given; "-" reads stdin.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, s)
			if err != nil {
				return err
			}
			conv, err := cfg.NewConverter()
			if err != nil {
				return usageError(err)
			}

			text := compare.Sample
			if len(args) > 0 {
				text, _, err = readInput(streams.In, args, cfg.InputLimit())
				if err != nil {
					return err
				}
			}

			res := compare.Run(text, compare.Engines(conv))
			res.Print(streams.Out)

			if diff {
				base := res.Outputs[0]
				for _, o := range res.Outputs[1:] {
					if o.Err != nil || base.Err != nil {
						continue
					}
					d, err := compare.Diff(base, o)
					if err != nil {
						return err
					}
					fmt.Fprintf(streams.Out, "\n%s", d)
				}
			}

			if saveDir != "" {
				paths, err := res.Save(saveDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(streams.Out, "\n=== COMPARISON FILES SAVED ===")
				for _, p := range paths {
					fmt.Fprintf(streams.Out, "- %s\n", p)
				}
			}

			if res.Failed() {
				return errors.New("one or more engines failed")
			}
			return nil
		},
	}
	fs := cmd.Flags()
	addStyleFlags(fs, s)
	fs.StringVar(&saveDir, "save-dir", "", "Write comparison-<engine>.md files here")
	fs.BoolVar(&diff, "diff", false, "Print a unified diff of each engine against go_mdconv")
	return cmd
}
