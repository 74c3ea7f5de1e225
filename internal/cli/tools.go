package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go_mdconv/internal/config"
	"go_mdconv/internal/subcommands/inspect"
	"go_mdconv/internal/subcommands/testconfigs"
	"go_mdconv/internal/tui"
)

func newInspectCommand(streams Streams) *cobra.Command {
	var opts inspect.Options
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "List content container candidates and their scores",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.File = args[0]
			return inspect.Run(opts, streams.Out)
		},
	}
	cmd.Flags().StringVar(&opts.CheckSelector, "check-selector", "", "Show details for the elements matching this selector")
	cmd.Flags().IntVar(&opts.Top, "top", 10, "Number of candidates to list")
	cmd.Flags().StringVar(&opts.NavSelector, "nav-selector", "", "Also print the navigation tree under this selector and flag anchors without a target")
	return cmd
}

func newTestConfigsCommand(streams Streams) *cobra.Command {
	var opts testconfigs.Options
	cmd := &cobra.Command{
		Use:   "test-configs",
		Short: "Validate every config file in a directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return testconfigs.Run(opts, streams.Out)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", config.DefaultConfigDir, "Directory of config files")
	cmd.Flags().StringVar(&opts.Sample, "sample", "", "HTML file to convert with each config (default: built-in sample)")
	return cmd
}

func newInitConfigCommand(g *globalFlags, streams Streams) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Create a style config interactively",
		Long: `Init-config opens a form to build a style config and saves it to --config
(default configs/go_mdconv.json). A .yaml or .yml path writes YAML. When
stdin is not a terminal, or with --plain, it asks line by line instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.configPath
			if plain || !isTerminal(streams.In) {
				if path == "" {
					path = config.DefaultConfigPath()
				}
				return RunConfigWizard(streams.In, streams.Out, path)
			}
			res, err := tui.Run(path)
			if err != nil {
				return err
			}
			if res.Saved {
				fmt.Fprintf(streams.Out, "Wrote %s\n", res.ConfigPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use line prompts instead of the form")
	return cmd
}
