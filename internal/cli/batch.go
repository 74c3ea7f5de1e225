package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"go_mdconv/internal/app"
	"go_mdconv/internal/batch"
)

func newBatchCommand(g *globalFlags, streams Streams) *cobra.Command {
	s := &settings{globalFlags: g}
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Convert every .html/.htm file of a directory into rolled Markdown bundles",
		Long: `Batch converts the HTML files of input-dir one at a time, in name order.
Each document gets YAML frontmatter with its source and title and is
appended to <folder>_output_<n>.md in output-dir, starting a new file when
--max-output-bytes would be exceeded. A job summary is printed and written
to summary.json; the run log goes to run_<folder>.log.

Noise removal is on by default; the content container is picked by
--content-selector or, with --auto-detect, by scoring.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, s, streams)
		},
	}
	fs := cmd.Flags()
	addStyleFlags(fs, s)
	addContentFlags(fs, s, true)
	addBatchFlags(fs, s)
	return cmd
}

func runBatch(cmd *cobra.Command, args []string, s *settings, streams Streams) error {
	cfg, err := resolveConfig(cmd, s)
	if err != nil {
		return err
	}
	log := newLogger(streams.Err, cfg)
	conv, err := cfg.NewConverter()
	if err != nil {
		return usageError(err)
	}

	convert := buildOptions(s, cfg, true)
	if convert.ContentSelector != "" && convert.AutoDetect {
		return usageError(errors.New("--content-selector and --auto-detect are mutually exclusive"))
	}

	runner := batch.New(app.New(conv, log), log, streams.Out)
	_, err = runner.Run(cmd.Context(), batch.Options{
		InputDir:       args[0],
		OutputDir:      args[1],
		MaxOutputBytes: cfg.OutputLimit(),
		Frontmatter:    cfg.WriteFrontmatter(),
		Convert:        convert,
	})
	return err
}
