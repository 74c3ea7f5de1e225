// Package cli builds the go_mdconv command tree.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"go_mdconv/internal/app"
	"go_mdconv/internal/config"
	"go_mdconv/internal/logging"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewRootCommand returns the full command tree. Without a subcommand it
// behaves like convert.
func NewRootCommand(streams Streams) *cobra.Command {
	g := &globalFlags{}
	s := &settings{globalFlags: g}

	root := &cobra.Command{
		Use:   "go_mdconv [file]",
		Short: "Convert HTML to Markdown",
		Long: `go_mdconv converts HTML documents to Markdown.

Reads the named file, or stdin when no file is given, and prints Markdown to
stdout. Use --output-dir to write content.md, content.json and index.jsonl
instead.

Examples:
  go_mdconv page.html
  curl -s https://example.com | go_mdconv --auto-detect --remove-noise
  go_mdconv batch ./pages ./out
  go_mdconv serve --addr :8080`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, s, streams)
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	addGlobalFlags(root.PersistentFlags(), g)
	addConvertFlags(root, s)

	root.AddCommand(
		newConvertCommand(g, streams),
		newVerifyCommand(g, streams),
		newBatchCommand(g, streams),
		newCompareCommand(g, streams),
		newInspectCommand(streams),
		newServeCommand(g, streams),
		newInitConfigCommand(g, streams),
		newTestConfigsCommand(streams),
	)
	return root
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(fn(cmd, args))
	}
}

func addConvertFlags(cmd *cobra.Command, s *settings) {
	fs := cmd.Flags()
	addStyleFlags(fs, s)
	addContentFlags(fs, s, false)
	addOutputFlags(fs, s)
}

func newConvertCommand(g *globalFlags, streams Streams) *cobra.Command {
	s := &settings{globalFlags: g}
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert one HTML document",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, s, streams)
		},
	}
	addConvertFlags(cmd, s)
	return cmd
}

func newVerifyCommand(g *globalFlags, streams Streams) *cobra.Command {
	s := &settings{globalFlags: g}
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Convert and compare the Markdown structure against the HTML",
		Long: `Verify converts the document, re-parses the Markdown and compares the
number of headings, lists, tables and code blocks with the source HTML. It
prints the completeness report and fails when the structure drifted.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.verify = true
			return runConvert(cmd, args, s, streams)
		},
	}
	fs := cmd.Flags()
	addStyleFlags(fs, s)
	addContentFlags(fs, s, false)
	fs.BoolVar(&s.strict, "strict", false, "Also fail on outline issues such as broken anchors")
	return cmd
}

// errVerifyFailed is reported by verify when the structure counts differ.
var errVerifyFailed = errors.New("verification failed: markdown structure differs from html")

func runConvert(cmd *cobra.Command, args []string, s *settings, streams Streams) error {
	cfg, err := resolveConfig(cmd, s)
	if err != nil {
		return err
	}
	log := newLogger(streams.Err, cfg)
	conv, err := cfg.NewConverter()
	if err != nil {
		return usageError(err)
	}

	text, source, err := readInput(streams.In, args, cfg.InputLimit())
	if err != nil {
		return err
	}

	opts := buildOptions(s, cfg, false)
	opts.Source = source
	if s.verify {
		opts.OutputDir = ""
	}
	res, err := app.New(conv, log).Convert(cmd.Context(), text, opts)
	if err != nil {
		return err
	}

	switch {
	case s.verify:
		app.PrintSummary(streams.Out, res)
		if res.Report.Structure != nil && !res.Report.Structure.OK() {
			return errVerifyFailed
		}
	case opts.OutputDir != "":
		app.PrintSummary(streams.Out, res)
	default:
		_, err = io.WriteString(streams.Out, res.Markdown)
	}
	return err
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return logging.New(w, cfg.LogLevel, cfg.LogFormat)
}
