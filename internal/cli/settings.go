package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go_mdconv/internal/app"
	"go_mdconv/internal/config"
	"go_mdconv/internal/output"
)

// ExitError carries the process exit code for usage and config problems.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return ExitError{Code: 2, Err: err}
}

// globalFlags are the persistent root flags every command shares.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// settings holds one command's flag values before they are merged with the
// config file.
type settings struct {
	*globalFlags

	style          config.Config
	strikethrough  bool
	admonitions    bool
	removeNoise    bool
	frontmatter    bool
	maxInputBytes  byteSizeFlag
	maxOutputBytes byteSizeFlag

	splitSections bool
	verify        bool
	strict        bool
	hooks         []string
	postCommands  []string
	chunkBytes    byteSizeFlag
	chunkChars    int
	chunkTokens   int
}

func addGlobalFlags(fs *pflag.FlagSet, s *globalFlags) {
	fs.StringVar(&s.configPath, "config", "", "Path to a JSON or YAML config file (default: discovered go_mdconv.json)")
	fs.StringVar(&s.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	fs.StringVar(&s.logFormat, "log-format", "text", "Log format: text|json")
}

func addStyleFlags(fs *pflag.FlagSet, s *settings) {
	fs.StringVar(&s.style.HeadingStyle, "heading-style", "", "Heading style: atx|setext")
	fs.StringVar(&s.style.BulletMarker, "bullet", "", "Bullet marker: -|*|+")
	fs.StringVar(&s.style.OrderedMarker, "ordered-marker", "", "Ordered list marker: .|)")
	fs.StringVar(&s.style.CodeBlockStyle, "code-block-style", "", "Code block style: fenced|indented")
	fs.StringVar(&s.style.Fence, "fence", "", "Code fence: ``` or ~~~")
	fs.StringVar(&s.style.EmDelimiter, "em-delimiter", "", "Emphasis delimiter: _|*")
	fs.StringVar(&s.style.StrongDelimiter, "strong-delimiter", "", "Strong delimiter: **|__")
	fs.StringVar(&s.style.LinkStyle, "link-style", "", "Link style: inline|referenced")
	fs.StringVar(&s.style.HorizontalRule, "hr", "", "Horizontal rule token, e.g. --- or ***")
	fs.StringVar(&s.style.LineBreak, "line-break", "", "Hard line break: spaces|backslash")
	fs.IntVar(&s.style.ListIndent, "list-indent", 0, "Spaces per nested list level (1-8)")
	fs.BoolVar(&s.strikethrough, "strikethrough", true, "Render del/s/strike as ~~text~~")
	fs.BoolVar(&s.style.PadTables, "pad-tables", false, "Pad table cells to equal column width")
	fs.BoolVar(&s.admonitions, "admonitions", true, "Render note/warning boxes as callouts")
	fs.StringVar(&s.style.BaseURL, "base-url", "", "Resolve relative links and images against this URL")
	fs.Var(&s.maxInputBytes, "max-input-bytes", "Reject input larger than this (default 10MiB)")
}

func addContentFlags(fs *pflag.FlagSet, s *settings, noiseDefault bool) {
	fs.StringVar(&s.style.ContentSelector, "content-selector", "", "CSS selector for the main content container")
	fs.StringVar(&s.style.ExcludeSelector, "exclude-selector", "", "CSS selector to remove before converting")
	fs.BoolVar(&s.style.AutoDetect, "auto-detect", false, "Pick the best scoring content container")
	fs.BoolVar(&s.removeNoise, "remove-noise", noiseDefault, "Remove script, style, nav, footer, header, aside and form")
}

func addOutputFlags(fs *pflag.FlagSet, s *settings) {
	fs.StringVarP(&s.style.OutputDir, "output-dir", "o", "", "Write content.md, content.json and index.jsonl here instead of stdout")
	fs.BoolVar(&s.splitSections, "split-sections", false, "Also write one file per section (requires --output-dir)")
	fs.BoolVar(&s.strict, "strict", false, "Fail if completeness checks report issues")
	fs.StringArrayVar(&s.hooks, "hook", nil, "Hook to run: "+strings.Join(app.HookNames(), "|"))
	fs.StringArrayVar(&s.postCommands, "post-cmd", nil, "Shell command to run in the output directory after writing")
	fs.Var(&s.chunkBytes, "max-bytes", "Split content.md into parts of at most this size")
	fs.IntVar(&s.chunkChars, "max-chars", 0, "Split content.md into parts of at most this many characters")
	fs.IntVar(&s.chunkTokens, "max-tokens", 0, "Split content.md into parts of at most this many estimated tokens")
}

func addBatchFlags(fs *pflag.FlagSet, s *settings) {
	fs.BoolVar(&s.frontmatter, "frontmatter", true, "Prefix each document with YAML frontmatter")
	fs.Var(&s.maxOutputBytes, "max-output-bytes", "Roll the output file over at this size (default 2MiB)")
}

func loadConfig(path string) (config.Config, string, error) {
	if path == "" {
		found, ok := config.Discover()
		if !ok {
			return config.Config{}, "", nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	return cfg, path, nil
}

// applyConfigDefaults returns the file config with every flag the user set
// explicitly laid over it.
func applyConfigDefaults(fs *pflag.FlagSet, s *settings, file config.Config) config.Config {
	out := file
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	str := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}

	str("heading-style", &out.HeadingStyle, s.style.HeadingStyle)
	str("bullet", &out.BulletMarker, s.style.BulletMarker)
	str("ordered-marker", &out.OrderedMarker, s.style.OrderedMarker)
	str("code-block-style", &out.CodeBlockStyle, s.style.CodeBlockStyle)
	str("fence", &out.Fence, s.style.Fence)
	str("em-delimiter", &out.EmDelimiter, s.style.EmDelimiter)
	str("strong-delimiter", &out.StrongDelimiter, s.style.StrongDelimiter)
	str("link-style", &out.LinkStyle, s.style.LinkStyle)
	str("hr", &out.HorizontalRule, s.style.HorizontalRule)
	str("line-break", &out.LineBreak, s.style.LineBreak)
	str("base-url", &out.BaseURL, s.style.BaseURL)
	str("content-selector", &out.ContentSelector, s.style.ContentSelector)
	str("exclude-selector", &out.ExcludeSelector, s.style.ExcludeSelector)
	str("output-dir", &out.OutputDir, s.style.OutputDir)
	str("addr", &out.Addr, s.style.Addr)
	str("log-level", &out.LogLevel, s.logLevel)
	str("log-format", &out.LogFormat, s.logFormat)

	if changed("list-indent") {
		out.ListIndent = s.style.ListIndent
	}
	if changed("pad-tables") {
		out.PadTables = s.style.PadTables
	}
	if changed("auto-detect") {
		out.AutoDetect = s.style.AutoDetect
	}
	if changed("strikethrough") {
		out.Strikethrough = boolPtr(s.strikethrough)
	}
	if changed("admonitions") {
		out.Admonitions = boolPtr(s.admonitions)
	}
	if changed("remove-noise") {
		out.RemoveNoise = boolPtr(s.removeNoise)
	}
	if changed("frontmatter") {
		out.Frontmatter = boolPtr(s.frontmatter)
	}
	if changed("max-input-bytes") {
		out.MaxInputBytes = s.maxInputBytes.Value
	}
	if changed("max-output-bytes") {
		out.MaxOutputBytes = int(s.maxOutputBytes.Value)
	}

	// A selector on the command line wins over auto-detect from the file.
	if changed("content-selector") && !changed("auto-detect") {
		out.AutoDetect = false
	}
	return out
}

func boolPtr(v bool) *bool {
	return &v
}

// resolveConfig loads the config file and merges the command's flags. Any
// config problem becomes a usage error.
func resolveConfig(cmd *cobra.Command, s *settings) (config.Config, error) {
	file, path, err := loadConfig(s.configPath)
	if err != nil {
		return config.Config{}, usageError(err)
	}
	cfg := applyConfigDefaults(cmd.Flags(), s, file)
	if err := cfg.Validate(); err != nil {
		if path != "" {
			err = fmt.Errorf("config %s: %w", path, err)
		}
		return config.Config{}, usageError(err)
	}
	return cfg, nil
}

// buildOptions maps the merged config and the per-run flags onto app
// options. noiseDefault applies when neither flag nor file decided.
func buildOptions(s *settings, cfg config.Config, noiseDefault bool) app.Options {
	removeNoise := noiseDefault
	if cfg.RemoveNoise != nil {
		removeNoise = *cfg.RemoveNoise
	}
	return app.Options{
		OutputDir:       cfg.OutputDir,
		ContentSelector: cfg.ContentSelector,
		ExcludeSelector: cfg.ExcludeSelector,
		AutoDetect:      cfg.AutoDetect,
		RemoveNoise:     removeNoise,
		SplitSections:   s.splitSections,
		Verify:          s.verify,
		Strict:          s.strict,
		Limits: output.ChunkLimits{
			MaxBytes:  int(s.chunkBytes.Value),
			MaxChars:  s.chunkChars,
			MaxTokens: s.chunkTokens,
		},
		Hooks:        s.hooks,
		PostCommands: s.postCommands,
	}
}
