package app

import (
	"errors"
	"strings"

	"go_mdconv/internal/output"
)

// Options controls one document conversion.
type Options struct {
	// Source names the input in logs, frontmatter, index records and hook
	// environments. It is not read.
	Source          string
	OutputDir       string
	ContentSelector string
	ExcludeSelector string
	AutoDetect      bool
	RemoveNoise     bool
	SplitSections   bool
	Verify          bool
	Strict          bool
	Limits          output.ChunkLimits
	Hooks           []string
	PostCommands    []string
}

func normalizeOptions(opts Options) (Options, error) {
	opts.Source = strings.TrimSpace(opts.Source)
	opts.OutputDir = strings.TrimSpace(opts.OutputDir)
	opts.ContentSelector = strings.TrimSpace(opts.ContentSelector)
	opts.ExcludeSelector = strings.TrimSpace(opts.ExcludeSelector)
	if opts.Source == "" {
		opts.Source = "stdin"
	}
	if opts.ContentSelector != "" && opts.AutoDetect {
		return opts, errors.New("content selector and auto-detect are mutually exclusive")
	}
	if opts.SplitSections && opts.OutputDir == "" {
		return opts, errors.New("split sections requires an output directory")
	}
	if opts.Limits.MaxBytes < 0 || opts.Limits.MaxChars < 0 || opts.Limits.MaxTokens < 0 {
		return opts, errors.New("chunk limits must not be negative")
	}
	if opts.Strict {
		opts.Hooks = append([]string{"strict-report"}, opts.Hooks...)
	}
	if len(opts.PostCommands) > 0 {
		opts.Hooks = append(opts.Hooks, "exec")
	}
	opts.Hooks = dedupePreserveOrder(opts.Hooks)
	return opts, nil
}
