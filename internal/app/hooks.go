package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"go_mdconv/internal/parse"
	"go_mdconv/internal/report"
)

type RenderedSection struct {
	Heading    string
	Level      int
	HeadingID  string
	ContentIDs []string
	Markdown   string
}

type Rendered struct {
	Markdown string
	Sections []RenderedSection
}

// Hook observes or vetoes a conversion at three points. Returning an error
// aborts the conversion.
type Hook interface {
	Name() string
	BeforeRender(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report) error
	AfterRender(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report, rendered *Rendered) error
	AfterWrite(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report, rendered Rendered, written WriteResult) error
}

// HookBase implements every Hook method as a no-op.
type HookBase struct{}

func (HookBase) BeforeRender(context.Context, Options, *parse.Document, *report.Report) error {
	return nil
}
func (HookBase) AfterRender(context.Context, Options, *parse.Document, *report.Report, *Rendered) error {
	return nil
}
func (HookBase) AfterWrite(context.Context, Options, *parse.Document, *report.Report, Rendered, WriteResult) error {
	return nil
}

type hookFactory func(opts Options) (Hook, error)

var hookRegistry = map[string]hookFactory{
	"strict-report": func(Options) (Hook, error) { return strictReportHook{}, nil },
	"exec":          func(Options) (Hook, error) { return execHook{}, nil },
}

// HookNames lists the registered hooks.
func HookNames() []string {
	names := make([]string, 0, len(hookRegistry))
	for name := range hookRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type hookChain []Hook

func buildHooks(opts Options) (hookChain, error) {
	out := make(hookChain, 0, len(opts.Hooks))
	for _, name := range opts.Hooks {
		factory, ok := hookRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown pipeline hook %q (available: %s)", name, strings.Join(HookNames(), ", "))
		}
		h, err := factory(opts)
		if err != nil {
			return nil, fmt.Errorf("init hook %q: %w", name, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (c hookChain) beforeRender(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report) error {
	for _, h := range c {
		if err := h.BeforeRender(ctx, opts, doc, rep); err != nil {
			return fmt.Errorf("hook %q failed (before render): %w", h.Name(), err)
		}
	}
	return nil
}

func (c hookChain) afterRender(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report, rendered *Rendered) error {
	for _, h := range c {
		if err := h.AfterRender(ctx, opts, doc, rep, rendered); err != nil {
			return fmt.Errorf("hook %q failed (after render): %w", h.Name(), err)
		}
	}
	return nil
}

func (c hookChain) afterWrite(ctx context.Context, opts Options, doc *parse.Document, rep *report.Report, rendered Rendered, written WriteResult) error {
	for _, h := range c {
		if err := h.AfterWrite(ctx, opts, doc, rep, rendered, written); err != nil {
			return fmt.Errorf("hook %q failed (after write): %w", h.Name(), err)
		}
	}
	return nil
}

func dedupePreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, raw := range items {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

type strictReportHook struct {
	HookBase
}

func (strictReportHook) Name() string { return "strict-report" }

func (strictReportHook) BeforeRender(_ context.Context, _ Options, _ *parse.Document, rep *report.Report) error {
	if rep == nil {
		return errors.New("missing report")
	}
	if rep.HasIssues() {
		return errors.New("completeness checks failed")
	}
	return nil
}

// execHook runs the post commands in the output directory once the files
// are written. Command output goes to stderr so stdout stays Markdown.
type execHook struct {
	HookBase
}

func (execHook) Name() string { return "exec" }

func (execHook) AfterWrite(ctx context.Context, opts Options, _ *parse.Document, _ *report.Report, _ Rendered, written WriteResult) error {
	for _, raw := range opts.PostCommands {
		command := strings.TrimSpace(raw)
		if command == "" || strings.HasPrefix(command, "#") {
			continue
		}
		cmd := commandForShell(ctx, command)
		cmd.Env = append(os.Environ(),
			"GO_MDCONV_SOURCE="+opts.Source,
			"GO_MDCONV_OUTPUT_DIR="+written.OutputDir,
			"GO_MDCONV_MARKDOWN_PATH="+written.MarkdownPath,
			"GO_MDCONV_JSON_PATH="+written.JSONPath,
			"GO_MDCONV_INDEX_PATH="+written.IndexPath,
		)
		if written.OutputDir != "" {
			cmd.Dir = written.OutputDir
		}
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("post command failed %q: %w", command, err)
		}
	}
	return nil
}

func commandForShell(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}
