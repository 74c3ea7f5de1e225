// Package app runs the single-document pipeline shared by the convert and
// verify commands, the batch job and the HTTP service: prepare the page,
// convert it, check it, and optionally write the output set.
package app

import (
	"context"
	"log/slog"
	"strings"

	"go_mdconv/internal/dom"
	"go_mdconv/internal/logging"
	"go_mdconv/internal/markdown"
	"go_mdconv/internal/parse"
	"go_mdconv/internal/report"
)

type App struct {
	conv *markdown.Converter
	log  *slog.Logger
}

func New(conv *markdown.Converter, log *slog.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{conv: conv, log: log}
}

// Converter returns the converter the app renders with.
func (a *App) Converter() *markdown.Converter {
	return a.conv
}

// Result is everything one conversion produced.
type Result struct {
	Source    string
	Title     string
	Markdown  string
	Candidate *parse.Candidate
	FellBack  bool
	Document  *parse.Document
	Report    report.Report
	Sections  []RenderedSection
	Written   WriteResult
}

// Convert runs the pipeline on htmlText. Blank input yields an empty result
// and writes nothing.
func (a *App) Convert(ctx context.Context, htmlText string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	opts, err := normalizeOptions(opts)
	if err != nil {
		return Result{}, err
	}
	hooks, err := buildHooks(opts)
	if err != nil {
		return Result{}, err
	}

	res := Result{Source: opts.Source}
	if strings.TrimSpace(strings.TrimPrefix(htmlText, "\uFEFF")) == "" {
		a.log.Debug("empty input", "source", opts.Source)
		return res, nil
	}

	prep, err := Prepare(htmlText, opts)
	if err != nil {
		return Result{}, err
	}
	res.Title = prep.Title
	res.Candidate = prep.Candidate
	res.FellBack = prep.FellBack
	if opts.AutoDetect {
		if prep.FellBack {
			a.log.Warn("no strong content candidate, using body", "source", opts.Source)
		} else if prep.Candidate != nil {
			a.log.Debug("content candidate", "source", opts.Source, "element", prep.Candidate.Label(), "score", prep.Candidate.Score)
		}
	}

	root := dom.FromSelection(prep.Doc.Selection)
	res.Markdown = a.conv.ConvertNode(root)

	res.Document, err = parse.Parse(prep.Doc)
	if err != nil {
		return Result{}, err
	}
	res.Report = report.Analyze(res.Document)
	if opts.Verify {
		cmp := report.Verify(root, res.Markdown)
		res.Report.Structure = &cmp
	}

	if err := hooks.beforeRender(ctx, opts, res.Document, &res.Report); err != nil {
		return Result{}, err
	}

	rendered := Rendered{Markdown: res.Markdown}
	if opts.OutputDir != "" {
		rendered.Sections, err = renderSections(a.conv, res.Document.Sections)
		if err != nil {
			return Result{}, err
		}
	}
	if err := hooks.afterRender(ctx, opts, res.Document, &res.Report, &rendered); err != nil {
		return Result{}, err
	}
	res.Markdown = rendered.Markdown
	res.Sections = rendered.Sections

	if opts.OutputDir != "" {
		res.Written, err = writeOutputs(opts, res, rendered)
		if err != nil {
			return Result{}, err
		}
		a.log.Info("wrote outputs", "source", opts.Source, "dir", res.Written.OutputDir, "markdown", res.Written.MarkdownPath)
		if err := hooks.afterWrite(ctx, opts, res.Document, &res.Report, rendered, res.Written); err != nil {
			return Result{}, err
		}
	}

	a.log.Debug("converted", "source", opts.Source, "bytes", len(res.Markdown), "sections", len(res.Document.Sections))
	return res, nil
}
