// Package batch converts every HTML file of a directory into size-rolled
// Markdown bundles, one file at a time, and reports a job summary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go_mdconv/internal/app"
	"go_mdconv/internal/logging"
	"go_mdconv/internal/output"
)

const noTitle = "No Title Found"

// ErrFailures is returned when at least one file could not be converted.
var ErrFailures = errors.New("one or more files failed to convert")

type Options struct {
	InputDir       string
	OutputDir      string
	MaxOutputBytes int
	Frontmatter    bool
	// Convert is applied to every file. Source and OutputDir are set per file.
	Convert app.Options
}

type Runner struct {
	app *app.App
	log *slog.Logger
	out io.Writer
}

// New returns a runner that converts with a, logs to log and prints the
// summary to out.
func New(a *app.App, log *slog.Logger, out io.Writer) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{app: a, log: log, out: out}
}

// ListHTML returns the sorted names of the .html and .htm files in dir.
func ListHTML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".html", ".htm":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run converts opts.InputDir into opts.OutputDir. The summary is returned,
// printed and written to summary.json even when files failed; the error is
// ErrFailures in that case.
func (r *Runner) Run(ctx context.Context, opts Options) (output.JobSummary, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return output.JobSummary{}, fmt.Errorf("input directory %q not found", opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return output.JobSummary{}, err
	}

	folder := filepath.Base(filepath.Clean(opts.InputDir))
	logPath := filepath.Join(opts.OutputDir, "run_"+folder+".log")
	logFile, err := os.Create(logPath)
	if err != nil {
		return output.JobSummary{}, fmt.Errorf("create run log: %w", err)
	}
	defer logFile.Close()
	log := logging.Tee(r.log, logging.New(logFile, "debug", "text"))

	summary := output.JobSummary{
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		LogPath:   logPath,
		StartedAt: time.Now().UTC(),
	}

	files, err := ListHTML(opts.InputDir)
	if err != nil {
		return output.JobSummary{}, err
	}
	summary.Scanned = len(files)
	if len(files) == 0 {
		log.Warn("no HTML files found", "dir", opts.InputDir)
	} else {
		log.Info("starting job", "files", len(files), "dir", opts.InputDir)
	}

	roller := output.NewRollingWriter(opts.OutputDir, folder, opts.MaxOutputBytes)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("interrupted, stopping", "remaining", summary.Scanned-summary.Successful-summary.Failed)
			break
		}
		path, err := r.convertFile(ctx, log, roller, opts, name)
		if err != nil {
			log.Error("conversion failed", "file", name, "err", err)
			summary.Failed++
			summary.Failures = append(summary.Failures, output.FileFailure{File: name, Error: err.Error()})
			continue
		}
		log.Info("converted", "file", name, "output", filepath.Base(path))
		summary.Successful++
	}
	if err := roller.Close(); err != nil {
		return summary, err
	}

	summary.OutputFiles = roller.Files()
	summary.Duration = time.Since(summary.StartedAt).Round(time.Millisecond).String()
	if _, err := output.WriteJobSummary(opts.OutputDir, summary); err != nil {
		return summary, err
	}
	text := summary.Text()
	fmt.Fprint(r.out, text)
	log.Info("job finished", "successful", summary.Successful, "failed", summary.Failed, "output_files", len(summary.OutputFiles))

	if summary.Failed > 0 {
		return summary, ErrFailures
	}
	return summary, nil
}

func (r *Runner) convertFile(ctx context.Context, log *slog.Logger, roller *output.RollingWriter, opts Options, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(opts.InputDir, name))
	if err != nil {
		return "", err
	}
	// Undecodable bytes are dropped rather than failing the whole file.
	htmlText := strings.ToValidUTF8(string(data), "")

	convOpts := opts.Convert
	convOpts.Source = name
	convOpts.OutputDir = ""
	convOpts.SplitSections = false
	convOpts.PostCommands = nil
	res, err := r.app.Convert(ctx, htmlText, convOpts)
	if err != nil {
		return "", err
	}
	if res.Candidate != nil {
		log.Debug("content candidate", "file", name, "element", res.Candidate.Label(), "score", res.Candidate.Score, "fallback", res.FellBack)
	}
	if strings.TrimSpace(res.Markdown) == "" {
		return "", errors.New("conversion produced empty output")
	}

	var fm *output.Frontmatter
	if opts.Frontmatter {
		title := res.Title
		if title == "" {
			title = noTitle
		}
		fm = &output.Frontmatter{Source: name, Title: title}
	}
	doc, err := output.Document(res.Markdown, fm)
	if err != nil {
		return "", err
	}
	return roller.Write(doc)
}
