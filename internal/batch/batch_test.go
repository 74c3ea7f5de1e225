package batch_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go_mdconv/internal/app"
	"go_mdconv/internal/batch"
	"go_mdconv/internal/markdown"
	"go_mdconv/internal/output"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newRunner(t *testing.T, out io.Writer) *batch.Runner {
	t.Helper()
	conv, err := markdown.NewConverter(markdown.DefaultStyle())
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return batch.New(app.New(conv, nil), nil, out)
}

func sampleInput(t *testing.T) string {
	t.Helper()
	in := filepath.Join(t.TempDir(), "site")
	if err := os.MkdirAll(filepath.Join(in, "nested.html"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, in, map[string]string{
		"b.html":     `<body><nav>menu</nav><p>Beta text</p></body>`,
		"a.htm":      `<html><head><title>Alpha</title></head><body><article><p>Alpha text</p></article><footer>f</footer></body></html>`,
		"empty.html": "   ",
		"notes.txt":  "<p>ignored</p>",
	})
	return in
}

func TestListHTML(t *testing.T) {
	in := sampleInput(t)
	names, err := batch.ListHTML(in)
	if err != nil {
		t.Fatalf("ListHTML: %v", err)
	}
	if got := strings.Join(names, ","); got != "a.htm,b.html,empty.html" {
		t.Fatalf("ListHTML = %s", got)
	}
}

func TestRunRollsAndReportsFailures(t *testing.T) {
	in := sampleInput(t)
	outDir := filepath.Join(t.TempDir(), "out")
	var printed bytes.Buffer

	summary, err := newRunner(t, &printed).Run(context.Background(), batch.Options{
		InputDir:       in,
		OutputDir:      outDir,
		MaxOutputBytes: 10,
		Frontmatter:    true,
		Convert:        app.Options{AutoDetect: true, RemoveNoise: true},
	})
	if !errors.Is(err, batch.ErrFailures) {
		t.Fatalf("expected ErrFailures, got %v", err)
	}
	if summary.Scanned != 3 || summary.Successful != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].File != "empty.html" {
		t.Fatalf("unexpected failures %+v", summary.Failures)
	}
	if len(summary.OutputFiles) != 2 {
		t.Fatalf("expected 2 rolled files, got %v", summary.OutputFiles)
	}

	first, err := os.ReadFile(filepath.Join(outDir, "site_output_1.md"))
	if err != nil {
		t.Fatalf("read first bundle: %v", err)
	}
	if want := "---\nsource: a.htm\ntitle: Alpha\n---\n\nAlpha text\n\n"; string(first) != want {
		t.Fatalf("first bundle = %q\nwant %q", first, want)
	}
	second, err := os.ReadFile(filepath.Join(outDir, "site_output_2.md"))
	if err != nil {
		t.Fatalf("read second bundle: %v", err)
	}
	if !strings.Contains(string(second), "title: No Title Found") || strings.Contains(string(second), "menu") {
		t.Fatalf("unexpected second bundle %q", second)
	}

	logData, err := os.ReadFile(filepath.Join(outDir, "run_site.log"))
	if err != nil || !strings.Contains(string(logData), "conversion failed") {
		t.Fatalf("unexpected run log %q, %v", logData, err)
	}
	if !strings.Contains(printed.String(), "JOB SUMMARY") {
		t.Fatalf("summary not printed: %q", printed.String())
	}
	saved, err := output.ReadJobSummary(outDir)
	if err != nil || saved.Failed != 1 {
		t.Fatalf("unexpected saved summary %+v, %v", saved, err)
	}
}

func TestRunSingleBundle(t *testing.T) {
	in := filepath.Join(t.TempDir(), "docs")
	if err := os.MkdirAll(in, 0755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, in, map[string]string{
		"1.html": "<h1>One</h1>",
		"2.html": "<h1>Two</h1>",
	})
	outDir := t.TempDir()
	summary, err := newRunner(t, nil).Run(context.Background(), batch.Options{
		InputDir:       in,
		OutputDir:      outDir,
		MaxOutputBytes: 1 << 20,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.OutputFiles) != 1 {
		t.Fatalf("expected one bundle, got %v", summary.OutputFiles)
	}
	data, err := os.ReadFile(summary.OutputFiles[0])
	if err != nil || string(data) != "# One\n\n# Two\n\n" {
		t.Fatalf("unexpected bundle %q, %v", data, err)
	}
}

func TestRunMissingInput(t *testing.T) {
	_, err := newRunner(t, nil).Run(context.Background(), batch.Options{
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
