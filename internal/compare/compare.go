// Package compare runs the same HTML through go_mdconv and the
// html-to-markdown engines and reports how far their outputs drift apart.
package compare

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/pmezard/go-difflib/difflib"

	"go_mdconv/internal/markdown"
)

const (
	EngineSelf = "go_mdconv"
	EngineV1   = "html-to-markdown/v1"
	EngineV2   = "html-to-markdown/v2"
)

// Engine is one HTML to Markdown implementation under comparison.
type Engine struct {
	Name    string
	Convert func(html string) (string, error)
}

// Output is one engine's result. Similarity is measured against the first
// engine's output.
type Output struct {
	Engine     string
	Markdown   string
	Err        error
	Lines      int
	Bytes      int
	Similarity float64
}

type Result struct {
	Outputs []Output
}

// Engines returns go_mdconv first, followed by the v1 and v2 reference
// engines with their GitHub flavoured table support enabled.
func Engines(conv *markdown.Converter) []Engine {
	v1 := md.NewConverter("", true, nil)
	v1.Use(plugin.GitHubFlavored())

	v2 := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	return []Engine{
		{Name: EngineSelf, Convert: conv.Convert},
		{Name: EngineV1, Convert: v1.ConvertString},
		{Name: EngineV2, Convert: func(html string) (string, error) {
			return v2.ConvertString(html)
		}},
	}
}

// Run converts html with every engine. A failing engine is recorded, not
// fatal.
func Run(html string, engines []Engine) Result {
	var res Result
	var baseline string
	for i, e := range engines {
		out, err := e.Convert(html)
		o := Output{Engine: e.Name, Err: err}
		if err == nil {
			o.Markdown = out
			o.Lines = CountLines(out)
			o.Bytes = len(out)
		}
		if i == 0 {
			baseline = o.Markdown
		}
		o.Similarity = Similarity(baseline, o.Markdown)
		res.Outputs = append(res.Outputs, o)
	}
	return res
}

// Failed reports whether any engine returned an error.
func (r Result) Failed() bool {
	for _, o := range r.Outputs {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Similarity is the line-level matching ratio of two documents, 1.0 when
// they are identical.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitLines(a), splitLines(b))
	return m.Ratio()
}

// Diff renders a unified diff of two outputs.
func Diff(from, to Output) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(from.Markdown),
		B:        difflib.SplitLines(to.Markdown),
		FromFile: from.Engine,
		ToFile:   to.Engine,
		Context:  2,
	})
}

func CountLines(s string) int {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Print writes every output under a numbered header.
func (r Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== ENGINE COMPARISON ===")
	for i, o := range r.Outputs {
		fmt.Fprintf(w, "\n%d. %s", i+1, strings.ToUpper(o.Engine))
		if o.Err != nil {
			fmt.Fprintf(w, " (error)\n%s\n", strings.Repeat("-", 40))
			fmt.Fprintf(w, "Error: %v\n", o.Err)
			continue
		}
		fmt.Fprintf(w, " (%d lines, %d bytes, similarity %.2f)\n", o.Lines, o.Bytes, o.Similarity)
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintln(w, strings.TrimRight(o.Markdown, "\n"))
	}
}

// Save writes comparison-<engine>.md per successful output into dir.
func (r Result) Save(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, o := range r.Outputs {
		if o.Err != nil {
			continue
		}
		path := filepath.Join(dir, FileName(o.Engine))
		if err := os.WriteFile(path, []byte(o.Markdown), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName maps an engine name to its comparison file,
// e.g. html-to-markdown/v2 to comparison-html-to-markdown-v2.md.
func FileName(engine string) string {
	name := strings.NewReplacer("/", "-", "_", "-", " ", "-").Replace(strings.ToLower(engine))
	return "comparison-" + name + ".md"
}
