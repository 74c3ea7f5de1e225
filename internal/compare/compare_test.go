package compare_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go_mdconv/internal/compare"
	"go_mdconv/internal/markdown"
)

func fixed(name, out string, err error) compare.Engine {
	return compare.Engine{Name: name, Convert: func(string) (string, error) { return out, err }}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "# A\n\ntext\n", "# A\n\ntext\n", 1},
		{"both empty", "", "", 1},
		{"disjoint", "a\nb\n", "c\nd\n", 0},
		{"half", "a\nb\n", "a\nc\n", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compare.Similarity(tt.a, tt.b); got != tt.want {
				t.Fatalf("Similarity=%v want %v", got, tt.want)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	if n := compare.CountLines("a\n\nb\n"); n != 3 {
		t.Fatalf("got %d", n)
	}
	if n := compare.CountLines("\n"); n != 0 {
		t.Fatalf("got %d", n)
	}
}

func TestRunRecordsFailures(t *testing.T) {
	res := compare.Run("<p>x</p>", []compare.Engine{
		fixed("base", "x\ny\n", nil),
		fixed("broken", "", errors.New("boom")),
		fixed("close", "x\nz\n", nil),
	})
	if len(res.Outputs) != 3 || !res.Failed() {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Outputs[0].Similarity != 1 || res.Outputs[0].Lines != 2 || res.Outputs[0].Bytes != 4 {
		t.Fatalf("baseline %+v", res.Outputs[0])
	}
	if res.Outputs[1].Err == nil || res.Outputs[1].Similarity != 0 {
		t.Fatalf("broken %+v", res.Outputs[1])
	}
	if res.Outputs[2].Similarity != 0.5 {
		t.Fatalf("close %+v", res.Outputs[2])
	}

	var buf bytes.Buffer
	res.Print(&buf)
	out := buf.String()
	for _, want := range []string{"=== ENGINE COMPARISON ===", "1. BASE (2 lines, 4 bytes, similarity 1.00)", "2. BROKEN (error)", "Error: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}

func TestSaveSkipsFailures(t *testing.T) {
	res := compare.Run("", []compare.Engine{
		fixed(compare.EngineSelf, "a\n", nil),
		fixed(compare.EngineV2, "", errors.New("boom")),
	})
	dir := filepath.Join(t.TempDir(), "cmp")
	paths, err := res.Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "comparison-go-mdconv.md" {
		t.Fatalf("paths %v", paths)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil || string(data) != "a\n" {
		t.Fatalf("read %q %v", data, err)
	}
}

func TestFileName(t *testing.T) {
	if got := compare.FileName(compare.EngineV1); got != "comparison-html-to-markdown-v1.md" {
		t.Fatalf("got %q", got)
	}
}

func TestDiff(t *testing.T) {
	d, err := compare.Diff(compare.Output{Engine: "a", Markdown: "x\ny\n"}, compare.Output{Engine: "b", Markdown: "x\nz\n"})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- a", "+++ b", "-y", "+z"} {
		if !strings.Contains(d, want) {
			t.Fatalf("missing %q in %q", want, d)
		}
	}
}

func TestSampleThroughAllEngines(t *testing.T) {
	conv, err := markdown.NewConverter(markdown.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	res := compare.Run(compare.Sample, compare.Engines(conv))
	if res.Failed() {
		t.Fatalf("engine failed: %+v", res.Outputs)
	}
	names := []string{compare.EngineSelf, compare.EngineV1, compare.EngineV2}
	for i, o := range res.Outputs {
		if o.Engine != names[i] {
			t.Fatalf("engine %d is %q", i, o.Engine)
		}
		if !strings.Contains(o.Markdown, "Main Title") || !strings.Contains(o.Markdown, "Cell 2") {
			t.Fatalf("%s output missing content:\n%s", o.Engine, o.Markdown)
		}
		if o.Similarity <= 0 || o.Similarity > 1 {
			t.Fatalf("%s similarity %v", o.Engine, o.Similarity)
		}
	}
}
