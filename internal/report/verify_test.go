package report_test

import (
	"testing"

	"go_mdconv/internal/dom"
	"go_mdconv/internal/markdown"
	"go_mdconv/internal/report"
)

const structured = `<h1>Title</h1>
<ul><li>a<ul><li>b</li></ul></li></ul>
<table><tr><th>x</th></tr><tr><td><h2>in cell</h2></td></tr></table>
<pre><code class="language-go">fmt.Println()</code></pre>
<h3></h3>`

func TestCountHTML(t *testing.T) {
	root, err := dom.Parse(structured)
	if err != nil {
		t.Fatal(err)
	}
	got := report.CountHTML(root)
	want := report.Counts{Headings: 1, Lists: 2, Tables: 1, CodeBlocks: 1}
	if got != want {
		t.Fatalf("CountHTML = %+v, want %+v", got, want)
	}
}

func TestCountMarkdown(t *testing.T) {
	md := "# Title\n\nSub\n---\n\n- a\n    - b\n\n| x |\n| --- |\n| y |\n\n```go\nx\n```\n\n    indented\n"
	got := report.CountMarkdown(md)
	want := report.Counts{Headings: 2, Lists: 2, Tables: 1, CodeBlocks: 2}
	if got != want {
		t.Fatalf("CountMarkdown = %+v, want %+v", got, want)
	}
}

func TestVerifyConvertedOutput(t *testing.T) {
	root, err := dom.Parse(structured)
	if err != nil {
		t.Fatal(err)
	}
	conv, err := markdown.NewConverter(markdown.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	cmp := report.Verify(root, conv.ConvertNode(root))
	if !cmp.OK() {
		t.Fatalf("expected matching structure, got %+v", cmp)
	}
}

func TestVerifyReportsDrift(t *testing.T) {
	root, err := dom.Parse(`<h1>a</h1><h2>b</h2>`)
	if err != nil {
		t.Fatal(err)
	}
	cmp := report.Verify(root, "# a\n")
	if cmp.OK() || len(cmp.Mismatches) != 1 {
		t.Fatalf("expected one mismatch, got %+v", cmp)
	}
	if got := cmp.Mismatches[0].String(); got != "headings: html=2 markdown=1" {
		t.Fatalf("unexpected mismatch %q", got)
	}
	rep := report.Report{Structure: &cmp}
	if !rep.HasIssues() {
		t.Fatal("structural drift should be an issue")
	}
}
