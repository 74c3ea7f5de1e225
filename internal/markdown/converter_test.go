package markdown_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"go_mdconv/internal/converr"
	"go_mdconv/internal/dom"
	"go_mdconv/internal/markdown"
)

func convert(t *testing.T, style markdown.Style, html string, plugins ...markdown.Plugin) string {
	t.Helper()
	conv, err := markdown.NewConverter(style, plugins...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	out, err := conv.Convert(html)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return out
}

func TestConvertDefaults(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain paragraph", `<p>Hello world</p>`, "Hello world\n"},
		{"empty document", ``, ""},
		{"only discarded", `<script>alert(1)</script><style>p{}</style>`, ""},
		{"nested emphasis alternates", `<p><em>a<strong>b</strong>c</em></p>`, "_a**b**c_\n"},
		{"same emphasis nested", `<p><em>a<em>b</em>c</em></p>`, "_a*b*c_\n"},
		{"whitespace moves outside emphasis", `<p>a<em> b </em>c</p>`, "a _b_ c\n"},
		{"empty emphasis", `<p>a<strong></strong>b</p>`, "ab\n"},
		{"three item list", `<ul><li>a</li><li>b</li><li>c</li></ul>`, "- a\n- b\n- c\n"},
		{"code span with backticks", "<p><code>`code`</code></p>", "`` `code` ``\n"},
		{
			"simple table",
			`<table><tr><th>Column 1</th><th>Column 2</th></tr><tr><td>Cell 1</td><td>Cell 2</td></tr></table>`,
			"| Column 1 | Column 2 |\n| --- | --- |\n| Cell 1 | Cell 2 |\n",
		},
		{"blank lines between blocks", "<h1>Title</h1>\n\n\n   <p>one</p>   \n<p>two</p>", "# Title\n\none\n\ntwo\n"},
		{"nested list", `<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>`, "- a\n    - b\n- c\n"},
		{"ordered start and value", `<ol start="3"><li>x</li><li value="7">y</li><li>z</li></ol>`, "3. x\n7. y\n8. z\n"},
		{"paragraphs inside item", `<ul><li><p>a</p><p>b</p></li></ul>`, "- a\n\n    b\n"},
		{"stray list child attaches", `<ul><li>a</li><p>more</p></ul>`, "- a\n\n    more\n"},
		{"nested blockquote", `<blockquote><p>a</p><blockquote><p>b</p></blockquote></blockquote>`, "> a\n>\n>> b\n"},
		{"fence longer than content run", "<pre><code>a\n```\nb</code></pre>", "````\na\n```\nb\n````\n"},
		{"fence with language", `<pre><code class="language-golang">x := 1</code></pre>`, "```go\nx := 1\n```\n"},
		{"pre keeps whitespace", "<pre>  a\n    b</pre>", "```\n  a\n    b\n```\n"},
		{"escapes", `<p>1. not a list *star* _u_ [x]</p>`, "1\\. not a list \\*star\\* \\_u\\_ \\[x\\]\n"},
		{"leading hash", `<p># not heading</p>`, "\\# not heading\n"},
		{"link with title", `<p><a href="https://example.com" title="Ex">site</a></p>`, "[site](https://example.com \"Ex\")\n"},
		{"autolink", `<p><a href="https://example.com">https://example.com</a></p>`, "<https://example.com>\n"},
		{"destination with space", `<p><a href="/a b">x</a></p>`, "[x](</a b>)\n"},
		{"link without href", `<p><a name="top">Top</a> text</p>`, "Top text\n"},
		{"bang before link", `<p>Hello!<a href="/x">y</a></p>`, "Hello\\![y](/x)\n"},
		{"image", `<p><img src="/i.png" alt="A pic" title="T"></p>`, "![A pic](/i.png \"T\")\n"},
		{"line breaks", `<p>a<br>b<br></p>`, "a  \nb\n"},
		{"horizontal rule", `<p>a</p><hr><p>b</p>`, "a\n\n---\n\nb\n"},
		{"strikethrough", `<p><del>old</del> new</p>`, "~~old~~ new\n"},
		{"task list", `<ul><li><input type="checkbox" checked> done</li><li><input type="checkbox"> todo</li></ul>`, "- [x] done\n- [ ] todo\n"},
		{"definition list", `<dl><dt>Term</dt><dd>Def</dd></dl>`, "**Term**\n: Def\n"},
		{"details", `<details><summary>More</summary><p>Body</p></details>`, "**More**\n\nBody\n"},
		{"unknown tags", `<custom-card><p>x</p></custom-card><x-tag>y</x-tag>`, "x\n\ny\n"},
		{"mixed container", `<div>Some <b>bold</b> text<p>para</p>tail</div>`, "Some **bold** text\n\npara\n\ntail\n"},
		{"empty heading", `<h2> </h2><p>x</p>`, "x\n"},
		{"heading on one line", "<h2>Two<br>lines</h2>", "## Two lines\n"},
		{
			"aligned table",
			`<table><tr><th align="left">L</th><th style="text-align: center">C</th><th align="right">R</th></tr><tr><td>1</td><td>a|b</td><td>3</td></tr></table>`,
			"| L | C | R |\n| :--- | :---: | ---: |\n| 1 | a\\|b | 3 |\n",
		},
		{
			"table caption",
			`<table><caption>Totals</caption><tr><th>k</th></tr><tr><td>v</td></tr></table>`,
			"Totals\n\n| k |\n| --- |\n| v |\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, markdown.DefaultStyle(), tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestConvertStyles(t *testing.T) {
	setext := markdown.DefaultStyle()
	setext.HeadingStyle = markdown.HeadingSetext

	indented := markdown.DefaultStyle()
	indented.CodeBlockStyle = markdown.CodeBlockIndented

	tilde := markdown.DefaultStyle()
	tilde.Fence = "~~~"

	backslash := markdown.DefaultStyle()
	backslash.LineBreak = markdown.LineBreakBackslash

	noStrike := markdown.DefaultStyle()
	noStrike.Strikethrough = false

	stars := markdown.DefaultStyle()
	stars.EmDelimiter = "*"
	stars.StrongDelimiter = "__"
	stars.BulletMarker = "*"
	stars.OrderedMarker = ")"
	stars.HorizontalRule = "* * *"

	tests := []struct {
		name  string
		style markdown.Style
		html  string
		want  string
	}{
		{"setext falls back for h3", setext, `<h1>Title</h1><h2>Sub</h2><h3>Deep</h3>`, "Title\n=====\n\nSub\n---\n\n### Deep\n"},
		{"indented code", indented, "<pre>line1\nline2</pre>", "    line1\n    line2\n"},
		{"tilde fence", tilde, "<pre><code>code</code></pre>", "~~~\ncode\n~~~\n"},
		{"backslash break", backslash, `<p>a<br>b</p>`, "a\\\nb\n"},
		{"strikethrough off", noStrike, `<p><del>old</del> new</p>`, "old new\n"},
		{"custom markers", stars, `<ul><li><em>a</em></li></ul><ol><li><strong>b</strong></li></ol><hr>`, "* *a*\n\n1) __b__\n\n* * *\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, tt.style, tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestReferenceLinksAreNumberedPerDocument(t *testing.T) {
	style := markdown.DefaultStyle()
	style.LinkStyle = markdown.LinkReferenced
	html := `<h1>One</h1><p><a href="/a">one</a> <a href="/b" title="B">two</a></p><h1>Two</h1><p><a href="/a">again</a></p>`
	want := "# One\n\n[one][1] [two][2]\n\n# Two\n\n[again][1]\n\n[1]: /a\n[2]: /b \"B\"\n"
	if got := convert(t, style, html); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestNewConverterRejectsInvalidStyle(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*markdown.Style)
		option string
	}{
		{"bullet", func(s *markdown.Style) { s.BulletMarker = "#" }, "bullet_marker"},
		{"heading", func(s *markdown.Style) { s.HeadingStyle = "fancy" }, "heading_style"},
		{"rule", func(s *markdown.Style) { s.HorizontalRule = "-*-" }, "horizontal_rule"},
		{"indent", func(s *markdown.Style) { s.ListIndent = 9 }, "list_indent"},
		{"fence", func(s *markdown.Style) { s.Fence = "``" }, "fence"},
		{"link", func(s *markdown.Style) { s.LinkStyle = "footnote" }, "link_style"},
		{"em", func(s *markdown.Style) { s.EmDelimiter = "~" }, "em_delimiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := markdown.DefaultStyle()
			tt.mutate(&style)
			_, err := markdown.NewConverter(style)
			if !converr.Is(err, converr.TypeConfig) {
				t.Fatalf("expected CONFIG_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.option) {
				t.Fatalf("expected option %q in %q", tt.option, err.Error())
			}
		})
	}
}

func TestZeroStyleUsesDefaults(t *testing.T) {
	out, err := markdown.Convert(`<h1>T</h1><ul><li>x</li></ul>`, markdown.Style{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != "# T\n\n- x\n" {
		t.Fatalf("got %q", out)
	}
}

func TestConvertRejectsInvalidUTF8(t *testing.T) {
	_, err := markdown.Convert("<p>\xff</p>", markdown.DefaultStyle())
	if !converr.Is(err, converr.TypeParse) {
		t.Fatalf("expected PARSE_ERROR, got %v", err)
	}
}

func TestConvertNode(t *testing.T) {
	conv, err := markdown.NewConverter(markdown.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	root := dom.NewElement("div", nil,
		dom.NewElement("h2", nil, dom.NewText("Built")),
		dom.NewElement("p", nil, dom.NewText("by hand")),
	)
	if got := conv.ConvertNode(root); got != "## Built\n\nby hand\n" {
		t.Fatalf("got %q", got)
	}
	if got := conv.ConvertNode(nil); got != "" {
		t.Fatalf("nil root: %q", got)
	}
}

func TestSectionToMarkdown(t *testing.T) {
	tests := []struct {
		name         string
		headingText  string
		headingLevel int
		htmlContent  string
		wantContains []string
	}{
		{
			name:         "Basic Paragraph",
			headingText:  "Introduction",
			headingLevel: 1,
			htmlContent:  "<p>Hello world</p>",
			wantContains: []string{"# Introduction\n\nHello world\n"},
		},
		{
			name:         "Complex Table",
			headingText:  "Data",
			headingLevel: 2,
			htmlContent:  `<table><tr><th rowspan="2">A</th><th>B</th></tr><tr><td>C</td></tr></table>`,
			wantContains: []string{"## Data", "| A | B |", "| A | C |"},
		},
		{
			name:         "Links and Code",
			headingText:  "API",
			headingLevel: 3,
			htmlContent:  `<p>Check <a href="/docs">relative</a>, <a href="https://example.com/abs">absolute</a>, <a href="#anchor">anchor</a> and <code>code</code>.</p>`,
			wantContains: []string{"### API", "[relative](/docs)", "[absolute](https://example.com/abs)", "[anchor](#anchor)", "`code`."},
		},
		{
			name:         "Fenced Code Block With Language",
			headingText:  "Example",
			headingLevel: 2,
			htmlContent: `<pre><button>Copy</button><code class="language-go">fmt.Println("hi")
</code></pre>`,
			wantContains: []string{"## Example", "```go\nfmt.Println(\"hi\")\n```"},
		},
		{
			name:         "Admonition Blockquote",
			headingText:  "Notes",
			headingLevel: 2,
			htmlContent:  `<div class="note"><p>This is a note.</p></div>`,
			wantContains: []string{"## Notes", "> **Note**\n> This is a note."},
		},
		{
			name:         "Description List",
			headingText:  "Defs",
			headingLevel: 2,
			htmlContent: `
				<dl>
				  <dt>Term 1</dt><dd>Definition 1</dd>
				  <dt>Term 2</dt><dd>Definition 2</dd>
				</dl>`,
			wantContains: []string{"## Defs", "**Term 1**\n: Definition 1", "**Term 2**\n: Definition 2"},
		},
		{
			name:         "Empty Content",
			headingText:  "Empty",
			headingLevel: 1,
			htmlContent:  "",
			wantContains: []string{"# Empty\n"},
		},
		{
			name:         "Level Clamped",
			headingText:  "Deep",
			headingLevel: 9,
			htmlContent:  "<p>x</p>",
			wantContains: []string{"###### Deep"},
		},
	}

	conv, err := markdown.NewConverter(markdown.DefaultStyle(), markdown.AdmonitionPlugin())
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.SectionToMarkdown(tt.headingText, tt.headingLevel, tt.htmlContent)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, but got:\n%s", want, got)
				}
			}
		})
	}
}

func TestTableFlattensRowspanAndColspan(t *testing.T) {
	html := `
<table>
  <tr><th>A</th><th>B</th></tr>
  <tr><td rowspan="2">R</td><td>1</td></tr>
  <tr><td>2</td></tr>
  <tr><td colspan="2">X</td></tr>
</table>`
	out := convert(t, markdown.DefaultStyle(), html)
	want := "| A | B |\n| --- | --- |\n| R | 1 |\n| R | 2 |\n| X | X |\n"
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestPaddedTable(t *testing.T) {
	style := markdown.DefaultStyle()
	style.PadTables = true
	out := convert(t, style, `<table><tr><th>Name</th><th>N</th></tr><tr><td>日本</td><td>10</td></tr></table>`)
	want := "| Name | N   |\n| ---- | --- |\n| 日本 | 10  |\n"
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestAdmonitionPluginSkipsPlainDivs(t *testing.T) {
	out := convert(t, markdown.DefaultStyle(), `<div class="warning"><p>Hot</p><p>Really</p></div><div><p>plain</p></div>`, markdown.AdmonitionPlugin())
	want := "> **Warning**\n> Hot\n>\n> Really\n\nplain\n"
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestLinkPluginResolvesRelativeURLs(t *testing.T) {
	html := `<p><a href="guide.html">Guide</a> <a href="#top">Top</a> <a href="https://other.org/">Other</a> <img src="img/a.png" alt="A"></p>`
	out := convert(t, markdown.DefaultStyle(), html, markdown.LinkPlugin("https://example.com/docs/"))
	want := "[Guide](https://example.com/docs/guide.html) [Top](#top) [Other](https://other.org/) ![A](https://example.com/docs/img/a.png)\n"
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestCustomRule(t *testing.T) {
	mark := markdown.Rule{
		Filter: []string{"mark"},
		Replacement: func(content string, n *dom.Node, ctx *markdown.Context) *markdown.Fragment {
			return markdown.InlineFragment("==" + content + "==")
		},
	}
	fallback := markdown.Rule{
		Filter: []string{"section"},
		Replacement: func(content string, n *dom.Node, ctx *markdown.Context) *markdown.Fragment {
			return nil
		},
	}
	out := convert(t, markdown.DefaultStyle(), `<section><p>a <mark>hi</mark> b</p></section>`, markdown.WithRules(mark, fallback))
	if out != "a ==hi== b\n" {
		t.Fatalf("got %q", out)
	}
}

func TestConverterIsSafeForConcurrentUse(t *testing.T) {
	style := markdown.DefaultStyle()
	style.LinkStyle = markdown.LinkReferenced
	conv, err := markdown.NewConverter(style)
	if err != nil {
		t.Fatal(err)
	}
	const want = "[a][1]\n\n[1]: /a\n"
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := conv.Convert(`<p><a href="/a">a</a></p>`)
			if err != nil || out != want {
				errs <- out
			}
		}()
	}
	wg.Wait()
	close(errs)
	for out := range errs {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEmphasisNextToWordsAndRuns(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"adjacent em", `<p><em>a</em><em>b</em></p>`, "_a_*b*\n"},
		{"adjacent strong", `<p><strong>a</strong><strong>b</strong></p>`, "**a**__b__\n"},
		{"em inside a word", `<p>foo<em>bar</em>baz</p>`, "foo*bar*baz\n"},
		{"em before a word", `<p><em>bar</em>baz</p>`, "*bar*baz\n"},
		{"em after a word", `<p>foo<em>bar</em></p>`, "foo*bar*\n"},
		{"punctuation moves past closer", `<p><strong>Note:</strong>text</p>`, "**Note**:text\n"},
		{"punctuation kept before space", `<p><strong>Note:</strong> text</p>`, "**Note:** text\n"},
		{"em between words with spaces", `<p>foo <em>bar</em> baz</p>`, "foo _bar_ baz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, markdown.DefaultStyle(), tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestCodeInsideListItems(t *testing.T) {
	indented := markdown.DefaultStyle()
	indented.CodeBlockStyle = markdown.CodeBlockIndented

	wide := markdown.DefaultStyle()
	wide.ListIndent = 8

	tests := []struct {
		name  string
		style markdown.Style
		html  string
		want  string
	}{
		{"fenced", markdown.DefaultStyle(), "<ul><li><pre><code>x\ny</code></pre></li></ul>", "- ```\n  x\n  y\n  ```\n"},
		{"fenced after text", markdown.DefaultStyle(), "<ol><li>Run:<pre><code>go test</code></pre></li></ol>", "1. Run:\n   ```\n   go test\n   ```\n"},
		{"indented", indented, "<ul><li><pre>x\ny</pre></li></ul>", "-     x\n      y\n"},
		{"nested list with code", markdown.DefaultStyle(), "<ul><li>a<ul><li><pre>x</pre></li></ul></li></ul>", "- a\n  - ```\n    x\n    ```\n"},
		{"wide indent stays in item", wide, `<ul><li><p>a</p><p>b</p></li></ul>`, "- a\n\n     b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, tt.style, tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestAdjacentListsSwitchMarkers(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"bullets", `<ul><li>a</li></ul><ul><li>b</li></ul>`, "- a\n\n* b\n"},
		{"three bullets", `<ul><li>a</li></ul> <ul><li>b</li></ul><ul><li>c</li></ul>`, "- a\n\n* b\n\n- c\n"},
		{"ordered", `<ol><li>a</li></ol><ol><li>b</li></ol>`, "1. a\n\n1) b\n"},
		{"different kinds", `<ul><li>a</li></ul><ol><li>b</li></ol>`, "- a\n\n1. b\n"},
		{"separated by paragraph", `<ul><li>a</li></ul><p>x</p><ul><li>b</li></ul>`, "- a\n\nx\n\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, markdown.DefaultStyle(), tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestCustomRulesForStructuralTags(t *testing.T) {
	custom := func(block bool) markdown.Rule {
		return markdown.Rule{
			Filter: []string{"hr", "li", "td", "th", "dt", "dd"},
			Replacement: func(content string, n *dom.Node, ctx *markdown.Context) *markdown.Fragment {
				if block {
					return markdown.BlockFragment("CUSTOM-" + n.Tag)
				}
				return markdown.InlineFragment("CUSTOM-" + n.Tag)
			},
		}
	}
	tests := []struct {
		name string
		html string
		want string
	}{
		{"hr", `<p>a</p><hr><p>b</p>`, "a\n\nCUSTOM-hr\n\nb\n"},
		{"li", `<ul><li>a</li><li>b</li></ul>`, "- CUSTOM-li\n- CUSTOM-li\n"},
		{"cells", `<table><tr><th>h</th></tr><tr><td>v</td></tr></table>`, "| CUSTOM-th |\n| --- |\n| CUSTOM-td |\n"},
		{"definition list", `<dl><dt>T</dt><dd>D</dd></dl>`, "CUSTOM-dt\n: CUSTOM-dd\n"},
	}
	for _, tt := range tests {
		for _, block := range []bool{false, true} {
			t.Run(tt.name, func(t *testing.T) {
				got := convert(t, markdown.DefaultStyle(), tt.html, markdown.WithRules(custom(block)))
				if got != tt.want {
					t.Fatalf("block=%v got %q\nwant %q", block, got, tt.want)
				}
			})
		}
	}
}

func TestRuleReadsListDepth(t *testing.T) {
	depth := markdown.Rule{
		Filter: []string{"li"},
		Replacement: func(content string, n *dom.Node, ctx *markdown.Context) *markdown.Fragment {
			return markdown.InlineFragment(fmt.Sprintf("%d:%s", ctx.ListDepth, content))
		},
	}
	out := convert(t, markdown.DefaultStyle(), `<ul><li>a<ul><li>b</li></ul></li></ul>`, markdown.WithRules(depth))
	if want := "- 1:a\n    - 2:b\n"; out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestTableSpansAreBounded(t *testing.T) {
	out := convert(t, markdown.DefaultStyle(), `<table><tr><td colspan="100000000">x</td></tr></table>`)
	header, _, _ := strings.Cut(out, "\n")
	if got := strings.Count(header, " x |"); got != 1000 {
		t.Fatalf("got %d columns", got)
	}

	out = convert(t, markdown.DefaultStyle(), `<table><tr><td rowspan="2147483647">a</td><td>b</td></tr><tr><td>c</td></tr></table>`)
	if want := "| a | b |\n| --- | --- |\n| a | c |\n"; out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestLinkDestinationsDropLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"newline", "<p><a href=\"/a\nb\">x</a></p>", "[x](/ab)\n"},
		{"carriage return and tab", "<p><a href=\"/a\r\n\tb\">x</a></p>", "[x](/ab)\n"},
		{"space still wraps", "<p><a href=\"/a\nb c\">x</a></p>", "[x](</ab c>)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, markdown.DefaultStyle(), tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestEntityLikeTextIsEscaped(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"named", `<p>&amp;copy;</p>`, "\\&copy;\n"},
		{"decimal and hex", `<p>&amp;#35; &amp;#x23;</p>`, "\\&#35; \\&#x23;\n"},
		{"bare ampersand", `<p>a &amp; b &amp;c</p>`, "a & b &c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, markdown.DefaultStyle(), tt.html)
			if got != tt.want {
				t.Fatalf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestDeeplyNestedDocument(t *testing.T) {
	html := strings.Repeat("<div>", 600) + "deep" + strings.Repeat("</div>", 600)
	if out := convert(t, markdown.DefaultStyle(), html); out != "deep\n" {
		t.Fatalf("got %q", out)
	}
}
