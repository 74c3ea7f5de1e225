package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"go_mdconv/internal/dom"
	"go_mdconv/internal/markdown"
)

// Counts is the number of structural blocks in a document.
type Counts struct {
	Headings   int `json:"headings"`
	Lists      int `json:"lists"`
	Tables     int `json:"tables"`
	CodeBlocks int `json:"code_blocks"`
}

type Mismatch struct {
	Kind     string `json:"kind"`
	HTML     int    `json:"html"`
	Markdown int    `json:"markdown"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: html=%d markdown=%d", m.Kind, m.HTML, m.Markdown)
}

// Comparison pairs the counts of the source tree and of the re-parsed output.
type Comparison struct {
	HTML       Counts     `json:"html"`
	Markdown   Counts     `json:"markdown"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

func (c Comparison) OK() bool {
	return len(c.Mismatches) == 0
}

// Verify counts the blocks of root and of md (parsed as GFM) and lists every
// kind whose counts differ.
func Verify(root *dom.Node, md string) Comparison {
	c := Comparison{HTML: CountHTML(root), Markdown: CountMarkdown(md)}
	pairs := []struct {
		kind string
		h, m int
	}{
		{"headings", c.HTML.Headings, c.Markdown.Headings},
		{"lists", c.HTML.Lists, c.Markdown.Lists},
		{"tables", c.HTML.Tables, c.Markdown.Tables},
		{"code_blocks", c.HTML.CodeBlocks, c.Markdown.CodeBlocks},
	}
	for _, p := range pairs {
		if p.h != p.m {
			c.Mismatches = append(c.Mismatches, Mismatch{Kind: p.kind, HTML: p.h, Markdown: p.m})
		}
	}
	return c
}

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// CountMarkdown parses md with goldmark and counts its block nodes.
func CountMarkdown(md string) Counts {
	var c Counts
	doc := gfm.Parser().Parse(text.NewReader([]byte(md)))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			c.Headings++
		case ast.KindList:
			c.Lists++
		case extast.KindTable:
			c.Tables++
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			c.CodeBlocks++
		}
		return ast.WalkContinue, nil
	})
	return c
}

// CountHTML counts the blocks of root that survive as Markdown blocks.
// Anything inside a table cell is flattened into the cell and is not counted.
func CountHTML(root *dom.Node) Counts {
	var c Counts
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == nil || n.IsText() || markdown.Discarded(n.Tag) {
			return
		}
		switch n.Tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if strings.TrimSpace(n.TextContent()) != "" {
				c.Headings++
			}
			return
		case "ul", "ol", "menu", "dir":
			if n.FirstChildElement("li") != nil {
				c.Lists++
			}
		case "table":
			if n.Find("tr") != nil {
				c.Tables++
			}
			return
		case "pre", "listing", "xmp", "plaintext":
			if strings.TrimSpace(n.TextContent()) != "" {
				c.CodeBlocks++
			}
			return
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	return c
}
