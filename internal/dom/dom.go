// Package dom holds the document tree the converter walks. It is built once per
// conversion from a parsed HTML document and owns its nodes exclusively: there
// are no parent pointers and no node is shared between trees.
package dom

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"go_mdconv/internal/converr"
)

// Node is an element or a text node. Text nodes have an empty Tag.
type Node struct {
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// NewElement returns an element node with the given children.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Tag: strings.ToLower(tag), Attrs: attrs, Children: children}
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the attribute value or "".
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(key string) bool {
	if n.Attrs == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// Classes returns the whitespace separated class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.Attr("class"))
}

// HasClass reports whether class c is present (case-insensitive).
func (n *Node) HasClass(c string) bool {
	for _, cls := range n.Classes() {
		if strings.EqualFold(cls, c) {
			return true
		}
	}
	return false
}

// TextContent concatenates all descendant text without any normalisation.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(n.Text)
		return
	}
	if n.Tag == "br" {
		b.WriteString("\n")
		return
	}
	for _, c := range n.Children {
		c.writeText(b)
	}
}

// FirstChildElement returns the first child with the given tag, or nil.
func (n *Node) FirstChildElement(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Find returns the first descendant (depth-first, excluding n) with the tag.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Parse builds a tree from raw HTML. Malformed markup is recovered by the
// HTML5 parsing algorithm; only malformed byte sequences are rejected.
func Parse(htmlText string) (*Node, error) {
	htmlText = strings.TrimPrefix(htmlText, "\uFEFF")
	if !utf8.ValidString(htmlText) {
		return nil, converr.NewInvalidEncoding(invalidOffset(htmlText))
	}
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		// x/net/html refuses documents nested deeper than its open element
		// limit. Drop the innermost tags and keep their text instead.
		flat, ferr := flattenNesting(htmlText, maxNesting)
		if ferr != nil {
			return nil, converr.NewParse("parse html", err)
		}
		if root, err = html.Parse(strings.NewReader(flat)); err != nil {
			return nil, converr.NewParse("parse html", err)
		}
	}
	return FromHTML(root), nil
}

// maxNesting is the element depth kept when a document is too deep to parse.
const maxNesting = 256

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// flattenNesting rewrites htmlText without the start and end tags that sit
// deeper than limit. Text, comments and void elements are kept.
func flattenNesting(htmlText string, limit int) (string, error) {
	z := html.NewTokenizer(strings.NewReader(htmlText))
	var b strings.Builder
	b.Grow(len(htmlText))
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return b.String(), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if voidElements[string(name)] {
				break
			}
			depth++
			if depth > limit {
				continue
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if voidElements[string(name)] {
				break
			}
			depth--
			if depth >= limit {
				continue
			}
			depth = max(depth, 0)
		}
		b.Write(z.Raw())
	}
}

// FromHTML copies an x/net/html tree. Comments, doctypes and raw nodes are
// dropped.
func FromHTML(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.ElementNode:
		out := &Node{Tag: strings.ToLower(n.Data), Attrs: make(map[string]string, len(n.Attr))}
		for _, a := range n.Attr {
			key := strings.ToLower(a.Key)
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			out.Attrs[key] = a.Val
		}
		out.Children = copyChildren(n)
		return out
	case html.DocumentNode:
		return &Node{Tag: "#document", Attrs: map[string]string{}, Children: copyChildren(n)}
	default:
		return nil
	}
}

func copyChildren(n *html.Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// FromSelection copies every node of a goquery selection under one synthetic
// document root, preserving selection order.
func FromSelection(sel *goquery.Selection) *Node {
	root := &Node{Tag: "#document", Attrs: map[string]string{}}
	if sel == nil {
		return root
	}
	for _, n := range sel.Nodes {
		if child := FromHTML(n); child != nil {
			root.Children = append(root.Children, child)
		}
	}
	return root
}

func invalidOffset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}
