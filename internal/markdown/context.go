package markdown

import (
	"fmt"
	"strings"
)

// Context is the per-call render state. ListDepth and QuoteDepth count the
// lists and blockquotes enclosing the element a rule is called for; rules
// read them, only the converter changes them.
type Context struct {
	Style      Style
	ListDepth  int
	QuoteDepth int

	delims  []byte
	refs    *references
	altList bool
}

func newContext(style Style) *Context {
	return &Context{Style: style, refs: newReferences()}
}

func (c *Context) pushList()  { c.ListDepth++ }
func (c *Context) popList()   { c.ListDepth-- }
func (c *Context) pushQuote() { c.QuoteDepth++ }
func (c *Context) popQuote()  { c.QuoteDepth-- }

// delimiter picks the emphasis run for an element whose output follows prev.
// The character alternates when the innermost open delimiter or prev already
// uses it, and "_" becomes "*" after a letter or digit since underscores
// cannot open inside a word.
func (c *Context) delimiter(base string, prev rune) string {
	top := byte(0)
	if len(c.delims) > 0 {
		top = c.delims[len(c.delims)-1]
	}
	d := base
	if top == d[0] || prev == rune(d[0]) {
		d = otherDelimiter(d)
	}
	if d[0] == '_' && isWordRune(prev) && top != '*' {
		d = otherDelimiter(d)
	}
	return d
}

func otherDelimiter(d string) string {
	if d[0] == '*' {
		return strings.Repeat("_", len(d))
	}
	return strings.Repeat("*", len(d))
}

func (c *Context) pushDelim(ch byte) { c.delims = append(c.delims, ch) }
func (c *Context) popDelim()         { c.delims = c.delims[:len(c.delims)-1] }

type reference struct {
	url   string
	title string
}

// references collects link definitions for one conversion. Numbering is
// global to the document and identical targets share a number.
type references struct {
	entries []reference
	index   map[reference]int
}

func newReferences() *references {
	return &references{index: map[reference]int{}}
}

func (r *references) add(url, title string) int {
	key := reference{url: url, title: title}
	if n, ok := r.index[key]; ok {
		return n
	}
	r.entries = append(r.entries, key)
	n := len(r.entries)
	r.index[key] = n
	return n
}

func (r *references) render() string {
	if len(r.entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(r.entries))
	for i, e := range r.entries {
		line := fmt.Sprintf("[%d]: %s", i+1, formatDestination(e.url))
		if e.title != "" {
			line += " " + formatTitle(e.title)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
