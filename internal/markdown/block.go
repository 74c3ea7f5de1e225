package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"go_mdconv/internal/dom"
)

// renderBlocks lays out a sequence of siblings in block context. Consecutive
// inline content is gathered into anonymous paragraphs.
func (c *Converter) renderBlocks(nodes []*dom.Node, ctx *Context) []Fragment {
	var frags []Fragment
	breakSeq := ctx.Style.breakSequence()
	w := newInlineWriter(true, breakSeq)
	flush := func() {
		if text := w.finish(); strings.TrimSpace(text) != "" {
			frags = append(frags, Fragment{Text: text, Block: true})
		}
		w = newInlineWriter(true, breakSeq)
	}

	// A list directly after another list of the same kind switches markers
	// so the two stay separate lists.
	listEnd, listOrdered, listAlt := -1, false, false

	for _, n := range nodes {
		if n.IsText() {
			w.text(n.Text)
			continue
		}
		if Discarded(n.Tag) {
			continue
		}
		if rule, ok := c.rules[n.Tag]; ok && rule.matches(n) && (isBlockish(n) || n.Tag == "hr") {
			if frag := rule.Replacement(c.blockContent(n, ctx), n, ctx); frag != nil {
				if frag.Block {
					flush()
					frags = append(frags, *frag)
				} else {
					w.raw(frag.Text)
				}
				continue
			}
		}

		switch Classify(n) {
		case RoleBlock, RoleOpaque:
			flush()
			if !isListTag(n.Tag) {
				frags = append(frags, c.renderBlock(n, ctx)...)
				continue
			}
			ordered := n.Tag == "ol"
			alt := listEnd == len(frags) && ordered == listOrdered && !listAlt
			ctx.altList = alt
			if out := c.renderBlock(n, ctx); len(out) > 0 {
				frags = append(frags, out...)
				listEnd, listOrdered, listAlt = len(frags), ordered, alt
			}
		case RoleVoid:
			if n.Tag == "hr" {
				flush()
				frags = append(frags, *BlockFragment(ctx.Style.HorizontalRule))
				continue
			}
			c.inlineNode(n, ctx, w)
		default:
			rule, custom := c.rules[n.Tag]
			if !(custom && rule.matches(n)) && hasBlockChild(n) {
				flush()
				frags = append(frags, c.renderBlocks(n.Children, ctx)...)
				continue
			}
			c.inlineNode(n, ctx, w)
		}
	}
	flush()
	return frags
}

func isListTag(tag string) bool {
	switch tag {
	case "ul", "ol", "menu", "dir":
		return true
	}
	return false
}

// blockContent renders the children of n as a standalone block body.
func (c *Converter) blockContent(n *dom.Node, ctx *Context) string {
	return joinFragments(c.renderBlocks(n.Children, ctx), false)
}

func (c *Converter) renderBlock(n *dom.Node, ctx *Context) []Fragment {
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return c.renderHeading(n, ctx)
	case "p":
		return c.renderParagraph(n, ctx)
	case "ul", "ol", "menu", "dir":
		return c.renderList(n, ctx)
	case "blockquote":
		return c.renderQuote(n, ctx)
	case "pre", "listing", "xmp", "plaintext":
		return c.renderCodeBlock(n, ctx)
	case "table":
		return c.renderTable(n, ctx)
	case "dl":
		return c.renderDefinitionList(n, ctx)
	case "dt", "dd":
		return c.renderDefinitionList(&dom.Node{Tag: "dl", Children: []*dom.Node{n}}, ctx)
	case "details":
		return c.renderDetails(n, ctx)
	case "summary":
		return c.renderStrongParagraph(n, ctx)
	default:
		return c.renderBlocks(n.Children, ctx)
	}
}

func (c *Converter) renderParagraph(n *dom.Node, ctx *Context) []Fragment {
	frags := c.renderBlocks(n.Children, ctx)
	for i := range frags {
		frags[i].Blank = true
	}
	return frags
}

func (c *Converter) renderHeading(n *dom.Node, ctx *Context) []Fragment {
	w := newInlineWriter(true, " ")
	for _, child := range n.Children {
		c.inlineNode(child, ctx, w)
	}
	text := collapseSpace(w.finish())
	if text == "" {
		return nil
	}
	level := int(n.Tag[1] - '0')
	if ctx.Style.HeadingStyle == HeadingSetext && level <= 2 {
		mark := "="
		if level == 2 {
			mark = "-"
		}
		width := runewidth.StringWidth(text)
		if width < 3 {
			width = 3
		}
		return []Fragment{*BlockFragment(text + "\n" + strings.Repeat(mark, width))}
	}
	if strings.HasSuffix(text, "#") && !strings.HasSuffix(text, `\#`) {
		text = text[:len(text)-1] + `\#`
	}
	return []Fragment{*BlockFragment(strings.Repeat("#", level) + " " + text)}
}

func (c *Converter) renderQuote(n *dom.Node, ctx *Context) []Fragment {
	ctx.pushQuote()
	body := c.blockContent(n, ctx)
	ctx.popQuote()
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return []Fragment{{Text: quoteLines(body), Block: true}}
}

// strongText renders children as a single bold line.
func (c *Converter) strongText(n *dom.Node, ctx *Context) string {
	delim := ctx.delimiter(ctx.Style.StrongDelimiter, 0)
	ctx.pushDelim(delim[0])
	text := flattenBlock(c.inlineOrBlock(n, ctx))
	ctx.popDelim()
	if text == "" {
		return ""
	}
	return delim + text + delim
}

func (c *Converter) inlineOrBlock(n *dom.Node, ctx *Context) string {
	if hasBlockChild(n) {
		return c.blockContent(n, ctx)
	}
	return c.renderInline(n.Children, ctx).text
}

func (c *Converter) renderStrongParagraph(n *dom.Node, ctx *Context) []Fragment {
	text := c.strongText(n, ctx)
	if text == "" {
		return nil
	}
	return []Fragment{*BlockFragment(text)}
}

func (c *Converter) renderDetails(n *dom.Node, ctx *Context) []Fragment {
	var frags []Fragment
	var rest []*dom.Node
	for _, child := range n.Children {
		if child.Tag == "summary" {
			frags = append(frags, c.renderStrongParagraph(child, ctx)...)
			continue
		}
		rest = append(rest, child)
	}
	return append(frags, c.renderBlocks(rest, ctx)...)
}

// renderDefinitionList writes terms in bold followed by ": " definitions.
func (c *Converter) renderDefinitionList(n *dom.Node, ctx *Context) []Fragment {
	var groups []string
	var cur []string
	closeGroup := func() {
		if len(cur) > 0 {
			groups = append(groups, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	var visit func(children []*dom.Node)
	visit = func(children []*dom.Node) {
		for _, child := range children {
			switch child.Tag {
			case "dt":
				term := c.strongText(child, ctx)
				if frag, ok := c.applyRule(child, ctx, func() string { return term }); ok {
					term = flattenBlock(frag.Text)
				}
				if term != "" {
					closeGroup()
					cur = append(cur, term)
				}
			case "dd":
				body := joinFragments(c.renderBlocks(child.Children, ctx), true)
				if frag, ok := c.applyRule(child, ctx, func() string { return body }); ok {
					body = strings.TrimSpace(frag.Text)
				}
				if strings.TrimSpace(body) != "" {
					cur = append(cur, ": "+indentLines(body, 2))
				}
			case "div":
				visit(child.Children)
			}
		}
	}
	visit(n.Children)
	closeGroup()
	if len(groups) == 0 {
		return nil
	}
	return []Fragment{*BlockFragment(strings.Join(groups, "\n\n"))}
}
