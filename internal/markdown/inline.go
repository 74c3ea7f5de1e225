package markdown

import (
	"strconv"
	"strings"

	"go_mdconv/internal/dom"
)

type inlineResult struct {
	text     string
	leading  bool
	trailing bool
}

// renderInline renders nodes into a fresh writer. The result reports any
// whitespace that was trimmed from either edge so callers can move it
// outside their own delimiters.
func (c *Converter) renderInline(nodes []*dom.Node, ctx *Context) inlineResult {
	w := newInlineWriter(false, ctx.Style.breakSequence())
	for _, n := range nodes {
		c.inlineNode(n, ctx, w)
	}
	trailing := w.trailingSpace()
	return inlineResult{text: w.finish(), leading: w.leading, trailing: trailing}
}

func (c *Converter) inlineNode(n *dom.Node, ctx *Context, w *inlineWriter) {
	if n.IsText() {
		w.text(n.Text)
		return
	}
	if Discarded(n.Tag) {
		return
	}
	if rule, ok := c.rules[n.Tag]; ok && rule.matches(n) {
		if c.applyInlineRule(rule, n, ctx, w) {
			return
		}
	}

	switch n.Tag {
	case "br":
		w.lineBreak()
	case "wbr":
	case "em", "i":
		c.emphasis(n, ctx, w, ctx.Style.EmDelimiter)
	case "strong", "b":
		c.emphasis(n, ctx, w, ctx.Style.StrongDelimiter)
	case "del", "s", "strike":
		if ctx.Style.Strikethrough {
			c.wrap(n, ctx, w, "~~")
		} else {
			c.inlineChildren(n, ctx, w)
		}
	case "code", "kbd", "samp", "tt", "textarea":
		w.raw(codeSpan(n.TextContent()))
	case "a":
		c.link(n, ctx, w)
	case "img":
		c.image(n, ctx, w)
	case "input":
		if strings.EqualFold(n.Attr("type"), "checkbox") {
			if n.HasAttr("checked") {
				w.raw("[x]")
			} else {
				w.raw("[ ]")
			}
		}
	case "q":
		res := c.renderInline(n.Children, ctx)
		writeWrapped(w, res, `"`, `"`)
	case "iframe", "video", "audio", "embed", "object":
		c.media(n, ctx, w)
	case "hr":
		w.space()
	default:
		switch Classify(n) {
		case RoleOpaque:
			w.space()
			w.raw(codeSpan(n.TextContent()))
			w.space()
		case RoleBlock:
			w.space()
			c.inlineChildren(n, ctx, w)
			w.space()
		default:
			c.inlineChildren(n, ctx, w)
		}
	}
}

func (c *Converter) inlineChildren(n *dom.Node, ctx *Context, w *inlineWriter) {
	for _, child := range n.Children {
		c.inlineNode(child, ctx, w)
	}
}

// applyInlineRule runs a custom rule in inline position and reports whether
// it produced output.
func (c *Converter) applyInlineRule(rule Rule, n *dom.Node, ctx *Context, w *inlineWriter) bool {
	var res inlineResult
	if isBlockish(n) {
		res.text = c.blockContent(n, ctx)
	} else {
		res = c.renderInline(n.Children, ctx)
	}
	frag := rule.Replacement(res.text, n, ctx)
	if frag == nil {
		return false
	}
	if frag.Block {
		w.space()
		w.raw(flattenBlock(frag.Text))
		w.space()
		return true
	}
	if res.leading {
		w.space()
	}
	w.raw(frag.Text)
	if res.trailing {
		w.space()
	}
	return true
}

// emphasis wraps children in a delimiter chosen against the enclosing
// emphasis and the preceding character.
func (c *Converter) emphasis(n *dom.Node, ctx *Context, w *inlineWriter, base string) {
	render := func(delim string) inlineResult {
		ctx.pushDelim(delim[0])
		defer ctx.popDelim()
		return c.renderInline(n.Children, ctx)
	}
	prev := w.prev()
	delim := ctx.delimiter(base, prev)
	res := render(delim)
	// Leading whitespace moves outside, so the delimiter follows a space.
	if res.leading && prev != ' ' {
		if spaced := ctx.delimiter(base, ' '); spaced != delim {
			delim = spaced
			res = render(delim)
		}
	}
	w.emphasis(res, delim)
}

func (c *Converter) wrap(n *dom.Node, ctx *Context, w *inlineWriter, delim string) {
	res := c.renderInline(n.Children, ctx)
	writeWrapped(w, res, delim, delim)
}

func writeWrapped(w *inlineWriter, res inlineResult, open, close string) {
	if res.leading {
		w.space()
	}
	if res.text != "" {
		w.raw(open + res.text + close)
	}
	if res.trailing {
		w.space()
	}
}

// codeSpan fences content with a backtick run longer than any run inside it.
func codeSpan(content string) string {
	content = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(content)
	if content == "" {
		return ""
	}
	fence := strings.Repeat("`", longestRun(content, '`')+1)
	pad := ""
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		pad = " "
	} else if strings.TrimSpace(content) != "" && strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") {
		pad = " "
	}
	return fence + pad + content + pad + fence
}

func (c *Converter) link(n *dom.Node, ctx *Context, w *inlineWriter) {
	href := strings.TrimSpace(n.Attr("href"))
	res := c.renderInline(n.Children, ctx)
	if href == "" {
		writeWrapped(w, res, "", "")
		return
	}
	if res.leading {
		w.space()
	}
	plain := collapseSpace(n.TextContent())
	title := n.Attr("title")
	if plain == href && title == "" && isAbsoluteURL(href) && !strings.ContainsAny(href, " <>") {
		w.raw("<" + href + ">")
	} else {
		text := res.text
		if text == "" {
			text = escapeText(href, false)
		}
		w.escapeBang()
		w.raw(FormatLink(ctx, text, href, title))
	}
	if res.trailing {
		w.space()
	}
}

func (c *Converter) image(n *dom.Node, ctx *Context, w *inlineWriter) {
	src := strings.TrimSpace(n.Attr("src"))
	alt := escapeText(collapseSpace(n.Attr("alt")), false)
	if src == "" {
		if alt != "" {
			w.raw(alt)
		}
		return
	}
	w.raw(FormatImage(ctx, alt, src, n.Attr("title")))
}

// media turns embedded players into links so the source URL survives.
func (c *Converter) media(n *dom.Node, ctx *Context, w *inlineWriter) {
	src := strings.TrimSpace(n.Attr("src"))
	if src == "" {
		src = strings.TrimSpace(n.Attr("data"))
	}
	if src == "" {
		if source := n.Find("source"); source != nil {
			src = strings.TrimSpace(source.Attr("src"))
		}
	}
	if src == "" {
		c.inlineChildren(n, ctx, w)
		return
	}
	label := collapseSpace(n.Attr("title"))
	if label == "" {
		label = n.Tag
	}
	w.escapeBang()
	w.raw(FormatLink(ctx, escapeText(label, false), src, ""))
}

// FormatLink renders a link in the configured link style. Referenced links
// register their definition with the current document.
func FormatLink(ctx *Context, text, href, title string) string {
	if ctx.Style.LinkStyle == LinkReferenced {
		n := ctx.refs.add(href, title)
		return "[" + text + "][" + strconv.Itoa(n) + "]"
	}
	out := "[" + text + "](" + formatDestination(href)
	if title != "" {
		out += " " + formatTitle(title)
	}
	return out + ")"
}

// FormatImage renders an image in the configured link style.
func FormatImage(ctx *Context, alt, src, title string) string {
	return "!" + FormatLink(ctx, alt, src, title)
}

func isAbsoluteURL(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"http://", "https://", "ftp://", "mailto:"} {
		if strings.HasPrefix(lower, scheme) && len(lower) > len(scheme) {
			return true
		}
	}
	return false
}
