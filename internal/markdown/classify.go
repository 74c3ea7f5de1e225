package markdown

import "go_mdconv/internal/dom"

// Role decides how an element takes part in layout.
type Role int

const (
	RoleBlock Role = iota
	RoleInline
	RoleVoid
	RoleWhitespaceSensitive
	RoleOpaque
)

func (r Role) String() string {
	switch r {
	case RoleBlock:
		return "BLOCK"
	case RoleInline:
		return "INLINE"
	case RoleVoid:
		return "VOID"
	case RoleWhitespaceSensitive:
		return "WHITESPACE_SENSITIVE"
	case RoleOpaque:
		return "OPAQUE"
	}
	return "UNKNOWN"
}

var blockTags = set(
	"#document", "html", "body", "address", "article", "aside", "blockquote",
	"center", "dd", "details", "dialog", "dir", "div", "dl", "dt", "fieldset",
	"figcaption", "figure", "footer", "form", "frameset", "h1", "h2", "h3",
	"h4", "h5", "h6", "header", "hgroup", "legend", "li", "main", "menu",
	"nav", "ol", "p", "section", "summary", "table", "caption", "thead",
	"tbody", "tfoot", "tr", "td", "th", "ul", "search",
)

var inlineTags = set(
	"a", "abbr", "acronym", "b", "bdi", "bdo", "big", "cite", "data", "del",
	"dfn", "em", "font", "i", "ins", "label", "mark", "q", "rp", "rt", "ruby",
	"s", "small", "span", "strike", "strong", "sub", "sup", "time", "u",
	"var", "button", "output", "select", "option", "object", "picture",
	"video", "audio", "iframe", "svg", "math", "canvas", "map", "meter",
	"progress", "slot",
)

var voidTags = set(
	"area", "br", "col", "embed", "hr", "img", "input", "source", "track",
	"wbr", "param", "keygen", "base", "link", "meta",
)

var sensitiveTags = set("code", "kbd", "samp", "tt", "textarea")

var opaqueTags = set("pre", "listing", "xmp", "plaintext")

var discardedTags = set(
	"head", "script", "style", "noscript", "template", "title", "meta",
	"link", "base",
)

// Discarded reports whether the element and its subtree produce no output.
func Discarded(tag string) bool {
	return discardedTags[tag]
}

// Classify returns the layout role of n. Unknown elements are BLOCK when a
// direct child is BLOCK or OPAQUE and INLINE otherwise.
func Classify(n *dom.Node) Role {
	switch {
	case n.IsText():
		return RoleInline
	case opaqueTags[n.Tag]:
		return RoleOpaque
	case sensitiveTags[n.Tag]:
		return RoleWhitespaceSensitive
	case voidTags[n.Tag]:
		return RoleVoid
	case blockTags[n.Tag]:
		return RoleBlock
	case inlineTags[n.Tag]:
		return RoleInline
	}
	if hasBlockChild(n) {
		return RoleBlock
	}
	return RoleInline
}

func hasBlockChild(n *dom.Node) bool {
	for _, c := range n.Children {
		if c.IsText() || Discarded(c.Tag) {
			continue
		}
		if r := Classify(c); r == RoleBlock || r == RoleOpaque {
			return true
		}
	}
	return false
}

func isBlockish(n *dom.Node) bool {
	r := Classify(n)
	return r == RoleBlock || r == RoleOpaque
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
