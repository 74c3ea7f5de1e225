package markdown

import (
	"regexp"
	"strings"

	"go_mdconv/internal/dom"
)

var languageClass = regexp.MustCompile(`(?:^|\s)(?:language|lang)-([a-zA-Z0-9_+-]+)(?:\s|$)`)

// renderCodeBlock keeps preformatted text verbatim. A pre wrapping a code
// element uses the code element's text and language class.
func (c *Converter) renderCodeBlock(n *dom.Node, ctx *Context) []Fragment {
	src := n
	if code := n.Find("code"); code != nil {
		src = code
	}
	text := codeText(src)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if src != n {
		text = strings.TrimPrefix(text, "\n")
	}
	text = strings.TrimRight(text, "\n")

	lang := detectLanguage(src)
	if lang == "" && src != n {
		lang = detectLanguage(n)
	}

	if ctx.Style.CodeBlockStyle == CodeBlockIndented {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = "    " + line
			}
		}
		return []Fragment{{Text: strings.Join(lines, "\n"), Block: true, Blank: true, verbatim: true}}
	}

	fenceChar := ctx.Style.Fence[0]
	size := len(ctx.Style.Fence)
	if run := longestRun(text, fenceChar) + 1; run > size {
		size = run
	}
	fence := strings.Repeat(string(fenceChar), size)

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteString("\n")
	if text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString(fence)
	return []Fragment{{Text: b.String(), Block: true, verbatim: true}}
}

// codeText is the verbatim text of a code block without copy buttons and
// line-number gutters.
func codeText(n *dom.Node) string {
	var b strings.Builder
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		switch {
		case n.IsText():
			b.WriteString(n.Text)
			return
		case n.Tag == "br":
			b.WriteString("\n")
			return
		case n.Tag == "button", n.HasClass("copy-btn"), n.HasClass("clipboard"), n.HasClass("line-numbers"):
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// detectLanguage reads language-x or lang-x from the class attribute.
func detectLanguage(n *dom.Node) string {
	class := strings.TrimSpace(n.Attr("class"))
	if class == "" {
		return ""
	}
	m := languageClass.FindStringSubmatch(class)
	if len(m) != 2 {
		return ""
	}
	lang := strings.ToLower(m[1])
	if lang == "golang" {
		lang = "go"
	}
	return lang
}
