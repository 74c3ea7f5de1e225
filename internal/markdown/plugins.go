package markdown

import (
	"net/url"
	"strings"

	"go_mdconv/internal/dom"
)

var admonitionTitles = []struct {
	keys  []string
	title string
}{
	{[]string{"note"}, "Note"},
	{[]string{"warning", "caution"}, "Warning"},
	{[]string{"tip"}, "Tip"},
	{[]string{"important"}, "Important"},
	{[]string{"info"}, "Info"},
}

// AdmonitionPlugin renders documentation callouts (div or aside with a note,
// warning, caution, tip, important or info class) as quoted blocks.
func AdmonitionPlugin() Plugin {
	return func(conv *Converter) []Rule {
		return []Rule{{
			Filter: []string{"div", "aside"},
			Match: func(n *dom.Node) bool {
				return admonitionTitle(n) != ""
			},
			Replacement: func(content string, n *dom.Node, ctx *Context) *Fragment {
				title := admonitionTitle(n)
				header := ctx.delimiter(ctx.Style.StrongDelimiter, 0)
				text := header + title + header
				if strings.TrimSpace(content) != "" {
					text += "\n" + content
				}
				return &Fragment{Text: quoteLines(text), Block: true}
			},
		}}
	}
}

func admonitionTitle(n *dom.Node) string {
	classes := strings.ToLower(n.Attr("class"))
	for _, a := range admonitionTitles {
		for _, key := range a.keys {
			if strings.Contains(classes, key) {
				return a.title
			}
		}
	}
	return ""
}

// LinkPlugin resolves relative link and image URLs against baseURL. An
// unparsable base yields no rules.
func LinkPlugin(baseURL string) Plugin {
	return func(conv *Converter) []Rule {
		base, err := url.Parse(strings.TrimSpace(baseURL))
		if err != nil || !base.IsAbs() {
			return nil
		}
		resolve := func(ref string) (string, bool) {
			ref = strings.TrimSpace(ref)
			if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
				return "", false
			}
			u, err := url.Parse(ref)
			if err != nil || u.IsAbs() {
				return "", false
			}
			return base.ResolveReference(u).String(), true
		}
		return []Rule{
			{
				Filter: []string{"a"},
				Match: func(n *dom.Node) bool {
					_, ok := resolve(n.Attr("href"))
					return ok
				},
				Replacement: func(content string, n *dom.Node, ctx *Context) *Fragment {
					abs, ok := resolve(n.Attr("href"))
					if !ok {
						return nil
					}
					if content == "" {
						content = escapeText(abs, false)
					}
					return InlineFragment(FormatLink(ctx, content, abs, n.Attr("title")))
				},
			},
			{
				Filter: []string{"img"},
				Match: func(n *dom.Node) bool {
					_, ok := resolve(n.Attr("src"))
					return ok
				},
				Replacement: func(_ string, n *dom.Node, ctx *Context) *Fragment {
					abs, ok := resolve(n.Attr("src"))
					if !ok {
						return nil
					}
					alt := escapeText(collapseSpace(n.Attr("alt")), false)
					return InlineFragment(FormatImage(ctx, alt, abs, n.Attr("title")))
				},
			},
		}
	}
}
