package markdown

import (
	"strings"

	"go_mdconv/internal/dom"
)

// Rule overrides rendering for the tags in Filter. Replacement receives the
// already rendered children, the element and the render context. Returning
// nil falls back to the built-in rendering. Match, when set, is checked
// before the children are rendered.
//
// Rules for li, td, th, dt and dd replace the item, cell, term or definition
// text only: the list marker, table pipes and ": " prefix stay with the
// enclosing list, table or definition list.
type Rule struct {
	Filter      []string
	Match       func(n *dom.Node) bool
	Replacement func(content string, n *dom.Node, ctx *Context) *Fragment
}

func (r Rule) matches(n *dom.Node) bool {
	return r.Match == nil || r.Match(n)
}

// Plugin contributes rules when a Converter is built.
type Plugin func(conv *Converter) []Rule

// WithRules wraps fixed rules as a Plugin.
func WithRules(rules ...Rule) Plugin {
	return func(*Converter) []Rule {
		return rules
	}
}

func (c *Converter) addRules(rules ...Rule) {
	for _, r := range rules {
		if r.Replacement == nil {
			continue
		}
		for _, tag := range r.Filter {
			c.rules[strings.ToLower(tag)] = r
		}
	}
}

// applyRule runs the rule registered for n, if one matches, on the content
// produced by render. It reports false when there is none or it declined.
func (c *Converter) applyRule(n *dom.Node, ctx *Context, render func() string) (*Fragment, bool) {
	rule, ok := c.rules[n.Tag]
	if !ok || !rule.matches(n) {
		return nil, false
	}
	frag := rule.Replacement(render(), n, ctx)
	return frag, frag != nil
}
