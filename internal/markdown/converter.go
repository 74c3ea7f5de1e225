// Package markdown converts HTML document trees into CommonMark/GFM text.
// A Converter is immutable once built and may be shared between goroutines;
// all per-call state lives in a Context.
package markdown

import (
	"strings"

	"go_mdconv/internal/dom"
)

type Converter struct {
	style Style
	rules map[string]Rule
}

// NewConverter validates style and installs the plugins' rules. Later
// plugins override earlier ones for the same tag.
func NewConverter(style Style, plugins ...Plugin) (*Converter, error) {
	style = style.withDefaults()
	if err := style.Validate(); err != nil {
		return nil, err
	}
	conv := &Converter{style: style, rules: map[string]Rule{}}
	for _, p := range plugins {
		if p == nil {
			continue
		}
		conv.addRules(p(conv)...)
	}
	return conv, nil
}

// Style returns the converter's effective style.
func (c *Converter) Style() Style {
	return c.style
}

// Convert parses htmlText and renders it. The only error is a PARSE_ERROR
// for undecodable input.
func (c *Converter) Convert(htmlText string) (string, error) {
	root, err := dom.Parse(htmlText)
	if err != nil {
		return "", err
	}
	return c.ConvertNode(root), nil
}

// ConvertNode renders an already built tree. The result is empty or ends in
// exactly one newline.
func (c *Converter) ConvertNode(root *dom.Node) string {
	if root == nil {
		return ""
	}
	ctx := newContext(c.style)
	body := joinFragments(c.renderBlocks([]*dom.Node{root}, ctx), false)
	if refs := ctx.refs.render(); refs != "" {
		if strings.TrimSpace(body) == "" {
			body = refs
		} else {
			body += "\n\n" + refs
		}
	}
	body = strings.Trim(body, "\n")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return body + "\n"
}

// SectionToMarkdown renders contentHTML under an ATX heading line.
func (c *Converter) SectionToMarkdown(headingText string, headingLevel int, contentHTML string) (string, error) {
	if headingLevel < 1 {
		headingLevel = 1
	}
	if headingLevel > 6 {
		headingLevel = 6
	}
	headingLine := strings.TrimSpace(strings.Repeat("#", headingLevel) + " " + collapseSpace(headingText))

	body, err := c.Convert(contentHTML)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		return headingLine + "\n", nil
	}
	return headingLine + "\n\n" + strings.TrimSpace(body) + "\n", nil
}

// Convert is a one-shot conversion with a fresh Converter.
func Convert(htmlText string, style Style) (string, error) {
	conv, err := NewConverter(style)
	if err != nil {
		return "", err
	}
	return conv.Convert(htmlText)
}
