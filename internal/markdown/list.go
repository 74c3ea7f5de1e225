package markdown

import (
	"strconv"
	"strings"

	"go_mdconv/internal/dom"
)

type listItem struct {
	marker string
	frags  []Fragment
}

// renderList writes one list. Children that are not li attach to the
// previous item so their content is never lost.
func (c *Converter) renderList(n *dom.Node, ctx *Context) []Fragment {
	ordered := n.Tag == "ol"
	alt := ctx.altList
	ctx.altList = false
	bullet, delim := ctx.Style.BulletMarker, ctx.Style.OrderedMarker
	if alt {
		bullet, delim = alternateBullet(bullet), alternateOrdered(delim)
	}
	num := 1
	if ordered {
		if v, ok := parseNumber(n.Attr("start")); ok {
			num = v
		}
	}
	nextMarker := func() string {
		if !ordered {
			return bullet
		}
		m := strconv.Itoa(num) + delim
		num++
		return m
	}

	ctx.pushList()
	defer ctx.popList()

	var items []listItem
	for _, child := range n.Children {
		if child.IsText() && strings.TrimSpace(child.Text) == "" {
			continue
		}
		if !child.IsText() && Discarded(child.Tag) {
			continue
		}
		if child.Tag == "li" {
			if ordered {
				if v, ok := parseNumber(child.Attr("value")); ok {
					num = v
				}
			}
			marker := nextMarker()
			items = append(items, listItem{marker: marker, frags: c.renderItem(child, ctx)})
			continue
		}
		frags := c.renderBlocks([]*dom.Node{child}, ctx)
		if len(frags) == 0 {
			continue
		}
		if len(items) == 0 {
			items = append(items, listItem{marker: nextMarker()})
		}
		last := &items[len(items)-1]
		last.frags = append(last.frags, frags...)
	}
	if len(items) == 0 {
		return nil
	}

	lines := make([]string, 0, len(items))
	verbatim := false
	for _, it := range items {
		body := joinFragments(it.frags, true)
		if body == "" {
			lines = append(lines, it.marker)
			continue
		}
		indent := itemIndent(it.marker, ctx.Style.ListIndent)
		if anyVerbatim(it.frags) {
			// Code must start at the content column or its lines gain
			// leading spaces.
			verbatim = true
			indent = len(it.marker) + 1
		}
		lines = append(lines, it.marker+" "+indentLines(body, indent))
	}
	return []Fragment{{Text: strings.Join(lines, "\n"), Block: true, verbatim: verbatim}}
}

func (c *Converter) renderItem(li *dom.Node, ctx *Context) []Fragment {
	frag, ok := c.applyRule(li, ctx, func() string {
		return joinFragments(c.renderBlocks(li.Children, ctx), true)
	})
	if !ok {
		return c.renderBlocks(li.Children, ctx)
	}
	if strings.TrimSpace(frag.Text) == "" {
		return nil
	}
	return []Fragment{{Text: strings.TrimSpace(frag.Text), Block: true, verbatim: frag.verbatim}}
}

// itemIndent keeps continuation lines inside the item: at least one column
// past the marker and less than four columns past the content start.
func itemIndent(marker string, indent int) int {
	if low := len(marker) + 1; indent < low {
		return low
	}
	if high := len(marker) + 4; indent > high {
		return high
	}
	return indent
}

// alternateBullet and alternateOrdered pick the marker for a list that
// directly follows another list of the same kind, which would otherwise
// merge with it.
func alternateBullet(m string) string {
	if m == "-" {
		return "*"
	}
	return "-"
}

func alternateOrdered(m string) string {
	if m == "." {
		return ")"
	}
	return "."
}

func parseNumber(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
