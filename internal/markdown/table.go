package markdown

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"go_mdconv/internal/dom"
)

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

// tableGrid flattens rowspan/colspan by repeating the spanned cell text in
// every slot it covers.
type tableGrid struct {
	grid     map[int]map[int]string
	aligns   map[int]alignment
	maxCol   int
	rowCount int
}

func (c *Converter) renderTable(n *dom.Node, ctx *Context) []Fragment {
	var frags []Fragment
	if caption := n.FirstChildElement("caption"); caption != nil {
		if text := flattenBlock(c.inlineOrBlock(caption, ctx)); text != "" {
			frags = append(frags, *BlockFragment(text))
		}
	}
	rows := tableRows(n)
	if len(rows) == 0 {
		return frags
	}
	grid := tableGrid{grid: map[int]map[int]string{}, aligns: map[int]alignment{}}
	for rIdx, tr := range rows {
		grid.rowCount++
		ensureRow(&grid, rIdx)
		c.fillRow(tr, rIdx, len(rows)-rIdx, &grid, ctx)
	}
	return append(frags, *BlockFragment(renderGrid(grid, ctx.Style.PadTables)))
}

// tableRows returns header rows first, then body rows, then footer rows.
func tableRows(table *dom.Node) []*dom.Node {
	var head, body, foot []*dom.Node
	for _, child := range table.Children {
		switch child.Tag {
		case "thead":
			head = append(head, childRows(child)...)
		case "tbody":
			body = append(body, childRows(child)...)
		case "tfoot":
			foot = append(foot, childRows(child)...)
		case "tr":
			body = append(body, child)
		}
	}
	rows := append(head, body...)
	return append(rows, foot...)
}

func childRows(section *dom.Node) []*dom.Node {
	var rows []*dom.Node
	for _, child := range section.Children {
		if child.Tag == "tr" {
			rows = append(rows, child)
		}
	}
	return rows
}

func ensureRow(grid *tableGrid, rIdx int) {
	if _, ok := grid.grid[rIdx]; !ok {
		grid.grid[rIdx] = make(map[int]string)
	}
}

// Span limits follow the HTML table model.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

func (c *Converter) fillRow(tr *dom.Node, rIdx, rowsLeft int, grid *tableGrid, ctx *Context) {
	cIdx := 0
	for _, td := range tr.Children {
		if td.Tag != "td" && td.Tag != "th" {
			continue
		}
		cIdx = nextFreeCol(grid, rIdx, cIdx)
		content := cleanCell(c.cellText(td, ctx))
		rowSpan := min(spanValue(td, "rowspan", maxRowSpan), rowsLeft)
		colSpan := spanValue(td, "colspan", maxColSpan)
		if rIdx == 0 {
			if a := cellAlignment(td); a != alignNone {
				for i := 0; i < colSpan; i++ {
					grid.aligns[cIdx+i] = a
				}
			}
		}
		placeCell(grid, rIdx, cIdx, rowSpan, colSpan, content)
		cIdx += colSpan
	}
}

func nextFreeCol(grid *tableGrid, rIdx, cIdx int) int {
	for {
		if _, occupied := grid.grid[rIdx][cIdx]; !occupied {
			return cIdx
		}
		cIdx++
	}
}

func spanValue(td *dom.Node, attr string, limit int) int {
	if val, err := strconv.Atoi(strings.TrimSpace(td.Attr(attr))); err == nil && val > 1 {
		return min(val, limit)
	}
	return 1
}

func (c *Converter) cellText(td *dom.Node, ctx *Context) string {
	text := c.inlineOrBlock(td, ctx)
	if frag, ok := c.applyRule(td, ctx, func() string { return text }); ok {
		return frag.Text
	}
	return text
}

func placeCell(grid *tableGrid, rIdx, cIdx, rowSpan, colSpan int, content string) {
	for r := 0; r < rowSpan; r++ {
		for col := 0; col < colSpan; col++ {
			targetRow := rIdx + r
			targetCol := cIdx + col
			ensureRow(grid, targetRow)
			grid.grid[targetRow][targetCol] = content
			if targetCol > grid.maxCol {
				grid.maxCol = targetCol
			}
		}
	}
}

func cellAlignment(td *dom.Node) alignment {
	align := strings.ToLower(strings.TrimSpace(td.Attr("align")))
	if align == "" {
		for _, decl := range strings.Split(td.Attr("style"), ";") {
			key, val, ok := strings.Cut(decl, ":")
			if ok && strings.EqualFold(strings.TrimSpace(key), "text-align") {
				align = strings.ToLower(strings.TrimSpace(val))
			}
		}
	}
	switch align {
	case "left", "start":
		return alignLeft
	case "center":
		return alignCenter
	case "right", "end":
		return alignRight
	}
	return alignNone
}

func renderGrid(grid tableGrid, pad bool) string {
	widths := make([]int, grid.maxCol+1)
	for c := range widths {
		widths[c] = 3
		if !pad {
			continue
		}
		for r := 0; r < grid.rowCount; r++ {
			if w := runewidth.StringWidth(grid.grid[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}
	var b strings.Builder
	for r := 0; r < grid.rowCount; r++ {
		if r > 0 {
			b.WriteString("\n")
		}
		writeRow(&b, grid, r, widths, pad)
		if r == 0 {
			b.WriteString("\n")
			writeSeparator(&b, grid, widths, pad)
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, grid tableGrid, rIdx int, widths []int, pad bool) {
	b.WriteString("|")
	for c := 0; c <= grid.maxCol; c++ {
		cell := grid.grid[rIdx][c]
		b.WriteString(" ")
		b.WriteString(cell)
		if pad {
			b.WriteString(strings.Repeat(" ", widths[c]-runewidth.StringWidth(cell)))
		}
		b.WriteString(" |")
	}
}

func writeSeparator(b *strings.Builder, grid tableGrid, widths []int, pad bool) {
	b.WriteString("|")
	for c := 0; c <= grid.maxCol; c++ {
		dashes := 3
		if pad {
			dashes = widths[c]
		}
		b.WriteString(" ")
		b.WriteString(separatorCell(grid.aligns[c], dashes))
		b.WriteString(" |")
	}
}

func separatorCell(a alignment, width int) string {
	switch a {
	case alignLeft:
		return ":" + strings.Repeat("-", max(width-1, 3))
	case alignCenter:
		return ":" + strings.Repeat("-", max(width-2, 3)) + ":"
	case alignRight:
		return strings.Repeat("-", max(width-1, 3)) + ":"
	}
	return strings.Repeat("-", width)
}

func cleanCell(text string) string {
	text = flattenBlock(text)
	return cellEscaper.Replace(text)
}
