package markdown

import (
	"strings"

	textutil "github.com/kk-code-lab/chatmd/internal/textutil"
)

const (
	minColumnWidth = 3
	cellEllipsis   = "…"
)

type tableBorders struct {
	topLeft, topSep, topRight          string
	midLeft, midSep, midRight          string
	bottomLeft, bottomSep, bottomRight string
	horizontal, vertical               string
}

func defaultTableBorders() tableBorders {
	return tableBorders{
		topLeft:     "┌",
		topSep:      "┬",
		topRight:    "┐",
		midLeft:     "├",
		midSep:      "┼",
		midRight:    "┤",
		bottomLeft:  "└",
		bottomSep:   "┴",
		bottomRight: "┘",
		horizontal:  "─",
		vertical:    "│",
	}
}

// formatTextTable draws a box table. Short rows are padded with empty cells so
// the grid stays rectangular; maxWidth (when positive) bounds the total width.
func formatTextTable(tbl markdownTable, maxWidth int) []string {
	header := plainRows(tbl.header)
	body := plainRows(tbl.body)
	widths := computeColumnWidths(header, body)
	if len(widths) == 0 {
		return nil
	}
	widths = clampColumnWidths(widths, maxWidth)
	borders := defaultTableBorders()

	hCells := make([]string, len(widths))
	for i, w := range widths {
		hCells[i] = strings.Repeat(borders.horizontal, w+2)
	}

	lines := []string{buildBorderLine(hCells, borders.topLeft, borders.topSep, borders.topRight)}
	for _, row := range header {
		lines = append(lines, renderTableRow(row, widths, tbl.align, borders.vertical))
	}
	if len(header) > 0 && len(body) > 0 {
		lines = append(lines, buildBorderLine(hCells, borders.midLeft, borders.midSep, borders.midRight))
	}
	for _, row := range body {
		lines = append(lines, renderTableRow(row, widths, tbl.align, borders.vertical))
	}
	lines = append(lines, buildBorderLine(hCells, borders.bottomLeft, borders.bottomSep, borders.bottomRight))
	return lines
}

func plainRows(rows []tableRow) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			text := strings.ReplaceAll(renderInlines(cell), "\n", " ")
			out[i][j] = textutil.ExpandTabs(text, textutil.DefaultTabWidth)
		}
	}
	return out
}

func buildBorderLine(columns []string, left, sep, right string) string {
	return left + strings.Join(columns, sep) + right
}

func computeColumnWidths(groups ...[][]string) []int {
	var widths []int
	for _, rows := range groups {
		for _, row := range rows {
			for i, cell := range row {
				if i >= len(widths) {
					widths = append(widths, 0)
				}
				if w := textutil.DisplayWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func clampColumnWidths(widths []int, maxWidth int) []int {
	if maxWidth <= 0 || len(widths) == 0 {
		return widths
	}
	total := tableWidth(widths)
	for total > maxWidth {
		idx := widestColumn(widths, minColumnWidth)
		if idx == -1 {
			break
		}
		widths[idx]--
		total--
	}
	return widths
}

func widestColumn(widths []int, minWidth int) int {
	maxIdx := -1
	maxVal := minWidth
	for i, w := range widths {
		if w > maxVal {
			maxVal = w
			maxIdx = i
		}
	}
	return maxIdx
}

func tableWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	// Each column gets 2 spaces + 1 border, plus one extra border at the end.
	return total + len(widths)*3 + 1
}

func renderTableRow(cells []string, widths []int, align []tableAlignment, vertical string) string {
	var b strings.Builder
	b.WriteString(vertical + " ")
	for i, width := range widths {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		b.WriteString(alignCell(text, width, alignAt(i, align)))
		if i == len(widths)-1 {
			b.WriteString(" " + vertical)
		} else {
			b.WriteString(" " + vertical + " ")
		}
	}
	return b.String()
}

func alignCell(text string, width int, alignment tableAlignment) string {
	text = textutil.Truncate(text, width, cellEllipsis)
	space := width - textutil.DisplayWidth(text)
	if space < 0 {
		space = 0
	}
	left, right := 0, space
	switch alignment {
	case alignCenter:
		left = space / 2
		right = space - left
	case alignRight:
		left = space
		right = 0
	}
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
