package markdown

import "strings"

// parseTable turns buffered pipe-delimited lines into a table. The first
// separator row splits header from body and fixes column alignment; without
// one every row is body.
func parseTable(lines []string) markdownTable {
	var tbl markdownTable
	var rows [][]string
	separator := -1
	for _, line := range lines {
		cells := splitTableRow(line)
		if separator == -1 && looksLikeTableSeparator(cells) {
			separator = len(rows)
			tbl.align = parseTableAlignment(cells)
			continue
		}
		rows = append(rows, cells)
	}

	for idx, cells := range rows {
		row := make(tableRow, len(cells))
		for j, cell := range cells {
			row[j] = parseInline(cell)
		}
		if idx < separator {
			tbl.header = append(tbl.header, row)
		} else {
			tbl.body = append(tbl.body, row)
		}
	}
	return tbl
}

func isSeparatorRow(line string) bool {
	return looksLikeTableSeparator(splitTableRow(line))
}

func looksLikeTableSeparator(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		body := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
		if body == "" || strings.Trim(body, "-") != "" {
			return false
		}
	}
	return true
}

func parseTableAlignment(cells []string) []tableAlignment {
	align := make([]tableAlignment, len(cells))
	for i, cell := range cells {
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			align[i] = alignCenter
		case right:
			align[i] = alignRight
		case left:
			align[i] = alignLeft
		default:
			align[i] = alignDefault
		}
	}
	return align
}

// splitTableRow splits a row into trimmed cells, dropping the empty cell that
// a leading or trailing pipe produces.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	parts := splitPipes(line)
	if strings.HasPrefix(line, "|") && len(parts) > 0 {
		parts = parts[1:]
	}
	if len(line) > 1 && strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitPipes splits on pipes outside code spans. An escaped pipe becomes a
// literal one; other escapes are left for the inline parser.
func splitPipes(line string) []string {
	var parts []string
	var buf []rune
	inCode := false
	backticks := 0
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) && runes[i+1] == '|' {
				buf = append(buf, '|')
				i++
				continue
			}
		case '`':
			run := countRepeat(runes[i:], '`')
			if !inCode {
				inCode = findClosingBackticks(runes[i+run:], run) != -1
				backticks = run
			} else if run == backticks {
				inCode = false
			}
			buf = append(buf, runes[i:i+run]...)
			i += run - 1
			continue
		case '|':
			if !inCode {
				parts = append(parts, string(buf))
				buf = buf[:0]
				continue
			}
		}
		buf = append(buf, r)
	}
	parts = append(parts, string(buf))
	return parts
}
