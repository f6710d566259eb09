package markdown

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// escapeHTML escapes literal content and attribute values. Quotes are escaped
// too, so the result is safe inside double-quoted attributes.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}

// htmlRenderer appends HTML fragments for block events to one buffer.
type htmlRenderer struct {
	b         strings.Builder
	codeLines int
}

func renderHTML(events []blockEvent) string {
	var r htmlRenderer
	for _, ev := range events {
		r.writeEvent(ev)
	}
	return r.b.String()
}

func (r *htmlRenderer) writeEvent(ev blockEvent) {
	b := &r.b
	switch ev.kind {
	case eventBreak:
		b.WriteString("<br/>")
	case eventHeading:
		level := strconv.Itoa(ev.level)
		b.WriteString("<h" + level + ">")
		writeInlinesHTML(b, ev.text)
		b.WriteString("</h" + level + ">")
	case eventParagraph:
		b.WriteString("<p>")
		writeInlinesHTML(b, ev.text)
		b.WriteString("</p>")
	case eventRule:
		b.WriteString("<hr/>")
	case eventImageLine:
		writeInlinesHTML(b, ev.text)
	case eventListOpen:
		switch {
		case !ev.ordered:
			b.WriteString("<ul>")
		case ev.start != 1:
			b.WriteString(`<ol start="` + strconv.Itoa(ev.start) + `">`)
		default:
			b.WriteString("<ol>")
		}
	case eventListItem:
		b.WriteString("<li>")
		switch ev.task {
		case taskOpen:
			b.WriteString(`<input type="checkbox" disabled/>`)
		case taskDone:
			b.WriteString(`<input type="checkbox" disabled checked/>`)
		}
		if ev.task != taskNone && len(ev.text) > 0 {
			b.WriteByte(' ')
		}
		writeInlinesHTML(b, ev.text)
		b.WriteString("</li>")
	case eventListClose:
		if ev.ordered {
			b.WriteString("</ol>")
		} else {
			b.WriteString("</ul>")
		}
	case eventQuoteOpen:
		b.WriteString("<blockquote>")
	case eventQuoteLine:
		b.WriteString("<p>")
		writeInlinesHTML(b, ev.text)
		b.WriteString("</p>")
	case eventQuoteClose:
		b.WriteString("</blockquote>")
	case eventCodeOpen:
		r.codeLines = 0
		if ev.info == "" {
			b.WriteString("<pre><code>")
		} else {
			b.WriteString(`<pre><code class="language-` + escapeHTML(ev.info) + `">`)
		}
	case eventCodeLine:
		if r.codeLines > 0 {
			b.WriteByte('\n')
		}
		r.codeLines++
		b.WriteString(escapeHTML(ev.literal))
	case eventCodeClose:
		b.WriteString("</code></pre>")
	case eventTable:
		writeTableHTML(b, ev.table)
	}
}

func writeInlinesHTML(b *strings.Builder, inlines []markdownInline) {
	for _, inline := range inlines {
		switch inline.kind {
		case inlineText:
			b.WriteString(escapeHTML(inline.literal))
		case inlineEmphasis:
			b.WriteString("<em>")
			writeInlinesHTML(b, inline.children)
			b.WriteString("</em>")
		case inlineStrong:
			b.WriteString("<strong>")
			writeInlinesHTML(b, inline.children)
			b.WriteString("</strong>")
		case inlineStrike:
			b.WriteString("<del>")
			writeInlinesHTML(b, inline.children)
			b.WriteString("</del>")
		case inlineCode:
			b.WriteString("<code>")
			b.WriteString(escapeHTML(inline.literal))
			b.WriteString("</code>")
		case inlineLineBreak:
			b.WriteString("<br/>")
		case inlineLink:
			dest, ok := sanitizeLinkDestination(inline.destination)
			if !ok {
				writeInlinesHTML(b, inline.children)
				continue
			}
			b.WriteString(`<a href="` + escapeHTML(dest) + `"`)
			if inline.newTab {
				b.WriteString(` target="_blank" rel="noopener noreferrer"`)
			}
			b.WriteString(">")
			writeInlinesHTML(b, inline.children)
			b.WriteString("</a>")
		case inlineImage:
			src, ok := sanitizeLinkDestination(inline.destination)
			if !ok {
				b.WriteString(escapeHTML(inline.literal))
				continue
			}
			alt := escapeHTML(inline.literal)
			b.WriteString(`<img src="` + escapeHTML(src) + `" alt="` + alt + `" title="` + alt + `"/>`)
		}
	}
}

func writeTableHTML(b *strings.Builder, tbl markdownTable) {
	b.WriteString("<table>")
	if len(tbl.header) > 0 {
		b.WriteString("<thead>")
		for _, row := range tbl.header {
			writeTableRowHTML(b, row, "th", tbl.align)
		}
		b.WriteString("</thead>")
	}
	if len(tbl.body) > 0 {
		b.WriteString("<tbody>")
		for _, row := range tbl.body {
			writeTableRowHTML(b, row, "td", tbl.align)
		}
		b.WriteString("</tbody>")
	}
	b.WriteString("</table>")
}

func writeTableRowHTML(b *strings.Builder, row tableRow, tag string, align []tableAlignment) {
	b.WriteString("<tr>")
	for i, cell := range row {
		b.WriteString("<" + tag + alignStyle(alignAt(i, align)) + ">")
		writeInlinesHTML(b, cell)
		b.WriteString("</" + tag + ">")
	}
	b.WriteString("</tr>")
}

func alignStyle(a tableAlignment) string {
	switch a {
	case alignLeft:
		return ` style="text-align:left"`
	case alignCenter:
		return ` style="text-align:center"`
	case alignRight:
		return ` style="text-align:right"`
	}
	return ""
}
