package markdown

import (
	"strconv"
	"strings"

	textutil "github.com/kk-code-lab/chatmd/internal/textutil"
)

const defaultRuleWidth = 24

type textRenderOptions struct {
	// MaxWidth clamps tables and rules (in terminal cells). Zero means unlimited.
	MaxWidth int
}

// textRenderer turns block events into terminal-safe preview lines.
type textRenderer struct {
	opts      textRenderOptions
	lines     []string
	ordered   bool
	itemIndex int
	listStart int
}

func renderText(events []blockEvent, opts textRenderOptions) []string {
	r := textRenderer{opts: opts}
	for _, ev := range events {
		r.writeEvent(ev)
	}
	for i, line := range r.lines {
		r.lines[i] = textutil.SanitizeTerminalText(line)
	}
	return r.lines
}

func (r *textRenderer) add(lines ...string) {
	r.lines = append(r.lines, lines...)
}

func (r *textRenderer) writeEvent(ev blockEvent) {
	switch ev.kind {
	case eventBreak:
		if len(r.lines) > 0 && r.lines[len(r.lines)-1] != "" {
			r.add("")
		}
	case eventHeading:
		text := renderInlines(ev.text)
		r.add(text)
		switch ev.level {
		case 1:
			r.add(strings.Repeat("═", max(textutil.DisplayWidth(text), 1)))
		case 2:
			r.add(strings.Repeat("─", max(textutil.DisplayWidth(text), 1)))
		}
	case eventParagraph, eventImageLine:
		r.add(renderParagraphLines(ev.text)...)
	case eventRule:
		width := defaultRuleWidth
		if r.opts.MaxWidth > 0 && r.opts.MaxWidth < width {
			width = r.opts.MaxWidth
		}
		r.add(strings.Repeat("─", width))
	case eventListOpen:
		r.ordered = ev.ordered
		r.itemIndex = 0
		r.listStart = ev.start
	case eventListItem:
		bullet := bulletSymbol(r.ordered, r.itemIndex, r.listStart)
		r.itemIndex++
		switch ev.task {
		case taskOpen:
			bullet += " [ ]"
		case taskDone:
			bullet += " [x]"
		}
		lines := renderParagraphLines(ev.text)
		pad := strings.Repeat(" ", textutil.DisplayWidth(bullet)+1)
		for i, line := range lines {
			if i == 0 {
				r.add(strings.TrimRight(bullet+" "+line, " "))
				continue
			}
			r.add(pad + line)
		}
	case eventQuoteLine:
		for _, line := range renderParagraphLines(ev.text) {
			r.add(strings.TrimRight("│ "+line, " "))
		}
	case eventCodeOpen:
		if ev.info != "" {
			r.add("    [" + ev.info + "]")
		}
	case eventCodeLine:
		r.add("    " + textutil.ExpandTabs(ev.literal, textutil.DefaultTabWidth))
	case eventTable:
		r.add(formatTextTable(ev.table, r.opts.MaxWidth)...)
	}
}

func bulletSymbol(ordered bool, idx int, start int) string {
	if !ordered {
		return "•"
	}
	return strconv.Itoa(start+idx) + "."
}

// renderParagraphLines renders inlines as plain text, starting a new line at
// every forced break.
func renderParagraphLines(inlines []markdownInline) []string {
	text := renderInlines(inlines)
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func renderInlines(inlines []markdownInline) string {
	var builder strings.Builder
	writeInlinesText(&builder, inlines)
	return strings.TrimSpace(builder.String())
}

func writeInlinesText(b *strings.Builder, inlines []markdownInline) {
	for _, inline := range inlines {
		switch inline.kind {
		case inlineText, inlineCode:
			b.WriteString(inline.literal)
		case inlineLineBreak:
			b.WriteRune('\n')
		case inlineEmphasis, inlineStrong, inlineStrike:
			writeInlinesText(b, inline.children)
		case inlineLink:
			var label strings.Builder
			writeInlinesText(&label, inline.children)
			b.WriteString(label.String())
			if dest, ok := sanitizeLinkDestination(inline.destination); ok && dest != "" && dest != label.String() {
				b.WriteString(" (" + dest + ")")
			}
		case inlineImage:
			b.WriteString(inline.literal)
			if dest, ok := sanitizeLinkDestination(inline.destination); ok && dest != "" {
				b.WriteString(" (" + dest + ")")
			}
		}
	}
}
