package markdown

import (
	"strconv"
	"strings"
)

const codeFence = "```"

// pendingLine is a plain paragraph line whose output is held back until the
// next line is classified, so a setext underline can still promote it.
type pendingLine struct {
	text      string
	hardBreak bool
}

type blockParser struct {
	events  []blockEvent
	state   blockState
	table   []string
	pending *pendingLine
}

func parseDocument(text string) []blockEvent {
	lines := splitLines(text)
	p := &blockParser{}
	for i, line := range lines {
		p.parseLine(line, i < len(lines)-1)
	}
	p.finish()
	return p.events
}

// splitLines splits on LF, drops a trailing CR from each line and treats a
// final LF as the end of the last line rather than the start of a new one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseLine classifies one line. followed reports whether another line comes
// after it, which is what makes a trailing double space a forced break.
func (p *blockParser) parseLine(line string, followed bool) {
	trimmed := strings.TrimLeft(line, " \t")

	if p.state == stateCodeFence {
		if strings.HasPrefix(trimmed, codeFence) {
			p.closeBlock()
			return
		}
		p.emit(blockEvent{kind: eventCodeLine, literal: line})
		return
	}

	if isBlankLine(line) {
		p.flushTable()
		p.flushPending()
		p.closeBlock()
		p.emit(blockEvent{kind: eventBreak})
		return
	}

	if info, ok := detectFence(trimmed); ok {
		p.flushTable()
		p.flushPending()
		p.closeBlock()
		p.state = stateCodeFence
		p.emit(blockEvent{kind: eventCodeOpen, info: info})
		return
	}

	if p.isTableLine(trimmed) {
		p.bufferTableLine(trimmed)
		return
	}
	p.flushTable()

	if level, content, ok := parseHeading(trimmed); ok {
		p.flushPending()
		p.closeBlock()
		p.emit(blockEvent{kind: eventHeading, level: level, text: parseInline(content)})
		return
	}

	if level, ok := setextLevel(trimmed); ok && p.pending != nil {
		text := p.pending.text
		p.pending = nil
		p.emit(blockEvent{kind: eventHeading, level: level, text: parseInline(text)})
		return
	}

	if marker, ok := parseListMarker(trimmed); ok {
		p.flushPending()
		p.openList(marker)
		item := blockEvent{
			kind: eventListItem,
			task: marker.task,
			text: parseInline(withBreak(marker.content, line, followed)),
		}
		p.emit(item)
		return
	}

	if strings.HasPrefix(trimmed, ">") {
		p.flushPending()
		if p.state != stateBlockquote {
			p.closeBlock()
			p.state = stateBlockquote
			p.emit(blockEvent{kind: eventQuoteOpen})
		}
		rest := strings.TrimPrefix(trimmed[1:], " ")
		p.emit(blockEvent{kind: eventQuoteLine, text: parseInline(withBreak(rest, line, followed))})
		return
	}

	if isHorizontalRule(trimmed) {
		p.flushPending()
		p.closeBlock()
		p.emit(blockEvent{kind: eventRule})
		return
	}

	if strings.HasPrefix(trimmed, "![") {
		nodes := parseInline(strings.TrimSpace(trimmed))
		if len(nodes) > 0 && nodes[0].kind == inlineImage {
			p.flushPending()
			p.closeBlock()
			p.emit(blockEvent{kind: eventImageLine, text: nodes})
			return
		}
	}

	p.flushPending()
	p.closeBlock()
	p.pending = &pendingLine{
		text:      strings.TrimSpace(line),
		hardBreak: followed && hasHardBreak(line),
	}
}

func (p *blockParser) finish() {
	if p.state == stateCodeFence {
		p.closeBlock()
	}
	p.flushTable()
	p.flushPending()
	p.closeBlock()
}

func (p *blockParser) emit(ev blockEvent) {
	p.events = append(p.events, ev)
}

func (p *blockParser) flushPending() {
	if p.pending == nil {
		return
	}
	text := p.pending.text
	if p.pending.hardBreak {
		text += "  \n"
	}
	p.pending = nil
	p.emit(blockEvent{kind: eventParagraph, text: parseInline(text)})
}

// closeBlock emits the close event for the open list, blockquote or fence.
// Tables are closed by flushTable because they have content to emit.
func (p *blockParser) closeBlock() {
	switch p.state {
	case stateUnorderedList:
		p.emit(blockEvent{kind: eventListClose, ordered: false})
	case stateOrderedList:
		p.emit(blockEvent{kind: eventListClose, ordered: true})
	case stateBlockquote:
		p.emit(blockEvent{kind: eventQuoteClose})
	case stateCodeFence:
		p.emit(blockEvent{kind: eventCodeClose})
	case stateTable:
		p.flushTable()
	}
	p.state = stateNone
}

func (p *blockParser) openList(marker listMarker) {
	want := stateUnorderedList
	if marker.ordered {
		want = stateOrderedList
	}
	if p.state == want {
		return
	}
	p.closeBlock()
	p.state = want
	p.emit(blockEvent{kind: eventListOpen, ordered: marker.ordered, start: marker.number})
}

func (p *blockParser) isTableLine(trimmed string) bool {
	if !strings.Contains(trimmed, "|") {
		return false
	}
	if p.state == stateTable || strings.HasPrefix(trimmed, "|") {
		return true
	}
	return isSeparatorRow(trimmed)
}

func (p *blockParser) bufferTableLine(trimmed string) {
	if p.state != stateTable {
		var header string
		if p.pending != nil && strings.Contains(p.pending.text, "|") && isSeparatorRow(trimmed) {
			header = p.pending.text
			p.pending = nil
		}
		p.flushPending()
		p.closeBlock()
		p.state = stateTable
		if header != "" {
			p.table = append(p.table, header)
		}
	}
	p.table = append(p.table, strings.TrimSpace(trimmed))
}

func (p *blockParser) flushTable() {
	if p.state != stateTable {
		return
	}
	if len(p.table) > 0 {
		p.emit(blockEvent{kind: eventTable, table: parseTable(p.table)})
	}
	p.table = nil
	p.state = stateNone
}

// detectFence reports whether trimmed opens or closes a fence and returns the
// language token of an opening fence.
func detectFence(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, codeFence) {
		return "", false
	}
	fields := strings.Fields(strings.TrimLeft(trimmed, "`"))
	if len(fields) == 0 {
		return "", true
	}
	return fields[0], true
}

type listMarker struct {
	ordered bool
	number  int
	task    taskState
	content string
}

func parseListMarker(trimmed string) (listMarker, bool) {
	if trimmed == "" {
		return listMarker{}, false
	}

	if isBullet(trimmed[0]) {
		if len(trimmed) < 2 || !isSpaceOrTab(rune(trimmed[1])) {
			return listMarker{}, false
		}
		content := strings.TrimLeft(trimmed[2:], " \t")
		task, rest := parseTaskMarker(content)
		return listMarker{task: task, content: rest}, true
	}

	j := 0
	for j < len(trimmed) && trimmed[j] >= '0' && trimmed[j] <= '9' {
		j++
	}
	if j == 0 || j+1 >= len(trimmed) || trimmed[j] != '.' || !isSpaceOrTab(rune(trimmed[j+1])) {
		return listMarker{}, false
	}
	num, err := strconv.Atoi(trimmed[:j])
	if err != nil {
		num = 1
	}
	return listMarker{
		ordered: true,
		number:  num,
		content: strings.TrimLeft(trimmed[j+2:], " \t"),
	}, true
}

func parseTaskMarker(content string) (taskState, string) {
	if len(content) < 3 || content[0] != '[' || content[2] != ']' {
		return taskNone, content
	}
	var state taskState
	switch content[1] {
	case ' ':
		state = taskOpen
	case 'x', 'X':
		state = taskDone
	default:
		return taskNone, content
	}
	rest := content[3:]
	if rest != "" && !isSpaceOrTab(rune(rest[0])) {
		return taskNone, content
	}
	return state, strings.TrimLeft(rest, " \t")
}

func parseHeading(trimmed string) (int, string, bool) {
	level := countRepeatRune(trimmed, '#')
	if level == 0 || level > 6 || level >= len(trimmed) {
		return 0, "", false
	}
	if !isSpaceOrTab(rune(trimmed[level])) {
		return 0, "", false
	}
	return level, strings.TrimSpace(trimmed[level:]), true
}

func setextLevel(trimmed string) (int, bool) {
	indicator := strings.TrimSpace(trimmed)
	switch {
	case allRunes(indicator, '='):
		return 1, true
	case allRunes(indicator, '-'):
		return 2, true
	}
	return 0, false
}

func isHorizontalRule(trimmed string) bool {
	switch strings.TrimSpace(trimmed) {
	case "---", "***", "___":
		return true
	}
	return false
}

// withBreak appends the line terminator to content when the source line asks
// for a forced break, leaving the "  \n" rule to the inline parser.
func withBreak(content, line string, followed bool) string {
	content = strings.TrimSpace(content)
	if followed && hasHardBreak(line) {
		return content + "  \n"
	}
	return content
}

func hasHardBreak(line string) bool {
	return strings.HasSuffix(line, "  ") && !isBlankLine(line)
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isBullet(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '*'
}

func isSpaceOrTab(r rune) bool {
	return r == ' ' || r == '\t'
}

func allRunes(s string, target rune) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != target {
			return false
		}
	}
	return true
}

func countRepeatRune(text string, target rune) int {
	n := 0
	for _, r := range text {
		if r != target {
			break
		}
		n++
	}
	return n
}
