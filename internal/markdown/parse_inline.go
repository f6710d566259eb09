package markdown

import (
	"strings"
	"unicode"
)

const inlineRecursionLimit = 16

const newTabMarker = "{_blank}"

func parseInline(text string) []markdownInline {
	return parseInlineDepth(text, 0)
}

// parseInlineDepth tokenizes one line of prose. Nested spans recurse with
// depth+1; at the limit the remaining text is kept literal.
func parseInlineDepth(text string, depth int) []markdownInline {
	if text == "" {
		return nil
	}
	if depth >= inlineRecursionLimit {
		return []markdownInline{{kind: inlineText, literal: text}}
	}

	runes := []rune(text)
	var nodes []markdownInline
	var buf []rune

	flushText := func() {
		if len(buf) == 0 {
			return
		}
		nodes = append(nodes, markdownInline{kind: inlineText, literal: string(buf)})
		buf = buf[:0]
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) && isASCIIPunct(runes[i+1]) {
				buf = append(buf, runes[i+1])
				i += 2
				continue
			}
			buf = append(buf, r)
			i++
		case '\n':
			spaces := 0
			for len(buf) > 0 && buf[len(buf)-1] == ' ' {
				buf = buf[:len(buf)-1]
				spaces++
			}
			if spaces >= 2 {
				flushText()
				nodes = append(nodes, markdownInline{kind: inlineLineBreak})
			} else if i+1 < len(runes) {
				buf = append(buf, ' ')
			}
			i++
		case '`':
			count := countRepeat(runes[i:], '`')
			end := findClosingBackticks(runes[i+count:], count)
			if end == -1 {
				buf = append(buf, runes[i:i+count]...)
				i += count
				continue
			}
			flushText()
			code := runes[i+count : i+count+end]
			nodes = append(nodes, markdownInline{kind: inlineCode, literal: trimCodeSpan(code)})
			i += count + end + count
		case '!':
			if i+1 < len(runes) && runes[i+1] == '[' {
				if node, consumed, ok := parseLinkOrImage(runes[i:], true, depth); ok {
					flushText()
					nodes = append(nodes, node)
					i += consumed
					continue
				}
			}
			buf = append(buf, r)
			i++
		case '[':
			if node, consumed, ok := parseLinkOrImage(runes[i:], false, depth); ok {
				flushText()
				nodes = append(nodes, node)
				i += consumed
				continue
			}
			buf = append(buf, r)
			i++
		case '<':
			if brLen := detectBreakTag(runes[i:]); brLen > 0 {
				flushText()
				nodes = append(nodes, markdownInline{kind: inlineLineBreak})
				i += brLen
				continue
			}
			if end := findAutolinkEnd(runes[i+1:]); end >= 0 {
				candidate := string(runes[i+1 : i+1+end])
				if isAutolink(candidate) {
					flushText()
					nodes = append(nodes, markdownInline{
						kind:        inlineLink,
						children:    []markdownInline{{kind: inlineText, literal: candidate}},
						destination: candidate,
					})
					i += end + 2
					continue
				}
			}
			buf = append(buf, r)
			i++
		case '*', '_':
			run := countRepeat(runes[i:], r)
			if run >= 2 {
				run = 2
			}
			closeIdx := -1
			if opensEmphasis(runes, i, run, r) {
				closeIdx = findClosingDelimiter(runes, i+run, r, run)
			}
			if closeIdx == -1 {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			flushText()
			content := parseInlineDepth(string(runes[i+run:closeIdx]), depth+1)
			kind := inlineEmphasis
			if run == 2 {
				kind = inlineStrong
			}
			nodes = append(nodes, markdownInline{kind: kind, children: content})
			i = closeIdx + run
		case '~':
			run := countRepeat(runes[i:], r)
			if run != 2 {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			closeIdx := -1
			if i+run < len(runes) && !unicode.IsSpace(runes[i+run]) {
				closeIdx = findClosingDelimiter(runes, i+run, r, run)
			}
			if closeIdx == -1 {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			flushText()
			content := parseInlineDepth(string(runes[i+run:closeIdx]), depth+1)
			nodes = append(nodes, markdownInline{kind: inlineStrike, children: content})
			i = closeIdx + run
		default:
			buf = append(buf, r)
			i++
		}
	}

	flushText()
	return nodes
}

// opensEmphasis applies the flanking rules: the opener must be followed by
// non-space, and an underscore may not open inside a word.
func opensEmphasis(runes []rune, i, run int, delim rune) bool {
	next := i + run
	if next >= len(runes) || unicode.IsSpace(runes[next]) {
		return false
	}
	if delim == '_' && isAlnum(runes, i-1) {
		return false
	}
	return true
}

func parseLinkOrImage(runes []rune, isImage bool, depth int) (markdownInline, int, bool) {
	offset := 0
	if isImage {
		offset = 1
	}

	endText := findMatchingBracket(runes[offset+1:])
	if endText == -1 || offset+1+endText+1 >= len(runes) || runes[offset+1+endText+1] != '(' {
		return markdownInline{}, 0, false
	}

	closeParen, ok := findMatchingParen(runes[offset+1+endText+2:])
	if !ok {
		return markdownInline{}, 0, false
	}

	textEnd := offset + 1 + endText
	textRunes := runes[offset+1 : textEnd]
	destStart := textEnd + 2
	dest := strings.TrimSpace(string(runes[destStart : destStart+closeParen]))
	if strings.HasPrefix(dest, "<") && strings.HasSuffix(dest, ">") {
		dest = dest[1 : len(dest)-1]
	}
	consumed := destStart + closeParen + 1

	if isImage {
		return markdownInline{
			kind:        inlineImage,
			literal:     string(textRunes),
			destination: dest,
		}, consumed, true
	}

	node := markdownInline{
		kind:        inlineLink,
		children:    parseInlineDepth(string(textRunes), depth+1),
		destination: dest,
	}
	if strings.HasPrefix(string(runes[consumed:]), newTabMarker) {
		node.newTab = true
		consumed += len(newTabMarker)
	}
	return node, consumed, true
}

func findMatchingBracket(runes []rune) int {
	depth := 0
	for i := 0; i < len(runes); {
		switch r := runes[i]; r {
		case '\\':
			i += 2
			continue
		case '`':
			i = skipCodeSpan(runes, i)
			continue
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
		i++
	}
	return -1
}

func findMatchingParen(runes []rune) (int, bool) {
	depth := 0
	for i := 0; i < len(runes); {
		switch r := runes[i]; r {
		case '\\':
			i += 2
			continue
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i, true
			}
			depth--
		}
		i++
	}
	return -1, false
}

func findClosingBackticks(runes []rune, count int) int {
	for i := 0; i < len(runes); {
		if runes[i] != '`' {
			i++
			continue
		}
		run := countRepeat(runes[i:], '`')
		if run == count {
			return i
		}
		i += run
	}
	return -1
}

// skipCodeSpan returns the index just past the code span opening at i, or
// i+run when the backticks are unmatched.
func skipCodeSpan(runes []rune, i int) int {
	run := countRepeat(runes[i:], '`')
	end := findClosingBackticks(runes[i+run:], run)
	if end == -1 {
		return i + run
	}
	return i + run + end + run
}

// findClosingDelimiter returns the index of the closing delimiter run of
// length count. The closer is taken from the end of a longer run, code spans
// are skipped and a double run never closes single emphasis.
func findClosingDelimiter(runes []rune, start int, delim rune, count int) int {
	for i := start; i < len(runes); {
		switch runes[i] {
		case '\\':
			i += 2
			continue
		case '`':
			i = skipCodeSpan(runes, i)
			continue
		case delim:
		default:
			i++
			continue
		}
		run := countRepeat(runes[i:], delim)
		if run < count || (count == 1 && run == 2) || i == start || unicode.IsSpace(runes[i-1]) {
			i += run
			continue
		}
		closeIdx := i + run - count
		if delim == '_' && isAlnum(runes, closeIdx+count) {
			i += run
			continue
		}
		return closeIdx
	}
	return -1
}

func trimCodeSpan(code []rune) string {
	if len(code) >= 2 && code[0] == ' ' && code[len(code)-1] == ' ' && strings.TrimSpace(string(code)) != "" {
		code = code[1 : len(code)-1]
	}
	return string(code)
}

func isAlnum(runes []rune, idx int) bool {
	if idx < 0 || idx >= len(runes) {
		return false
	}
	return unicode.IsLetter(runes[idx]) || unicode.IsDigit(runes[idx])
}

func isASCIIPunct(r rune) bool {
	if r >= unicode.MaxASCII {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func countRepeat(runes []rune, target rune) int {
	n := 0
	for n < len(runes) && runes[n] == target {
		n++
	}
	return n
}

func findAutolinkEnd(runes []rune) int {
	for i, r := range runes {
		switch r {
		case '>':
			return i
		case ' ', '\t', '<':
			return -1
		}
	}
	return -1
}

func isAutolink(s string) bool {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(strings.ToLower(s), prefix) && len(s) > len(prefix) {
			return true
		}
	}
	return false
}

func detectBreakTag(runes []rune) int {
	limit := len(runes)
	if limit > 6 {
		limit = 6
	}
	lower := strings.ToLower(string(runes[:limit]))
	for _, tag := range []string{"<br>", "<br/>", "<br />"} {
		if strings.HasPrefix(lower, tag) {
			return len(tag)
		}
	}
	return 0
}
