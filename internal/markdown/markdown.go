// Package markdown converts the chat Markdown subset into HTML fragments and
// plain-text previews.
//
// A document is read line by line into block events. Runs of table lines are
// buffered and formatted as one table, and prose is tokenized by the inline
// parser. Both renderers consume the same events. Every call is
// self-contained, so the functions are safe for concurrent use.
package markdown

import "strings"

// RenderHTML converts markdown into an HTML fragment. Literal text is escaped;
// malformed or unterminated constructs are closed rather than rejected.
func RenderHTML(markdown string) string {
	if markdown == "" {
		return ""
	}
	return renderHTML(parseDocument(markdown))
}

// RenderText renders markdown as terminal-safe plain text. width limits the
// width of tables and rules; zero or less means unlimited.
func RenderText(markdown string, width int) string {
	if markdown == "" {
		return ""
	}
	lines := renderText(parseDocument(markdown), textRenderOptions{MaxWidth: width})
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
