// Package chatmd renders the Markdown used in chat messages and help text
// into HTML that can be injected straight into a rendering surface.
//
// The supported syntax is a fixed subset: ATX and setext headings, bullet,
// numbered and task lists, blockquotes, fenced code, pipe tables with column
// alignment, images, links (including the [text](url){_blank} new-tab form),
// autolinks, emphasis, strong, strikethrough, inline code, forced line breaks
// and horizontal rules. Literal text is HTML-escaped.
package chatmd

import (
	"github.com/kk-code-lab/chatmd/internal/markdown"
	textutil "github.com/kk-code-lab/chatmd/internal/textutil"
)

// RenderMarkdown converts markdown to an HTML fragment. An empty document
// yields an empty string. It never fails: unterminated lists, quotes, fences
// and tables are closed at the end of input.
func RenderMarkdown(markdownText string) string {
	return markdown.RenderHTML(markdownText)
}

// RenderMarkdownBytes is RenderMarkdown for raw message bytes. Nil input yields
// an empty string. A UTF-8 BOM is dropped, BOM-marked UTF-16 is decoded and
// the text is NFC-normalised before rendering.
func RenderMarkdownBytes(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	return markdown.RenderHTML(textutil.NormalizeTextContent(src))
}

// RenderPlainText renders markdown as a plain-text preview suitable for
// notifications or a terminal. width bounds tables and rules in terminal
// cells; zero or less means unlimited.
func RenderPlainText(markdownText string, width int) string {
	return markdown.RenderText(markdownText, width)
}
