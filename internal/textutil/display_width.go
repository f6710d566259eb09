package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		width := runewidth.RuneWidth(ru)
		if width < 1 {
			width = 1
		}
		column += width
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text in terminal cells. Width is
// measured per grapheme cluster so emoji sequences count once.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += clusterWidth(g.Str())
	}
	return width
}

// Truncate shortens text to at most width cells, appending tail when anything
// was cut. Clusters are never split.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	tailWidth := DisplayWidth(tail)
	if tailWidth >= width {
		return Truncate(tail, width, "")
	}

	target := width - tailWidth
	var b strings.Builder
	cur := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := clusterWidth(cluster)
		if cur+w > target {
			break
		}
		b.WriteString(cluster)
		cur += w
	}
	b.WriteString(tail)
	return b.String()
}

func clusterWidth(cluster string) int {
	w := uniseg.StringWidth(cluster)
	if w <= 0 {
		w = runewidth.StringWidth(cluster)
	}
	if w <= 0 {
		w = 1
	}
	return w
}
