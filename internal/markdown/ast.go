package markdown

// blockState is the single open block of the parser. Lists, blockquotes,
// fences and tables are mutually exclusive by construction.
type blockState int

const (
	stateNone blockState = iota
	stateUnorderedList
	stateOrderedList
	stateBlockquote
	stateCodeFence
	stateTable
)

type blockEventKind int

const (
	eventBreak blockEventKind = iota
	eventHeading
	eventParagraph
	eventRule
	eventImageLine
	eventListOpen
	eventListItem
	eventListClose
	eventQuoteOpen
	eventQuoteLine
	eventQuoteClose
	eventCodeOpen
	eventCodeLine
	eventCodeClose
	eventTable
)

type taskState int

const (
	taskNone taskState = iota
	taskOpen
	taskDone
)

// blockEvent is one unit of block-level output, in document order.
type blockEvent struct {
	kind    blockEventKind
	level   int
	ordered bool
	start   int
	task    taskState
	info    string
	literal string
	text    []markdownInline
	table   markdownTable
}

type markdownInlineType int

const (
	inlineText markdownInlineType = iota
	inlineEmphasis
	inlineStrong
	inlineStrike
	inlineCode
	inlineLink
	inlineImage
	inlineLineBreak
)

type markdownInline struct {
	kind        markdownInlineType
	literal     string
	children    []markdownInline
	destination string
	newTab      bool
}

// tableRow holds the inline content of each cell.
type tableRow [][]markdownInline

type markdownTable struct {
	header []tableRow
	body   []tableRow
	align  []tableAlignment
}

type tableAlignment int

const (
	alignDefault tableAlignment = iota
	alignLeft
	alignCenter
	alignRight
)

func alignAt(idx int, align []tableAlignment) tableAlignment {
	if idx < len(align) {
		return align[idx]
	}
	return alignDefault
}
