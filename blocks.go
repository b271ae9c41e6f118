package commonmark

import "bytes"

// codeIndent is the column threshold for indented code blocks.
const codeIndent = 4

// blockParser is the phase-1 state machine. It consumes the document line
// by line, keeps the path of open blocks from the document root to the
// tip, and decides per line which blocks continue, close, or open.
type blockParser struct {
	arena *nodeArena
	doc   *Node
	tip   *Node // deepest open block

	line       []byte
	lineNumber int

	// Cursor state within the current line. column is the logical column
	// of offset; partialTab is set when a tab at offset has been consumed
	// only partially, in which case the tab's remaining width is prepended
	// as spaces whenever the rest of the line is taken as content.
	offset     int
	column     int
	partialTab bool

	// Results of findNextNonspace.
	nextNonspace       int
	nextNonspaceColumn int
	indent             int
	indented           bool
	blank              bool

	allClosed            bool
	lastMatchedContainer *Node
	lazy                 bool // current line reached the tip lazily

	refs   refMap
	refdef *refDefParser // pending partial link reference definition
}

func newBlockParser() *blockParser {
	arena := &nodeArena{}
	doc := arena.newNode(KindDocument, 1)
	doc.open = true
	return &blockParser{
		arena: arena,
		doc:   doc,
		tip:   doc,
		refs:  make(refMap),
	}
}

// parseBlocks runs phase 1 over the whole input and returns the document
// root. The reference map is left on the parser for phase 2.
func (p *blockParser) parseBlocks(lines [][]byte) *Node {
	for _, line := range lines {
		p.processLine(line)
	}
	if p.refdef != nil {
		p.resolveRefDef(p.refdef.terminate(), true)
	}
	for p.tip != nil {
		p.finalize(p.tip, p.lineNumber)
	}
	return p.doc
}

// findNextNonspace locates the next non-space, non-tab byte from the
// current offset and records the indentation in columns.
func (p *blockParser) findNextNonspace() {
	i := p.offset
	cols := p.column
	for i < len(p.line) && isSpaceOrTab(p.line[i]) {
		cols = advanceColumn(cols, p.line[i])
		i++
	}
	p.blank = i >= len(p.line)
	p.nextNonspace = i
	p.nextNonspaceColumn = cols
	p.indent = cols - p.column
	p.indented = p.indent >= codeIndent
}

// advanceOffset moves the cursor forward by count bytes, or by count
// columns when columns is set. Consuming part of a tab's width sets
// partialTab without moving past the tab.
func (p *blockParser) advanceOffset(count int, columns bool) {
	for count > 0 && p.offset < len(p.line) {
		c := p.line[p.offset]
		if c == '\t' {
			charsToTab := tabStop - p.column%tabStop
			if columns {
				p.partialTab = charsToTab > count
				advance := charsToTab
				if advance > count {
					advance = count
				}
				p.column += advance
				if !p.partialTab {
					p.offset++
				}
				count -= advance
			} else {
				p.partialTab = false
				p.column += charsToTab
				p.offset++
				count--
			}
		} else {
			p.partialTab = false
			p.offset++
			p.column++
			count--
		}
	}
}

func (p *blockParser) advanceNextNonspace() {
	p.offset = p.nextNonspace
	p.column = p.nextNonspaceColumn
	p.partialTab = false
}

func (p *blockParser) peek(pos int) byte {
	if pos < len(p.line) {
		return p.line[pos]
	}
	return 0
}

// restOfLine returns the line content from the current offset. When a tab
// was partially consumed, its remaining column width is prepended as
// literal spaces; this reconciliation happens exactly once per consumed
// prefix, so downstream indent checks see stable columns.
func (p *blockParser) restOfLine() []byte {
	if !p.partialTab {
		return p.line[p.offset:]
	}
	spaces := tabStop - p.column%tabStop
	rest := make([]byte, 0, spaces+len(p.line)-p.offset-1)
	for i := 0; i < spaces; i++ {
		rest = append(rest, ' ')
	}
	return append(rest, p.line[p.offset+1:]...)
}

// addLine appends the rest of the current line to the tip's content.
func (p *blockParser) addLine() {
	p.tip.content = append(p.tip.content, p.restOfLine()...)
	p.tip.content = append(p.tip.content, '\n')
}

// addChild opens a new block as a child of the tip, closing any open
// blocks that cannot contain it.
func (p *blockParser) addChild(kind NodeKind) *Node {
	for !p.tip.canContain(kind) {
		p.finalize(p.tip, p.lineNumber-1)
	}
	node := p.arena.newNode(kind, p.lineNumber)
	node.open = true
	p.tip.AppendChild(node)
	p.tip = node
	return node
}

// closeUnmatchedBlocks pops the tip down to the last matched container. A
// pending reference definition whose anchor is about to close is resolved
// first.
func (p *blockParser) closeUnmatchedBlocks() {
	if p.allClosed {
		return
	}
	if p.refdef != nil && p.refdef.container == p.tip && p.tip != p.lastMatchedContainer {
		p.resolveRefDef(p.refdef.terminate(), false)
	}
	for p.tip != p.lastMatchedContainer {
		p.finalize(p.tip, p.lineNumber-1)
	}
	p.allClosed = true
}

// blockContinue result codes.
const (
	blockMatched    = 0
	blockNotMatched = 1
	blockLineDone   = 2 // the line was consumed entirely (closing fence)
)

// blockContinue applies a block's continuation rule to the current line.
func (p *blockParser) blockContinue(n *Node) int {
	switch n.kind {
	case KindDocument, KindList:
		return blockMatched

	case KindBlockQuote:
		if p.indented || p.peek(p.nextNonspace) != '>' {
			return blockNotMatched
		}
		p.advanceNextNonspace()
		p.advanceOffset(1, false)
		if isSpaceOrTab(p.peek(p.offset)) {
			p.advanceOffset(1, true)
		}
		return blockMatched

	case KindItem:
		if p.blank {
			if n.firstChild == nil && !(p.refdef != nil && p.refdef.container == n) {
				// Blank line after an empty list item: the item is done.
				return blockNotMatched
			}
			p.advanceNextNonspace()
			return blockMatched
		}
		if p.indent >= n.contentIndent {
			p.advanceOffset(n.contentIndent, true)
			return blockMatched
		}
		return blockNotMatched

	case KindCodeBlock:
		if n.fenceChar != 0 {
			if p.indent <= 3 && p.peek(p.nextNonspace) == n.fenceChar &&
				scanCodeFenceClose(p.line[p.nextNonspace:], n.fenceChar, n.fenceLength) {
				p.finalize(n, p.lineNumber)
				return blockLineDone
			}
			// Strip up to the opening fence's indent.
			for i := n.fenceIndent; i > 0 && isSpaceOrTab(p.peek(p.offset)); i-- {
				p.advanceOffset(1, true)
			}
			return blockMatched
		}
		if p.indent >= codeIndent {
			p.advanceOffset(codeIndent, true)
			return blockMatched
		}
		if p.blank {
			p.advanceNextNonspace()
			return blockMatched
		}
		return blockNotMatched

	case KindHTMLBlock:
		if p.blank && (n.htmlBlockType == 6 || n.htmlBlockType == 7) {
			return blockNotMatched
		}
		return blockMatched

	case KindParagraph:
		if p.blank {
			return blockNotMatched
		}
		return blockMatched

	default: // heading, thematic_break
		return blockNotMatched
	}
}

// paragraphContext reports whether new blocks opened at container would
// interrupt paragraph-like content: an open paragraph, or a pending link
// reference definition anchored there.
func (p *blockParser) paragraphContext(container *Node) bool {
	if container.kind == KindParagraph {
		return true
	}
	return p.refdef != nil && p.refdef.container == container
}

// interruptRefDef resolves a pending reference definition because a
// structural element is about to open.
func (p *blockParser) interruptRefDef() {
	if p.refdef != nil {
		p.resolveRefDef(p.refdef.terminate(), false)
	}
}

// restoreParagraph re-injects buffered definition lines as an open
// paragraph under the block the definition was anchored to.
func (p *blockParser) restoreParagraph(anchor *Node, lines [][]byte, firstLine int) *Node {
	para := p.arena.newNode(KindParagraph, firstLine)
	para.open = true
	anchor.AppendChild(para)
	p.tip = para
	for _, line := range lines {
		para.content = append(para.content, line...)
		para.content = append(para.content, '\n')
	}
	return para
}

// resolveRefDef applies the outcome of feeding or terminating the pending
// definition. closeRestored finalizes any restored paragraph immediately
// (used on blank lines and at end of input).
func (p *blockParser) resolveRefDef(action refAction, closeRestored bool) {
	if action == refConsumed {
		return
	}
	r := p.refdef
	p.refdef = nil
	if action != refAbandoned {
		r.record(p.refs)
	}
	lines, firstLine := r.flushLines(action)
	var para *Node
	if len(lines) > 0 {
		para = p.restoreParagraph(r.container, lines, firstLine)
	}
	if para != nil && closeRestored {
		p.finalize(para, p.lineNumber)
	}
	if action == refFinalizedReprocess {
		p.reprocessAfterRefDef(r.container)
	}
}

// reprocessAfterRefDef handles a line the finalized definition did not
// consume. The line already failed to interrupt paragraph-like content, so
// it can only begin another definition or become paragraph text.
func (p *blockParser) reprocessAfterRefDef(anchor *Node) {
	rest := p.restOfLine()
	trimmed := trimLeadingSpaceTab(rest)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		refdef, action := startRefDef(anchor, p.lineNumber, trimmed)
		p.refdef = refdef
		p.resolveRefDef(action, false)
		return
	}
	para := p.restoreParagraph(anchor, nil, p.lineNumber)
	para.content = append(para.content, trimmed...)
	para.content = append(para.content, '\n')
}

// processLine incorporates one line into the tree.
func (p *blockParser) processLine(line []byte) {
	p.line = line
	p.lineNumber++
	p.offset = 0
	p.column = 0
	p.partialTab = false
	p.lazy = false

	// Phase A: match the open blocks against the line.
	container := p.doc
	oldTip := p.tip
	for lastChild := container.lastChild; lastChild != nil && lastChild.open; lastChild = container.lastChild {
		container = lastChild
		p.findNextNonspace()
		switch p.blockContinue(container) {
		case blockMatched:
		case blockNotMatched:
			container = container.parent
		case blockLineDone:
			return
		}
		if container == lastChild.parent {
			break
		}
	}
	p.allClosed = container == oldTip
	p.lastMatchedContainer = container

	// Phase B: look for new block starts unless the matched block is a
	// raw-line leaf (code or HTML block fast path).
	matchedLeaf := container.kind != KindParagraph && acceptsLines(container.kind)
	for !matchedLeaf {
		p.findNextNonspace()
		result := p.tryBlockStarts(container)
		if result == startNone {
			p.advanceNextNonspace()
			break
		}
		container = p.tip
		if result == startLeaf {
			matchedLeaf = true
		}
	}

	// Phase C: add the remaining text to the right block.
	tipIsParagraphLike := p.tip.kind == KindParagraph ||
		(p.refdef != nil && p.refdef.container == p.tip)
	if !p.allClosed && !p.blank && tipIsParagraphLike {
		// Lazy continuation: the unmatched containers stay open.
		p.lazy = true
		if p.refdef != nil {
			p.resolveRefDef(p.refdef.feedLine(p.restOfLine()), false)
		} else {
			p.addLine()
		}
		return
	}

	p.closeUnmatchedBlocks()
	if p.blank && container.lastChild != nil {
		container.lastChild.lastLineBlank = true
	}
	t := container.kind
	lastLineBlank := p.blank &&
		!(t == KindBlockQuote ||
			(t == KindCodeBlock && container.fenceChar != 0) ||
			(t == KindItem && container.firstChild == nil && container.StartLine == p.lineNumber))
	for cont := container; cont != nil; cont = cont.parent {
		cont.lastLineBlank = lastLineBlank
	}

	switch {
	case acceptsLines(t):
		// A paragraph restored from a failed reference definition already
		// holds this line's text; nothing is left past the offset then.
		if t != KindParagraph || p.offset < len(p.line) {
			p.addLine()
		}
		if t == KindHTMLBlock && container.htmlBlockType >= 1 && container.htmlBlockType <= 5 &&
			scanHTMLBlockEnd(container.htmlBlockType, p.line[p.offset:]) {
			p.finalize(container, p.lineNumber)
		}
	case p.refdef != nil && p.refdef.container == container:
		if p.blank {
			p.resolveRefDef(p.refdef.terminate(), true)
		} else if p.offset < len(p.line) {
			// A line that just started the definition was already fed.
			p.resolveRefDef(p.refdef.feedLine(p.restOfLine()), false)
		}
	case p.offset < len(p.line) && !p.blank:
		para := p.addChild(KindParagraph)
		p.advanceNextNonspace()
		para.StartLine = p.lineNumber
		p.addLine()
	}
}

// acceptsLines reports whether blocks of kind k take raw lines directly.
func acceptsLines(k NodeKind) bool {
	return k == KindParagraph || k == KindCodeBlock || k == KindHTMLBlock
}

// Block start outcomes.
const (
	startNone      = 0
	startContainer = 1 // opened a container; keep scanning for more starts
	startLeaf      = 2 // opened a leaf or consumed the line
)

// tryBlockStarts tests the block-start conditions in order and commits the
// first match. The order is load-bearing: a new reference definition
// first, then block quote, HTML block, fenced code, ATX heading, setext
// underline, thematic break, list item, and indented code.
func (p *blockParser) tryBlockStarts(container *Node) int {
	if r := p.tryRefDefStart(container); r != startNone {
		return r
	}
	if r := p.tryBlockQuoteStart(); r != startNone {
		return r
	}
	if r := p.tryHTMLBlockStart(container); r != startNone {
		return r
	}
	if r := p.tryFencedCodeStart(); r != startNone {
		return r
	}
	if r := p.tryATXHeadingStart(); r != startNone {
		return r
	}
	if r := p.trySetextHeadingStart(container); r != startNone {
		return r
	}
	if r := p.tryThematicBreakStart(); r != startNone {
		return r
	}
	if r := p.tryListItemStart(container); r != startNone {
		return r
	}
	return p.tryIndentedCodeStart()
}

// tryRefDefStart begins collecting a link reference definition. A
// definition cannot interrupt a paragraph and never starts on a line that
// could instead continue one lazily.
func (p *blockParser) tryRefDefStart(container *Node) int {
	if p.indented || p.refdef != nil || p.peek(p.nextNonspace) != '[' {
		return startNone
	}
	if container.kind == KindParagraph {
		return startNone
	}
	if !p.allClosed && p.tip.kind == KindParagraph {
		// The line would lazily continue an open paragraph.
		return startNone
	}
	p.closeUnmatchedBlocks()
	p.advanceNextNonspace()
	anchor := p.tip
	refdef, action := startRefDef(anchor, p.lineNumber, p.restOfLine())
	p.refdef = refdef
	p.resolveRefDef(action, false)
	p.offset = len(p.line)
	return startLeaf
}

func (p *blockParser) tryBlockQuoteStart() int {
	if p.indented || p.peek(p.nextNonspace) != '>' {
		return startNone
	}
	p.advanceNextNonspace()
	p.advanceOffset(1, false)
	if isSpaceOrTab(p.peek(p.offset)) {
		p.advanceOffset(1, true)
	}
	p.interruptRefDef()
	p.closeUnmatchedBlocks()
	p.addChild(KindBlockQuote)
	return startContainer
}

func (p *blockParser) tryHTMLBlockStart(container *Node) int {
	if p.indented || p.peek(p.nextNonspace) != '<' {
		return startNone
	}
	htype := scanHTMLBlockStart(p.line[p.nextNonspace:], p.paragraphContext(container))
	if htype == 0 {
		return startNone
	}
	p.interruptRefDef()
	p.closeUnmatchedBlocks()
	block := p.addChild(KindHTMLBlock)
	block.htmlBlockType = htype
	// The line itself is added by the caller.
	return startLeaf
}

func (p *blockParser) tryFencedCodeStart() int {
	if p.indented {
		return startNone
	}
	char, length, _, ok := scanCodeFenceOpen(p.line[p.nextNonspace:])
	if !ok {
		return startNone
	}
	p.interruptRefDef()
	p.closeUnmatchedBlocks()
	block := p.addChild(KindCodeBlock)
	block.fenceChar = char
	block.fenceLength = length
	block.fenceIndent = p.indent
	p.advanceNextNonspace()
	p.advanceOffset(length, false)
	return startLeaf
}

func (p *blockParser) tryATXHeadingStart() int {
	if p.indented || p.peek(p.nextNonspace) != '#' {
		return startNone
	}
	level, content, ok := scanATXHeading(p.line[p.nextNonspace:])
	if !ok {
		return startNone
	}
	p.interruptRefDef()
	p.closeUnmatchedBlocks()
	heading := p.addChild(KindHeading)
	heading.HeadingLevel = level
	heading.content = content
	p.offset = len(p.line)
	return startLeaf
}

// trySetextHeadingStart converts an open paragraph under the underline
// into a heading. When a pending reference definition is open instead, it
// is resolved first and the underline applies to whatever rolled back.
func (p *blockParser) trySetextHeadingStart(container *Node) int {
	if p.indented {
		return startNone
	}
	level, ok := scanSetextUnderline(p.line[p.nextNonspace:])
	if !ok {
		return startNone
	}
	if p.refdef != nil && p.refdef.container == container {
		p.resolveRefDef(p.refdef.terminate(), false)
		if p.tip.kind != KindParagraph {
			return startNone
		}
		container = p.tip
	} else if container.kind != KindParagraph {
		return startNone
	}
	p.closeUnmatchedBlocks()
	heading := p.arena.newNode(KindHeading, container.StartLine)
	heading.open = true
	heading.HeadingLevel = level
	heading.content = container.content
	container.InsertAfter(heading)
	container.Unlink()
	p.tip = heading
	p.offset = len(p.line)
	return startLeaf
}

func (p *blockParser) tryThematicBreakStart() int {
	if p.indented || !scanThematicBreak(p.line[p.nextNonspace:]) {
		return startNone
	}
	p.interruptRefDef()
	p.closeUnmatchedBlocks()
	p.addChild(KindThematicBreak)
	p.offset = len(p.line)
	return startLeaf
}

func (p *blockParser) tryListItemStart(container *Node) int {
	if p.indented && container.kind != KindList {
		return startNone
	}
	marker, ok := scanListMarker(p.line[p.nextNonspace:])
	if !ok {
		return startNone
	}
	interrupting := p.paragraphContext(container)
	if interrupting {
		if marker.ordered && marker.start != 1 {
			return startNone
		}
		if isBlank(p.line[p.nextNonspace+marker.width:]) {
			// An empty item cannot interrupt a paragraph.
			return startNone
		}
	}
	p.interruptRefDef()

	data := ListData{
		Ordered:    marker.ordered,
		Tight:      true,
		BulletChar: marker.bullet,
		Delimiter:  marker.delim,
		Start:      marker.start,
	}

	markerOffset := p.indent
	p.advanceNextNonspace()
	p.advanceOffset(marker.width, false)

	// Measure the whitespace after the marker in columns: 1-4 columns set
	// the item's content indent; none or 5+ leave one required column and
	// hand the rest to an indented code block inside the item.
	spacesStartCol := p.column
	spacesStartOffset := p.offset
	spacesStartTab := p.partialTab
	for p.column-spacesStartCol < 5 && isSpaceOrTab(p.peek(p.offset)) {
		p.advanceOffset(1, true)
	}
	blankItem := p.offset >= len(p.line)
	spacesAfterMarker := p.column - spacesStartCol
	if spacesAfterMarker >= 5 || spacesAfterMarker < 1 || blankItem {
		data.Padding = marker.width + 1
		p.column = spacesStartCol
		p.offset = spacesStartOffset
		p.partialTab = spacesStartTab
		if isSpaceOrTab(p.peek(p.offset)) {
			p.advanceOffset(1, true)
		}
	} else {
		data.Padding = marker.width + spacesAfterMarker
	}

	p.closeUnmatchedBlocks()

	if p.tip.kind != KindList || !listsMatch(p.tip.List, marker) {
		list := p.addChild(KindList)
		list.List = data
	}
	item := p.addChild(KindItem)
	item.List = data
	item.contentIndent = markerOffset + data.Padding
	item.emptyFirstLine = blankItem
	return startContainer
}

func (p *blockParser) tryIndentedCodeStart() int {
	if !p.indented || p.blank || p.tip.kind == KindParagraph {
		return startNone
	}
	if p.refdef != nil && p.refdef.container == p.tip {
		return startNone
	}
	p.advanceOffset(codeIndent, true)
	p.closeUnmatchedBlocks()
	p.addChild(KindCodeBlock)
	return startLeaf
}

// finalize closes a block: marks it done, runs its kind-specific wrap-up,
// and moves the tip to its parent.
func (p *blockParser) finalize(n *Node, endLine int) {
	parent := n.parent
	n.open = false
	n.EndLine = endLine

	switch n.kind {
	case KindCodeBlock:
		if n.fenceChar != 0 {
			// First content line is the info string.
			idx := bytes.IndexByte(n.content, '\n')
			if idx < 0 {
				idx = len(n.content)
			}
			n.Info = unescapeAndDecode(trimSpaceTab(n.content[:idx]))
			if idx < len(n.content) {
				n.Literal = n.content[idx+1:]
			} else {
				n.Literal = nil
			}
		} else {
			n.Literal = stripTrailingBlankLines(n.content)
		}
		n.content = nil
	case KindHTMLBlock:
		n.Literal = bytes.TrimSuffix(n.content, []byte{'\n'})
		n.content = nil
	case KindList:
		n.List.Tight = listIsTight(n)
		for item := n.firstChild; item != nil; item = item.next {
			item.List.Tight = n.List.Tight
		}
	}

	p.tip = parent
}

// listIsTight computes the tight flag at list close: loose when a blank
// line separates two items, or separates two block-level children inside
// any item.
func listIsTight(list *Node) bool {
	for item := list.firstChild; item != nil; item = item.next {
		if endsWithBlankLine(item) && item.next != nil {
			return false
		}
		for sub := item.firstChild; sub != nil; sub = sub.next {
			if endsWithBlankLine(sub) && (item.next != nil || sub.next != nil) {
				return false
			}
		}
	}
	return true
}

// endsWithBlankLine follows the chain of last children of lists and items
// looking for a trailing blank line.
func endsWithBlankLine(block *Node) bool {
	for block != nil {
		if block.lastLineBlank {
			return true
		}
		if block.kind == KindList || block.kind == KindItem {
			block = block.lastChild
			continue
		}
		break
	}
	return false
}

// stripTrailingBlankLines removes trailing lines that contain only spaces,
// leaving a single final newline.
func stripTrailingBlankLines(content []byte) []byte {
	end := len(content)
	for {
		lineStart := bytes.LastIndexByte(content[:end], '\n')
		seg := content[lineStart+1 : end]
		if len(trimSpaceTab(seg)) != 0 {
			break
		}
		if lineStart < 0 {
			return nil
		}
		end = lineStart
	}
	if end == len(content) {
		return content
	}
	return content[:end+1]
}

func trimLeadingSpaceTab(s []byte) []byte {
	for len(s) > 0 && isSpaceOrTab(s[0]) {
		s = s[1:]
	}
	return s
}
