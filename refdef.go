package commonmark

// Link reference definitions are recognized incrementally during phase 1.
// A definition may span several lines (label continuation, destination on a
// later line, multi-line title), so the parser keeps a small accumulator
// together with the raw lines it has consumed; if the definition turns out
// invalid, the buffered lines are restored to the block stream as
// paragraph text.

type refDefState int

const (
	refLabelContinuation refDefState = iota // inside [label
	refURL                                  // label + colon seen, need destination
	refTitleOrEnd                           // destination done, title may follow
	refTitleContinuation                    // title open, not yet closed
)

// refAction tells the block parser what to do after feeding a line.
type refAction int

const (
	// refConsumed: the line belongs to the definition; nothing else to do.
	refConsumed refAction = iota
	// refAbandoned: the definition is invalid; all buffered lines become
	// paragraph text. The fed line, if any, is included in the flush.
	refAbandoned
	// refFinalized: the definition was recorded; lines consumed after the
	// destination (a failed title) become paragraph text.
	refFinalized
	// refFinalizedReprocess: the definition was recorded and the fed line
	// was not consumed; the caller must reprocess it.
	refFinalizedReprocess
)

// refDefParser accumulates one partial link reference definition.
type refDefParser struct {
	state     refDefState
	container *Node // block the definition is anchored under
	startLine int

	label      []byte
	dest       []byte
	title      []byte
	titleDelim byte // opening delimiter: '"', '\'', or '('
	titleDone  bool // title parsed to its closing delimiter

	// titleOnDestLine is set when the title opener appeared on the same
	// line as the destination; a failed title then invalidates the whole
	// definition instead of just the title.
	titleOnDestLine bool

	rawLines    [][]byte
	destLineIdx int // index in rawLines of the line the destination ended on
}

// startRefDef begins a definition from a line whose first non-space byte
// is '['. The line is fed immediately.
func startRefDef(container *Node, lineNumber int, rest []byte) (*refDefParser, refAction) {
	r := &refDefParser{
		state:     refLabelContinuation,
		container: container,
		startLine: lineNumber,
	}
	return r, r.feedLine(rest)
}

// feedLine advances the state machine by one line. The line has had its
// container prefixes stripped but keeps its own leading whitespace.
func (r *refDefParser) feedLine(line []byte) refAction {
	r.rawLines = append(r.rawLines, line)
	switch r.state {
	case refLabelContinuation:
		return r.feedLabel(line)
	case refURL:
		return r.feedURL(trimSpaceTab(line))
	case refTitleOrEnd:
		return r.feedTitleStart(line)
	default:
		return r.feedTitleContinuation(line)
	}
}

// feedLabel consumes label text up to an unescaped ']', which must be
// followed by ':'.
func (r *refDefParser) feedLabel(line []byte) refAction {
	i := 0
	if len(r.rawLines) == 1 {
		// Skip the opening indentation and bracket on the first line.
		for i < len(line) && isSpaceOrTab(line[i]) {
			i++
		}
		i++ // '['
	} else {
		r.label = append(r.label, '\n')
	}
	for ; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && isASCIIPunct(line[i+1]):
			r.label = append(r.label, c, line[i+1])
			i++
		case c == '[':
			return refAbandoned
		case c == ']':
			if i+1 >= len(line) || line[i+1] != ':' {
				return refAbandoned
			}
			if len(r.label) > maxLabelLength || !hasNonSpace(r.label) {
				return refAbandoned
			}
			r.state = refURL
			return r.feedURL(trimSpaceTab(line[i+2:]))
		default:
			r.label = append(r.label, c)
		}
	}
	if len(r.label) > maxLabelLength {
		return refAbandoned
	}
	return refConsumed
}

// feedURL parses the destination from rest (already trimmed). An empty
// rest means the destination starts on a later line.
func (r *refDefParser) feedURL(rest []byte) refAction {
	if len(rest) == 0 {
		return refConsumed
	}
	dest, end, ok := scanLinkDestination(rest)
	if !ok {
		return refAbandoned
	}
	r.dest = dest
	r.destLineIdx = len(r.rawLines) - 1
	tail := rest[end:]
	if isBlank(tail) {
		r.state = refTitleOrEnd
		return refConsumed
	}
	if !isSpaceOrTab(tail[0]) {
		return refAbandoned
	}
	tail = trimSpaceTab(tail)
	switch tail[0] {
	case '"', '\'', '(':
		r.titleDelim = tail[0]
		r.titleOnDestLine = true
		r.state = refTitleContinuation
		return r.continueTitle(tail[1:])
	}
	return refAbandoned
}

// feedTitleStart handles the line after a cleanly terminated destination:
// either a title opener or the start of unrelated content.
func (r *refDefParser) feedTitleStart(line []byte) refAction {
	rest := trimSpaceTab(line)
	if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'' && rest[0] != '(') {
		r.rawLines = r.rawLines[:len(r.rawLines)-1]
		return refFinalizedReprocess
	}
	r.titleDelim = rest[0]
	r.titleOnDestLine = false
	r.state = refTitleContinuation
	return r.continueTitle(rest[1:])
}

func (r *refDefParser) feedTitleContinuation(line []byte) refAction {
	r.title = append(r.title, '\n')
	return r.continueTitle(line)
}

// continueTitle consumes title text looking for the closing delimiter.
func (r *refDefParser) continueTitle(s []byte) refAction {
	closer := r.titleDelim
	if closer == '(' {
		closer = ')'
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			r.title = append(r.title, c, s[i+1])
			i++
		case c == closer:
			if !isBlank(s[i+1:]) {
				return r.failTitle()
			}
			r.titleDone = true
			return refFinalized
		case c == '(' && r.titleDelim == '(':
			return r.failTitle()
		default:
			r.title = append(r.title, c)
		}
	}
	return refConsumed
}

// failTitle resolves an invalid title: the whole definition fails when the
// title began on the destination line, otherwise the definition stands and
// only the title lines roll back.
func (r *refDefParser) failTitle() refAction {
	if r.titleOnDestLine {
		return refAbandoned
	}
	r.title = nil
	return refFinalized
}

// terminate resolves the pending definition at a blank line, an
// interrupting structural line, or end of input.
func (r *refDefParser) terminate() refAction {
	switch r.state {
	case refLabelContinuation, refURL:
		return refAbandoned
	case refTitleContinuation:
		if r.titleOnDestLine {
			return refAbandoned
		}
		r.title = nil
		return refFinalized
	default:
		return refFinalized
	}
}

// flushLines returns the buffered lines to restore as paragraph text for
// the given action, along with the line number of the first one.
func (r *refDefParser) flushLines(action refAction) (lines [][]byte, firstLine int) {
	switch action {
	case refAbandoned:
		return r.rawLines, r.startLine
	case refFinalized, refFinalizedReprocess:
		if !r.titleDone && r.destLineIdx+1 < len(r.rawLines) {
			return r.rawLines[r.destLineIdx+1:], r.startLine + r.destLineIdx + 1
		}
	}
	return nil, 0
}

// record stores the completed definition in the reference map.
func (r *refDefParser) record(refs refMap) {
	url := unescapeAndDecode(r.dest)
	var title []byte
	if r.titleDone {
		title = unescapeAndDecode(r.title)
	}
	refs.add(normalizeLabel(r.label), url, title)
}

func hasNonSpace(s []byte) bool {
	for _, c := range s {
		if !isSpaceOrTab(c) && c != '\n' {
			return true
		}
	}
	return false
}

// scanLinkDestination parses a link destination at the start of s: either
// the angle-bracketed form "<...>" (no newlines, unescaped '<' and '>'
// forbidden inside) or the bare form (no whitespace or control characters,
// parentheses balanced unless escaped). Returns the raw destination text
// (brackets stripped for the angle form) and the bytes consumed.
func scanLinkDestination(s []byte) (dest []byte, end int, ok bool) {
	if len(s) > 0 && s[0] == '<' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				if i+1 < len(s) && isASCIIPunct(s[i+1]) {
					i++
				}
			case '>':
				return s[1:i], i + 1, true
			case '<', '\n':
				return nil, 0, false
			}
		}
		return nil, 0, false
	}
	depth := 0
	i := 0
loop:
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			i += 2
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth == 0 {
				break loop
			}
			depth--
			i++
		case c <= 0x20 || c == 0x7f:
			break loop
		default:
			i++
		}
	}
	if i == 0 || depth > 0 {
		return nil, 0, false
	}
	return s[:i], i, true
}

// scanLinkTitle parses a link title at the start of s: '"', '\'', or '('
// delimited, possibly spanning newlines (the inline buffer never contains
// blank lines). Returns the raw title text and the bytes consumed.
func scanLinkTitle(s []byte) (title []byte, end int, ok bool) {
	if len(s) == 0 {
		return nil, 0, false
	}
	opener := s[0]
	if opener != '"' && opener != '\'' && opener != '(' {
		return nil, 0, false
	}
	closer := opener
	if opener == '(' {
		closer = ')'
	}
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			i++
		case c == closer:
			return s[1:i], i + 1, true
		case c == '(' && opener == '(':
			return nil, 0, false
		}
	}
	return nil, 0, false
}
