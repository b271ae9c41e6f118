package commonmark

import "bytes"

// replacementBytes is the UTF-8 encoding of U+FFFD.
var replacementBytes = []byte("\xef\xbf\xbd")

// splitLines normalizes line endings and splits the input into lines.
// CR and CRLF become LF; the returned lines exclude the terminator. A final
// line without a terminator is still emitted. NUL bytes are replaced with
// U+FFFD during intake so downstream scanners never see embedded NUL.
// Tabs are preserved; column arithmetic expands them on demand.
func splitLines(input []byte) [][]byte {
	lines := make([][]byte, 0, bytes.Count(input, []byte{'\n'})+1)
	start := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\n':
			lines = append(lines, sanitizeLine(input[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, sanitizeLine(input[start:i]))
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(input) {
		lines = append(lines, sanitizeLine(input[start:]))
	}
	return lines
}

// sanitizeLine replaces NUL bytes with U+FFFD, copying only when needed.
func sanitizeLine(line []byte) []byte {
	if bytes.IndexByte(line, 0) < 0 {
		return line
	}
	out := make([]byte, 0, len(line)+2)
	for _, c := range line {
		if c == 0 {
			out = append(out, replacementBytes...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// tabStop is the column interval tabs advance to.
const tabStop = 4

// advanceColumn returns the logical column after consuming c at column col.
// A tab advances to the next multiple of tabStop relative to the current
// column; every other byte advances by one. This is the single source of
// truth for indent arithmetic.
func advanceColumn(col int, c byte) int {
	if c == '\t' {
		return col + tabStop - col%tabStop
	}
	return col + 1
}

// isSpaceOrTab reports whether c is a space or tab.
func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// isBlank reports whether the line contains only spaces and tabs.
func isBlank(line []byte) bool {
	for _, c := range line {
		if !isSpaceOrTab(c) {
			return false
		}
	}
	return true
}
