package commonmark

import (
	"strings"

	"golang.org/x/text/cases"
)

// refEntry is a resolved link reference definition.
type refEntry struct {
	url   []byte
	title []byte
}

// refMap maps normalized labels to their definitions. The first definition
// for a label wins; later ones are ignored.
type refMap map[string]refEntry

// add records a definition unless the label is empty or already defined.
func (m refMap) add(label string, url, title []byte) {
	if label == "" {
		return
	}
	if _, exists := m[label]; exists {
		return
	}
	m[label] = refEntry{url: url, title: title}
}

// lookup resolves a raw (un-normalized) label.
func (m refMap) lookup(raw []byte) (refEntry, bool) {
	entry, ok := m[normalizeLabel(raw)]
	return entry, ok
}

// maxLabelLength is the longest reference label CommonMark accepts,
// measured between the brackets.
const maxLabelLength = 999

// normalizeLabel produces the map key for a reference label: leading and
// trailing whitespace stripped, interior whitespace runs collapsed to one
// space, and the result case folded. An empty result means the label
// cannot match anything.
func normalizeLabel(raw []byte) string {
	if len(raw) > maxLabelLength {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	space := false
	ascii := true
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n':
			space = b.Len() > 0
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				ascii = false
			}
			b.WriteByte(c)
		}
	}
	s := b.String()
	if !ascii {
		// The full Unicode case fold covers what ASCII lowercasing misses:
		// Latin-1 supplement, Greek, sharp-s to "ss", and friends. A Caser
		// is stateful, so one is built per call rather than shared.
		s = cases.Fold().String(s)
	}
	return s
}
