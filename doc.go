// Package commonmark parses Markdown per the CommonMark 0.31.2
// specification and renders it as HTML.
//
// # Quick Start
//
// Parse a document and render it:
//
//	doc := commonmark.Parse([]byte("# Hello\n\nWorld"))
//	html, err := commonmark.Render(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(html)
//
// ToHTML combines both steps when the tree itself is not needed.
//
// # Parsing Pipeline
//
// Parsing runs in two phases over a preprocessed line sequence:
//
//  1. Line normalization (CR, CRLF to LF) and splitting
//  2. Block parsing: a line-at-a-time state machine tracking the open
//     blocks, producing the block tree and the link reference map
//  3. Inline parsing: each paragraph and heading is rescanned for
//     emphasis, links, code spans, autolinks, raw HTML, and entities
//  4. HTML rendering via a recursive traversal
//
// The tree is a doubly-linked structure: every node links to its parent,
// first and last child, and previous and next sibling, so restructuring
// during inline parsing is constant time per operation.
//
// # Concurrency
//
// A parse is a single synchronous call with no shared state; distinct
// goroutines may parse and render independently.
//
// # Conformance
//
// Raw HTML blocks and inline HTML pass through unchanged; there is no
// sanitizer. Callers embedding untrusted input should filter the output
// themselves.
package commonmark
