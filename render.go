package commonmark

import (
	"bytes"
	"fmt"
	"strconv"
)

// htmlRenderer serializes a document tree as HTML. The buffer's ownership
// transfers to the caller on success.
type htmlRenderer struct {
	buf bytes.Buffer
}

// renderHTML renders the tree rooted at doc.
func renderHTML(doc *Node) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilNode
	}
	if doc.kind != KindDocument {
		return nil, fmt.Errorf("%w: got %s", ErrNotDocument, doc.kind)
	}
	r := &htmlRenderer{}
	r.renderChildren(doc)
	return r.buf.Bytes(), nil
}

// cr ensures the output sits at the start of a line.
func (r *htmlRenderer) cr() {
	if n := r.buf.Len(); n > 0 && r.buf.Bytes()[n-1] != '\n' {
		r.buf.WriteByte('\n')
	}
}

func (r *htmlRenderer) renderChildren(n *Node) {
	for child := n.firstChild; child != nil; child = child.next {
		r.renderNode(child)
	}
}

func (r *htmlRenderer) renderNode(n *Node) {
	switch n.kind {
	case KindDocument:
		r.renderChildren(n)

	case KindParagraph:
		if isEmptyParagraph(n) {
			return
		}
		if inTightListItem(n) {
			r.renderChildren(n)
			return
		}
		r.cr()
		r.buf.WriteString("<p>")
		r.renderChildren(n)
		r.buf.WriteString("</p>")
		r.cr()

	case KindHeading:
		level := strconv.Itoa(n.HeadingLevel)
		r.cr()
		r.buf.WriteString("<h")
		r.buf.WriteString(level)
		r.buf.WriteByte('>')
		r.renderChildren(n)
		r.buf.WriteString("</h")
		r.buf.WriteString(level)
		r.buf.WriteByte('>')
		r.cr()

	case KindThematicBreak:
		r.cr()
		r.buf.WriteString("<hr />")
		r.cr()

	case KindCodeBlock:
		r.cr()
		r.buf.WriteString("<pre><code")
		if info := firstWord(n.Info); len(info) > 0 {
			r.buf.WriteString(` class="language-`)
			writeEscapedHTML(&r.buf, info)
			r.buf.WriteByte('"')
		}
		r.buf.WriteByte('>')
		writeEscapedHTML(&r.buf, n.Literal)
		r.buf.WriteString("</code></pre>")
		r.cr()

	case KindHTMLBlock:
		r.cr()
		r.buf.Write(n.Literal)
		r.cr()

	case KindBlockQuote:
		r.cr()
		r.buf.WriteString("<blockquote>")
		r.cr()
		r.renderChildren(n)
		r.cr()
		r.buf.WriteString("</blockquote>")
		r.cr()

	case KindList:
		r.cr()
		if n.List.Ordered {
			if n.List.Start == 1 {
				r.buf.WriteString("<ol>")
			} else {
				fmt.Fprintf(&r.buf, "<ol start=\"%d\">", n.List.Start)
			}
		} else {
			r.buf.WriteString("<ul>")
		}
		r.cr()
		r.renderChildren(n)
		r.cr()
		if n.List.Ordered {
			r.buf.WriteString("</ol>")
		} else {
			r.buf.WriteString("</ul>")
		}
		r.cr()

	case KindItem:
		r.buf.WriteString("<li>")
		r.renderChildren(n)
		r.buf.WriteString("</li>")
		r.cr()

	case KindEmph:
		r.buf.WriteString("<em>")
		r.renderChildren(n)
		r.buf.WriteString("</em>")

	case KindStrong:
		r.buf.WriteString("<strong>")
		r.renderChildren(n)
		r.buf.WriteString("</strong>")

	case KindLink:
		r.buf.WriteString(`<a href="`)
		writeEncodedURL(&r.buf, n.Destination)
		r.buf.WriteByte('"')
		if n.Title != nil {
			r.buf.WriteString(` title="`)
			writeEscapedHTML(&r.buf, n.Title)
			r.buf.WriteByte('"')
		}
		r.buf.WriteByte('>')
		r.renderChildren(n)
		r.buf.WriteString("</a>")

	case KindImage:
		r.buf.WriteString(`<img src="`)
		writeEncodedURL(&r.buf, n.Destination)
		r.buf.WriteString(`" alt="`)
		writeEscapedHTML(&r.buf, flattenAltText(n))
		r.buf.WriteByte('"')
		if n.Title != nil {
			r.buf.WriteString(` title="`)
			writeEscapedHTML(&r.buf, n.Title)
			r.buf.WriteByte('"')
		}
		r.buf.WriteString(" />")

	case KindCode:
		r.buf.WriteString("<code>")
		writeEscapedHTML(&r.buf, n.Literal)
		r.buf.WriteString("</code>")

	case KindLinebreak:
		r.buf.WriteString("<br />")
		r.cr()

	case KindSoftbreak:
		r.buf.WriteByte('\n')

	case KindText:
		writeEscapedHTML(&r.buf, n.Literal)

	case KindHTMLInline:
		r.buf.Write(n.Literal)
	}
}

// inTightListItem reports whether the paragraph renders without <p> tags:
// its parent is a list item of a tight list.
func inTightListItem(para *Node) bool {
	item := para.parent
	if item == nil || item.kind != KindItem {
		return false
	}
	return item.List.Tight
}

// isEmptyParagraph reports whether the paragraph has nothing to render:
// no children other than whitespace-only text.
func isEmptyParagraph(para *Node) bool {
	for child := para.firstChild; child != nil; child = child.next {
		if child.kind != KindText {
			return false
		}
		if len(trimSpaceTab(child.Literal)) > 0 {
			return false
		}
	}
	return true
}

// firstWord returns the first whitespace-delimited word of an info string.
func firstWord(s []byte) []byte {
	for i, c := range s {
		if isSpaceOrTab(c) {
			return s[:i]
		}
	}
	return s
}

// flattenAltText produces an image's alt attribute by flattening its
// children to plain text: code spans contribute their literals, breaks
// become spaces, and nested links and images contribute their own alt
// text.
func flattenAltText(n *Node) []byte {
	var out bytes.Buffer
	for child := n.firstChild; child != nil; child = child.next {
		flattenAltInto(&out, child)
	}
	return out.Bytes()
}

func flattenAltInto(out *bytes.Buffer, n *Node) {
	switch n.kind {
	case KindText, KindCode:
		out.Write(n.Literal)
	case KindSoftbreak, KindLinebreak:
		out.WriteByte(' ')
	default:
		for child := n.firstChild; child != nil; child = child.next {
			flattenAltInto(out, child)
		}
	}
}

// writeEscapedHTML writes s with &, <, >, and " escaped.
func writeEscapedHTML(buf *bytes.Buffer, s []byte) {
	for _, c := range s {
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteByte(c)
		}
	}
}

// urlUnsafe marks bytes that are percent-encoded in emitted URLs.
var urlUnsafe = func() [256]bool {
	var t [256]bool
	for i := 0; i <= 0x20; i++ {
		t[i] = true
	}
	for i := 0x80; i < 256; i++ {
		t[i] = true
	}
	for _, c := range []byte("<>\"\\[]{}|^`") {
		t[c] = true
	}
	return t
}()

const hexDigits = "0123456789ABCDEF"

// writeEncodedURL writes a link destination: unsafe bytes are
// percent-encoded and '&' becomes an entity; everything else passes
// through, existing percent-escapes included.
func writeEncodedURL(buf *bytes.Buffer, s []byte) {
	for _, c := range s {
		switch {
		case c == '&':
			buf.WriteString("&amp;")
		case urlUnsafe[c]:
			buf.WriteByte('%')
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0x0f])
		default:
			buf.WriteByte(c)
		}
	}
}
