package commonmark

import "fmt"

// NodeKind identifies the type of a tree node.
type NodeKind uint8

// Block kinds.
const (
	KindDocument NodeKind = iota + 1
	KindBlockQuote
	KindList
	KindItem
	KindCodeBlock
	KindHTMLBlock
	KindParagraph
	KindHeading
	KindThematicBreak

	// Inline kinds.
	KindText
	KindSoftbreak
	KindLinebreak
	KindCode
	KindHTMLInline
	KindEmph
	KindStrong
	KindLink
	KindImage
)

var kindNames = [...]string{
	KindDocument:      "document",
	KindBlockQuote:    "block_quote",
	KindList:          "list",
	KindItem:          "item",
	KindCodeBlock:     "code_block",
	KindHTMLBlock:     "html_block",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindThematicBreak: "thematic_break",
	KindText:          "text",
	KindSoftbreak:     "softbreak",
	KindLinebreak:     "linebreak",
	KindCode:          "code",
	KindHTMLInline:    "html_inline",
	KindEmph:          "emph",
	KindStrong:        "strong",
	KindLink:          "link",
	KindImage:         "image",
}

// String returns the kind's name as used in tree dumps.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// IsBlock reports whether the kind is a block-level kind.
func (k NodeKind) IsBlock() bool {
	return k >= KindDocument && k <= KindThematicBreak
}

// IsInline reports whether the kind is an inline kind.
func (k NodeKind) IsInline() bool {
	return k >= KindText && k <= KindImage
}

// IsContainer reports whether nodes of this kind may hold block children.
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindDocument, KindBlockQuote, KindList, KindItem:
		return true
	}
	return false
}

// IsLeafBlock reports whether the kind is a block holding only inline
// content or raw text.
func (k NodeKind) IsLeafBlock() bool {
	return k.IsBlock() && !k.IsContainer()
}

// ListData describes a list or list item.
type ListData struct {
	Ordered    bool
	Tight      bool
	BulletChar byte // '-', '+', or '*' for bullet lists
	Delimiter  byte // '.' or ')' for ordered lists
	Start      int  // start number for ordered lists
	Padding    int  // columns from the marker start to the item content
}

// Node is a node in a CommonMark document tree. Siblings form a
// doubly-linked list inside each parent, which gives O(1) unlink and
// insertion; the inline pass relies on this when wrapping runs of children
// inside a new emphasis node.
type Node struct {
	kind NodeKind

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	// Literal is the node's text payload: raw code for code blocks, raw
	// HTML for HTML blocks and inline HTML, and decoded text for text and
	// code spans.
	Literal []byte

	// StartLine and EndLine delimit the node's source lines, 1-based.
	StartLine int
	EndLine   int

	// HeadingLevel is 1..6 for KindHeading.
	HeadingLevel int

	// List holds list data for KindList and KindItem.
	List ListData

	// Info is the fenced-code info string. It is nil exactly when the code
	// block is indented rather than fenced.
	Info []byte

	// Destination and Title are set for KindLink and KindImage.
	Destination []byte
	Title       []byte

	// Block-parser state, meaningless after Parse returns.
	content        []byte // accumulated raw content of an open leaf
	open           bool
	lastLineBlank  bool
	contentIndent  int  // item: columns required to continue
	emptyFirstLine bool // item: nothing followed the marker
	fenceChar      byte // code block: '`' or '~'; 0 when indented
	fenceLength    int
	fenceIndent    int // column indent of the opening fence
	htmlBlockType  int // html block: 1..7
}

// Kind returns the node's kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Parent returns the node's parent, or nil for the document root.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the node's first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the node's last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// Prev returns the previous sibling, or nil.
func (n *Node) Prev() *Node { return n.prev }

// Next returns the next sibling, or nil.
func (n *Node) Next() *Node { return n.next }

// canContain reports whether a child of kind k may be appended under n.
// Containers hold blocks, KindList holds only KindItem, and leaf blocks
// hold only inlines.
func (n *Node) canContain(k NodeKind) bool {
	switch {
	case n.kind == KindList:
		return k == KindItem
	case n.kind.IsContainer():
		return k.IsBlock() && k != KindItem
	case n.kind.IsLeafBlock():
		return k.IsInline()
	case n.kind == KindEmph, n.kind == KindStrong, n.kind == KindLink, n.kind == KindImage:
		return k.IsInline()
	}
	return false
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Unlink()
	child.parent = n
	if n.lastChild != nil {
		n.lastChild.next = child
		child.prev = n.lastChild
		n.lastChild = child
	} else {
		n.firstChild = child
		n.lastChild = child
	}
}

// InsertAfter inserts sibling immediately after n under the same parent.
func (n *Node) InsertAfter(sibling *Node) {
	sibling.Unlink()
	sibling.next = n.next
	if sibling.next != nil {
		sibling.next.prev = sibling
	}
	sibling.prev = n
	n.next = sibling
	sibling.parent = n.parent
	if sibling.next == nil && sibling.parent != nil {
		sibling.parent.lastChild = sibling
	}
}

// InsertBefore inserts sibling immediately before n under the same parent.
func (n *Node) InsertBefore(sibling *Node) {
	sibling.Unlink()
	sibling.prev = n.prev
	if sibling.prev != nil {
		sibling.prev.next = sibling
	}
	sibling.next = n
	n.prev = sibling
	sibling.parent = n.parent
	if sibling.prev == nil && sibling.parent != nil {
		sibling.parent.firstChild = sibling
	}
}

// Unlink detaches n from its parent and siblings. The node keeps its
// children.
func (n *Node) Unlink() {
	if n.prev != nil {
		n.prev.next = n.next
	} else if n.parent != nil {
		n.parent.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if n.parent != nil {
		n.parent.lastChild = n.prev
	}
	n.parent = nil
	n.prev = nil
	n.next = nil
}

// Walk calls fn for every node in the subtree rooted at n, in depth-first
// document order, entering a node before its children. If fn returns false
// the node's children are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.firstChild; c != nil; {
		next := c.next // fn may unlink c
		c.Walk(fn)
		c = next
	}
}

// arenaChunk is the number of nodes allocated per arena slab. Slabs keep
// node addresses stable while amortizing allocation across a parse.
const arenaChunk = 256

// nodeArena hands out nodes from preallocated slabs. All nodes of one parse
// share the arena; the tree keeps it alive and release is a single drop.
type nodeArena struct {
	slab []Node
}

func (a *nodeArena) newNode(kind NodeKind, line int) *Node {
	if len(a.slab) == 0 {
		a.slab = make([]Node, arenaChunk)
	}
	n := &a.slab[0]
	a.slab = a.slab[1:]
	n.kind = kind
	n.StartLine = line
	n.EndLine = line
	return n
}
