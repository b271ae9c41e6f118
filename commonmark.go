package commonmark

// Parse converts a Markdown document into its block-and-inline node tree.
// Input is treated as UTF-8; invalid bytes pass through untouched. Every
// byte sequence is a valid document, so Parse cannot fail.
//
// The returned tree and every node in it are owned by one arena bound to
// this call; concurrent parses are independent.
func Parse(input []byte) *Node {
	bp := newBlockParser()
	doc := bp.parseBlocks(splitLines(input))
	parseDocumentInlines(bp.arena, doc, bp.refs)
	bp.refs = nil
	return doc
}

// Render serializes a tree produced by Parse as UTF-8 HTML.
func Render(doc *Node) ([]byte, error) {
	return renderHTML(doc)
}

// ToHTML parses input and renders it in one step.
func ToHTML(input []byte) []byte {
	out, err := renderHTML(Parse(input))
	if err != nil {
		// Parse always returns a document root; renderHTML cannot reject it.
		panic(err)
	}
	return out
}
