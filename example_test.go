package commonmark_test

import (
	"fmt"
	"log"

	commonmark "github.com/alnah/go-commonmark"
)

func ExampleParse() {
	doc := commonmark.Parse([]byte("# Title\n\nSome *emphasized* text."))
	html, err := commonmark.Render(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(html))
	// Output:
	// <h1>Title</h1>
	// <p>Some <em>emphasized</em> text.</p>
}

func ExampleToHTML() {
	fmt.Print(string(commonmark.ToHTML([]byte("- one\n- two"))))
	// Output:
	// <ul>
	// <li>one</li>
	// <li>two</li>
	// </ul>
}

func ExampleNode_Walk() {
	doc := commonmark.Parse([]byte("[CommonMark](https://commonmark.org)"))
	doc.Walk(func(n *commonmark.Node) bool {
		if n.Kind() == commonmark.KindLink {
			fmt.Println(string(n.Destination))
		}
		return true
	})
	// Output:
	// https://commonmark.org
}
