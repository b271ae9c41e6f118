package commonmark

import (
	"bytes"
	"testing"
)

func TestWriteEscapedHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`a & b`, "a &amp; b"},
		{`<tag>`, "&lt;tag&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{`'single' stays`, "'single' stays"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		writeEscapedHTML(&buf, []byte(tt.input))
		if got := buf.String(); got != tt.want {
			t.Errorf("writeEscapedHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteEncodedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"/url", "/url"},
		{"/my uri", "/my%20uri"},
		{"foo%20bä", "foo%20b%C3%A4"},
		{"a&b", "a&amp;b"},
		{"a<b>c", "a%3Cb%3Ec"},
		{"q\"w\\e", "q%22w%5Ce"},
		{"curly{}and|pipe", "curly%7B%7Dand%7Cpipe"},
		{"tick`mark", "tick%60mark"},
		{"caret^bracket[]", "caret%5Ebracket%5B%5D"},
		{"?query=a+b;c", "?query=a+b;c"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		writeEncodedURL(&buf, []byte(tt.input))
		if got := buf.String(); got != tt.want {
			t.Errorf("writeEncodedURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFlattenAltText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emphasis flattens", "![foo *bar* baz](/u)", "foo bar baz"},
		{"code span literal counts", "![a `code` b](/u)", "a code b"},
		{"nested image contributes its alt", "![outer ![inner](/i)](/o)", "outer inner"},
		{"breaks become spaces", "![a\nb](/u)", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := Parse([]byte(tt.input))
			var image *Node
			doc.Walk(func(n *Node) bool {
				if image == nil && n.Kind() == KindImage {
					image = n
					return false
				}
				return true
			})
			if image == nil {
				t.Fatalf("no image parsed from %q", tt.input)
			}
			if got := string(flattenAltText(image)); got != tt.want {
				t.Errorf("flattenAltText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOrderedListStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1. a", "<ol>\n<li>a</li>\n</ol>\n"},
		{"5. a", "<ol start=\"5\">\n<li>a</li>\n</ol>\n"},
		{"0. a", "<ol start=\"0\">\n<li>a</li>\n</ol>\n"},
	}

	for _, tt := range tests {
		if got := string(ToHTML([]byte(tt.input))); got != tt.want {
			t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderCodeBlockInfoFirstWord(t *testing.T) {
	t.Parallel()

	got := string(ToHTML([]byte("```ruby startline=3\nx\n```")))
	want := "<pre><code class=\"language-ruby\">x\n</code></pre>\n"
	if got != want {
		t.Errorf("info string class = %q, want %q", got, want)
	}
}
