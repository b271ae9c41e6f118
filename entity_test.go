package commonmark

import "testing"

func TestScanEntity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantEnd int
	}{
		{"&amp;", "&", 5},
		{"&amp; rest", "&", 5},
		{"&lt;", "<", 4},
		{"&semi;", ";", 6},
		{"&AElig;", "Æ", 7},
		{"&CounterClockwiseContourIntegral;", "∳", 33},
		{"&nbsp;", " ", 6},
		// No semicolon, unknown name, and a name whose legacy prefix
		// must not decode.
		{"&amp", "", 0},
		{"&MadeUpEntity;", "", 0},
		{"&notit;", "", 0},
		{"&#35;", "#", 5},
		{"&#X22;", "\"", 6},
		{"&#1234;", "Ӓ", 7},
		// NUL, a surrogate, a value beyond U+10FFFF, and too many digits.
		{"&#0;", "�", 4},
		{"&#xD800;", "�", 8},
		{"&#2126767;", "�", 10},
		{"&#12345678;", "", 0},
		{"&#;", "", 0},
		{"&;", "", 0},
		{"&", "", 0},
	}

	for _, tt := range tests {
		got, end := scanEntity([]byte(tt.input))
		if end != tt.wantEnd || string(got) != tt.want {
			t.Errorf("scanEntity(%q) = (%q, %d), want (%q, %d)",
				tt.input, got, end, tt.want, tt.wantEnd)
		}
	}
}

func TestUnescapeAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`foo\*bar`, "foo*bar"},
		{`foo\\bar`, `foo\bar`},
		{`foo\bar`, `foo\bar`}, // backslash before non-punctuation stays
		{"a&amp;b", "a&b"},
		{"a&bogus;b", "a&bogus;b"},
		{`\&amp;`, "&amp;"}, // escaped ampersand blocks the entity
		{"", ""},
	}

	for _, tt := range tests {
		if got := string(unescapeAndDecode([]byte(tt.input))); got != tt.want {
			t.Errorf("unescapeAndDecode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
