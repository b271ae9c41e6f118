package commonmark

import "testing"

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii lowercase", "Foo", "foo"},
		{"trim and collapse whitespace", "  foo \t bar\n baz  ", "foo bar baz"},
		{"interior newline collapses", "Foo\nbar", "foo bar"},
		{"sharp s folds to ss", "ß", "ss"},
		{"capital sharp s folds to ss", "ẞ", "ss"},
		{"greek folds", "ΑΓΩ", "αγω"},
		{"latin-1 folds", "ÄÖÜ", "äöü"},
		{"empty", "", ""},
		{"whitespace only", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeLabel([]byte(tt.input)); got != tt.want {
				t.Errorf("normalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelLengthLimit(t *testing.T) {
	t.Parallel()

	long := make([]byte, maxLabelLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if got := normalizeLabel(long); got != "" {
		t.Errorf("normalizeLabel(overlong) = %q, want empty", got)
	}
	if got := normalizeLabel(long[:maxLabelLength]); got == "" {
		t.Error("normalizeLabel rejected a maximum-length label")
	}
}

func TestRefMapFirstWins(t *testing.T) {
	t.Parallel()

	m := make(refMap)
	m.add("foo", []byte("/first"), nil)
	m.add("foo", []byte("/second"), []byte("t"))

	entry, ok := m.lookup([]byte("FOO"))
	if !ok {
		t.Fatal("lookup failed")
	}
	if string(entry.url) != "/first" || entry.title != nil {
		t.Errorf("lookup = {%q %q}, want first definition", entry.url, entry.title)
	}

	if _, ok := m.lookup([]byte("missing")); ok {
		t.Error("lookup found an undefined label")
	}
}

func TestRefMapEmptyLabelIgnored(t *testing.T) {
	t.Parallel()

	m := make(refMap)
	m.add("", []byte("/url"), nil)
	if len(m) != 0 {
		t.Error("empty label was stored")
	}
}
