package commonmark

import "testing"

func TestRefDefSingleLine(t *testing.T) {
	t.Parallel()

	r, action := startRefDef(nil, 1, []byte(`[foo]: /url "title"`))
	if action != refFinalized {
		t.Fatalf("action = %d, want refFinalized", action)
	}
	refs := make(refMap)
	r.record(refs)
	entry, ok := refs.lookup([]byte("foo"))
	if !ok || string(entry.url) != "/url" || string(entry.title) != "title" {
		t.Errorf("recorded = %+v, ok=%v", entry, ok)
	}
}

func TestRefDefMultiLine(t *testing.T) {
	t.Parallel()

	r, action := startRefDef(nil, 1, []byte("[foo"))
	for _, line := range []string{"bar]: <my url>", "'ti"} {
		if action != refConsumed {
			t.Fatalf("machine resolved early with %d before %q", action, line)
		}
		action = r.feedLine([]byte(line))
	}
	if action = r.feedLine([]byte("tle'")); action != refFinalized {
		t.Fatalf("closing title line gave %d, want refFinalized", action)
	}
	refs := make(refMap)
	r.record(refs)
	entry, ok := refs.lookup([]byte("foo bar"))
	if !ok || string(entry.url) != "my url" || string(entry.title) != "ti\ntle" {
		t.Errorf("recorded = {%q %q}, ok=%v", entry.url, entry.title, ok)
	}
}

func TestRefDefLabelContinuation(t *testing.T) {
	t.Parallel()

	r, action := startRefDef(nil, 1, []byte("[fo"))
	if action != refConsumed {
		t.Fatalf("label start resolved early: %d", action)
	}
	if action = r.feedLine([]byte("o]: /url")); action != refConsumed {
		t.Fatalf("destination line resolved with %d, want refConsumed", action)
	}
	if action = r.terminate(); action != refFinalized {
		t.Fatalf("terminate = %d, want refFinalized", action)
	}
	refs := make(refMap)
	r.record(refs)
	if _, ok := refs.lookup([]byte("fo o")); !ok {
		t.Error("label with newline did not normalize to a spaced label")
	}
}

func TestRefDefAbandonment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{"no colon after label", []string{"[foo] bar"}},
		{"unescaped bracket in label", []string{"[fo[o]: /url"}},
		{"garbage after destination", []string{"[foo]: /url extra"}},
		{"garbage after same-line title", []string{`[foo]: /url "title" x`}},
		{"unbalanced destination paren", []string{"[foo]: /ur("}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, action := startRefDef(nil, 1, []byte(tt.lines[0]))
			for _, line := range tt.lines[1:] {
				action = r.feedLine([]byte(line))
			}
			if action != refAbandoned {
				t.Errorf("action = %d, want refAbandoned", action)
			}
			lines, first := r.flushLines(refAbandoned)
			if len(lines) != len(tt.lines) || first != 1 {
				t.Errorf("flushLines = %d lines from %d, want %d from 1",
					len(lines), first, len(tt.lines))
			}
		})
	}
}

func TestRefDefTitleRollback(t *testing.T) {
	t.Parallel()

	r, action := startRefDef(nil, 1, []byte("[foo]: /url"))
	if action != refConsumed {
		t.Fatalf("destination line resolved early: %d", action)
	}
	action = r.feedLine([]byte(`"title" trailing`))
	if action != refFinalized {
		t.Fatalf("action = %d, want refFinalized", action)
	}
	refs := make(refMap)
	r.record(refs)
	entry, ok := refs.lookup([]byte("foo"))
	if !ok || entry.title != nil {
		t.Errorf("definition should survive without a title, got %+v ok=%v", entry, ok)
	}
	lines, first := r.flushLines(action)
	if len(lines) != 1 || string(lines[0]) != `"title" trailing` || first != 2 {
		t.Errorf("flushLines = %q from line %d", lines, first)
	}
}

func TestRefDefTerminateByState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  refAction
	}{
		{"label state abandons", []string{"[foo"}, refAbandoned},
		{"url state abandons", []string{"[foo]:"}, refAbandoned},
		{"after destination finalizes", []string{"[foo]: /url"}, refFinalized},
		{"multiline title finalizes without it", []string{"[foo]: /url", `"open`}, refFinalized},
		{"same-line open title abandons", []string{`[foo]: /url "open`}, refAbandoned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, action := startRefDef(nil, 1, []byte(tt.lines[0]))
			for _, line := range tt.lines[1:] {
				action = r.feedLine([]byte(line))
			}
			if action != refConsumed {
				t.Fatalf("setup resolved early: %d", action)
			}
			if got := r.terminate(); got != tt.want {
				t.Errorf("terminate() = %d, want %d", got, tt.want)
			}
		})
	}
}
