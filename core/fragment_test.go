package core

import "testing"

func TestSplitLinesSingleLine(t *testing.T) {
	lines := SplitLines([]Fragment{{Style: "bold", Text: "hello"}})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if Text(lines[0]) != "hello" {
		t.Errorf("expected %q, got %q", "hello", Text(lines[0]))
	}
}

func TestSplitLinesAcrossFragments(t *testing.T) {
	lines := SplitLines([]Fragment{
		{Style: "a", Text: "one\ntw"},
		{Style: "b", Text: "o\nthree"},
	})

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if Text(lines[i]) != w {
			t.Errorf("line %d: expected %q, got %q", i, w, Text(lines[i]))
		}
	}
	if lines[1][0].Style != "a" || lines[1][1].Style != "b" {
		t.Error("styles should carry over to split parts")
	}
}

func TestSplitLinesTrailingNewline(t *testing.T) {
	lines := SplitLines([]Fragment{{Text: "a\n"}})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[1]) != 0 {
		t.Errorf("expected empty final line, got %d fragments", len(lines[1]))
	}
}

func TestSplitLinesKeepsMarkers(t *testing.T) {
	lines := SplitLines([]Fragment{
		{Text: "ab"},
		{Style: SetCursorPosition, Text: ""},
		{Text: "cd"},
	})

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	found := false
	for _, f := range lines[0] {
		if f.HasStyleTag(SetCursorPosition) {
			found = true
		}
	}
	if !found {
		t.Error("zero-width cursor marker should survive splitting")
	}
}

func TestSplitLinesEmptyInput(t *testing.T) {
	lines := SplitLines(nil)
	if len(lines) != 1 {
		t.Fatalf("expected 1 empty line, got %d", len(lines))
	}
}

func TestWithStyle(t *testing.T) {
	f := Fragment{Style: "keyword", Text: "func"}

	got := f.WithStyle("selection")
	if got.Style != "selection keyword" {
		t.Errorf("expected prepended tags, got %q", got.Style)
	}
	if f.Style != "keyword" {
		t.Error("original fragment should be unchanged")
	}

	if got := (Fragment{Text: "x"}).WithStyle("dim"); got.Style != "dim" {
		t.Errorf("expected %q, got %q", "dim", got.Style)
	}
	if got := f.WithStyle(""); got.Style != "keyword" {
		t.Errorf("expected unchanged style, got %q", got.Style)
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("abc"); got != 3 {
		t.Errorf("expected width 3, got %d", got)
	}
	// CJK characters take two cells.
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("expected width 4, got %d", got)
	}
	if got := StringWidth(""); got != 0 {
		t.Errorf("expected width 0, got %d", got)
	}
}

func TestFragmentsWidth(t *testing.T) {
	fragments := []Fragment{{Text: "ab"}, {Text: "日"}}
	if got := FragmentsWidth(fragments); got != 4 {
		t.Errorf("expected width 4, got %d", got)
	}
}

func TestPointEqual(t *testing.T) {
	if !NewPoint(1, 2).Equal(Point{X: 1, Y: 2}) {
		t.Error("expected points equal")
	}
	if NewPoint(1, 2).Equal(Point{X: 2, Y: 1}) {
		t.Error("expected points unequal")
	}
}
