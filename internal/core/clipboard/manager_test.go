package clipboard

import (
	"testing"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/core/bookmark"
	"github.com/coreedit/coreedit/internal/core/edit"
	"github.com/coreedit/coreedit/internal/core/history"
	"github.com/coreedit/coreedit/internal/core/marker"
)

func newFixture(content string) (*Manager, *buffer.TextBuffer, *marker.Marker) {
	tb := buffer.NewTextBuffer()
	tb.Reset("", buffer.NewGapBufferFromBytes([]byte(content)))
	hist := history.NewManager(0, false)
	mk := marker.New()
	bm := bookmark.New()
	ed := edit.NewManager(tb, hist, mk, bm)
	return NewManager(tb, ed, mk, false, 4), tb, mk
}

func TestYankStreamThenPaste(t *testing.T) {
	m, tb, mk := newFixture("hello world")
	mk.ToggleMark(0, 0, false)
	mk.ToggleMark(5, 0, false) // select "hello"

	ok, err := m.Yank(5, 0)
	if err != nil || !ok {
		t.Fatalf("Yank failed: ok=%v err=%v", ok, err)
	}
	if mk.Active() {
		t.Fatal("expected Yank to clear the selection")
	}

	tb.GapBuffer().MoveCursor(tb.GapBuffer().Size())
	ok, err = m.Paste(0, 0)
	if err != nil || !ok {
		t.Fatalf("Paste failed: ok=%v err=%v", ok, err)
	}
	if string(tb.GapBuffer().Bytes()) != "hello worldhello" {
		t.Fatalf("unexpected buffer content after paste: %q", tb.GapBuffer().Bytes())
	}
}

func TestYankWithNoSelectionIsNoop(t *testing.T) {
	m, _, _ := newFixture("abc")
	ok, err := m.Yank(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected Yank with no active selection to report false")
	}
}

func TestPasteWithEmptyClipboardIsNoop(t *testing.T) {
	m, _, _ := newFixture("abc")
	ok, err := m.Paste(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected Paste with empty clipboard to report false")
	}
}

func TestYankColumnThenPasteColumn(t *testing.T) {
	m, tb, mk := newFixture("abcd\nefgh\nijkl")

	// Column-select columns [1,3) across all 3 lines: mark1 at line0
	// col1, cursor ends at line2 col3.
	mk.ToggleMark(1, 1, true)
	line2Start := tb.Cache().FindLine(tb.GapBuffer(), 2)
	curs := line2Start + 3

	ok, err := m.Yank(curs, 3)
	if err != nil || !ok {
		t.Fatalf("column Yank failed: ok=%v err=%v", ok, err)
	}
	if mk.Active() {
		t.Fatal("expected column Yank to clear the selection")
	}

	// Paste the block back at line 0, col 0.
	tb.GapBuffer().MoveCursor(0)
	ok, err = m.Paste(0, 0)
	if err != nil || !ok {
		t.Fatalf("column Paste failed: ok=%v err=%v", ok, err)
	}
	line0, _ := tb.Line(0)
	// "bc" (cols 1-2 of "abcd") should now be prepended to line 0.
	if string(line0) != "bcabcd" {
		t.Fatalf("expected column block inserted at line 0, got %q", line0)
	}
}
