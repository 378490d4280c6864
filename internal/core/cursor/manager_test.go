package cursor

import (
	"testing"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/config"
	"github.com/coreedit/coreedit/internal/types"
)

func TestMain(m *testing.M) {
	if _, err := config.LoadConfig("", nil); err != nil {
		panic(err)
	}
	m.Run()
}

// fakeEditor is a minimal cursor.Editor backed by a TextBuffer, enough
// to exercise Manager without the full composition root.
type fakeEditor struct {
	tb *buffer.TextBuffer
}

func (f *fakeEditor) GetBuffer() buffer.Buffer { return f.tb }
func (f *fakeEditor) ScrollOff() int           { return 3 }

func newFixture(content string) (*Manager, *fakeEditor) {
	tb := buffer.NewTextBuffer()
	tb.Reset("", buffer.NewGapBufferFromBytes([]byte(content)))
	ed := &fakeEditor{tb: tb}
	return NewManager(ed, nil), ed
}

func TestSetPositionClampsToLineCount(t *testing.T) {
	m, _ := newFixture("a\nb\nc")
	m.SetPosition(types.Position{Line: 99, Col: 0})
	if got := m.GetPosition().Line; got != 2 {
		t.Fatalf("expected line clamped to 2, got %d", got)
	}
}

func TestSetPositionClampsColumnToLineLength(t *testing.T) {
	m, _ := newFixture("ab\ncd")
	m.SetPosition(types.Position{Line: 0, Col: 99})
	if got := m.GetPosition().Col; got != 2 {
		t.Fatalf("expected col clamped to 2 (line length), got %d", got)
	}
}

func TestMoveToStartOfLineSkipsWhitespace(t *testing.T) {
	m, _ := newFixture("   indented")
	m.SetPosition(types.Position{Line: 0, Col: 11})
	m.MoveToStartOfLine()
	if got := m.GetPosition().Col; got != 3 {
		t.Fatalf("expected col 3 (first non-whitespace), got %d", got)
	}
}

func TestMoveToEndOfLine(t *testing.T) {
	m, _ := newFixture("hello\nworld")
	m.SetPosition(types.Position{Line: 0, Col: 0})
	m.MoveToEndOfLine()
	if got := m.GetPosition().Col; got != 5 {
		t.Fatalf("expected col 5 at end of 'hello', got %d", got)
	}
}

func TestGetVisualColExpandsTabs(t *testing.T) {
	// A tab at the start of the line should snap the visual column to
	// the next tab stop, not just add 1.
	col := GetVisualCol("\tx", 1, 4)
	if col != 4 {
		t.Fatalf("GetVisualCol past a single tab = %d, want 4", col)
	}
}

func TestGetVisualColBufferColRoundTrip(t *testing.T) {
	line := "ab\tcd"
	for _, byteOff := range []int{0, 1, 2, 3, 4, 5} {
		visual := GetVisualCol(line, byteOff, 4)
		back := GetBufferCol(line, visual, 4)
		// back should land on the same grapheme cluster byteOff started
		// in, which for this ASCII/tab-only line is just byteOff itself
		// except mid-tab-expansion columns, which don't apply here.
		if back > len(line) {
			t.Fatalf("GetBufferCol(%d) = %d out of range", visual, back)
		}
		if back != byteOff {
			t.Fatalf("round trip at byte %d: visual %d maps back to %d", byteOff, visual, back)
		}
	}
}

func TestGetVisualColWideCharacters(t *testing.T) {
	// CJK characters are double-width; 3 of them should occupy 6 visual
	// columns, not 3, once uniseg reports their width.
	line := "中文字"
	full := GetVisualCol(line, len(line), 4)
	if full != 6 {
		t.Fatalf("expected visual width 6 for 3 wide characters, got %d", full)
	}
}

func TestSyncFromBufferComputesRuneColumn(t *testing.T) {
	m, ed := newFixture("中b")
	ed.tb.GapBuffer().MoveCursor(ed.tb.GapBuffer().Size())
	m.SyncFromBuffer(ed.tb.GapBuffer())
	if got := m.GetPosition().Col; got != 2 {
		t.Fatalf("expected rune col 2 (two codepoints), got %d", got)
	}
}
