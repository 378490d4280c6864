package buffer

import "testing"

func TestNewGapBufferFromBytes(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("abc\ndef"))
	if gb.Size() != 7 {
		t.Fatalf("expected size 7, got %d", gb.Size())
	}
	if gb.Curs1() != 0 {
		t.Fatalf("expected cursor at 0, got %d", gb.Curs1())
	}
	if gb.Lines() != 1 {
		t.Fatalf("expected 1 line, got %d", gb.Lines())
	}
	if string(gb.Bytes()) != "abc\ndef" {
		t.Fatalf("Bytes() mismatch: %q", gb.Bytes())
	}
}

func TestInsertAndBytes(t *testing.T) {
	gb := NewGapBuffer()
	for _, c := range []byte("hello") {
		gb.Insert(c)
	}
	if got := string(gb.Bytes()); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if gb.Curs1() != 5 {
		t.Fatalf("expected curs1 5, got %d", gb.Curs1())
	}
}

func TestInsertAheadDoesNotMoveCursor(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("bc"))
	gb.InsertAhead('a')
	if gb.Curs1() != 0 {
		t.Fatalf("InsertAhead moved cursor, curs1=%d", gb.Curs1())
	}
	if string(gb.Bytes()) != "abc" {
		t.Fatalf("expected %q, got %q", "abc", gb.Bytes())
	}
}

func TestDeleteAndBackspace(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("abc"))
	gb.MoveCursor(1) // cursor between a and b

	c, ok := gb.Backspace()
	if !ok || c != 'a' {
		t.Fatalf("expected backspace to remove 'a', got %q ok=%v", c, ok)
	}
	if string(gb.Bytes()) != "bc" {
		t.Fatalf("expected %q, got %q", "bc", gb.Bytes())
	}

	c, ok = gb.Delete()
	if !ok || c != 'b' {
		t.Fatalf("expected delete to remove 'b', got %q ok=%v", c, ok)
	}
	if string(gb.Bytes()) != "c" {
		t.Fatalf("expected %q, got %q", "c", gb.Bytes())
	}

	if _, ok := gb.Backspace(); ok {
		t.Fatal("backspace on empty before run should fail")
	}
}

func TestMoveCursorTracksCursLine(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("a\nb\nc"))
	if gb.CursLine() != 0 {
		t.Fatalf("expected cursLine 0, got %d", gb.CursLine())
	}
	gb.MoveCursor(gb.Size())
	if gb.CursLine() != 2 {
		t.Fatalf("expected cursLine 2 at end, got %d", gb.CursLine())
	}
	gb.MoveCursor(-gb.Size())
	if gb.CursLine() != 0 {
		t.Fatalf("expected cursLine 0 after rewind, got %d", gb.CursLine())
	}
}

func TestByteAtSentinel(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("ab"))
	if gb.ByteAt(-1) != '\n' {
		t.Fatalf("expected sentinel '\\n' for negative offset, got %q", gb.ByteAt(-1))
	}
	if gb.ByteAt(100) != '\n' {
		t.Fatalf("expected sentinel '\\n' past end, got %q", gb.ByteAt(100))
	}
}

func TestBOLEOL(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("aa\nbb\ncc"))
	if got := gb.BOL(4); got != 3 {
		t.Fatalf("BOL(4) = %d, want 3", got)
	}
	if got := gb.EOL(4); got != 5 {
		t.Fatalf("EOL(4) = %d, want 5", got)
	}
	if got := gb.EOL(6); got != gb.Size() {
		t.Fatalf("EOL of last unterminated line = %d, want %d", got, gb.Size())
	}
}

func TestCountLines(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("a\nb\nc\nd"))
	if got := gb.CountLines(0, gb.Size()); got != 3 {
		t.Fatalf("CountLines = %d, want 3", got)
	}
}

func TestForwardBackwardOffsetRoundTrip(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("one\ntwo\nthree\nfour"))
	start := 0
	fwd := gb.ForwardOffset(start, 2, 0)
	if fwd != gb.BOL(fwd) {
		t.Fatalf("ForwardOffset(0,2,0) = %d should land on a BOL", fwd)
	}
	back := gb.BackwardOffset(fwd, 2)
	if back != start {
		t.Fatalf("BackwardOffset undo of ForwardOffset = %d, want %d", back, start)
	}
}

func TestGetUTFRoundTrip(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("a\xe4\xb8\xadb")) // a, 中, b
	r, n := gb.GetUTF(1)
	if r != '中' || n != 3 {
		t.Fatalf("GetUTF(1) = %q,%d want '中',3", r, n)
	}
	r2, n2 := gb.GetPrevUTF(4)
	if r2 != '中' || n2 != 3 {
		t.Fatalf("GetPrevUTF(4) = %q,%d want '中',3", r2, n2)
	}
}

func TestReset(t *testing.T) {
	gb := NewGapBufferFromBytes([]byte("xyz"))
	gb.MoveCursor(2)
	gb.Reset([]byte("ab\ncd"))
	if gb.Curs1() != 0 {
		t.Fatalf("Reset should put cursor at 0, got %d", gb.Curs1())
	}
	if gb.Lines() != 1 {
		t.Fatalf("Reset should recount lines, got %d", gb.Lines())
	}
	if string(gb.Bytes()) != "ab\ncd" {
		t.Fatalf("Reset content mismatch: %q", gb.Bytes())
	}
}
