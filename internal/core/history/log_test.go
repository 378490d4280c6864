package history

import "testing"

func TestLogPushPopOrder(t *testing.T) {
	l := newLog(0)
	l.Push(Code{Kind: KindOp, Op: OpCursLeft})
	l.Push(Code{Kind: KindOp, Op: OpCursRight})

	c, ok := l.Pop()
	if !ok || c.Op != OpCursRight {
		t.Fatalf("expected OpCursRight popped last, got %+v ok=%v", c, ok)
	}
	c, ok = l.Pop()
	if !ok || c.Op != OpCursLeft {
		t.Fatalf("expected OpCursLeft popped second, got %+v ok=%v", c, ok)
	}
	if _, ok := l.Pop(); ok {
		t.Fatal("expected empty log to report no more entries")
	}
}

func TestLogRunLengthCompression(t *testing.T) {
	l := newLog(0)
	for i := 0; i < 5; i++ {
		l.Push(Code{Kind: KindByteInsertAhead, Byte: 'x'})
	}
	if len(l.cells) < 1 || l.cells[0].run != 5 {
		t.Fatalf("expected repeated identical pushes to collapse into one cell with run=5, got cells=%+v", l.cells[:1])
	}

	for i := 0; i < 5; i++ {
		c, ok := l.Pop()
		if !ok || c.Byte != 'x' {
			t.Fatalf("pop %d: expected byte 'x', got %+v ok=%v", i, c, ok)
		}
	}
	if _, ok := l.Pop(); ok {
		t.Fatal("expected log drained after popping the whole run")
	}
}

func TestLogDoesNotCompressAcrossKeyPress(t *testing.T) {
	l := newLog(0)
	l.Push(Code{Kind: KindByteInsertAhead, Byte: 'x'})
	l.Push(Code{Kind: KindKeyPress, ActionClass: "a"})
	l.Push(Code{Kind: KindByteInsertAhead, Byte: 'x'})

	count := 0
	for {
		if _, ok := l.Pop(); !ok {
			break
		}
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 distinct entries across the key-press boundary, got %d", count)
	}
}

func TestLogGrowsPastInitialCapacity(t *testing.T) {
	l := newLog(1024)
	for i := 0; i < 200; i++ {
		// Alternate bytes so runs don't collapse, forcing real growth.
		b := byte('a' + i%2)
		l.Push(Code{Kind: KindByteInsertAhead, Byte: b})
	}
	n := 0
	for {
		if _, ok := l.Pop(); !ok {
			break
		}
		n++
	}
	if n != 200 {
		t.Fatalf("expected all 200 pushes to survive growth, popped %d", n)
	}
}

func TestLogEvictsOldestGroupAtCapacity(t *testing.T) {
	l := newLog(initialLogCells) // maxCells clamps to initialLogCells minimum
	l.Push(Code{Kind: KindKeyPress, ActionClass: "first"})
	l.Push(Code{Kind: KindByteInsertAhead, Byte: 'a'})

	// Fill well past capacity with alternating bytes so nothing
	// collapses via RLE, forcing advanceBottomPastKeyPress to run.
	for i := 0; i < initialLogCells*3; i++ {
		l.Push(Code{Kind: KindKeyPress, ActionClass: "filler"})
		b := byte('a' + i%2)
		l.Push(Code{Kind: KindByteInsertAhead, Byte: b})
	}

	// The very first group should have been evicted; popping back to
	// it should never surface ActionClass "first" again.
	for {
		c, ok := l.Pop()
		if !ok {
			break
		}
		if c.Kind == KindKeyPress && c.ActionClass == "first" {
			t.Fatal("expected the oldest group to be evicted once capacity was exceeded")
		}
	}
}
