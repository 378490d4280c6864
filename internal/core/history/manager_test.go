package history

import "testing"

// applyRecorder is a minimal ApplyFunc that treats KindByteInsertBehind
// and KindByteInsertAhead as inverses of each other and otherwise just
// flips OpCursLeft/OpCursRight, enough to exercise Undo/Redo's control
// flow without a real buffer.
func applyRecorder(log *[]string) ApplyFunc {
	return func(c Code) Code {
		switch c.Kind {
		case KindByteInsertBehind:
			*log = append(*log, "undo-insert:"+string(c.Byte))
			return Code{Kind: KindByteInsertAhead, Byte: c.Byte}
		case KindByteInsertAhead:
			*log = append(*log, "undo-insertahead:"+string(c.Byte))
			return Code{Kind: KindByteInsertBehind, Byte: c.Byte}
		case KindOp:
			*log = append(*log, "undo-op")
			return Code{Kind: KindOp, Op: c.invertOp()}
		default:
			return c
		}
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := NewManager(0, false)

	m.BeginCommand(0, "insert")
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'a'})
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'b'})

	if !m.CanUndo() {
		t.Fatal("expected CanUndo true after a command")
	}
	if m.CanRedo() {
		t.Fatal("expected CanRedo false before any undo")
	}

	var log []string
	n := m.Undo(applyRecorder(&log))
	if n != 1 {
		t.Fatalf("expected 1 group undone, got %d", n)
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 codes applied, got %d: %v", len(log), log)
	}
	if !m.CanRedo() {
		t.Fatal("expected CanRedo true after undo")
	}
	if m.CanUndo() {
		t.Fatal("expected CanUndo false after undoing the only group")
	}

	log = nil
	n = m.Redo(applyRecorder(&log))
	if n != 1 {
		t.Fatalf("expected 1 group redone, got %d", n)
	}
	if len(log) != 2 {
		t.Fatalf("expected 2 codes replayed, got %d", len(log))
	}
	if !m.CanUndo() {
		t.Fatal("expected CanUndo true after redo")
	}
}

func TestBeginCommandClearsRedo(t *testing.T) {
	m := NewManager(0, false)
	m.BeginCommand(0, "insert")
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'a'})
	m.Undo(applyRecorder(&[]string{}))

	if !m.CanRedo() {
		t.Fatal("expected redo available before a new command")
	}
	m.BeginCommand(0, "insert")
	if m.CanRedo() {
		t.Fatal("expected BeginCommand to discard pending redo history")
	}
}

func TestGroupUndoMergesSameActionClass(t *testing.T) {
	m := NewManager(0, true)

	m.BeginCommand(0, "typing")
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'a'})
	m.BeginCommand(0, "typing")
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'b'})
	m.BeginCommand(0, "delete")
	m.Push(Code{Kind: KindOp, Op: OpBackspace})

	var log []string
	n := m.Undo(applyRecorder(&log))
	if n != 1 {
		t.Fatalf("expected the 'delete' group alone to undo, got %d groups", n)
	}

	n = m.Undo(applyRecorder(&log))
	if n != 2 {
		t.Fatalf("expected the two 'typing' groups to merge into one undo call (groups=2), got %d", n)
	}
}

func TestClearDropsAllHistory(t *testing.T) {
	m := NewManager(0, false)
	m.BeginCommand(0, "insert")
	m.Push(Code{Kind: KindByteInsertBehind, Byte: 'a'})
	m.Clear()
	if m.CanUndo() {
		t.Fatal("expected CanUndo false after Clear")
	}
	if m.CanRedo() {
		t.Fatal("expected CanRedo false after Clear")
	}
}
