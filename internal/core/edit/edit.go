// Package edit implements spec §4.F: the five edit primitives
// (insert, insert_ahead, delete, backspace, cursor_move), each pushing
// the history code that undoes it, adjusting markers and bookmarks for
// the lines/bytes that moved, and invalidating the line cache.
package edit

import (
	"unicode/utf8"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/core/bookmark"
	"github.com/coreedit/coreedit/internal/core/history"
	"github.com/coreedit/coreedit/internal/core/marker"
)

// Manager applies edits directly to a GapBuffer, the same primitive
// surface the motion (G) and command (H) packages build on.
type Manager struct {
	tb   *buffer.TextBuffer
	hist *history.Manager
	mk   *marker.Marker
	bm   *bookmark.List
}

// NewManager wires the edit primitives to the buffer, undo log, marker
// and bookmark list they must keep in sync on every mutation.
func NewManager(tb *buffer.TextBuffer, hist *history.Manager, mk *marker.Marker, bm *bookmark.List) *Manager {
	return &Manager{tb: tb, hist: hist, mk: mk, bm: bm}
}

func (m *Manager) gb() *buffer.GapBuffer { return m.tb.GapBuffer() }

// InsertByte pushes c before the cursor (the buffer's insert
// primitive), advancing the cursor past it, and records the undo code.
func (m *Manager) InsertByte(c byte) {
	at := m.gb().Curs1()
	m.gb().Insert(c)
	m.mk.Adjust(at, 1, true)
	m.afterLineCountChange(at, c)
	m.hist.Push(history.Code{Kind: history.KindOp, Op: history.OpBackspace})
}

// InsertAheadByte pushes c after the cursor without moving it (the
// buffer's insert_ahead primitive), and records the undo code.
func (m *Manager) InsertAheadByte(c byte) {
	at := m.gb().Curs1()
	m.gb().InsertAhead(c)
	m.mk.Adjust(at, 1, false)
	m.afterLineCountChange(at, c)
	m.hist.Push(history.Code{Kind: history.KindOp, Op: history.OpDelChar})
}

// InsertRune encodes r as UTF-8 and inserts each byte before the
// cursor in order, so the cursor ends up immediately after r.
func (m *Manager) InsertRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for i := 0; i < n; i++ {
		m.InsertByte(buf[i])
	}
}

// Delete removes the byte after the cursor (the buffer's delete
// primitive) and records the byte removed so undo can replay it.
func (m *Manager) Delete() (byte, bool) {
	at := m.gb().Curs1()
	c, ok := m.gb().Delete()
	if !ok {
		return 0, false
	}
	m.mk.Adjust(at, -1, false)
	m.bookmarkShrink(c, at)
	m.tb.InvalidateCache()
	m.tb.MarkModified()
	m.hist.Push(history.Code{Kind: history.KindByteInsertAhead, Byte: c})
	return c, true
}

// Backspace removes the byte before the cursor (the buffer's backspace
// primitive) and records the byte removed so undo can replay it.
func (m *Manager) Backspace() (byte, bool) {
	at := m.gb().Curs1() - 1
	c, ok := m.gb().Backspace()
	if !ok {
		return 0, false
	}
	m.mk.Adjust(at, -1, true)
	m.bookmarkShrink(c, at)
	m.tb.InvalidateCache()
	m.tb.MarkModified()
	m.hist.Push(history.Code{Kind: history.KindByteInsertBehind, Byte: c})
	return c, true
}

// CursorMove shifts the cursor by delta bytes, pushing one
// OpCursLeft/OpCursRight code per unit so undo can retrace the path
// step by step (spec §4.B's per-unit cursor undo push).
func (m *Manager) CursorMove(delta int) {
	step := 1
	op := history.OpCursLeft
	if delta < 0 {
		step, delta, op = -1, -delta, history.OpCursRight
	}
	for i := 0; i < delta; i++ {
		m.gb().MoveCursor(step)
		m.hist.Push(history.Code{Kind: history.KindOp, Op: op})
	}
}

func (m *Manager) afterLineCountChange(at int, c byte) {
	if c == '\n' {
		line := m.gb().CountLines(0, at)
		m.bm.Inc(line+1, 1)
	}
	m.tb.InvalidateCache()
	m.tb.MarkModified()
}

func (m *Manager) bookmarkShrink(removed byte, at int) {
	if removed == '\n' {
		line := m.gb().CountLines(0, at)
		m.bm.Dec(line+1, 1)
	}
}

// Perform is the history.ApplyFunc this manager supplies to
// history.Manager.Undo/Redo: it mutates the buffer/markers according
// to code and returns code's own inverse, so the same function drives
// both undo and redo.
func (m *Manager) Perform(code history.Code) history.Code {
	switch code.Kind {
	case history.KindByteInsertAhead:
		at := m.gb().Curs1()
		m.gb().InsertAhead(code.Byte)
		m.mk.Adjust(at, 1, false)
		m.afterLineCountChange(at, code.Byte)
		return history.Code{Kind: history.KindOp, Op: history.OpDelChar}
	case history.KindByteInsertBehind:
		at := m.gb().Curs1()
		m.gb().Insert(code.Byte)
		m.mk.Adjust(at, 1, true)
		m.afterLineCountChange(at, code.Byte)
		return history.Code{Kind: history.KindOp, Op: history.OpBackspace}
	case history.KindOp:
		return m.performOp(code.Op)
	case history.KindSetMark1:
		old := m.mk.Mark1Raw()
		m.mk.SetMark1Raw(code.Mark)
		return history.Code{Kind: history.KindSetMark1, Mark: old}
	case history.KindSetMark2:
		old := m.mk.Mark2Raw()
		m.mk.SetMark2Raw(code.Mark)
		return history.Code{Kind: history.KindSetMark2, Mark: old}
	case history.KindSetEndMarkCurs:
		old := m.mk.EndMarkCurs()
		m.mk.SetEndMarkCursRaw(code.Mark)
		return history.Code{Kind: history.KindSetEndMarkCurs, Mark: old}
	}
	return code
}

func (m *Manager) performOp(op history.Opcode) history.Code {
	switch op {
	case history.OpCursLeft:
		m.gb().MoveCursor(-1)
		return history.Code{Kind: history.KindOp, Op: history.OpCursRight}
	case history.OpCursRight:
		m.gb().MoveCursor(1)
		return history.Code{Kind: history.KindOp, Op: history.OpCursLeft}
	case history.OpBackspace, history.OpBackspaceBR:
		at := m.gb().Curs1() - 1
		c, _ := m.gb().Backspace()
		m.mk.Adjust(at, -1, true)
		m.bookmarkShrink(c, at)
		m.tb.InvalidateCache()
		m.tb.MarkModified()
		return history.Code{Kind: history.KindByteInsertBehind, Byte: c}
	case history.OpDelChar, history.OpDelCharBR:
		at := m.gb().Curs1()
		c, _ := m.gb().Delete()
		m.mk.Adjust(at, -1, false)
		m.bookmarkShrink(c, at)
		m.tb.InvalidateCache()
		m.tb.MarkModified()
		return history.Code{Kind: history.KindByteInsertAhead, Byte: c}
	case history.OpColumnOn:
		m.mk.SetColumnRaw(true)
		return history.Code{Kind: history.KindOp, Op: history.OpColumnOff}
	case history.OpColumnOff:
		m.mk.SetColumnRaw(false)
		return history.Code{Kind: history.KindOp, Op: history.OpColumnOn}
	}
	return history.Code{Kind: history.KindOp, Op: op}
}
