// Package history implements the compressed undo/redo log from spec
// §4.E: two ring buffers of action codes, run-length compression of
// repeated pushes, key-press boundaries, and group-undo.
//
// The source this was distilled from packs every code into overlapping
// ranges of one signed integer (byte values, opcodes, marker offsets,
// key-press markers all sharing one number line). Per the design notes
// that followed from that encoding, this is a tagged union instead:
// explicit cases for each code kind, serialized into a dense ring only
// at the storage layer (Log), not in the type the rest of the package
// works with.
package history

import "github.com/google/uuid"

// Kind identifies what a Code represents.
type Kind uint8

const (
	KindStackBottom Kind = iota
	// KindByteInsertAhead pushes Byte onto the buffer immediately after
	// the cursor without moving it (insert_ahead). It is the inverse of
	// OpDelChar: undoing a forward delete replays this to put the
	// removed byte back where delete found it.
	KindByteInsertAhead
	// KindByteInsertBehind pushes Byte onto the buffer before the
	// cursor, advancing it (insert). It is the inverse of OpBackspace:
	// undoing a backspace replays this to put the removed byte back and
	// leave the cursor where it was before the backspace.
	KindByteInsertBehind
	// KindOp carries one of the Opcode values below.
	KindOp
	// KindSetMark1 restores mark1 to Mark.
	KindSetMark1
	// KindSetMark2 restores mark2 to Mark.
	KindSetMark2
	// KindSetEndMarkCurs restores end_mark_curs to Mark.
	KindSetEndMarkCurs
	// KindKeyPress is a command boundary; Mark holds the start_display
	// value saved by BeginCommand. Undo and Redo move the boundary
	// between the logs but do not apply Mark to the display anchor.
	KindKeyPress
)

// Opcode is the cursor/edit opcode range (spec's 600-699 block).
type Opcode uint8

const (
	OpCursLeft Opcode = iota
	OpCursRight
	OpBackspace
	OpDelChar
	// OpBackspaceBR/OpDelCharBR are byte-granular variants of
	// OpBackspace/OpDelChar. edit.Manager.Perform replays them exactly
	// like the plain opcodes; no edit primitive pushes them.
	OpBackspaceBR
	OpDelCharBR
	OpColumnOn
	OpColumnOff
)

// Code is one undo/redo log entry.
type Code struct {
	Kind Kind
	Byte byte   // valid for KindByteInsertAhead / KindByteInsertBehind
	Op   Opcode // valid for KindOp
	Mark int    // valid for KindSetMark1/2, KindSetEndMarkCurs, KindKeyPress (start_display)

	// ActionClass labels the outermost command that opened this
	// key-press group (valid for KindKeyPress only); group-undo merges
	// adjacent boundaries that share the same class.
	ActionClass string
	// GroupID tags a key-press boundary with a fresh identifier per
	// command, so observers (e.g. an UndoApplied event) can report
	// which logical edit group was just reverted without reparsing the
	// log. Purely descriptive — undo/redo correctness never depends on
	// it, only ActionClass does.
	GroupID uuid.UUID
}

// invertOp returns the opcode that, if applied, would reverse the buffer
// mutation that applying c performs — i.e. what should be pushed to
// the opposite log once c has been replayed. Byte-carrying ops need
// the caller to fill in the byte actually removed; invertOp handles only
// the mechanical, data-independent inversions.
func (c Code) invertOp() Opcode {
	switch c.Op {
	case OpCursLeft:
		return OpCursRight
	case OpCursRight:
		return OpCursLeft
	case OpColumnOn:
		return OpColumnOff
	case OpColumnOff:
		return OpColumnOn
	default:
		return c.Op
	}
}
