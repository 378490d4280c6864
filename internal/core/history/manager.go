package history

import "github.com/google/uuid"

// ApplyFunc performs the buffer/cursor/marker mutation a Code
// describes and returns the Code that undoes exactly that mutation.
// Undo and Redo are both just "pop a code, call ApplyFunc, push the
// result to the other log" — the same function replays both
// directions because every code pair the editor pushes is its own
// inverse (insert <-> backspace, insert_ahead <-> delete, cursor left
// <-> right, column-select on <-> off). Component F (edit primitives)
// supplies the concrete ApplyFunc; this package never touches a
// buffer directly.
type ApplyFunc func(Code) Code

// Manager owns the undo and redo ring buffers and the key-press
// grouping/eviction policy described in spec §4.E.
type Manager struct {
	undo      *Log
	redo      *Log
	maxCells  int
	groupUndo bool
}

// DefaultMaxUndo mirrors spec §6's max_undo default.
const DefaultMaxUndo = 32768

// NewManager creates a manager whose rings hold up to maxUndo codes
// (after growth) before the oldest key-press group is evicted.
// groupUndo enables merging of adjacent command groups that share an
// ActionClass into one undo step (spec §4.E's "group undo").
func NewManager(maxUndo int, groupUndo bool) *Manager {
	if maxUndo <= 0 {
		maxUndo = DefaultMaxUndo
	}
	return &Manager{
		undo:      newLog(maxUndo),
		redo:      newLog(maxUndo),
		maxCells:  maxUndo,
		groupUndo: groupUndo,
	}
}

// SetGroupUndo toggles group-undo at runtime (config.group_undo).
func (m *Manager) SetGroupUndo(enabled bool) { m.groupUndo = enabled }

// BeginCommand opens a new key-press boundary in the undo log,
// recording startDisplay (the display anchor before the command runs,
// stored in the boundary's Mark; Undo and Redo do not restore it) and actionClass
// (used to decide whether consecutive commands group together). Every
// command dispatched by the executor (Component H) calls this exactly
// once before pushing any edit codes. Opening a new command discards
// any pending redo history, matching normal editor undo-tree semantics
// (a fresh edit after undoing invalidates the redone-away future).
func (m *Manager) BeginCommand(startDisplay int, actionClass string) uuid.UUID {
	id := uuid.New()
	m.undo.Push(Code{Kind: KindKeyPress, Mark: startDisplay, ActionClass: actionClass, GroupID: id})
	m.redo = newLog(m.maxCells)
	return id
}

// Push records one undo code for the command currently open via
// BeginCommand.
func (m *Manager) Push(code Code) {
	m.undo.Push(code)
}

// CanUndo reports whether the undo log holds at least one completed
// command group.
func (m *Manager) CanUndo() bool {
	_, ok := m.undo.Peek()
	return ok
}

// CanRedo reports whether the redo log holds at least one group to
// replay.
func (m *Manager) CanRedo() bool {
	_, ok := m.redo.Peek()
	return ok
}

// Undo pops and applies codes from the undo log back to (and
// including) the most recent key-press boundary, pushing each code's
// inverse onto the redo log so Redo can replay it forward. When
// groupUndo is set, boundaries whose ActionClass matches the first one
// popped are consumed too, merging a multi-keystroke command (e.g. an
// auto-indented newline plus the typed text that followed it) into one
// undo step. Returns the number of key-press groups undone.
func (m *Manager) Undo(apply ApplyFunc) int {
	groups := 0
	var class string
	for {
		code, ok := m.undo.Peek()
		if !ok {
			return groups
		}
		if code.Kind == KindKeyPress {
			if groups > 0 && (!m.groupUndo || code.ActionClass != class) {
				return groups
			}
			class = code.ActionClass
			m.undo.Pop()
			m.redo.Push(code)
			groups++
			if !m.groupUndo {
				return groups
			}
			// A group's boundary sits below its codes, so look ahead
			// to the next boundary before applying any of them.
			merge := false
			for i := m.undo.pointer - 1; i >= m.undo.bottom; i-- {
				if c := m.undo.cells[m.undo.index(i)].code; c.Kind == KindKeyPress {
					merge = c.ActionClass == class
					break
				}
			}
			if !merge {
				return groups
			}
			continue
		}
		m.undo.Pop()
		m.redo.Push(apply(code))
	}
}

// Redo is Undo's mirror: it consumes the key-press boundary on top of
// the redo log, then replays the codes beneath it forward, pushing
// their inverses back onto the undo log, and stops at (without
// consuming) the next boundary unless group-undo merges it. Returns
// the number of key-press groups redone.
func (m *Manager) Redo(apply ApplyFunc) int {
	groups := 0
	var class string
	for {
		code, ok := m.redo.Peek()
		if !ok {
			return groups
		}
		if code.Kind == KindKeyPress {
			if groups > 0 && (!m.groupUndo || code.ActionClass != class) {
				return groups
			}
			class = code.ActionClass
			m.redo.Pop()
			m.undo.Push(code)
			groups++
			continue
		}
		m.redo.Pop()
		m.undo.Push(apply(code))
	}
}

// Clear discards all undo and redo history (e.g. after loading a new
// file into the buffer).
func (m *Manager) Clear() {
	m.undo = newLog(m.maxCells)
	m.redo = newLog(m.maxCells)
}
