// Package command implements spec §4.H: the (command, char) executor
// that dispatches to the cursor, marker, edit, motion, clipboard, and
// bookmark managers while enforcing the editor's behavior options
// (auto-indent, tab policy, auto-wrap, block shift, ...).
//
// Code is adapted from the teacher's input.Action enum: the shape
// (an integer command code plus an optional rune payload) carries
// over, but the member set is expanded to cover every command §4.H
// names, and the editor-chrome-only members (command-line mode, find
// mode) are dropped — those belong to a future UI layer, not the
// editing core this package implements.
package command

// Code identifies a command passed to Executor.Execute. Exactly one of
// (code, char) is meaningful per call: InsertChar means the rune
// argument should be inserted; every other code ignores it.
type Code int

const (
	Unknown Code = iota

	// Plain motion.
	Left
	Right
	Up
	Down
	WordLeft
	WordRight
	Home
	End
	PageUp
	PageDown
	Top
	Bottom
	ParagraphUp
	ParagraphDown
	MatchBracket

	// Shifted ("Mark...") motion: same cursor movement as above, plus
	// extending the active selection (spec §4.H.1's highlight toggle).
	MarkLeft
	MarkRight
	MarkUp
	MarkDown
	MarkWordLeft
	MarkWordRight
	MarkHome
	MarkEnd
	MarkPageUp
	MarkPageDown
	MarkColumnToggle

	// Editing.
	InsertChar
	InsertNewLine
	InsertTab
	DeleteForward
	DeleteBackward
	ToggleMark
	ToggleOverwrite
	ShiftBlockLeft
	ShiftBlockRight

	// Clipboard.
	Yank
	Paste

	// Undo/redo — handled specially: never opens a new key-press
	// boundary and never clears the redo log (spec §4.H.2).
	Undo
	Redo

	// Bookmarks.
	BookmarkToggle
	BookmarkNext
	BookmarkPrev
)

// isMotion reports whether code is a plain or shifted motion command,
// used to decide whether to clear the non-persistent highlight state.
func (c Code) isMotion() bool {
	switch c {
	case Left, Right, Up, Down, WordLeft, WordRight, Home, End, PageUp, PageDown,
		Top, Bottom, ParagraphUp, ParagraphDown, MatchBracket,
		MarkLeft, MarkRight, MarkUp, MarkDown, MarkWordLeft, MarkWordRight,
		MarkHome, MarkEnd, MarkPageUp, MarkPageDown, MarkColumnToggle:
		return true
	default:
		return false
	}
}

// isMark reports whether code is a shifted ("Mark...") motion command.
func (c Code) isMark() bool {
	switch c {
	case MarkLeft, MarkRight, MarkUp, MarkDown, MarkWordLeft, MarkWordRight,
		MarkHome, MarkEnd, MarkPageUp, MarkPageDown, MarkColumnToggle:
		return true
	default:
		return false
	}
}

// actionClass labels the group-undo class a command belongs to: two
// consecutively-dispatched commands merge into one undo step when
// group undo is enabled and they report the same class.
func (c Code) actionClass() string {
	switch c {
	case InsertChar, InsertNewLine, InsertTab:
		return "insert"
	case DeleteForward, DeleteBackward:
		return "delete"
	default:
		return "other"
	}
}
