package command

import (
	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/config"
	"github.com/coreedit/coreedit/internal/core/bookmark"
	"github.com/coreedit/coreedit/internal/core/clipboard"
	"github.com/coreedit/coreedit/internal/core/cursor"
	"github.com/coreedit/coreedit/internal/core/edit"
	"github.com/coreedit/coreedit/internal/core/history"
	"github.com/coreedit/coreedit/internal/core/marker"
	"github.com/coreedit/coreedit/internal/core/motion"
	"github.com/coreedit/coreedit/internal/logger"
)

// highlightState is the MARKING/NONE machine spec §4.H.1 describes:
// NONE means the next shifted-motion command should open a fresh
// selection; MARKING means one is already open and further
// shifted-motion commands just extend it.
type highlightState uint8

const (
	highlightNone highlightState = iota
	highlightMarking
)

// Executor dispatches (command, char) pairs to the editing core,
// enforcing the option-driven policies spec §4.H names.
type Executor struct {
	tb   *buffer.TextBuffer
	cur  *cursor.Manager
	mk   *marker.Marker
	ed   *edit.Manager
	hist *history.Manager
	clip *clipboard.Manager
	bm   *bookmark.List

	highlight highlightState
}

// NewExecutor wires the executor to every manager a command might
// touch.
func NewExecutor(tb *buffer.TextBuffer, cur *cursor.Manager, mk *marker.Marker, ed *edit.Manager, hist *history.Manager, clip *clipboard.Manager, bm *bookmark.List) *Executor {
	return &Executor{tb: tb, cur: cur, mk: mk, ed: ed, hist: hist, clip: clip, bm: bm}
}

func (e *Executor) gb() *buffer.GapBuffer { return e.tb.GapBuffer() }

// Execute runs one command, or inserts ch when code is InsertChar.
func (e *Executor) Execute(code Code, ch rune) {
	if code == Undo {
		e.hist.SetGroupUndo(config.Get().Editor.GroupUndo)
		e.hist.Undo(e.ed.Perform)
		e.cur.SyncFromBuffer(e.gb())
		return
	}
	if code == Redo {
		e.hist.SetGroupUndo(config.Get().Editor.GroupUndo)
		e.hist.Redo(e.ed.Perform)
		e.cur.SyncFromBuffer(e.gb())
		return
	}

	e.updateHighlight(code)
	e.hist.BeginCommand(e.cur.StartDisplay(), code.actionClass())

	switch code {
	case Left:
		e.ed.CursorMove(-1)
	case Right:
		e.ed.CursorMove(1)
	case Up:
		e.cur.MoveUpDown(-1)
		e.syncCursorMoveFromManager()
	case Down:
		e.cur.MoveUpDown(1)
		e.syncCursorMoveFromManager()
	case WordLeft:
		e.moveTo(motion.LeftWordMove(e.gb(), e.gb().Curs1()))
	case WordRight:
		e.moveTo(motion.RightWordMove(e.gb(), e.gb().Curs1()))
	case Home:
		e.moveTo(e.gb().BOL(e.gb().Curs1()))
	case End:
		e.moveTo(e.gb().EOL(e.gb().Curs1()))
	case PageUp:
		e.cur.PageMove(-1)
		e.syncCursorMoveFromManager()
	case PageDown:
		e.cur.PageMove(1)
		e.syncCursorMoveFromManager()
	case Top:
		e.moveTo(0)
	case Bottom:
		e.moveTo(e.gb().Size())
	case ParagraphUp:
		e.moveTo(motion.ParagraphUp(e.gb(), e.gb().Curs1()))
	case ParagraphDown:
		e.moveTo(motion.ParagraphDown(e.gb(), e.gb().Curs1()))
	case MatchBracket:
		if to := motion.MatchBracket(e.gb(), e.gb().Curs1(), motion.DefaultFurthest, false, 0); to >= 0 {
			e.moveTo(to)
		}

	case MarkLeft:
		e.ed.CursorMove(-1)
	case MarkRight:
		e.ed.CursorMove(1)
	case MarkUp:
		e.cur.MoveUpDown(-1)
		e.syncCursorMoveFromManager()
	case MarkDown:
		e.cur.MoveUpDown(1)
		e.syncCursorMoveFromManager()
	case MarkWordLeft:
		e.moveTo(motion.LeftWordMove(e.gb(), e.gb().Curs1()))
	case MarkWordRight:
		e.moveTo(motion.RightWordMove(e.gb(), e.gb().Curs1()))
	case MarkHome:
		e.moveTo(e.gb().BOL(e.gb().Curs1()))
	case MarkEnd:
		e.moveTo(e.gb().EOL(e.gb().Curs1()))
	case MarkPageUp:
		e.cur.PageMove(-1)
		e.syncCursorMoveFromManager()
	case MarkPageDown:
		e.cur.PageMove(1)
		e.syncCursorMoveFromManager()
	case MarkColumnToggle:
		e.mk.ToggleMark(e.gb().Curs1(), e.visualCol(), true)

	case InsertChar:
		e.insertChar(ch)
	case InsertNewLine:
		e.insertNewLine()
	case InsertTab:
		e.insertTab()
	case DeleteForward:
		e.deleteForward()
	case DeleteBackward:
		e.deleteBackward()
	case ToggleMark:
		e.mk.ToggleMark(e.gb().Curs1(), e.cur.GetPosition().Col, false)
	case ToggleOverwrite:
		// Overwrite mode is display/input-layer state; the core only
		// needs to expose the toggle point for that layer to observe.
	case ShiftBlockLeft:
		e.shiftBlock(-1)
	case ShiftBlockRight:
		e.shiftBlock(1)

	case Yank:
		if _, err := e.clip.Yank(e.gb().Curs1(), e.visualCol()); err != nil {
			logger.Warnf("command: yank failed: %v", err)
		}
	case Paste:
		pos := e.cur.GetPosition()
		if _, err := e.clip.Paste(pos.Line, e.visualCol()); err != nil {
			logger.Warnf("command: paste failed: %v", err)
		}
		e.cur.SyncFromBuffer(e.gb())

	case BookmarkToggle:
		e.bm.Toggle(e.gb().CursLine())
	case BookmarkNext:
		if line, ok := e.bm.Next(e.gb().CursLine()); ok {
			e.jumpToLine(line)
		}
	case BookmarkPrev:
		if line, ok := e.bm.Prev(e.gb().CursLine()); ok {
			e.jumpToLine(line)
		}
	}
}

// updateHighlight implements spec §4.H.1: opening a selection the
// first time a shifted-motion command runs, and clearing it (unless
// persistent_selections is set) on any non-mark command.
func (e *Executor) updateHighlight(code Code) {
	if code.isMark() {
		if e.highlight == highlightNone {
			e.mk.Clear()
			e.mk.ToggleMark(e.gb().Curs1(), e.cur.GetPosition().Col, false)
			e.highlight = highlightMarking
		}
		return
	}
	if !config.Get().Editor.PersistentSelections {
		e.mk.Clear()
	}
	e.highlight = highlightNone
}

func (e *Executor) moveTo(off int) {
	e.ed.CursorMove(off - e.gb().Curs1())
}

// syncCursorMoveFromManager translates cursor.Manager's line/column
// arithmetic (used for vertical motion, which needs the
// remembered-column behavior cursor.Manager implements) back into an
// absolute byte offset and moves the buffer's real cursor there via
// the edit primitives, so the per-unit CURS_LEFT/CURS_RIGHT undo codes
// still get pushed for vertical motion, not just horizontal.
func (e *Executor) syncCursorMoveFromManager() {
	pos := e.cur.GetPosition()
	lineStart := e.tb.Cache().FindLine(e.gb(), pos.Line)
	off := lineStart
	i := 0
	for i < pos.Col {
		if e.gb().ByteAt(off) == '\n' {
			break
		}
		_, n := e.gb().GetUTF(off)
		off += n
		i++
	}
	e.ed.CursorMove(off - e.gb().Curs1())
}

// visualCol returns the cursor's current visual (screen) column within
// its line, the unit cursor.GetVisualCol/GetBufferCol and a column
// selection's bounds are expressed in — distinct from
// cursor.Manager.GetPosition().Col, which counts runes since buffer
// start of line rather than screen cells.
func (e *Executor) visualCol() int {
	lineStart := e.tb.Cache().FindLine(e.gb(), e.gb().CursLine())
	return e.cur.GetVisualCol(e.currentLine(), e.gb().Curs1()-lineStart)
}

func (e *Executor) currentLine() string {
	line, err := e.tb.Line(e.gb().CursLine())
	if err != nil {
		return ""
	}
	return string(line)
}

func (e *Executor) jumpToLine(line int) {
	off := e.tb.Cache().FindLine(e.gb(), line)
	e.ed.CursorMove(off - e.gb().Curs1())
	e.cur.SyncFromBuffer(e.gb())
	e.cur.ScrollToCursor()
}

func (e *Executor) insertChar(ch rune) {
	e.ed.InsertRune(ch)
	e.cur.SyncFromBuffer(e.gb())
	e.maybeWrap()
}

func (e *Executor) insertNewLine() {
	indent := ""
	if config.Get().Editor.ReturnDoesAutoIndent {
		indent = leadingWhitespace(e.currentLine())
	}
	e.ed.InsertByte('\n')
	for i := 0; i < len(indent); i++ {
		e.ed.InsertByte(indent[i])
	}
	if config.Get().Editor.AutoParaFormatting && !e.surroundedByBlankLines() {
		e.ed.InsertByte('\n')
	}
	e.cur.SyncFromBuffer(e.gb())
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

func (e *Executor) surroundedByBlankLines() bool {
	cur := e.gb().CursLine()
	prevBlank := cur == 0
	if cur > 0 {
		prevBlank = len(leadingAndTrailingTrim(e.lineAt(cur-1))) == 0
	}
	nextBlank := cur+1 >= e.gb().Lines()+1 || len(leadingAndTrailingTrim(e.lineAt(cur+1))) == 0
	return prevBlank && nextBlank
}

func (e *Executor) lineAt(line int) string {
	l, err := e.tb.Line(line)
	if err != nil {
		return ""
	}
	return string(l)
}

func leadingAndTrailingTrim(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func (e *Executor) insertTab() {
	tw := config.Get().Editor.TabWidth
	if config.Get().Editor.FakeHalfTabs {
		tw /= 2
	}
	if config.Get().Editor.FillTabsWithSpaces {
		col := e.cur.GetPosition().Col
		n := tw - (col % tw)
		for i := 0; i < n; i++ {
			e.ed.InsertByte(' ')
		}
	} else {
		e.ed.InsertByte('\t')
	}
	e.cur.SyncFromBuffer(e.gb())
}

func (e *Executor) deleteForward() {
	e.codepointDelete(false)
}

func (e *Executor) deleteBackward() {
	if config.Get().Editor.BackspaceThroughTabs && e.atSoftTabStop() {
		tw := config.Get().Editor.TabWidth
		for i := 0; i < tw; i++ {
			if _, ok := e.ed.Backspace(); !ok {
				break
			}
		}
		e.cur.SyncFromBuffer(e.gb())
		return
	}
	e.codepointDelete(true)
}

func (e *Executor) atSoftTabStop() bool {
	col := e.cur.GetPosition().Col
	tw := config.Get().Editor.TabWidth
	if tw <= 0 || col == 0 || col%tw != 0 {
		return false
	}
	line := e.currentLine()
	if col > len(line) {
		return false
	}
	for i := col - tw; i < col; i++ {
		if i < 0 || i >= len(line) || line[i] != ' ' {
			return false
		}
	}
	return true
}

// codepointDelete removes one UTF-8 codepoint (looping the
// single-byte primitive char_length times, per spec §4.F.5's
// byte_delete==false path; this executor never exercises the
// byte_delete==true single-byte variant, which only matters for a
// raw binary-editing mode outside this spec's scope).
func (e *Executor) codepointDelete(backward bool) {
	var n int
	if backward {
		_, n = e.gb().GetPrevUTF(e.gb().Curs1())
	} else {
		_, n = e.gb().GetUTF(e.gb().Curs1())
	}
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if backward {
			if _, ok := e.ed.Backspace(); !ok {
				break
			}
		} else {
			if _, ok := e.ed.Delete(); !ok {
				break
			}
		}
	}
	e.cur.SyncFromBuffer(e.gb())
}

// maybeWrap reformats the current line when it exceeds
// word_wrap_line_length and typewriter_wrap/auto_para_formatting call
// for it: moves the overflowing trailing word down to the next line
// by replacing its leading space with a newline.
func (e *Executor) maybeWrap() {
	if !config.Get().Editor.TypewriterWrap && !config.Get().Editor.AutoParaFormatting {
		return
	}
	limit := config.Get().Editor.WordWrapLineLength
	line := e.currentLine()
	if len(line) <= limit {
		return
	}
	breakAt := -1
	for i := limit; i > 0; i-- {
		if line[i] == ' ' {
			breakAt = i
			break
		}
	}
	if breakAt < 0 {
		return
	}
	lineStart := e.tb.Cache().FindLine(e.gb(), e.gb().CursLine())
	target := lineStart + breakAt
	saved := e.gb().Curs1()
	e.ed.CursorMove(target - e.gb().Curs1())
	e.ed.Delete()
	e.ed.InsertByte('\n')
	e.ed.CursorMove(saved - e.gb().Curs1())
	e.cur.SyncFromBuffer(e.gb())
}

// shiftBlock indents (dir>0) or outdents (dir<0) every line the active
// selection spans by one tab stop.
func (e *Executor) shiftBlock(dir int) {
	start, end, ok := e.mk.Evaluate(e.gb().Curs1())
	if !ok {
		return
	}
	startLine := e.gb().CountLines(0, start)
	endLine := e.gb().CountLines(0, end)
	tw := config.Get().Editor.TabWidth

	for line := startLine; line <= endLine; line++ {
		lineStart := e.tb.Cache().FindLine(e.gb(), line)
		e.ed.CursorMove(lineStart - e.gb().Curs1())
		if dir > 0 {
			e.ed.InsertByte('\t')
		} else {
			for i := 0; i < tw; i++ {
				b := e.gb().CurrentByte()
				if b != ' ' && b != '\t' {
					break
				}
				e.ed.Delete()
				if b == '\t' {
					break
				}
			}
		}
		e.tb.InvalidateCache()
	}
	e.cur.SyncFromBuffer(e.gb())
}
