// Package core wires components A through J into one editing session:
// the composition root spec §1 describes as "one buffer plus the
// cursor/selection/undo/bookmark state that travels with it."
package core

import (
	"fmt"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/config"
	"github.com/coreedit/coreedit/internal/core/bookmark"
	"github.com/coreedit/coreedit/internal/core/clipboard"
	"github.com/coreedit/coreedit/internal/core/command"
	"github.com/coreedit/coreedit/internal/core/cursor"
	"github.com/coreedit/coreedit/internal/core/edit"
	"github.com/coreedit/coreedit/internal/core/history"
	"github.com/coreedit/coreedit/internal/core/marker"
	"github.com/coreedit/coreedit/internal/event"
	"github.com/coreedit/coreedit/internal/ioadapter"
	"github.com/coreedit/coreedit/internal/logger"
	"github.com/coreedit/coreedit/internal/types"
)

// Editor owns one open file's complete editing state and is the single
// entry point a UI or script driver needs: Execute for every editing
// command, plus direct accessors for the pieces a renderer reads every
// frame (buffer content, cursor, markers, bookmarks).
type Editor struct {
	tb   *buffer.TextBuffer
	hist *history.Manager
	mk   *marker.Marker
	bm   *bookmark.List
	ed   *edit.Manager
	cur  *cursor.Manager
	clip *clipboard.Manager
	exec *command.Executor

	loader *ioadapter.Loader
	saver  *ioadapter.Saver

	events *event.Manager
}

// New builds an empty, unmodified editor session using the process's
// loaded configuration (config.LoadConfig must already have been called).
func New() *Editor {
	cfg := config.Get().Editor

	tb := buffer.NewTextBuffer()
	hist := history.NewManager(cfg.MaxUndo, cfg.GroupUndo)
	mk := marker.New()
	bm := bookmark.New()
	ed := edit.NewManager(tb, hist, mk, bm)

	e := &Editor{tb: tb, hist: hist, mk: mk, bm: bm, ed: ed, events: event.NewManager()}
	e.cur = cursor.NewManager(e, ed)
	e.clip = clipboard.NewManager(tb, ed, mk, cfg.SystemClipboard, cfg.TabWidth)
	e.exec = command.NewExecutor(tb, e.cur, mk, ed, hist, e.clip, bm)
	e.saver = ioadapter.NewSaver()
	return e
}

// Events exposes the session's event bus so a renderer or script driver
// can subscribe to buffer/cursor/selection/undo-redo notifications
// instead of polling the accessors every frame.
func (e *Editor) Events() *event.Manager { return e.events }

// GetBuffer satisfies cursor.Editor: the narrow view cursor.Manager
// needs of the session it belongs to.
func (e *Editor) GetBuffer() buffer.Buffer { return e.tb }

// ScrollOff satisfies cursor.Editor.
func (e *Editor) ScrollOff() int { return config.Get().Editor.ScrollOff }

// Open loads path into the session, replacing any existing content and
// clearing undo history, markers, and bookmarks (a fresh file has none
// of the old one's edit history to speak of). line, if >= 0, positions
// the cursor there after loading (the "edit file:line" CLI form).
func (e *Editor) Open(path string, line int) error {
	e.loader = ioadapter.NewLoader(nil)
	gb, err := e.loader.Load(path)
	if err != nil {
		return fmt.Errorf("core: open %q: %w", path, err)
	}

	e.tb.Reset(path, gb)
	e.hist.Clear()
	e.mk.Clear()
	e.bm = bookmark.New()
	e.ed = edit.NewManager(e.tb, e.hist, e.mk, e.bm)
	e.cur = cursor.NewManager(e, e.ed)
	e.clip = clipboard.NewManager(e.tb, e.ed, e.mk, config.Get().Editor.SystemClipboard, config.Get().Editor.TabWidth)
	e.exec = command.NewExecutor(e.tb, e.cur, e.mk, e.ed, e.hist, e.clip, e.bm)

	if line >= 0 {
		off := e.tb.Cache().FindLine(e.tb.GapBuffer(), line)
		e.ed.CursorMove(off - e.tb.GapBuffer().Curs1())
		e.cur.SyncFromBuffer(e.tb.GapBuffer())
	}
	logger.Infof("core: opened %q (%d lines)", path, e.tb.LineCount())
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

// Save writes the buffer back to path (or its current FilePath if path
// is empty), honoring the configured save_mode and line_ending.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.tb.FilePath()
	}
	if path == "" {
		return fmt.Errorf("core: save: no file path set")
	}
	if err := e.saver.Save(e.tb.GapBuffer(), path); err != nil {
		return err
	}
	e.tb.SetFilePath(path)
	e.tb.ClearModified()
	logger.Infof("core: saved %q", path)
	e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	return nil
}

// Execute runs one editor command (spec §4.H's (command, char) pair),
// then dispatches the events a renderer or script driver would need to
// react to the command's effects: cursor movement, selection changes,
// buffer mutation, and undo/redo application.
func (e *Editor) Execute(code command.Code, ch rune) {
	beforePos := e.cur.GetPosition()
	beforeActive := e.mk.Active()
	beforeSize := e.tb.GapBuffer().Size()
	beforeOff := e.tb.GapBuffer().Curs1()

	e.exec.Execute(code, ch)

	if afterSize := e.tb.GapBuffer().Size(); afterSize != beforeSize {
		startByte := min(beforeOff, e.tb.GapBuffer().Curs1())
		info := types.EditInfo{
			StartByte:  uint32(startByte),
			OldEndByte: uint32(beforeOff),
			NewEndByte: uint32(e.tb.GapBuffer().Curs1()),
			StartLine:  e.tb.PositionOf(startByte).Line,
			OldEndLine: e.tb.PositionOf(beforeOff).Line,
			NewEndLine: e.tb.PositionOf(e.tb.GapBuffer().Curs1()).Line,
		}
		e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info})
	}

	switch code {
	case command.Undo:
		e.events.Dispatch(event.TypeUndoApplied, nil)
	case command.Redo:
		e.events.Dispatch(event.TypeRedoApplied, nil)
	}

	afterPos := e.cur.GetPosition()
	if afterPos != beforePos {
		e.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: afterPos})
	}

	if afterActive := e.mk.Active(); afterActive != beforeActive || afterActive {
		start, end, ok := e.mk.Evaluate(e.tb.GapBuffer().Curs1())
		data := event.SelectionChangedData{Active: ok}
		if ok {
			data.Start = e.tb.PositionOf(start)
			data.End = e.tb.PositionOf(end)
		}
		e.events.Dispatch(event.TypeSelectionChanged, data)
	}
}

// Buffer exposes the underlying text buffer for renderers.
func (e *Editor) Buffer() *buffer.TextBuffer { return e.tb }

// Cursor exposes the cursor manager for renderers.
func (e *Editor) Cursor() *cursor.Manager { return e.cur }

// Marker exposes the selection marker for renderers.
func (e *Editor) Marker() *marker.Marker { return e.mk }

// Bookmarks exposes the bookmark list for renderers.
func (e *Editor) Bookmarks() *bookmark.List { return e.bm }

// Clipboard exposes the clipboard manager (e.g. for a status line
// showing "N bytes yanked").
func (e *Editor) Clipboard() *clipboard.Manager { return e.clip }

// CanUndo/CanRedo expose undo-log state for status displays.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

var _ cursor.Editor = (*Editor)(nil)
