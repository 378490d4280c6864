// internal/buffer/text_buffer.go
package buffer

import (
	"errors"
	"fmt"
	"os"

	"github.com/coreedit/coreedit/internal/linecache"
	"github.com/coreedit/coreedit/internal/types"
)

// TextBuffer adapts the byte-offset GapBuffer (component A) to the
// Position-based Buffer interface the rest of the core composes
// against, translating (line, rune-column) positions to absolute byte
// offsets via a linecache.Cache (component C) kept in lockstep with
// every mutation.
type TextBuffer struct {
	gb       *GapBuffer
	cache    *linecache.Cache
	filePath string
	modified bool
}

// NewTextBuffer creates an empty, unmodified buffer.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{
		gb:    NewGapBuffer(),
		cache: linecache.New(),
	}
}

// Load reads a file into the buffer, replacing existing content. A
// missing file yields an empty buffer (treated as a new file), not an
// error, matching the editor's "edit <file>" convention of creating
// files that don't yet exist.
func (tb *TextBuffer) Load(filePath string) error {
	tb.filePath = filePath
	tb.modified = false

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			tb.gb = NewGapBuffer()
			tb.cache.Invalidate()
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}

	tb.gb = NewGapBufferFromBytes(data)
	tb.cache.Invalidate()
	return nil
}

// Reset replaces the buffer's content with gb (e.g. the result of an
// ioadapter.Loader read) and records filePath as its on-disk location.
func (tb *TextBuffer) Reset(filePath string, gb *GapBuffer) {
	tb.gb = gb
	tb.filePath = filePath
	tb.modified = false
	tb.cache.Invalidate()
}

// SetFilePath records where the buffer was last saved to.
func (tb *TextBuffer) SetFilePath(filePath string) { tb.filePath = filePath }

// ClearModified marks the buffer as having no unsaved changes (called
// after a successful save).
func (tb *TextBuffer) ClearModified() { tb.modified = false }

// lineBytes returns the raw bytes of line index (no trailing '\n').
func (tb *TextBuffer) lineBytes(index int) []byte {
	start := tb.cache.FindLine(tb.gb, index)
	end := tb.gb.EOL(start)
	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, tb.gb.ByteAt(i))
	}
	return out
}

// Lines materializes every line as a separate byte slice. Callers that
// only need one line should prefer Line, which avoids the full scan.
func (tb *TextBuffer) Lines() [][]byte {
	n := tb.LineCount()
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = tb.lineBytes(i)
	}
	return out
}

// LineCount is the number of lines, always at least 1 (an empty buffer
// is one empty line, same convention the gap buffer's Lines()+1 gives).
func (tb *TextBuffer) LineCount() int {
	return tb.gb.Lines() + 1
}

// Line returns the bytes of the given 0-based line.
func (tb *TextBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= tb.LineCount() {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, tb.LineCount()-1)
	}
	return tb.lineBytes(index), nil
}

// Bytes materializes the whole buffer.
func (tb *TextBuffer) Bytes() []byte {
	return tb.gb.Bytes()
}

// Save writes the buffer content to the stored path, or to filePath if
// one is given (and remembers it for subsequent saves).
func (tb *TextBuffer) Save(filePath string) error {
	path := tb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, tb.gb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	tb.filePath = path
	tb.modified = false
	return nil
}

// IsModified reports whether the buffer has unsaved changes.
func (tb *TextBuffer) IsModified() bool { return tb.modified }

// FilePath is the path the buffer was loaded from or last saved to.
func (tb *TextBuffer) FilePath() string { return tb.filePath }

// offsetOf converts pos to an absolute byte offset, clamping the line
// to [0, LineCount()-1] and the column to the line's rune length.
func (tb *TextBuffer) offsetOf(pos types.Position) (types.Position, int) {
	line := pos.Line
	if line < 0 {
		line = 0
	}
	if maxLine := tb.LineCount() - 1; line > maxLine {
		line = maxLine
	}

	lineStart := tb.cache.FindLine(tb.gb, line)
	lineEnd := tb.gb.EOL(lineStart)

	col := pos.Col
	if col < 0 {
		col = 0
	}
	off := lineStart
	runeCount := 0
	for off < lineEnd && runeCount < col {
		_, n := tb.gb.GetUTF(off)
		off += n
		runeCount++
	}
	return types.Position{Line: line, Col: runeCount}, off
}

// PositionOf converts an absolute byte offset back to a (line, col)
// position. Exported so callers outside this package (e.g. the core
// composition root's event wiring) can translate a raw GapBuffer
// offset to a Position without re-deriving the line/rune-column scan.
func (tb *TextBuffer) PositionOf(off int) types.Position {
	return tb.positionOf(off)
}

// positionOf converts an absolute byte offset back to a (line, col)
// position, used to build EditInfo's *Line fields.
func (tb *TextBuffer) positionOf(off int) types.Position {
	line := tb.gb.CountLines(0, off)
	lineStart := tb.gb.BOL(off)
	col := 0
	i := lineStart
	for i < off {
		_, n := tb.gb.GetUTF(i)
		i += n
		col++
	}
	return types.Position{Line: line, Col: col}
}

// Insert splices text in at pos, returning the resulting dirty region.
func (tb *TextBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	if len(text) == 0 {
		return types.EditInfo{}, nil
	}

	validPos, offset := tb.offsetOf(pos)
	tb.modified = true

	tb.gb.MoveCursor(offset - tb.gb.Curs1())
	for _, b := range text {
		tb.gb.Insert(b)
	}
	tb.cache.Invalidate()

	endOff := offset + len(text)
	info := types.EditInfo{
		StartByte:  uint32(offset),
		OldEndByte: uint32(offset),
		NewEndByte: uint32(endOff),
		StartLine:  validPos.Line,
		OldEndLine: validPos.Line,
		NewEndLine: tb.positionOf(endOff).Line,
	}
	return info, nil
}

// Delete removes [start, end) (after ordering them), returning the
// resulting dirty region.
func (tb *TextBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}
	if start == end {
		return types.EditInfo{}, nil
	}

	vStart, startOff := tb.offsetOf(start)
	vEnd, endOff := tb.offsetOf(end)
	if startOff == endOff {
		return types.EditInfo{}, nil
	}

	tb.modified = true

	tb.gb.MoveCursor(endOff - tb.gb.Curs1())
	for i := 0; i < endOff-startOff; i++ {
		tb.gb.Backspace()
	}
	tb.cache.Invalidate()

	info := types.EditInfo{
		StartByte:  uint32(startOff),
		OldEndByte: uint32(endOff),
		NewEndByte: uint32(startOff),
		StartLine:  vStart.Line,
		OldEndLine: vEnd.Line,
		NewEndLine: vStart.Line,
	}
	return info, nil
}

// GapBuffer exposes the underlying byte-level buffer so the motion
// (component G) and edit-primitive (component F) packages, which work
// in absolute byte offsets rather than Positions, can operate directly
// on it instead of paying the Position translation on every call.
func (tb *TextBuffer) GapBuffer() *GapBuffer { return tb.gb }

// Cache exposes the line-offset cache so callers that already hold a
// byte offset can resolve it to a line without re-deriving a Cache of
// their own.
func (tb *TextBuffer) Cache() *linecache.Cache { return tb.cache }

// MarkModified flags the buffer dirty without touching content; used
// by callers that mutate the GapBuffer directly (e.g. the edit
// primitives) and must keep IsModified in sync.
func (tb *TextBuffer) MarkModified() { tb.modified = true }

// InvalidateCache drops every line-offset anchor; used by callers that
// mutate the GapBuffer directly.
func (tb *TextBuffer) InvalidateCache() { tb.cache.Invalidate() }

// Ensure TextBuffer satisfies the Buffer interface.
var _ Buffer = (*TextBuffer)(nil)
