package cursor

import (
	"github.com/rivo/uniseg"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/config"
	"github.com/coreedit/coreedit/internal/core/edit"
	"github.com/coreedit/coreedit/internal/logger"
	"github.com/coreedit/coreedit/internal/types"
	"github.com/coreedit/coreedit/internal/utils"
)

// Editor is the interface cursor manager expects from the editor
type Editor interface {
	GetBuffer() buffer.Buffer
	ScrollOff() int
}

// Manager handles cursor positioning, the display anchor, and viewport
// management (spec §4.B). curs1 mirrors the GapBuffer's own cursor
// offset so motion code that only has a Manager in hand can still ask
// "where am I" in byte terms without reaching into the buffer; prevCol
// and overCol implement the "remember the visual column across
// vertical moves, even past a shorter line" behavior move_updown needs.
type Manager struct {
	editor Editor
	ed     *edit.Manager

	position types.Position
	curs1    int
	prevCol  int // visual column to restore on the next vertical move
	overCol  bool

	startDisplay int // byte offset of the first visible line (display anchor)
	startLine    int
	startCol     int

	viewportTop int
	viewWidth   int
	viewHeight  int
}

// NewManager creates a new cursor manager. ed is the edit manager used
// to push per-unit CURS_LEFT/CURS_RIGHT undo codes for cursor-only
// moves (spec §4.B); it may be nil in contexts that don't need undo
// tracking (e.g. throwaway test buffers).
func NewManager(editor Editor, ed *edit.Manager) *Manager {
	return &Manager{
		editor:      editor,
		ed:          ed,
		position:    types.Position{Line: 0, Col: 0},
		viewportTop: 0,
	}
}

// SetViewSize updates the view dimensions
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
}

// GetViewport returns the current viewport top line and height
func (m *Manager) GetViewport() (int, int) {
	return m.viewportTop, m.viewHeight
}

// GetPosition returns the current cursor position
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// Curs1 returns the cursor's absolute byte offset, as last synced via
// SyncFromBuffer.
func (m *Manager) Curs1() int { return m.curs1 }

// StartDisplay returns the display anchor's byte offset. It is saved in
// each KindKeyPress code's Mark field; undo and redo do not restore it.
func (m *Manager) StartDisplay() int { return m.startDisplay }

// SetStartDisplay sets the display anchor.
func (m *Manager) SetStartDisplay(off int) {
	m.startDisplay = off
	m.startLine = 0
	m.startCol = 0
}

// SyncFromBuffer recomputes position/curs1 from the buffer's actual
// cursor offset, after a motion or edit primitive moved it directly.
func (m *Manager) SyncFromBuffer(gb *buffer.GapBuffer) {
	m.curs1 = gb.Curs1()
	m.position = types.Position{Line: gb.CursLine(), Col: m.bufferColOf(gb)}
}

func (m *Manager) bufferColOf(gb *buffer.GapBuffer) int {
	bol := gb.BOL(gb.Curs1())
	col := 0
	i := bol
	for i < gb.Curs1() {
		_, n := gb.GetUTF(i)
		i += n
		col++
	}
	return col
}

// SetPosition sets the cursor position
func (m *Manager) SetPosition(pos types.Position) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		logger.Warnf("CursorManager.SetPosition: Buffer is nil")
		return
	}

	// Clamp to valid line range
	lineCount := buf.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}

	// Clamp to valid column range
	if pos.Col < 0 {
		pos.Col = 0
	}

	lineBytes, err := buf.Line(pos.Line)
	if err != nil {
		logger.Warnf("CursorManager.SetPosition: Failed to get line %d: %v", pos.Line, err)
		return
	}

	// Convert []byte to string for processing
	line := string(lineBytes)

	// Get visual line length (considering tabs), unless
	// cursor_beyond_eol allows resting past it.
	visualLen := GetVisualLineLength(line, config.Get().Editor.TabWidth)
	if pos.Col > visualLen && !config.Get().Editor.CursorBeyondEOL {
		pos.Col = visualLen
	}

	m.position = pos
	m.prevCol = pos.Col
	m.overCol = pos.Col > visualLen
	m.ScrollToCursor()
}

// MoveCursor moves the cursor by the given delta
func (m *Manager) MoveCursor(deltaLine, deltaCol int) {
	newPos := types.Position{
		Line: m.position.Line + deltaLine,
		Col:  m.position.Col + deltaCol,
	}
	m.SetPosition(newPos)
}

// Move moves the cursor by the given delta
// This is an alias for MoveCursor to maintain API compatibility
func (m *Manager) Move(deltaLine, deltaCol int) {
	m.MoveCursor(deltaLine, deltaCol)
}

// MoveToPrevCol restores the cursor to prevCol on the current line
// (the column "remembered" from the last horizontal move), snapping
// into the line's fake-half-tab grid when that option is enabled.
// move_updown calls this after changing lines so that moving down
// through a short line and back up restores the original column
// instead of sticking to the short line's length.
func (m *Manager) MoveToPrevCol() {
	col := m.prevCol
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}
	visualLen := GetVisualLineLength(string(lineBytes), config.Get().Editor.TabWidth)
	if col > visualLen && !config.Get().Editor.CursorBeyondEOL {
		col = visualLen
	}
	if config.Get().Editor.FakeHalfTabs {
		tw := config.Get().Editor.TabWidth
		col = (col / (tw / 2)) * (tw / 2)
	}
	m.position = types.Position{Line: m.position.Line, Col: col}
	m.ScrollToCursor()
}

// MoveUpDown moves the cursor deltaLines vertically (negative = up),
// remembering prevCol across the move and restoring it via
// MoveToPrevCol rather than clamping straight to the new line's
// length, so repeated vertical motion through short lines doesn't
// lose the user's horizontal position.
func (m *Manager) MoveUpDown(deltaLines int) {
	if !m.overCol {
		m.prevCol = m.position.Col
	}
	m.position.Line += deltaLines
	m.MoveToPrevCol()
}

// PageMove moves the cursor by the given number of pages
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return // View not initialized
	}
	m.MoveUpDown(deltaPages * m.viewHeight)
}

// MoveToStartOfLine moves the cursor to the first non-whitespace character
func (m *Manager) MoveToStartOfLine() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}

	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}

	// Find the first non-whitespace byte, then convert it to the rune
	// index Position.Col expects (they diverge once the line holds any
	// multi-byte UTF-8 content before that point).
	firstNonWSByte := 0
	for i, ch := range lineBytes {
		if ch != ' ' && ch != '\t' {
			firstNonWSByte = i
			break
		}
	}

	col := utils.ByteOffsetToRuneIndex(lineBytes, firstNonWSByte)
	m.SetPosition(types.Position{Line: m.position.Line, Col: col})
}

// MoveToLineStart moves the cursor to the start of the current line
// This is an alias for MoveToStartOfLine to maintain API compatibility
func (m *Manager) MoveToLineStart() {
	m.MoveToStartOfLine()
}

// MoveToEndOfLine moves the cursor to the end of the current line
func (m *Manager) MoveToEndOfLine() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}

	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}

	// Convert []byte to string for processing
	line := string(lineBytes)

	visualLen := GetVisualLineLength(line, config.Get().Editor.TabWidth)
	m.SetPosition(types.Position{Line: m.position.Line, Col: visualLen})
}

// MoveToLineEnd moves the cursor to the end of the current line
// This is an alias for MoveToEndOfLine to maintain API compatibility
func (m *Manager) MoveToLineEnd() {
	m.MoveToEndOfLine()
}

// GetVisualCol translates a buffer column position to a visual column position,
// accounting for tab characters.
func (m *Manager) GetVisualCol(line string, col int) int {
	return GetVisualCol(line, col, config.Get().Editor.TabWidth)
}

// GetBufferCol translates a visual column position to a buffer column position,
// accounting for tab characters.
func (m *Manager) GetBufferCol(line string, visualCol int) int {
	return GetBufferCol(line, visualCol, config.Get().Editor.TabWidth)
}

// ScrollToCursor ensures the cursor is visible in the viewport
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 {
		// View not initialized yet
		return
	}

	scrollOff := config.Get().Editor.ScrollOff

	// Ensure cursor is visible vertically
	if m.position.Line < m.viewportTop+scrollOff {
		// Cursor is above the viewport plus scroll-off
		m.viewportTop = m.position.Line - scrollOff
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	} else if m.position.Line >= m.viewportTop+m.viewHeight-scrollOff {
		// Cursor is below the viewport minus scroll-off
		m.viewportTop = m.position.Line - m.viewHeight + scrollOff + 1
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	}
}

// GetVisualCol translates a byte offset into line to a visual (screen)
// column, walking grapheme clusters rather than bytes or runes so wide
// characters (CJK, emoji) and combining marks occupy the screen width
// uniseg reports instead of a flat one-column-per-rune guess.
func GetVisualCol(line string, col int, tabWidth int) int {
	visualCol := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		start, _ := gr.Positions()
		if start >= col {
			break
		}
		if isTabCluster(gr.Runes()) {
			visualCol = (visualCol/tabWidth + 1) * tabWidth
		} else {
			visualCol += gr.Width()
		}
	}
	return visualCol
}

// GetBufferCol translates a visual column back to the byte offset of
// the grapheme cluster occupying it.
func GetBufferCol(line string, visualCol int, tabWidth int) int {
	currentVisual := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentVisual >= visualCol {
			start, _ := gr.Positions()
			return start
		}
		if isTabCluster(gr.Runes()) {
			currentVisual = (currentVisual/tabWidth + 1) * tabWidth
		} else {
			currentVisual += gr.Width()
		}
	}
	return len(line) // visualCol beyond the line: clamp to its end
}

func isTabCluster(runes []rune) bool {
	return len(runes) == 1 && runes[0] == '\t'
}

// GetVisualLineLength computes the visual length of a line
func GetVisualLineLength(line string, tabWidth int) int {
	return GetVisualCol(line, len(line), tabWidth)
}
