// Package clipboard implements yank/paste, including the column-block
// passthrough spec §6 describes: a rectangular (column) selection is
// copied with a short magic-byte prefix so a paste back into the same
// editor re-inserts it as a block instead of a stream, while a paste
// into any other program (or from one) just sees plain text.
package clipboard

import (
	"bytes"

	atclip "github.com/atotto/clipboard"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/core/cursor"
	"github.com/coreedit/coreedit/internal/core/edit"
	"github.com/coreedit/coreedit/internal/core/marker"
	"github.com/coreedit/coreedit/internal/logger"
)

// columnBlockMagic prefixes an internal-clipboard payload that holds a
// rectangular block rather than a contiguous byte range. Four SOH
// bytes are vanishingly unlikely to open a real text file, so a
// plain-text paste never misfires as a block paste.
var columnBlockMagic = []byte{0x01, 0x01, 0x01, 0x01, 0x0A}

// Manager owns the in-process clipboard and, when enabled, mirrors
// stream yanks to the OS clipboard via atotto/clipboard so text can
// move to and from other applications. Column-block payloads are never
// mirrored out: the magic framing has no faithful plain-text form.
type Manager struct {
	tb   *buffer.TextBuffer
	ed   *edit.Manager
	mk   *marker.Marker
	clip []byte

	systemClipboard bool
	tabWidth        int
}

// NewManager wires the clipboard to the buffer/editing/marker state it
// yanks from and pastes into. systemClipboard gates OS clipboard
// mirroring (spec §6's system_clipboard option).
func NewManager(tb *buffer.TextBuffer, ed *edit.Manager, mk *marker.Marker, systemClipboard bool, tabWidth int) *Manager {
	return &Manager{tb: tb, ed: ed, mk: mk, systemClipboard: systemClipboard, tabWidth: tabWidth}
}

func (m *Manager) gb() *buffer.GapBuffer { return m.tb.GapBuffer() }

func (m *Manager) lineOf(off int) int { return m.gb().CountLines(0, off) }

func (m *Manager) lineBytes(line int) []byte {
	start := m.tb.Cache().FindLine(m.gb(), line)
	end := m.gb().EOL(start)
	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, m.gb().ByteAt(i))
	}
	return out
}

// HasSelection reports whether a marker selection is currently active.
func (m *Manager) HasSelection() bool { return m.mk.Active() }

// Yank copies the active selection (stream or column) into the
// clipboard and clears the selection. curs is the cursor's current
// absolute byte offset and curCol its visual column, used to resolve
// an open-ended mark2.
func (m *Manager) Yank(curs, curCol int) (bool, error) {
	if m.mk.Column() {
		return m.yankColumn(curs, curCol)
	}
	return m.yankStream(curs)
}

func (m *Manager) yankStream(curs int) (bool, error) {
	start, end, ok := m.mk.Evaluate(curs)
	if !ok {
		return false, nil
	}
	content := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		content = append(content, m.gb().ByteAt(i))
	}
	m.setClip(content, false)
	m.mk.Clear()
	logger.Debugf("clipboard: yanked %d bytes", len(content))
	return true, nil
}

func (m *Manager) yankColumn(curs, curCol int) (bool, error) {
	if !m.mk.Active() {
		return false, nil
	}
	mark1 := m.mk.Mark1Raw()
	startOff, endOff := mark1, curs
	if startOff > endOff {
		startOff, endOff = endOff, startOff
	}
	startLine, endLine := m.lineOf(startOff), m.lineOf(endOff)
	left, right, ok := m.mk.EvaluateColumns(curCol)
	if !ok {
		return false, nil
	}

	var out bytes.Buffer
	out.Write(columnBlockMagic)
	for line := startLine; line <= endLine; line++ {
		lb := m.lineBytes(line)
		l := cursor.GetBufferCol(string(lb), left, m.tabWidth)
		r := cursor.GetBufferCol(string(lb), right, m.tabWidth)
		if r > len(lb) {
			r = len(lb)
		}
		if l > r {
			l = r
		}
		out.Write(lb[l:r])
		out.WriteByte('\n')
	}
	m.clip = out.Bytes()
	m.mk.Clear()
	logger.Debugf("clipboard: yanked column block, %d lines", endLine-startLine+1)
	return true, nil
}

// setClip stores content internally and, when enabled, mirrors it to
// the OS clipboard as plain text.
func (m *Manager) setClip(content []byte, column bool) {
	m.clip = content
	if m.systemClipboard && !column {
		if err := atclip.WriteAll(string(content)); err != nil {
			logger.Warnf("clipboard: system clipboard write failed: %v", err)
		}
	}
}

// Paste inserts the clipboard content at the cursor. When
// systemClipboard is enabled and the OS clipboard's text differs from
// what this editor last wrote to it, the OS clipboard wins — that
// means content copied from another application. A column-block
// payload (only ever produced internally) pastes as a rectangle
// anchored at (line, col); anything else pastes as a plain byte
// stream through the edit primitives.
func (m *Manager) Paste(line, col int) (bool, error) {
	content := m.clip
	if m.systemClipboard {
		if text, err := atclip.ReadAll(); err == nil && text != string(m.clip) {
			content = []byte(text)
		}
	}
	if len(content) == 0 {
		return false, nil
	}

	if bytes.HasPrefix(content, columnBlockMagic) {
		m.pasteColumn(line, col, content[len(columnBlockMagic):])
		return true, nil
	}

	for _, b := range content {
		m.ed.InsertByte(b)
	}
	logger.Debugf("clipboard: pasted %d bytes", len(content))
	return true, nil
}

func (m *Manager) pasteColumn(line, col int, block []byte) {
	rows := bytes.Split(bytes.TrimSuffix(block, []byte("\n")), []byte("\n"))
	for i, row := range rows {
		targetLine := line + i
		if targetLine >= m.gb().Lines()+1 {
			m.ed.CursorMove(m.gb().Size() - m.gb().Curs1())
			m.ed.InsertByte('\n')
		}
		lineStart := m.tb.Cache().FindLine(m.gb(), targetLine)
		lb := m.lineBytes(targetLine)
		insertCol := cursor.GetBufferCol(string(lb), col, m.tabWidth)
		target := lineStart + insertCol
		m.ed.CursorMove(target - m.gb().Curs1())
		for _, b := range row {
			m.ed.InsertByte(b)
		}
	}
	logger.Debugf("clipboard: pasted column block, %d lines", len(rows))
}
