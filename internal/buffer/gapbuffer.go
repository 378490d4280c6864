// internal/buffer/gapbuffer.go
package buffer

import "unicode/utf8"

// GapBuffer is the byte-level text store described in spec §3/§4.A: a
// mutable byte sequence split at the cursor into a "before" run
// (curs1 bytes) and an "after" run (curs2 bytes), with push/pop at
// either side of the split running in O(1) amortized time and random
// byte reads running in O(1) regardless of where the split sits.
//
// "after" is stored back-to-front: after[len(after)-1] is the byte
// immediately following the cursor (the spec's current_byte), and
// after[0] is the very last byte of the buffer. That orientation turns
// both "push ahead of cursor" (insert_ahead) and "pop the byte after
// the cursor" (delete) into a plain append/truncate on the tail of the
// slice, mirroring the push/pop-on-either-side contract the spec asks
// for without a full gap-array shift.
type GapBuffer struct {
	before []byte
	after  []byte

	lines    int // count of '\n' in the whole buffer
	cursLine int // count of '\n' in before (i.e. in [0, curs1))
}

// NewGapBuffer creates an empty buffer.
func NewGapBuffer() *GapBuffer {
	return &GapBuffer{}
}

// NewGapBufferFromBytes builds a buffer whose "before" run is empty and
// whose "after" run holds all of data, cursor at offset 0.
func NewGapBufferFromBytes(data []byte) *GapBuffer {
	gb := &GapBuffer{after: reversed(data)}
	gb.lines = countNewlines(data)
	return gb
}

func reversed(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}
	return out
}

func countNewlines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

// Size is curs1 + curs2, the total byte length of the buffer.
func (gb *GapBuffer) Size() int { return len(gb.before) + len(gb.after) }

// Curs1 is the absolute byte offset of the cursor.
func (gb *GapBuffer) Curs1() int { return len(gb.before) }

// Curs2 is the number of bytes after the cursor.
func (gb *GapBuffer) Curs2() int { return len(gb.after) }

// Lines is the total number of '\n' bytes in the buffer (invariant 4).
func (gb *GapBuffer) Lines() int { return gb.lines }

// CursLine is the number of '\n' bytes in [0, curs1) (invariant 2).
func (gb *GapBuffer) CursLine() int { return gb.cursLine }

// ByteAt returns the byte at absolute offset i, or '\n' when i is
// outside [0, size) — the sentinel policy §4.A relies on so motion
// routines can scan without explicit bounds checks.
func (gb *GapBuffer) ByteAt(i int) byte {
	if i < 0 || i >= gb.Size() {
		return '\n'
	}
	if i < len(gb.before) {
		return gb.before[i]
	}
	return gb.after[gb.Size()-1-i]
}

// PrevByte is byte_at(curs1 - 1).
func (gb *GapBuffer) PrevByte() byte { return gb.ByteAt(gb.Curs1() - 1) }

// CurrentByte is byte_at(curs1).
func (gb *GapBuffer) CurrentByte() byte { return gb.ByteAt(gb.Curs1()) }

// Insert pushes c onto the "before" run, growing size by one. The
// cursor's absolute offset (curs1) advances with it.
func (gb *GapBuffer) Insert(c byte) {
	gb.before = append(gb.before, c)
	if c == '\n' {
		gb.lines++
		gb.cursLine++
	}
}

// InsertAhead pushes c onto the "after" run without moving curs1.
func (gb *GapBuffer) InsertAhead(c byte) {
	gb.after = append(gb.after, c)
	if c == '\n' {
		gb.lines++
	}
}

// Delete removes and returns the byte immediately after the cursor, or
// 0 if the "after" run is empty.
func (gb *GapBuffer) Delete() (byte, bool) {
	if len(gb.after) == 0 {
		return 0, false
	}
	c := gb.after[len(gb.after)-1]
	gb.after = gb.after[:len(gb.after)-1]
	if c == '\n' {
		gb.lines--
	}
	return c, true
}

// Backspace removes and returns the byte immediately before the
// cursor, or 0 if the "before" run is empty.
func (gb *GapBuffer) Backspace() (byte, bool) {
	if len(gb.before) == 0 {
		return 0, false
	}
	c := gb.before[len(gb.before)-1]
	gb.before = gb.before[:len(gb.before)-1]
	if c == '\n' {
		gb.lines--
		gb.cursLine--
	}
	return c, true
}

// MoveCursor shifts the split by delta bytes: positive moves right
// (bytes cross from "after" to "before"), negative moves left. Each
// byte moved is O(1), matching the spec's "amortized O(1) per byte"
// requirement without copying interior data.
func (gb *GapBuffer) MoveCursor(delta int) {
	for delta > 0 && len(gb.after) > 0 {
		c := gb.after[len(gb.after)-1]
		gb.after = gb.after[:len(gb.after)-1]
		gb.before = append(gb.before, c)
		if c == '\n' {
			gb.cursLine++
		}
		delta--
	}
	for delta < 0 && len(gb.before) > 0 {
		c := gb.before[len(gb.before)-1]
		gb.before = gb.before[:len(gb.before)-1]
		gb.after = append(gb.after, c)
		if c == '\n' {
			gb.cursLine--
		}
		delta++
	}
}

// BOL returns the byte offset of the first byte of the line containing
// off (the byte just after the nearest preceding '\n', or 0).
func (gb *GapBuffer) BOL(off int) int {
	i := off
	if i > gb.Size() {
		i = gb.Size()
	}
	for i > 0 && gb.ByteAt(i-1) != '\n' {
		i--
	}
	return i
}

// EOL returns the byte offset of the '\n' terminating the line
// containing off, or gb.Size() if that line is the last, unterminated
// line in the buffer.
func (gb *GapBuffer) EOL(off int) int {
	i := off
	size := gb.Size()
	for i < size && gb.ByteAt(i) != '\n' {
		i++
	}
	return i
}

// CountLines returns the number of '\n' bytes in [a, b).
func (gb *GapBuffer) CountLines(a, b int) int {
	if a < 0 {
		a = 0
	}
	if b > gb.Size() {
		b = gb.Size()
	}
	n := 0
	for i := a; i < b; i++ {
		if gb.ByteAt(i) == '\n' {
			n++
		}
	}
	return n
}

// ForwardOffset scans forward from start across at most nLines
// newlines; once the newline budget is exhausted, if maxCol > 0 it
// continues consuming codepoints on the resulting line until the
// visual column (one column per codepoint; tab expansion is the
// display layer's job, not the buffer's) reaches maxCol. Returns the
// resulting byte offset, clamped to size.
func (gb *GapBuffer) ForwardOffset(start, nLines, maxCol int) int {
	pos := start
	size := gb.Size()
	remaining := nLines
	for remaining > 0 {
		if pos >= size {
			return pos
		}
		if gb.ByteAt(pos) == '\n' {
			pos++
			remaining--
			continue
		}
		_, n := gb.GetUTF(pos)
		pos += n
	}
	if maxCol > 0 {
		col := 0
		for col < maxCol && pos < size {
			if gb.ByteAt(pos) == '\n' {
				break
			}
			_, n := gb.GetUTF(pos)
			pos += n
			col++
		}
	}
	return pos
}

// BackwardOffset scans backward across nLines newline transitions and
// returns the byte offset of the resulting line's BOL.
func (gb *GapBuffer) BackwardOffset(start, nLines int) int {
	pos := start
	remaining := nLines
	for remaining > 0 {
		b0 := gb.BOL(pos)
		if b0 == 0 {
			return 0
		}
		pos = b0 - 1 // step onto the '\n' ending the previous line
		remaining--
	}
	return gb.BOL(pos)
}

// GetUTF decodes the codepoint starting at absolute offset off,
// returning the rune and its encoded length. A decode failure (or
// reading past size) falls back to a length of 1 per §7 — no error is
// surfaced.
func (gb *GapBuffer) GetUTF(off int) (rune, int) {
	size := gb.Size()
	if off < 0 || off >= size {
		return utf8.RuneError, 1
	}
	var buf [utf8.UTFMax]byte
	n := 0
	for n < utf8.UTFMax && off+n < size {
		buf[n] = gb.ByteAt(off + n)
		n++
	}
	r, sz := utf8.DecodeRune(buf[:n])
	if sz < 1 {
		sz = 1
	}
	return r, sz
}

// GetPrevUTF decodes the codepoint ending at off (exclusive),
// returning the rune and its encoded length. Falls back to length 1
// on decode failure.
func (gb *GapBuffer) GetPrevUTF(off int) (rune, int) {
	if off <= 0 {
		return utf8.RuneError, 1
	}
	start := off - utf8.UTFMax
	if start < 0 {
		start = 0
	}
	buf := make([]byte, 0, off-start)
	for i := start; i < off; i++ {
		buf = append(buf, gb.ByteAt(i))
	}
	r, sz := utf8.DecodeLastRune(buf)
	if sz < 1 {
		sz = 1
	}
	return r, sz
}

// Bytes materializes the whole buffer content in order. Used for Save
// and for tests; not on any hot edit path.
func (gb *GapBuffer) Bytes() []byte {
	out := make([]byte, 0, gb.Size())
	out = append(out, gb.before...)
	for i := len(gb.after) - 1; i >= 0; i-- {
		out = append(out, gb.after[i])
	}
	return out
}

// Reset replaces the buffer content wholesale, cursor at offset 0.
func (gb *GapBuffer) Reset(data []byte) {
	gb.before = gb.before[:0]
	gb.after = reversed(data)
	gb.lines = countNewlines(data)
	gb.cursLine = 0
}
