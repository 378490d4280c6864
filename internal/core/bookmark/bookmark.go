// Package bookmark implements spec §4.J: a line-sorted list of marked
// lines that shift automatically as lines are inserted or removed
// above them.
package bookmark

// Mark is one bookmarked line, linked into its neighbors so insertion
// and removal stay O(1) once the insertion point is found.
type Mark struct {
	Line       int
	prev, next *Mark
}

// List is a doubly-linked list of Marks kept sorted by Line.
type List struct {
	head, tail *Mark
	count      int
}

// New returns an empty bookmark list.
func New() *List { return &List{} }

// Count returns the number of bookmarks.
func (l *List) Count() int { return l.count }

// Find returns the bookmark at exactly line, or nil.
func (l *List) Find(line int) *Mark {
	for n := l.head; n != nil; n = n.next {
		if n.Line == line {
			return n
		}
		if n.Line > line {
			return nil
		}
	}
	return nil
}

// Toggle inserts a bookmark at line if none exists there, or removes
// it if one does. Returns true if a bookmark now exists at line.
func (l *List) Toggle(line int) bool {
	if existing := l.Find(line); existing != nil {
		l.remove(existing)
		return false
	}
	l.insert(line)
	return true
}

func (l *List) insert(line int) *Mark {
	m := &Mark{Line: line}
	var n *Mark
	for n = l.head; n != nil; n = n.next {
		if n.Line > line {
			break
		}
	}
	if n == nil {
		// Append at tail.
		if l.tail != nil {
			l.tail.next = m
			m.prev = l.tail
		} else {
			l.head = m
		}
		l.tail = m
	} else {
		m.next = n
		m.prev = n.prev
		if n.prev != nil {
			n.prev.next = m
		} else {
			l.head = m
		}
		n.prev = m
	}
	l.count++
	return m
}

func (l *List) remove(m *Mark) {
	if m.prev != nil {
		m.prev.next = m.next
	} else {
		l.head = m.next
	}
	if m.next != nil {
		m.next.prev = m.prev
	} else {
		l.tail = m.prev
	}
	l.count--
}

// Next returns the first bookmark strictly after line, wrapping to the
// first bookmark in the list if line is at or past the last one.
func (l *List) Next(line int) (int, bool) {
	if l.head == nil {
		return 0, false
	}
	for n := l.head; n != nil; n = n.next {
		if n.Line > line {
			return n.Line, true
		}
	}
	return l.head.Line, true
}

// Prev returns the last bookmark strictly before line, wrapping to the
// last bookmark in the list if line is at or before the first one.
func (l *List) Prev(line int) (int, bool) {
	if l.tail == nil {
		return 0, false
	}
	for n := l.tail; n != nil; n = n.prev {
		if n.Line < line {
			return n.Line, true
		}
	}
	return l.tail.Line, true
}

// Inc shifts every bookmark at or after atLine down by n lines
// (an insertion of n lines at atLine). Mirrors book_mark_inc.
func (l *List) Inc(atLine, n int) {
	for m := l.head; m != nil; m = m.next {
		if m.Line >= atLine {
			m.Line += n
		}
	}
}

// Dec shifts every bookmark after atLine up by n lines, dropping any
// bookmark that fell inside the deleted [atLine, atLine+n) range (a
// deletion of n lines at atLine). Mirrors book_mark_dec.
func (l *List) Dec(atLine, n int) {
	var next *Mark
	for m := l.head; m != nil; m = next {
		next = m.next
		switch {
		case m.Line >= atLine+n:
			m.Line -= n
		case m.Line >= atLine:
			l.remove(m)
		}
	}
}

// Lines returns every bookmarked line, in ascending order.
func (l *List) Lines() []int {
	out := make([]int, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.Line)
	}
	return out
}
