package bookmark

import (
	"reflect"
	"testing"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	l := New()
	if added := l.Toggle(5); !added {
		t.Fatal("expected first toggle to add a bookmark")
	}
	if l.Count() != 1 {
		t.Fatalf("expected count 1, got %d", l.Count())
	}
	if l.Find(5) == nil {
		t.Fatal("expected Find(5) to locate the bookmark")
	}

	if added := l.Toggle(5); added {
		t.Fatal("expected second toggle to remove the bookmark")
	}
	if l.Count() != 0 {
		t.Fatalf("expected count 0 after removal, got %d", l.Count())
	}
}

func TestLinesStaysSorted(t *testing.T) {
	l := New()
	for _, line := range []int{30, 10, 20} {
		l.Toggle(line)
	}
	if got := l.Lines(); !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Fatalf("expected sorted [10 20 30], got %v", got)
	}
}

func TestNextWrapsAround(t *testing.T) {
	l := New()
	l.Toggle(10)
	l.Toggle(30)

	if line, ok := l.Next(10); !ok || line != 30 {
		t.Fatalf("Next(10) = %d,%v want 30,true", line, ok)
	}
	if line, ok := l.Next(30); !ok || line != 10 {
		t.Fatalf("Next(30) should wrap to 10, got %d,%v", line, ok)
	}
}

func TestPrevWrapsAround(t *testing.T) {
	l := New()
	l.Toggle(10)
	l.Toggle(30)

	if line, ok := l.Prev(30); !ok || line != 10 {
		t.Fatalf("Prev(30) = %d,%v want 10,true", line, ok)
	}
	if line, ok := l.Prev(10); !ok || line != 30 {
		t.Fatalf("Prev(10) should wrap to 30, got %d,%v", line, ok)
	}
}

func TestIncShiftsBookmarksAtOrAfter(t *testing.T) {
	l := New()
	l.Toggle(5)
	l.Toggle(10)
	l.Inc(8, 3)
	if got := l.Lines(); !reflect.DeepEqual(got, []int{5, 13}) {
		t.Fatalf("expected [5 13] after Inc(8,3), got %v", got)
	}
}

func TestDecShiftsAndDropsInsideDeletedRange(t *testing.T) {
	l := New()
	l.Toggle(5)
	l.Toggle(9)
	l.Toggle(20)

	// Delete lines [8,12): bookmark at 9 falls inside and is dropped,
	// bookmark at 20 shifts up by 4, bookmark at 5 (before the range)
	// is untouched.
	l.Dec(8, 4)

	if got := l.Lines(); !reflect.DeepEqual(got, []int{5, 16}) {
		t.Fatalf("expected [5 16] after Dec(8,4), got %v", got)
	}
}

func TestFindReturnsNilPastSortedPoint(t *testing.T) {
	l := New()
	l.Toggle(10)
	if l.Find(20) != nil {
		t.Fatal("expected Find to return nil for a line past every bookmark")
	}
}
