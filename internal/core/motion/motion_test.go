package motion

import (
	"testing"

	"github.com/coreedit/coreedit/internal/buffer"
)

func TestRightWordMoveStopsAtBoundary(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("hello world"))
	got := RightWordMove(gb, 0)
	if got != 5 {
		t.Fatalf("RightWordMove(0) = %d, want 5 (the space ending 'hello')", got)
	}
}

func TestLeftWordMoveStopsAtBoundary(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("hello world"))
	got := LeftWordMove(gb, 10)
	if got != 6 {
		t.Fatalf("LeftWordMove(10) = %d, want 6 (start of 'world')", got)
	}
}

func TestWordMoveRoundTripOnPunctuation(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("foo.bar"))
	// '.' is its own class, distinct from letters, so the boundary
	// should fall right at it in both directions.
	right := RightWordMove(gb, 0)
	if right != 3 {
		t.Fatalf("RightWordMove over 'foo.bar' = %d, want 3", right)
	}
}

func TestMatchBracketForward(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("a{b{c}d}e"))
	// bracket at offset 1 is '{', matching '}' should be at offset 7.
	got := MatchBracket(gb, 1, 0, false, 0)
	if got != 7 {
		t.Fatalf("MatchBracket(1) = %d, want 7", got)
	}
}

func TestMatchBracketBackward(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("a{b{c}d}e"))
	got := MatchBracket(gb, 7, 0, false, 0)
	if got != 1 {
		t.Fatalf("MatchBracket(7) = %d, want 1", got)
	}
}

func TestMatchBracketSymmetry(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("([{x}])"))
	for _, off := range []int{0, 1, 2, 4, 5, 6} {
		m := MatchBracket(gb, off, 0, false, 0)
		if m < 0 {
			t.Fatalf("MatchBracket(%d) found no match", off)
			continue
		}
		back := MatchBracket(gb, m, 0, false, 0)
		if back != off {
			t.Fatalf("MatchBracket is not symmetric at %d: forward=%d, back=%d", off, m, back)
		}
	}
}

func TestMatchBracketNonBracketReturnsNegOne(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("abc"))
	if got := MatchBracket(gb, 1, 0, false, 0); got != -1 {
		t.Fatalf("expected -1 for a non-bracket byte, got %d", got)
	}
}

func TestMatchBracketUnbalancedReturnsNegOne(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("{abc"))
	if got := MatchBracket(gb, 0, 0, false, 0); got != -1 {
		t.Fatalf("expected -1 for an unmatched opener, got %d", got)
	}
}

func TestParagraphDownSkipsToNextBlankLine(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("p1 line1\np1 line2\n\np2 line1\n"))
	got := ParagraphDown(gb, 0)
	blankStart := len("p1 line1\np1 line2\n")
	if got != blankStart {
		t.Fatalf("ParagraphDown(0) = %d, want %d (the blank line)", got, blankStart)
	}
}

func TestParagraphUpMirrorsDown(t *testing.T) {
	gb := buffer.NewGapBufferFromBytes([]byte("p1 line1\np1 line2\n\np2 line1\n"))
	down := ParagraphDown(gb, 0)
	up := ParagraphUp(gb, gb.Size())
	if up > down {
		t.Fatalf("ParagraphUp from end (%d) should reach at or before the blank line (%d)", up, down)
	}
}
