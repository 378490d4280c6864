package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coreedit/coreedit/internal/types"
)

func TestTextBufferInsertDelete(t *testing.T) {
	tb := NewTextBuffer()
	info, err := tb.Insert(types.Position{Line: 0, Col: 0}, []byte("hello\nworld"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if info.NewEndByte != 11 {
		t.Fatalf("expected NewEndByte 11, got %d", info.NewEndByte)
	}
	if tb.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", tb.LineCount())
	}
	if !tb.IsModified() {
		t.Fatal("expected buffer to be modified after insert")
	}

	line0, err := tb.Line(0)
	if err != nil || string(line0) != "hello" {
		t.Fatalf("Line(0) = %q, err=%v", line0, err)
	}

	_, err = tb.Delete(types.Position{Line: 0, Col: 0}, types.Position{Line: 0, Col: 5})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	line0, _ = tb.Line(0)
	if string(line0) != "" {
		t.Fatalf("expected empty first line after delete, got %q", line0)
	}
}

func TestTextBufferDeleteReordersReversedRange(t *testing.T) {
	tb := NewTextBuffer()
	tb.Insert(types.Position{Line: 0, Col: 0}, []byte("abcdef"))

	// end before start: should be swapped internally rather than erroring.
	_, err := tb.Delete(types.Position{Line: 0, Col: 4}, types.Position{Line: 0, Col: 1})
	if err != nil {
		t.Fatalf("Delete with reversed range failed: %v", err)
	}
	line0, _ := tb.Line(0)
	if string(line0) != "aef" {
		t.Fatalf("expected %q, got %q", "aef", line0)
	}
}

func TestTextBufferLineOutOfBounds(t *testing.T) {
	tb := NewTextBuffer()
	if _, err := tb.Line(5); err == nil {
		t.Fatal("expected error for out-of-bounds line")
	}
}

func TestTextBufferLoadMissingFileIsEmpty(t *testing.T) {
	tb := NewTextBuffer()
	if err := tb.Load(filepath.Join(t.TempDir(), "does-not-exist.txt")); err != nil {
		t.Fatalf("Load of missing file should not error, got %v", err)
	}
	if tb.LineCount() != 1 {
		t.Fatalf("expected 1 (empty) line, got %d", tb.LineCount())
	}
}

func TestTextBufferSaveRoundTrip(t *testing.T) {
	tb := NewTextBuffer()
	tb.Insert(types.Position{Line: 0, Col: 0}, []byte("saved content"))

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := tb.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if tb.IsModified() {
		t.Fatal("expected buffer to be unmodified after save")
	}
	if tb.FilePath() != path {
		t.Fatalf("expected FilePath %q, got %q", path, tb.FilePath())
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "saved content" {
		t.Fatalf("saved file mismatch: %q, err=%v", data, err)
	}
}

func TestTextBufferResetAndSetFilePath(t *testing.T) {
	tb := NewTextBuffer()
	tb.Insert(types.Position{Line: 0, Col: 0}, []byte("old"))

	tb.Reset("new.txt", NewGapBufferFromBytes([]byte("fresh\ndata")))
	if tb.FilePath() != "new.txt" {
		t.Fatalf("expected FilePath new.txt, got %q", tb.FilePath())
	}
	if tb.IsModified() {
		t.Fatal("Reset should clear modified flag")
	}
	if tb.LineCount() != 2 {
		t.Fatalf("expected 2 lines after reset, got %d", tb.LineCount())
	}

	tb.MarkModified()
	if !tb.IsModified() {
		t.Fatal("MarkModified should set modified")
	}
	tb.ClearModified()
	if tb.IsModified() {
		t.Fatal("ClearModified should clear modified")
	}

	tb.SetFilePath("renamed.txt")
	if tb.FilePath() != "renamed.txt" {
		t.Fatalf("expected FilePath renamed.txt, got %q", tb.FilePath())
	}
}
