package ioadapter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coreedit/coreedit/internal/buffer"
	"github.com/coreedit/coreedit/internal/config"
)

// Saver streams a buffer's bytes to a file, converting line endings
// per the configured convention.
type Saver struct {
	ending config.LineEnding
	mode   config.SaveMode
	backupExt string
}

// NewSaver builds a Saver from the current editor config (save_mode,
// line_ending, backup_ext).
func NewSaver() *Saver {
	return &Saver{
		ending:    config.LineEnding(config.Get().Editor.LineEnding),
		mode:      config.SaveMode(config.Get().Editor.SaveMode),
		backupExt: config.Get().Editor.BackupExt,
	}
}

// Save writes gb's content to path according to the saver's mode:
// quick truncates in place, safe writes to a temp file and renames
// over the original (crash-safe), backup additionally copies the
// pre-save original to path+backupExt.
func (s *Saver) Save(gb *buffer.GapBuffer, path string) error {
	switch s.mode {
	case config.SaveModeBackup:
		if err := s.writeBackup(path); err != nil {
			return err
		}
		return s.writeDirect(gb, path)
	case config.SaveModeSafeSave:
		return s.writeAtomic(gb, path)
	default:
		return s.writeDirect(gb, path)
	}
}

func (s *Saver) writeBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("ioadapter: read original for backup: %w", err)
	}
	if err := os.WriteFile(path+s.backupExt, data, 0644); err != nil {
		return fmt.Errorf("ioadapter: write backup: %w", err)
	}
	return nil
}

func (s *Saver) writeDirect(gb *buffer.GapBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioadapter: create %q: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := s.writeConverted(w, gb); err != nil {
		return err
	}
	return w.Flush()
}

func (s *Saver) writeAtomic(gb *buffer.GapBuffer, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".coreedit-*")
	if err != nil {
		return fmt.Errorf("ioadapter: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	w := bufio.NewWriter(tmp)
	if err := s.writeConverted(w, gb); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ioadapter: flush temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ioadapter: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ioadapter: rename temp file into place: %w", err)
	}
	return nil
}

// writeConverted streams gb's bytes to w, translating line endings via
// a two-byte look-ahead: a '\r' followed by '\n' is one logical
// newline, and ASIS passes every byte through unchanged.
func (s *Saver) writeConverted(w *bufio.Writer, gb *buffer.GapBuffer) error {
	size := gb.Size()
	for i := 0; i < size; i++ {
		b := gb.ByteAt(i)
		if s.ending == config.LineEndingAsIs {
			if err := w.WriteByte(b); err != nil {
				return err
			}
			continue
		}
		if b == '\r' {
			if i+1 < size && gb.ByteAt(i+1) == '\n' {
				i++ // consume the pair, emit one logical newline below
			}
			if err := s.writeNewline(w); err != nil {
				return err
			}
			continue
		}
		if b == '\n' {
			if err := s.writeNewline(w); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Saver) writeNewline(w *bufio.Writer) error {
	switch s.ending {
	case config.LineEndingWin:
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
	case config.LineEndingMac:
		return w.WriteByte('\r')
	default: // LineEndingUnix
		return w.WriteByte('\n')
	}
	return nil
}
