package config

import "time"

// Base application details
const AppName = "coreedit"
const ConfigDirName = "coreedit"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "coreedit.log"

// UI Layout
const StatusBarHeight = 1

// Input Behavior
const DefaultLeaderKey = ','
const LeaderTimeout = 500 * time.Millisecond

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Defaults for the spec §6 option set.
const (
	DefaultWordWrapLineLength    = 72
	DefaultFilesizeThreshold     = 64 // MB; above this, Loader asks its progress callback whether to abort before reading
	DefaultBackupExt             = ".bak"
	DefaultMaxUndo               = 32768
	DefaultSaveMode              = SaveModeQuickSave
)

// SaveMode selects how Save writes the file back to disk (spec §6's
// save_mode option).
type SaveMode string

const (
	// SaveModeQuickSave truncates and rewrites the file in place.
	SaveModeQuickSave SaveMode = "quick"
	// SaveModeSafeSave writes to a temp file and renames over the
	// original, so a crash mid-write can't corrupt it.
	SaveModeSafeSave SaveMode = "safe"
	// SaveModeBackup writes a backup_ext copy of the original before a
	// quick-save.
	SaveModeBackup SaveMode = "backup"
)

// LineEnding selects the line-ending convention a Saver writes (spec
// §6's UNIX/WIN/MAC/ASIS option; shared with the ioadapter package).
type LineEnding string

const (
	LineEndingUnix LineEnding = "unix"
	LineEndingWin  LineEnding = "win"
	LineEndingMac  LineEnding = "mac"
	LineEndingAsIs LineEnding = "asis"
)
