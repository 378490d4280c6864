// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/coreedit/coreedit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Editor EditorConfig  `toml:"editor"` // Editor-specific settings
}

// EditorConfig holds every editor behavior option spec §6 names.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`

	// Wrapping and paragraph formatting.
	WordWrapLineLength int  `toml:"word_wrap_line_length"`
	TypewriterWrap     bool `toml:"typewriter_wrap"`
	AutoParaFormatting bool `toml:"auto_para_formatting"`

	// Whitespace and indentation.
	FillTabsWithSpaces   bool `toml:"fill_tabs_with_spaces"`
	ReturnDoesAutoIndent bool `toml:"return_does_auto_indent"`
	BackspaceThroughTabs bool `toml:"backspace_through_tabs"`
	FakeHalfTabs         bool `toml:"fake_half_tabs"`

	// Selection and cursor policy.
	PersistentSelections     bool `toml:"persistent_selections"`
	CursorBeyondEOL          bool `toml:"cursor_beyond_eol"`
	CursorAfterInsertedBlock bool `toml:"cursor_after_inserted_block"`

	// Undo/redo.
	GroupUndo bool `toml:"group_undo"`
	MaxUndo   int  `toml:"max_undo"`

	// Display.
	VisibleTabs     bool `toml:"visible_tabs"`
	VisibleTWS      bool `toml:"visible_tws"`
	ShowRightMargin bool `toml:"show_right_margin"`
	LineState       bool `toml:"line_state"`

	// Save/load.
	CheckNLAtEOF       bool   `toml:"check_nl_at_eof"`
	SaveMode           string `toml:"save_mode"`
	FilesizeThreshold  int    `toml:"filesize_threshold"`
	BackupExt          string `toml:"backup_ext"`
	LineEnding         string `toml:"line_ending"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,

			WordWrapLineLength: DefaultWordWrapLineLength,
			TypewriterWrap:     false,
			AutoParaFormatting: false,

			FillTabsWithSpaces:   false,
			ReturnDoesAutoIndent: true,
			BackspaceThroughTabs: false,
			FakeHalfTabs:         false,

			PersistentSelections:     false,
			CursorBeyondEOL:          false,
			CursorAfterInsertedBlock: false,

			GroupUndo: true,
			MaxUndo:   DefaultMaxUndo,

			VisibleTabs:     false,
			VisibleTWS:      false,
			ShowRightMargin: false,
			LineState:       false,

			CheckNLAtEOF:      true,
			SaveMode:          string(DefaultSaveMode),
			FilesizeThreshold: DefaultFilesizeThreshold,
			BackupExt:         DefaultBackupExt,
			LineEnding:        string(LineEndingUnix),
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// It returns the loaded config and an error (nil if file not found or loaded successfully).
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{} // Start empty, we'll merge later
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil // File not found is not an error here
	}
	if err != nil {
		// Other error stating the file
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if verbose {
		logger.Debugf("Attempting to load configuration from: %s", filePath)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig() // Get defaults for comparison/reset

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.WordWrapLineLength <= 0 {
		c.Editor.WordWrapLineLength = defaults.Editor.WordWrapLineLength
	}
	if c.Editor.MaxUndo <= 0 {
		c.Editor.MaxUndo = defaults.Editor.MaxUndo
	}
	if c.Editor.FilesizeThreshold <= 0 {
		c.Editor.FilesizeThreshold = defaults.Editor.FilesizeThreshold
	}
	if c.Editor.BackupExt == "" {
		c.Editor.BackupExt = defaults.Editor.BackupExt
	}
	switch SaveMode(c.Editor.SaveMode) {
	case SaveModeQuickSave, SaveModeSafeSave, SaveModeBackup:
	default:
		c.Editor.SaveMode = defaults.Editor.SaveMode
	}
	switch LineEnding(c.Editor.LineEnding) {
	case LineEndingUnix, LineEndingWin, LineEndingMac, LineEndingAsIs:
	default:
		c.Editor.LineEnding = defaults.Editor.LineEnding
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// During initial load, avoid logging as logger isn't initialized yet
		verbose := false

		cfg := NewDefaultConfig() // Start with defaults

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, AppName, DefaultConfigFileName)
			} else {
				// We can't log this yet as logger isn't initialized
				effectivePath = "" // Cannot load default path
			}
		}

		// Load from file if path is determined
		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				// Store error to return later (can't log yet)
				loadErr = err
			} else if fileCfg != nil {
				mergeEditorConfig(&cfg.Editor, fileCfg.Editor)
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
			}
		}

		// Apply flag overrides (if flags were parsed)
		if flags != nil {
			flags.ApplyOverrides(cfg, verbose) // Pass verbose flag here
		}

		// Validate the final merged configuration (no logging during initial load)
		cfg.validate()

		loadedConfig = cfg // Store globally
	})

	return loadedConfig, loadErr
}

// mergeEditorConfig overlays every non-zero field of file onto dst.
// Booleans are always overlaid (a TOML file explicitly setting
// `system_clipboard = false` must take effect), matching the teacher's
// "file always wins for booleans, defaults win for unset numerics"
// convention already used for SystemClipboard.
func mergeEditorConfig(dst *EditorConfig, file EditorConfig) {
	if file.TabWidth > 0 {
		dst.TabWidth = file.TabWidth
	}
	if file.ScrollOff > 0 {
		dst.ScrollOff = file.ScrollOff
	}
	if file.WordWrapLineLength > 0 {
		dst.WordWrapLineLength = file.WordWrapLineLength
	}
	if file.MaxUndo > 0 {
		dst.MaxUndo = file.MaxUndo
	}
	if file.FilesizeThreshold > 0 {
		dst.FilesizeThreshold = file.FilesizeThreshold
	}
	if file.BackupExt != "" {
		dst.BackupExt = file.BackupExt
	}
	if file.SaveMode != "" {
		dst.SaveMode = file.SaveMode
	}
	if file.LineEnding != "" {
		dst.LineEnding = file.LineEnding
	}

	dst.SystemClipboard = file.SystemClipboard
	dst.TypewriterWrap = file.TypewriterWrap
	dst.AutoParaFormatting = file.AutoParaFormatting
	dst.FillTabsWithSpaces = file.FillTabsWithSpaces
	dst.ReturnDoesAutoIndent = file.ReturnDoesAutoIndent
	dst.BackspaceThroughTabs = file.BackspaceThroughTabs
	dst.FakeHalfTabs = file.FakeHalfTabs
	dst.PersistentSelections = file.PersistentSelections
	dst.CursorBeyondEOL = file.CursorBeyondEOL
	dst.CursorAfterInsertedBlock = file.CursorAfterInsertedBlock
	dst.GroupUndo = file.GroupUndo
	dst.VisibleTabs = file.VisibleTabs
	dst.VisibleTWS = file.VisibleTWS
	dst.ShowRightMargin = file.ShowRightMargin
	dst.LineState = file.LineState
	dst.CheckNLAtEOF = file.CheckNLAtEOF
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// This indicates a programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
