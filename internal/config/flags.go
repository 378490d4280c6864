// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/coreedit/coreedit/internal/logger"
)

// Flags holds values parsed from command-line flags. Use pointers to
// distinguish between unset flags and zero-value flags. The flag set
// itself is owned by the cobra command (cmd/coreedit) so Visit can tell
// an explicitly-passed flag from a default value; this struct only
// holds the bound pointers and the override-application logic.
type Flags struct {
	set *pflag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	TabWidth       *int
	ScrollOff      *int
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool

	SystemClipboard      *bool
	GroupUndo            *bool
	MaxUndo              *int
	FakeHalfTabs         *bool
	CursorBeyondEOL      *bool
	PersistentSelections *bool
	SaveMode             *string
	LineEnding           *string
}

// BindFlags registers every editor/logger flag on a cobra/pflag
// FlagSet (the command's own Flags(), e.g. from cmd/coreedit's root
// command) instead of the stdlib flag package's global set, so the
// CLI surface is genuinely cobra-driven rather than decorative.
func (f *Flags) BindFlags(set *pflag.FlagSet) {
	f.set = set
	f.ConfigFilePath = set.String("config", "", fmt.Sprintf("path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = set.BoolP("version", "v", false, "show version information and exit")
	f.LogLevel = set.String("loglevel", "", "log level (debug, info, warn, error) - overrides config file")
	f.LogFilePath = set.String("logfile", "", "path to write log file (use '-' for stderr) - overrides config file")
	f.TabWidth = set.Int("tabwidth", 0, "number of spaces per tab - overrides config file")
	f.ScrollOff = set.Int("scrolloff", -1, "lines of context above/below cursor - overrides config file")
	f.EnableTags = set.String("log-tags", "", "comma-separated list of tags to enable")
	f.DisableTags = set.String("log-disable-tags", "", "comma-separated list of tags to disable")
	f.EnablePkgs = set.String("log-packages", "", "comma-separated list of packages to enable")
	f.DisablePkgs = set.String("log-disable-packages", "", "comma-separated list of packages to disable")
	f.EnableFiles = set.String("log-files", "", "comma-separated list of files to enable")
	f.DisableFiles = set.String("log-disable-files", "", "comma-separated list of files to disable")
	f.DebugLog = set.Bool("debug-log", false, "enable verbose debug logging for the logger filtering system")

	f.SystemClipboard = set.Bool("system-clipboard", false, "mirror yank/paste to the OS clipboard")
	f.GroupUndo = set.Bool("group-undo", false, "merge adjacent same-class commands into one undo step")
	f.MaxUndo = set.Int("max-undo", 0, "maximum undo log size before the oldest group is evicted")
	f.FakeHalfTabs = set.Bool("fake-half-tabs", false, "snap cursor movement to half-tab stops")
	f.CursorBeyondEOL = set.Bool("cursor-beyond-eol", false, "allow the cursor to rest past the end of a line")
	f.PersistentSelections = set.Bool("persistent-selections", false, "keep a selection active across cursor moves")
	f.SaveMode = set.String("save-mode", "", "quick, safe, or backup - overrides config file")
	f.LineEnding = set.String("line-ending", "", "unix, win, mac, or asis - overrides config file")
}

// ApplyOverrides updates the Config struct with values from flags
// *if* they were explicitly passed on the command line.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *pflag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = *f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "group-undo":
			cfg.Editor.GroupUndo = *f.GroupUndo
		case "max-undo":
			if *f.MaxUndo > 0 {
				cfg.Editor.MaxUndo = *f.MaxUndo
			}
		case "fake-half-tabs":
			cfg.Editor.FakeHalfTabs = *f.FakeHalfTabs
		case "cursor-beyond-eol":
			cfg.Editor.CursorBeyondEOL = *f.CursorBeyondEOL
		case "persistent-selections":
			cfg.Editor.PersistentSelections = *f.PersistentSelections
		case "save-mode":
			if *f.SaveMode != "" {
				cfg.Editor.SaveMode = *f.SaveMode
			}
		case "line-ending":
			if *f.LineEnding != "" {
				cfg.Editor.LineEnding = *f.LineEnding
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

// Helper function to split comma-separated list (can be moved to util)
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
