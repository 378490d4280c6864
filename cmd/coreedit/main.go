// cmd/coreedit/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coreedit/coreedit/internal/config"
	"github.com/coreedit/coreedit/internal/core"
	"github.com/coreedit/coreedit/internal/core/command"
	"github.com/coreedit/coreedit/internal/logger"
)

var flags = &config.Flags{}

func main() {
	root := &cobra.Command{
		Use:           "coreedit [file[:line]]",
		Short:         "Loads a file into the editing core and runs an optional command script on it",
		Long:          "coreedit drives the editing core directly from the command line: it opens the given file (optionally positioning the cursor at :line) and runs the -c command script against it. The file is written to disk only by a save token in that script.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		RunE:          run,
	}

	var commands string
	root.Flags().StringVarP(&commands, "exec", "c", "", "comma-separated list of editor commands to run non-interactively (e.g. \"insert:hi,save\")")
	flags.BindFlags(root.Flags())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var configPath string
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config: %v\n", err)
	}
	logger.Init(cfg.Logger)

	if flags.Version != nil && *flags.Version {
		fmt.Println("coreedit (text-editor-core)")
		return nil
	}

	editor := core.New()

	if len(args) == 1 {
		path, line := splitFileLine(args[0])
		if err := editor.Open(path, line); err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
	}

	execFlag, _ := cmd.Flags().GetString("exec")
	if execFlag != "" {
		if err := runCommandScript(editor, execFlag); err != nil {
			return err
		}
	}

	return nil
}

// splitFileLine parses the "edit <file>[:<line>]" CLI surface spec §6
// describes: a trailing ":N" positions the cursor at line N (1-based
// on the command line, converted to the 0-based line index the core
// uses internally). A path containing ':' with no valid trailing
// number (e.g. a Windows drive letter) is treated as having no line
// suffix at all.
func splitFileLine(arg string) (path string, line int) {
	idx := strings.LastIndexByte(arg, ':')
	if idx < 0 || idx == len(arg)-1 {
		return arg, -1
	}
	n, err := strconv.Atoi(arg[idx+1:])
	if err != nil || n < 1 {
		return arg, -1
	}
	return arg[:idx], n - 1
}

// runCommandScript drives the editor headlessly for scripting/testing:
// each comma-separated token is either "save[:path]" or "insert:text".
// This is deliberately minimal — the core's real input surface is
// Editor.Execute, driven by whatever UI or test harness embeds it.
func runCommandScript(editor *core.Editor, script string) error {
	for _, tok := range strings.Split(script, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		name, arg, _ := strings.Cut(tok, ":")
		switch name {
		case "save":
			if err := editor.Save(arg); err != nil {
				return fmt.Errorf("save: %w", err)
			}
		case "insert":
			for _, r := range arg {
				editor.Execute(command.InsertChar, r)
			}
		default:
			return fmt.Errorf("unknown script command %q", name)
		}
	}
	return nil
}
