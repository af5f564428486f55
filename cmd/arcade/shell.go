package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/shell"
)

var flagHistory string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive engine console",
	Long: `Start a console that drives the board engine one call at a time.
Coordinates are x y with (0,0) at the bottom left.

Type 'help' for the command list. Tab completes command names.

Examples:
  arcade shell
  arcade shell --history ""   # Do not keep history`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

func init() {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".arcade", "shell_history")
	}
	shellCmd.Flags().StringVar(&flagHistory, "history", history, "History file (empty disables history)")
}

func runShell(_ *cobra.Command, _ []string) {
	if flagHistory != "" {
		//nolint:errcheck // History is optional
		os.MkdirAll(filepath.Dir(flagHistory), 0o755)
	}

	sh, err := shell.New(flagHistory, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := sh.Loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
