package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

var (
	flagWidth      int
	flagHeight     int
	flagVariations int
	flagRaw        bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print a freshly populated board",
	Long: `Populate a board and print it twice: as letters (top row first) and
as the engine's debug serialization, one "Type (x,y)" line per tile.

The same width, height, variations and seed always give the same board,
so dumps can be compared across machines and builds.

Examples:
  arcade dump --seed 42
  arcade dump --width 6 --height 9 --variations 4 --seed 7
  arcade dump --seed 42 --raw > board.txt`,
	Args: cobra.NoArgs,
	Run:  runDump,
}

func init() {
	addBoardFlags(dumpCmd)
	dumpCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print only the debug serialization")
}

// addBoardFlags registers the board shape flags shared by the tools.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 8, "Board width (at least 4)")
	cmd.Flags().IntVar(&flagHeight, "height", 8, "Board height (at least 3)")
	cmd.Flags().IntVar(&flagVariations, "variations", 5, "Number of gem colors (3-6)")
}

func runDump(_ *cobra.Command, _ []string) {
	seed := flagSeed
	if seed == 0 {
		seed = core.RandomSeed()
	}

	e := match3.NewEngine(match3.WithLogger(logger))
	if _, err := e.Populate(flagWidth, flagHeight, flagVariations, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagRaw {
		fmt.Print(e.DebugGrid())
		return
	}

	fmt.Printf("%dx%d, %d colors, seed %d\n\n", flagWidth, flagHeight, flagVariations, seed)
	fmt.Print(e.Grid().String())
	fmt.Println()
	if m, ok := e.FirstMove(); ok {
		fmt.Printf("first move: %s, swap (%d,%d)-(%d,%d)\n\n", m.Pattern, m.From.X, m.From.Y, m.To.X, m.To.Y)
	}
	fmt.Print(e.DebugGrid())
}
