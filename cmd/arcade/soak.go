package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/soak"
)

var (
	flagSeeds   int
	flagWorkers int
	flagMoves   int
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Check board invariants over many seeds",
	Long: `Populate one board per seed and play the suggested swap over and over,
checking after every move that no match is left standing, that a move
is always available and that suggested swaps are accepted.

Seeds start at --seed (1 when unset). Prints cascade statistics and a
histogram of cascade depths, and exits with status 1 on any violation.

Examples:
  arcade soak
  arcade soak --seeds 10000 --workers 16
  arcade soak --width 6 --height 9 --variations 3 --moves 200 --seed 500`,
	Args: cobra.NoArgs,
	Run:  runSoak,
}

func init() {
	addBoardFlags(soakCmd)
	soakCmd.Flags().IntVar(&flagSeeds, "seeds", 100, "Number of boards to check")
	soakCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Boards checked concurrently")
	soakCmd.Flags().IntVar(&flagMoves, "moves", 50, "Suggested swaps played per board")
}

func runSoak(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	firstSeed := flagSeed
	if firstSeed == 0 {
		firstSeed = 1
	}

	cfg := soak.Config{
		Width:      flagWidth,
		Height:     flagHeight,
		Variations: flagVariations,
		FirstSeed:  firstSeed,
		Seeds:      flagSeeds,
		Moves:      flagMoves,
		Workers:    flagWorkers,
		Logger:     logger,
	}
	logger.Debug("soak started", "seeds", cfg.Seeds, "workers", cfg.Workers, "moves", cfg.Moves)

	report, err := soak.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := report.Fprint(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !report.OK() {
		os.Exit(1)
	}
}
