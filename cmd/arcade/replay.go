package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/replay"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagShowBoard bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a stored replay and verify it",
	Long: `Load a replay saved at the end of a game, rebuild the board from its
seed, apply every recorded swap and check that the final board matches
the stored fingerprint. Exits with status 1 when it does not.

Replay IDs are shown after game over and by 'arcade scores <game>'.

Examples:
  arcade replay 3f0c2a9e-8d51-4c4e-9d0e-2b1f7a6c5e43
  arcade replay 3f0c2a9e-8d51-4c4e-9d0e-2b1f7a6c5e43 --board`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entry, err := store.ReplayByID(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay with ID %q\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec := entry.Record
	fmt.Printf("Replay %s - %s\n", entry.ID, entry.GameID)
	fmt.Printf("  board:   %dx%d, %d colors, seed %d\n", rec.Width, rec.Height, rec.Variations, rec.Seed)
	fmt.Printf("  moves:   %d\n", len(rec.Moves))
	fmt.Printf("  score:   %d\n", entry.Score)
	fmt.Printf("  played:  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))

	out, err := replay.Verify(rec, entry.Fingerprint, match3.WithLogger(logger))
	if err == nil || errors.Is(err, replay.ErrMismatch) {
		fmt.Printf("  swaps:   %d accepted, %d rejected\n", out.Accepted, out.Rejected)
		fmt.Printf("  cleared: %d tiles, deepest cascade %d\n", out.Cleared, out.MaxCascade)
	}
	if flagShowBoard && out.Board != "" {
		fmt.Println()
		fmt.Print(out.Board)
	}
	fmt.Println()

	if err != nil {
		logger.Error("replay failed", "replay", entry.ID, "error", err)
		os.Exit(1)
	}
	fmt.Printf("OK: final board matches fingerprint %016x\n", out.Fingerprint)
}
