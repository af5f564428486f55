package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagTop int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Print the best scores of a game, a summary of every game played
and the most recent stored replays.

Examples:
  arcade scores gems
  arcade scores gems_endless --top 25`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagTop, "top", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := knownGame(gameID); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagTop)
	if err != nil {
		return fmt.Errorf("read scores: %w", err)
	}

	fmt.Printf("High scores - %s\n", registry.Title(gameID))
	if len(scores) == 0 {
		fmt.Printf("\nNo scores recorded yet. Play 'arcade play %s' to set one.\n", gameID)
		return nil
	}

	top := listTable("Rank", "Score", "Date")
	for i, e := range scores {
		top.Row(strconv.Itoa(i+1), strconv.Itoa(e.Score), e.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(top)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best %d over %d games, average %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	replays, err := store.RecentReplays(gameID, 5)
	if err != nil || len(replays) == 0 {
		return nil
	}
	recent := listTable("Date", "Score", "Replay ID")
	for _, r := range replays {
		recent.Row(r.CreatedAt.Format("2006-01-02 15:04"), strconv.Itoa(r.Score), r.ID)
	}
	fmt.Println()
	fmt.Println("Recent replays (verify with 'arcade replay <id>'):")
	fmt.Println(recent)
	return nil
}
