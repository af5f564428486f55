package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Press B/Esc while paused or after game over to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty (Gem Swap modes)
  Enter/Space  - Select game
  Tab          - High scores and recent replays
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStoreOrWarn()
	defer closeStore(store)

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		var back bool
		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			back, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		default:
			back, err = playFromMenu(res.GameID, store, cfg)
		}
		if err != nil || !back {
			return err
		}
	}
}

// playFromMenu runs the picked game and reports whether to show the menu
// again. Backing out of the Gem Swap mode selector also returns to it.
func playFromMenu(gameID string, store *storage.Store, cfg core.RuntimeConfig) (bool, error) {
	var (
		game registry.Game
		err  error
	)
	if gameID == "gems" {
		var sel *tui.GemsSelection
		if sel, err = tui.RunGemsModeSelector(cfg); err != nil || sel == nil {
			return err == nil, err
		}
		game, err = sel.NewGame()
		logger.Debug("game selected", "level", sel.Level, "difficulty", sel.Difficulty)
	} else {
		game, err = registry.Create(gameID)
	}
	if err != nil {
		return false, err
	}

	// Fresh seed for each game unless one was pinned
	if flagSeed == 0 {
		cfg.Seed = core.RandomSeed()
	}
	return tui.Run(game, store, cfg)
}
