package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/gems"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Playing "gems" without --level opens the mode selector first.

Controls:
  Arrows/WASD  - Move the cursor, or swap when a gem is picked
  Space/Enter  - Pick up / drop a gem
  B/Esc        - Drop the picked gem (back to menu when paused)
  H            - Hint
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Extra moves, one color fewer in endless
  normal - Start at 30% difficulty, progresses to max
  hard   - Fewer moves, one color more in endless
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play gems
  arcade play gems --level 3 --difficulty hard
  arcade play gems_endless --seed 42
  arcade play gems --config ./my-gems.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

// terminalConfig builds the runtime config from the terminal size and
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameFlags pushes --config and --difficulty into the game packages.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	gems.SetConfigPath(flagConfig)
	gems.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := knownGame(gameID); err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	cfg := terminalConfig()
	game, err := newPlayGame(gameID, cfg)
	if err != nil || game == nil {
		return err
	}

	store := openStoreOrWarn()
	defer closeStore(store)

	_, err = tui.Run(game, store, cfg)
	return err
}

// newPlayGame creates the game to play. Gem Swap without --level asks for
// mode and level first; a nil game means the user backed out.
func newPlayGame(gameID string, cfg core.RuntimeConfig) (registry.Game, error) {
	if gameID == "gems" && flagLevel == 0 {
		selection, err := tui.RunGemsModeSelector(cfg)
		if err != nil || selection == nil {
			return nil, err
		}
		if flagDifficulty != "" {
			selection.Difficulty = config.DifficultyPreset(flagDifficulty)
		}
		return selection.NewGame()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*gems.Game); ok && flagLevel > 0 {
		if err := g.Configure(flagLevel, flagDifficulty); err != nil {
			return nil, err
		}
	}
	return game, nil
}
