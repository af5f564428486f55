// arcade runs Gem Swap, a match-3 puzzle, in the terminal and ships the
// tools used to inspect and verify the board engine.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade replay <id>       - Re-run a stored replay and verify it
//	arcade dump              - Print a freshly populated board
//	arcade soak              - Check board invariants over many seeds
//	arcade shell             - Interactive engine console
//
// Global flags (also read from ARCADE_FPS, ARCADE_SEED, ARCADE_DB):
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Importing gems registers its games
	"github.com/vovakirdan/tui-match3/internal/games/gems"
)

var (
	// Global flags, resolved through viper before any command runs
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Gem Swap - a match-3 puzzle in your terminal",
	Long: `Gem Swap is a match-3 puzzle played in the terminal: swap two
neighboring gems to line up three or more of a color.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Verify a stored replay
  dump     - Print a populated board
  soak     - Check board invariants over many seeds
  shell    - Interactive engine console

Examples:
  arcade play gems
  arcade play gems_endless --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade soak --seeds 1000 --workers 8`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int("fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().String("db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadSettings resolves the global flags. Explicit flags win over
// ARCADE_* environment variables, which win over defaults.
func loadSettings(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("arcade")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	flagFPS = v.GetInt("fps")
	flagSeed = v.GetInt64("seed")
	flagDBPath = v.GetString("db")
	flagVerbose = v.GetBool("verbose")

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	gems.SetLogger(logger)
	logger.Debug("settings loaded", "fps", flagFPS, "seed", flagSeed, "db", flagDBPath)
	return nil
}
