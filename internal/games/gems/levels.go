// Package gems implements Gem Swap, a match-3 puzzle with campaign and
// endless modes, on top of the match3 engine.
package gems

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
)

// Package-level variables for config, set from the CLI and menus.
var (
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset
	configOverride     *config.GemsConfig
	logger             = log.New(io.Discard)
)

// SetLogger sets where config and level load failures are reported.
// nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetStartLevel sets the starting campaign level (1-based). 0 means start
// from the beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetConfig makes every new game use cfg instead of loading one from disk.
// Pass nil to go back to loading.
func SetConfig(cfg *config.GemsConfig) {
	configOverride = cfg
}

// loadConfig resolves the configuration for a new game with the given
// preset applied. An empty preset leaves the loaded difficulty as is.
func loadConfig(preset config.DifficultyPreset) config.GemsConfig {
	var cfg config.GemsConfig
	if configOverride != nil {
		cfg = *configOverride
		cfg.Levels = append([]config.GemsLevel(nil), configOverride.Levels...)
	} else {
		loaded, err := config.LoadGems(configPath)
		if err != nil {
			logger.Warn("gems config not loaded, using defaults", "path", configPath, "err", err)
			loaded = config.DefaultGemsConfig()
		}
		cfg = loaded
	}

	if preset != "" {
		config.ApplyGemsPreset(&cfg, preset)
	}
	return cfg
}

// Levels returns the campaign levels of the active configuration.
func Levels() []config.GemsLevel {
	return loadConfig(difficultyPreset).Levels
}

// LevelNames returns the names of all campaign levels.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}

// levelSeed derives the board seed of a campaign level from the game seed,
// so every level of one run is reproducible on its own.
func levelSeed(seed int64, levelIndex int) int64 {
	return seed + int64(levelIndex)*7919
}
