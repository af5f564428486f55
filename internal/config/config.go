// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// GemsConfig contains all configuration for the Gem Swap game.
type GemsConfig struct {
	Board      GemsBoard        `yaml:"board"`
	Scoring    GemsScoring      `yaml:"scoring"`
	Pacing     GemsPacing       `yaml:"pacing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     []GemsLevel      `yaml:"levels"`
}

// GemsBoard defines the board used in endless mode.
type GemsBoard struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	Variations int `yaml:"variations"` // Number of gem colors (3-6)
}

// GemsScoring defines how cleared gems turn into points.
type GemsScoring struct {
	PointsPerTile int     `yaml:"points_per_tile"`
	CascadeBonus  float64 `yaml:"cascade_bonus"` // Extra multiplier per cascade level after the first
}

// GemsPacing defines how fast cascades play out on screen.
type GemsPacing struct {
	StepTicks       int `yaml:"step_ticks"`        // Ticks between cascade steps
	LevelClearTicks int `yaml:"level_clear_ticks"` // Ticks the level-cleared banner stays up
}

// GemsLevel defines one campaign level.
type GemsLevel struct {
	Name       string `yaml:"name"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Variations int    `yaml:"variations"`
	Target     int    `yaml:"target"` // Score needed to clear the level
	Moves      int    `yaml:"moves"`  // Swap budget
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	MaxVariations int `yaml:"max_variations"` // Gem colors at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that every board in the config can be populated.
func (c GemsConfig) Validate() error {
	if err := validateBoard("board", c.Board.Width, c.Board.Height, c.Board.Variations); err != nil {
		return err
	}
	for i, lvl := range c.Levels {
		name := fmt.Sprintf("level %d (%s)", i+1, lvl.Name)
		if err := validateBoard(name, lvl.Width, lvl.Height, lvl.Variations); err != nil {
			return err
		}
		if lvl.Target <= 0 || lvl.Moves <= 0 {
			return fmt.Errorf("config: %s: target and moves must be positive", name)
		}
	}
	if c.Scoring.PointsPerTile <= 0 {
		return fmt.Errorf("config: scoring.points_per_tile must be positive")
	}
	if c.Pacing.StepTicks <= 0 {
		return fmt.Errorf("config: pacing.step_ticks must be positive")
	}
	return nil
}

func validateBoard(name string, w, h, v int) error {
	if w < match3.MinWidth || h < match3.MinHeight {
		return fmt.Errorf("config: %s: board %dx%d is too small", name, w, h)
	}
	if v < match3.MinVariations || v > match3.MaxVariations {
		return fmt.Errorf("config: %s: variations %d out of range %d-%d", name, v, match3.MinVariations, match3.MaxVariations)
	}
	return nil
}
