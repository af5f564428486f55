package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the built-in configuration used when the
// embedded YAML cannot be parsed.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: GemsBoard{
			Width:      8,
			Height:     8,
			Variations: 5,
		},
		Scoring: GemsScoring{
			PointsPerTile: 10,
			CascadeBonus:  0.5,
		},
		Pacing: GemsPacing{
			StepTicks:       6,
			LevelClearTicks: 120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				MaxVariations: 6,
			},
		},
		Levels: []GemsLevel{
			{Name: "First Sparkle", Width: 6, Height: 6, Variations: 3, Target: 300, Moves: 20},
			{Name: "Four Colors", Width: 7, Height: 7, Variations: 4, Target: 600, Moves: 20},
			{Name: "Full Board", Width: 8, Height: 8, Variations: 4, Target: 1000, Moves: 22},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "gems", "gems_endless":
		return defaultGemsYAML
	default:
		return nil
	}
}
