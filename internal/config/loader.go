package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGems loads Gem Swap configuration.
// Search order: customPath -> ~/.arcade/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
func LoadGems(customPath string) (GemsConfig, error) {
	var cfg GemsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("gems.yaml"), filepath.Join("configs", "gems.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := readGems(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGemsYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultGemsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readGems reads an optional config file. Missing or broken files are skipped.
func readGems(path string) (GemsConfig, bool) {
	var cfg GemsConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust move budgets and colors based on difficulty
	switch preset {
	case DifficultyEasy:
		for i := range cfg.Levels {
			cfg.Levels[i].Moves += 5
		}
		cfg.Board.Variations = max(3, cfg.Board.Variations-1)
	case DifficultyHard:
		for i := range cfg.Levels {
			cfg.Levels[i].Moves = max(5, cfg.Levels[i].Moves-5)
		}
		cfg.Board.Variations = min(6, cfg.Board.Variations+1)
	}
}
