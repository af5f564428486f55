package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGemsEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGems("")
	if err != nil {
		t.Fatalf("LoadGems() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if len(cfg.Levels) < 3 {
		t.Errorf("embedded config has %d levels, want at least 3", len(cfg.Levels))
	}
	if cfg.Board.Width != 8 || cfg.Board.Height != 8 {
		t.Errorf("board = %dx%d, want 8x8", cfg.Board.Width, cfg.Board.Height)
	}
}

func TestLoadGemsUserOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
board: {width: 5, height: 5, variations: 3}
scoring: {points_per_tile: 7, cascade_bonus: 1}
pacing: {step_ticks: 2}
levels:
  - {name: Only, width: 5, height: 5, variations: 3, target: 50, moves: 3}
`
	if err := os.WriteFile(filepath.Join(dir, "gems.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGems("")
	if err != nil {
		t.Fatalf("LoadGems() error = %v", err)
	}
	if cfg.Scoring.PointsPerTile != 7 {
		t.Errorf("points_per_tile = %d, want 7", cfg.Scoring.PointsPerTile)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].Name != "Only" {
		t.Errorf("levels = %+v, want the single override level", cfg.Levels)
	}
}

func TestLoadGemsCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadGems(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: {width: 2, height: 2, variations: 3}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGems(bad); err == nil {
		t.Error("expected validation error for 2x2 board")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GemsConfig)
		wantErr bool
	}{
		{"defaults", func(*GemsConfig) {}, false},
		{"narrow board", func(c *GemsConfig) { c.Board.Width = 3 }, true},
		{"two colors", func(c *GemsConfig) { c.Board.Variations = 2 }, true},
		{"seven colors", func(c *GemsConfig) { c.Levels[0].Variations = 7 }, true},
		{"no moves", func(c *GemsConfig) { c.Levels[1].Moves = 0 }, true},
		{"zero points", func(c *GemsConfig) { c.Scoring.PointsPerTile = 0 }, true},
		{"zero pacing", func(c *GemsConfig) { c.Pacing.StepTicks = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGemsConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyGemsPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		firstMoves int
		variations int
	}{
		{DifficultyEasy, true, 25, 4},
		{DifficultyNormal, true, 20, 5},
		{DifficultyHard, true, 15, 6},
		{DifficultyFixed, false, 20, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGemsConfig()
			ApplyGemsPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Levels[0].Moves != tt.firstMoves {
				t.Errorf("level 1 moves = %d, want %d", cfg.Levels[0].Moves, tt.firstMoves)
			}
			if cfg.Board.Variations != tt.variations {
				t.Errorf("variations = %d, want %d", cfg.Board.Variations, tt.variations)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDifficultyVariations(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{MaxVariations: 6},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  int
	}{
		{0, 4},
		{499, 4},
		{500, 5},
		{1000, 6},
		{5000, 6},
	}
	for _, tt := range tests {
		if got := dm.Variations(4, tt.score, 0); got != tt.want {
			t.Errorf("Variations(4, score=%d) = %d, want %d", tt.score, got, tt.want)
		}
	}

	dm.SetEnabled(false)
	if got := dm.Variations(4, 5000, 0); got != 4 {
		t.Errorf("disabled Variations = %d, want 4", got)
	}

	dm.SetEnabled(true)
	dm.SetInitialLevel(1.0)
	if got := dm.Variations(3, 0, 0); got != 6 {
		t.Errorf("Variations at max initial level = %d, want 6", got)
	}
}

func TestDifficultyLevelByMoves(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "moves", MaxAt: 10},
	})
	if got := dm.Level(0, 5); got != 0.75 {
		t.Errorf("Level(moves=5) = %v, want 0.75", got)
	}
	if !dm.IsEnabled() {
		t.Error("expected progression enabled")
	}
}
