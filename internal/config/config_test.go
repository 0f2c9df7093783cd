package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Embedded defaults should parse: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("Embedded defaults differ from DefaultSnakeConfig:\n got %+v\nwant %+v", cfg, DefaultSnakeConfig())
	}
	if cfg.Board.Cells() != 20 {
		t.Errorf("Default board should be 20 cells, got %d", cfg.Board.Cells())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("speed:\n  base_tick_ms: 200\ndisplay:\n  theme: matrix\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Speed.BaseTickMs != 200 {
		t.Errorf("BaseTickMs = %d, expected 200", cfg.Speed.BaseTickMs)
	}
	if cfg.Speed.MinTickMs != 65 {
		t.Errorf("MinTickMs should keep default 65, got %d", cfg.Speed.MinTickMs)
	}
	if cfg.Display.Theme != "matrix" {
		t.Errorf("Theme = %q, expected matrix", cfg.Display.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SnakeConfig)
		wantErr string
	}{
		{"defaults", func(*SnakeConfig) {}, ""},
		{"zero cell", func(c *SnakeConfig) { c.Board.CellPx = 0 }, "board"},
		{"tiny board", func(c *SnakeConfig) { c.Board.BoardPx = 48 }, "at least 4 cells"},
		{"min above base", func(c *SnakeConfig) { c.Speed.MinTickMs = 200 }, "exceeds"},
		{"no step score", func(c *SnakeConfig) { c.Speed.StepEveryScore = 0 }, "step_every_score"},
		{"no reward", func(c *SnakeConfig) { c.Scoring.FoodReward = 0 }, "food_reward"},
		{"loud", func(c *SnakeConfig) { c.Audio.Volume = 2 }, "volume"},
		{"low rate", func(c *SnakeConfig) { c.Audio.SampleRate = 100 }, "sample_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  food_reward: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg.Scoring.FoodReward != 25 {
		t.Errorf("FoodReward = %d, expected 25", cfg.Scoring.FoodReward)
	}
}

func TestLoadSnakeCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Missing custom config should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("speed:\n  min_tick_ms: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("Invalid custom config should be an error")
	}
}

func TestLoadSnakeSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("Expected embedded defaults, got %+v", cfg)
	}

	// Local configs directory.
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "snake.yaml"), []byte("display:\n  theme: neon-blue\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadSnake("")
	if cfg.Display.Theme != "neon-blue" {
		t.Errorf("Expected local config theme, got %q", cfg.Display.Theme)
	}

	// User directory wins over local.
	userDir := filepath.Join(home, ".snake", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "snake.yaml"), []byte("display:\n  theme: matrix\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadSnake("")
	if cfg.Display.Theme != "matrix" {
		t.Errorf("Expected user config theme, got %q", cfg.Display.Theme)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "base_tick_ms: 130") {
		t.Errorf("Marshaled YAML missing speed section:\n%s", data)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse of marshaled config failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("Round trip changed config: %+v", cfg)
	}
}
