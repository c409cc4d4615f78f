package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test editor defaults
	if cfg.Editor.VertexPickRadius != 25 {
		t.Errorf("expected vertex pick radius 25, got %f", cfg.Editor.VertexPickRadius)
	}
	if cfg.Editor.EdgePickRadius != 30 {
		t.Errorf("expected edge pick radius 30, got %f", cfg.Editor.EdgePickRadius)
	}
	if cfg.Editor.ShowStats {
		t.Error("expected show_stats to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false
  fps_limit: 144

editor:
  vertex_pick_radius: 12
  edge_pick_radius: 18
  show_stats: true

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync false after load")
	}
	if cfg.Editor.VertexPickRadius != 12 {
		t.Errorf("expected vertex pick radius 12, got %f", cfg.Editor.VertexPickRadius)
	}
	if cfg.Editor.EdgePickRadius != 18 {
		t.Errorf("expected edge pick radius 18, got %f", cfg.Editor.EdgePickRadius)
	}
	if !cfg.Editor.ShowStats {
		t.Error("expected show_stats true after load")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only override one section; the rest keeps defaults.
	yamlContent := "editor:\n  edge_pick_radius: 40\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Editor.EdgePickRadius != 40 {
		t.Errorf("expected edge pick radius 40, got %f", cfg.Editor.EdgePickRadius)
	}
	if cfg.Editor.VertexPickRadius != 25 {
		t.Errorf("unset value should keep default 25, got %f", cfg.Editor.VertexPickRadius)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("unset section should keep defaults, got width %d", cfg.Graphics.Width)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Editor.VertexPickRadius = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Editor.VertexPickRadius != 99 {
		t.Errorf("round-trip vertex pick radius: got %f, want 99", loaded.Editor.VertexPickRadius)
	}
}
