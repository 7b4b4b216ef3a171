package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Viewport.ZoomMin != 0.5 || cfg.Viewport.ZoomMax != 2.5 {
		t.Errorf("expected zoom bounds [0.5, 2.5], got [%v, %v]", cfg.Viewport.ZoomMin, cfg.Viewport.ZoomMax)
	}
	if cfg.Viewport.ZoomStep != 0.1 {
		t.Errorf("expected zoom step 0.1, got %v", cfg.Viewport.ZoomStep)
	}
	if cfg.Viewport.PannableFactor != 1.5 {
		t.Errorf("expected pannable factor 1.5, got %v", cfg.Viewport.PannableFactor)
	}
	if cfg.Game.EntryNode != 1 {
		t.Errorf("expected entry node 1, got %d", cfg.Game.EntryNode)
	}
	if !cfg.Game.Normalize {
		t.Error("default normalize should be true")
	}
	if cfg.Journal.Enabled {
		t.Error("default journal should be disabled")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != "/tmp/test-xdg/netmap" {
		t.Errorf("expected /tmp/test-xdg/netmap, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "netmap")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Viewport.ZoomMax = 4
	cfg.Journal.Enabled = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.Viewport.ZoomMax != 4 {
		t.Errorf("expected zoom_max 4, got %v", loaded.Viewport.ZoomMax)
	}
	if !loaded.Journal.Enabled {
		t.Error("expected journal enabled after load")
	}
	if loaded.JournalPath() != filepath.Join(tmpDir, "netmap", "journal.jsonl") {
		t.Errorf("unexpected journal path %q", loaded.JournalPath())
	}
}

func TestLoadFrom_Sanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[viewport]\nzoom_min = 3.0\nzoom_max = 1.0\nzoom_step = -1.0\npannable_factor = 0.0\n\n[game]\nentry_node = 0\n"
	os.WriteFile(path, []byte(data), 0o644)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	d := Default()
	if cfg.Limits() != d.Limits() {
		t.Errorf("expected default limits, got %+v", cfg.Limits())
	}
	if cfg.Viewport.PannableFactor != d.Viewport.PannableFactor {
		t.Errorf("expected default pannable factor, got %v", cfg.Viewport.PannableFactor)
	}
	if cfg.Game.EntryNode != 1 {
		t.Errorf("expected entry node 1, got %d", cfg.Game.EntryNode)
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[viewport\nzoom_min = "), 0o644)

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Viewport.ZoomMax != 2.5 {
		t.Error("expected defaults alongside the error")
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Game.EntryNode != 1 {
		t.Error("expected defaults")
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "netmap", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}
