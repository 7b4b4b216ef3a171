package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/netmap/internal/viewport"
)

// Config holds netmap configuration.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Game     GameConfig     `toml:"game"`
	UI       UIConfig       `toml:"ui"`
	Journal  JournalConfig  `toml:"journal"`
}

// ViewportConfig controls the map camera.
type ViewportConfig struct {
	ZoomMin        float64 `toml:"zoom_min"`
	ZoomMax        float64 `toml:"zoom_max"`
	ZoomStep       float64 `toml:"zoom_step"`
	InitialZoom    float64 `toml:"initial_zoom"`
	PannableFactor float64 `toml:"pannable_factor"`
	PanStep        float64 `toml:"pan_step"` // keyboard pan, in screen units
}

// GameConfig selects the dataset and where a session starts.
type GameConfig struct {
	Dataset   string `toml:"dataset"` // empty = built-in architecture
	EntryNode int    `toml:"entry_node"`
	Normalize bool   `toml:"normalize"`
}

// UIConfig controls display options.
type UIConfig struct {
	Emoji bool `toml:"emoji"`
	Color bool `toml:"color"`
	Mouse bool `toml:"mouse"`
}

// JournalConfig controls the session journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty = <config dir>/journal.jsonl
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			ZoomMin:        viewport.DefaultLimits.Min,
			ZoomMax:        viewport.DefaultLimits.Max,
			ZoomStep:       viewport.DefaultLimits.Step,
			InitialZoom:    1,
			PannableFactor: viewport.DefaultPannableFactor,
			PanStep:        4,
		},
		Game:    GameConfig{EntryNode: 1, Normalize: true},
		UI:      UIConfig{Emoji: true, Color: true, Mouse: true},
		Journal: JournalConfig{Enabled: false},
	}
}

// Limits returns the zoom limits described by the viewport section.
func (c *Config) Limits() viewport.Limits {
	return viewport.Limits{Min: c.Viewport.ZoomMin, Max: c.Viewport.ZoomMax, Step: c.Viewport.ZoomStep}
}

// Sanitize replaces out-of-range values with their defaults.
func (c *Config) Sanitize() {
	d := Default()
	v := &c.Viewport
	if v.ZoomMin <= 0 || v.ZoomMax < v.ZoomMin {
		v.ZoomMin, v.ZoomMax = d.Viewport.ZoomMin, d.Viewport.ZoomMax
	}
	if v.ZoomStep <= 0 {
		v.ZoomStep = d.Viewport.ZoomStep
	}
	if v.InitialZoom < v.ZoomMin || v.InitialZoom > v.ZoomMax {
		v.InitialZoom = d.Viewport.InitialZoom
	}
	if v.PannableFactor <= 0 {
		v.PannableFactor = d.Viewport.PannableFactor
	}
	if v.PanStep <= 0 {
		v.PanStep = d.Viewport.PanStep
	}
	if c.Game.EntryNode < 1 {
		c.Game.EntryNode = d.Game.EntryNode
	}
}

// ConfigDir returns the netmap config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "netmap")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// JournalPath returns where the session journal is written.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(ConfigDir(), "journal.jsonl")
}

// Load reads the default config file, falling back to defaults.
func Load() *Config {
	cfg, _ := LoadFrom(Path())
	return cfg
}

// LoadFrom reads the config file at path. A missing file yields defaults and
// no error; a malformed one yields defaults and the parse error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	cfg.Sanitize()
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
