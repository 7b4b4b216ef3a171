package netarch

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// archFile is the on-disk layout of a dataset file.
type archFile struct {
	Name   string  `toml:"name" yaml:"name"`
	Target string  `toml:"target" yaml:"target"`
	ETA    string  `toml:"eta" yaml:"eta"`
	Entry  int     `toml:"entry" yaml:"entry"`
	Nodes  []*Node `toml:"nodes" yaml:"nodes"`
}

// LoadFromFS loads every dataset file in dir of fsys and merges them into a
// single architecture. Header fields are taken from the first file that sets
// them.
func LoadFromFS(fsys fs.FS, dir string) (*Architecture, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded dataset: %w", err)
	}

	a := New()
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !isDatasetFile(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		if err := a.merge(entry.Name(), data); err != nil {
			return nil, err
		}
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no dataset files in %s", dir)
	}
	return a, nil
}

// LoadFile loads a single dataset file. The format is chosen by extension.
func LoadFile(p string) (*Architecture, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	a := New()
	if err := a.merge(filepath.Base(p), data); err != nil {
		return nil, err
	}
	return a, nil
}

// Parse decodes a dataset from memory. name is only used to pick the format.
func Parse(name string, data []byte) (*Architecture, error) {
	a := New()
	if err := a.merge(name, data); err != nil {
		return nil, err
	}
	return a, nil
}

func isDatasetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

func (a *Architecture) merge(name string, data []byte) error {
	var f archFile
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported dataset format: %s", name)
	}

	if a.Name == "" {
		a.Name = f.Name
	}
	if a.Target == "" {
		a.Target = f.Target
	}
	if a.ETA == "" {
		a.ETA = f.ETA
	}
	if f.Entry != 0 {
		a.Entry = f.Entry
	}

	for _, n := range f.Nodes {
		if n == nil {
			continue
		}
		t, err := ParseType(string(n.Type))
		if err != nil {
			return fmt.Errorf("%s: node %d: %w", name, n.ID, err)
		}
		n.Type = t
		if err := a.Add(n); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
