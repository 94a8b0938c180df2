package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlDoc struct {
	Ints   map[string]int     `yaml:"ints,omitempty"`
	Floats map[string]float64 `yaml:"floats,omitempty"`
}

// YAML persists preferences in a human-editable file.
type YAML struct {
	values
	path string
}

// OpenYAML reads path if it exists. A missing file is an empty store.
func OpenYAML(path string) (*YAML, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	y := &YAML{values: newValues(), path: filepath.Clean(path)}

	data, err := os.ReadFile(y.path)
	if errors.Is(err, fs.ErrNotExist) {
		return y, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", y.path, err)
	}
	for k, v := range doc.Ints {
		y.ints[k] = v
	}
	for k, v := range doc.Floats {
		y.floats[k] = v
	}
	return y, nil
}

// Save rewrites the whole file through a temp file and rename.
func (y *YAML) Save() error {
	data, err := yaml.Marshal(yamlDoc{Ints: y.ints, Floats: y.floats})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(y.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := y.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, y.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	y.clean()
	return nil
}

func (y *YAML) Close() error { return nil }
