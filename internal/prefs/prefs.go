// Package prefs is the persistent key-value store for player progress and
// settings. Values are cached in memory; Save flushes them to the backend.
package prefs

import (
	"fmt"
	"strings"
)

// Keys shared by the game and the settings screen.
const (
	KeyLevelReached = "levelReached"
	KeyVolume       = "Volume"
	KeyMute         = "Mute"
	KeyBrightness   = "Brightness"
	KeyLanguage     = "Language"
)

// Store is an opaque int/float key-value store.
type Store interface {
	GetInt(key string, def int) int
	SetInt(key string, v int)
	GetFloat(key string, def float64) float64
	SetFloat(key string, v float64)
	Save() error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
)

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	switch strings.ToLower(name) {
	case BackendMemory, BackendSQLite, BackendYAML:
		return true
	}
	return false
}

// Open opens the named backend at path. path is ignored for memory.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendYAML:
		y, err := OpenYAML(path)
		if err != nil {
			return nil, err
		}
		return y, nil
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", backend)
	}
}

// values is the in-memory cache every backend builds on.
type values struct {
	ints   map[string]int
	floats map[string]float64
	dirty  map[string]bool
}

func newValues() values {
	return values{
		ints:   make(map[string]int),
		floats: make(map[string]float64),
		dirty:  make(map[string]bool),
	}
}

func (v *values) GetInt(key string, def int) int {
	if n, ok := v.ints[key]; ok {
		return n
	}
	return def
}

func (v *values) SetInt(key string, n int) {
	v.ints[key] = n
	delete(v.floats, key)
	v.dirty[key] = true
}

func (v *values) GetFloat(key string, def float64) float64 {
	if f, ok := v.floats[key]; ok {
		return f
	}
	return def
}

func (v *values) SetFloat(key string, f float64) {
	v.floats[key] = f
	delete(v.ints, key)
	v.dirty[key] = true
}

func (v *values) clean() {
	v.dirty = make(map[string]bool)
}

// Memory is a Store that forgets everything at exit.
type Memory struct {
	values
	saves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: newValues()}
}

// Save only counts calls.
func (m *Memory) Save() error {
	m.saves++
	m.clean()
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int { return m.saves }

func (m *Memory) Close() error { return nil }
