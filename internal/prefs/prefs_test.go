package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryDefaults(t *testing.T) {
	m := NewMemory()
	if got := m.GetInt(KeyLevelReached, 3); got != 3 {
		t.Errorf("GetInt default = %d, want 3", got)
	}
	if got := m.GetFloat(KeyVolume, 0.5); got != 0.5 {
		t.Errorf("GetFloat default = %v, want 0.5", got)
	}

	m.SetInt(KeyLevelReached, 5)
	m.SetFloat(KeyVolume, 0.25)
	if m.GetInt(KeyLevelReached, 3) != 5 || m.GetFloat(KeyVolume, 1) != 0.25 {
		t.Error("stored values not returned")
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", m.Saves())
	}
}

func TestSetChangesKeyType(t *testing.T) {
	m := NewMemory()
	m.SetInt("k", 1)
	m.SetFloat("k", 2.5)
	if got := m.GetInt("k", -1); got != -1 {
		t.Errorf("GetInt after SetFloat = %d, want default", got)
	}
	if got := m.GetFloat("k", -1); got != 2.5 {
		t.Errorf("GetFloat = %v, want 2.5", got)
	}
}

func TestPersistentBackendsRoundTrip(t *testing.T) {
	tests := []struct {
		backend string
		file    string
	}{
		{BackendSQLite, "prefs.db"},
		{BackendYAML, "prefs.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)

			s, err := Open(tt.backend, path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if got := s.GetInt(KeyLevelReached, 3); got != 3 {
				t.Errorf("fresh store GetInt = %d, want default", got)
			}
			s.SetInt(KeyLevelReached, 5)
			s.SetFloat(KeyBrightness, 0.7)
			if err := s.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}
			s.SetInt(KeyLanguage, 2) // not saved
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reopened, err := Open(tt.backend, path)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer reopened.Close()

			if got := reopened.GetInt(KeyLevelReached, 3); got != 5 {
				t.Errorf("GetInt(levelReached) = %d, want 5", got)
			}
			if got := reopened.GetFloat(KeyBrightness, 1); got != 0.7 {
				t.Errorf("GetFloat(Brightness) = %v, want 0.7", got)
			}
			if got := reopened.GetInt(KeyLanguage, 0); got != 0 {
				t.Errorf("unsaved value persisted: %d", got)
			}

			reopened.SetInt(KeyLevelReached, 7)
			if err := reopened.Save(); err != nil {
				t.Fatalf("second Save: %v", err)
			}
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x"); err == nil {
		t.Error("Open(redis) should fail")
	}
	if ValidBackend("redis") || !ValidBackend("SQLite") {
		t.Error("ValidBackend mismatch")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendYAML} {
		if _, err := Open(backend, "  "); err == nil {
			t.Errorf("Open(%s, blank) should fail", backend)
		}
	}
	if _, err := Open(BackendMemory, ""); err != nil {
		t.Errorf("memory backend needs no path: %v", err)
	}
}

func TestYAMLRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("ints: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenYAML(path)
	if err == nil || !strings.Contains(err.Error(), "parse prefs") {
		t.Errorf("OpenYAML(corrupt) error = %v", err)
	}
}
