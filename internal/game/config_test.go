package game

import (
	"errors"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.TickRate != 30 || cfg.PrefsBackend != "sqlite" || cfg.PrefsPath != "dreadhollow.db" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.Audio || cfg.Scene() != SceneMainMenu || cfg.Seed != 0 || cfg.LevelsDir != "" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg, err := LoadConfigFrom(map[string]string{
		"DREADHOLLOW_SEED":          "99",
		"DREADHOLLOW_TICK_RATE":     "60",
		"DREADHOLLOW_PREFS_BACKEND": "yaml",
		"DREADHOLLOW_PREFS_PATH":    "prefs.yaml",
		"DREADHOLLOW_AUDIO":         "false",
		"DREADHOLLOW_START_SCENE":   "info_level1",
	})
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Seed != 99 || cfg.TickRate != 60 || cfg.PrefsBackend != "yaml" || cfg.PrefsPath != "prefs.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Audio || cfg.Scene() != SceneInfoLevel1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigProcessEnv(t *testing.T) {
	t.Setenv("DREADHOLLOW_TICK_RATE", "45")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TickRate != 45 {
		t.Errorf("TickRate = %d, want 45", cfg.TickRate)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	if _, err := LoadConfigFrom(map[string]string{"DREADHOLLOW_TICK_RATE": "not-a-number"}); err == nil {
		t.Error("unparseable tick rate accepted")
	}
	_, err := LoadConfigFrom(map[string]string{"DREADHOLLOW_PREFS_BACKEND": "redis"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{TickRate: 30, PrefsBackend: "sqlite", StartScene: "main_menu"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
		{"negative tick rate", func(c *Config) { c.TickRate = -5 }, true},
		{"max tick rate", func(c *Config) { c.TickRate = MaxTickRate }, false},
		{"tick rate above max", func(c *Config) { c.TickRate = MaxTickRate + 1 }, true},
		{"tick rate past nanosecond", func(c *Config) { c.TickRate = 2_000_000_000 }, true},
		{"unknown backend", func(c *Config) { c.PrefsBackend = "redis" }, true},
		{"memory backend", func(c *Config) { c.PrefsBackend = "memory" }, false},
		{"unknown scene", func(c *Config) { c.StartScene = "level9" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
