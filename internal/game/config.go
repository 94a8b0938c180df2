package game

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/dreadhollow/internal/prefs"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid game config")

// MaxTickRate bounds TickRate so the tick interval stays well above zero.
const MaxTickRate = 1000

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible level generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"DREADHOLLOW_SEED" envDefault:"0"`
	// TickRate is the simulation rate in ticks per second.
	TickRate int `env:"DREADHOLLOW_TICK_RATE" envDefault:"30"`

	PrefsBackend string `env:"DREADHOLLOW_PREFS_BACKEND" envDefault:"sqlite"`
	PrefsPath    string `env:"DREADHOLLOW_PREFS_PATH" envDefault:"dreadhollow.db"`

	// LevelsDir overrides the embedded level data and is watched for edits.
	LevelsDir string `env:"DREADHOLLOW_LEVELS_DIR"`

	Audio      bool   `env:"DREADHOLLOW_AUDIO" envDefault:"true"`
	StartScene string `env:"DREADHOLLOW_START_SCENE" envDefault:"main_menu"`
}

// LoadConfig reads the configuration from the process environment and
// validates it.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom reads the configuration from environ instead of the
// process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the options the game cannot start without.
func (c Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		return fmt.Errorf("%w: tick rate must be in 1..%d, got %d", ErrInvalidConfig, MaxTickRate, c.TickRate)
	}
	if !prefs.ValidBackend(c.PrefsBackend) {
		return fmt.Errorf("%w: unknown prefs backend %q", ErrInvalidConfig, c.PrefsBackend)
	}
	if _, err := ParseScene(c.StartScene); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Scene returns the configured start scene, the main menu if unset.
func (c Config) Scene() Scene {
	s, err := ParseScene(c.StartScene)
	if err != nil {
		return SceneMainMenu
	}
	return s
}
