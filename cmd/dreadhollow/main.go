// Package main is the entry point for Dread Hollow.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dreadhollow/internal/audio"
	"github.com/samdwyer/dreadhollow/internal/game"
	"github.com/samdwyer/dreadhollow/internal/gamedata"
	"github.com/samdwyer/dreadhollow/internal/prefs"
	"github.com/samdwyer/dreadhollow/internal/settings"
	"github.com/samdwyer/dreadhollow/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DREADHOLLOW_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seed := flag.Int64("seed", cfg.Seed, "level generation seed (0 = random)")
	scene := flag.String("scene", cfg.StartScene, "scene to start in")
	flag.Parse()
	cfg.Seed = *seed
	cfg.StartScene = *scene
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	switch {
	case errors.Is(err, telemetry.ErrNotConfigured):
		// Spans go to the no-op provider.
	case err != nil:
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	default:
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	store, err := prefs.Open(cfg.PrefsBackend, cfg.PrefsPath)
	if err != nil {
		log.Printf("Warning: %s prefs store unavailable, progress will not be saved: %v", cfg.PrefsBackend, err)
		store = prefs.NewMemory()
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing prefs store: %v", err)
		}
	}()
	opts := settings.Load(store)

	snd := openAudio(cfg.Audio)
	defer snd.Close()
	opts.BindAudio(snd)

	levels, watcher := loadLevels(cfg.LevelsDir)
	if watcher != nil {
		defer watcher.Close()
	}

	// Create and run game
	g, err := game.New(cfg, game.Deps{
		Store:    store,
		Settings: opts,
		Audio:    snd,
		Levels:   levels,
		Enemies:  gamedata.MustLoadEnemyRegistry(),
		Watcher:  watcher,
	})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// soundOutput is the audio surface main owns: cues for the game, volume
// for the settings, and Close at exit.
type soundOutput interface {
	audio.Player
	settings.AudioOutput
	Close()
}

// openAudio starts the speaker, falling back to silence when audio is
// disabled or no device is available.
func openAudio(enabled bool) soundOutput {
	if !enabled {
		return audio.Nop{}
	}
	p := audio.NewBeepPlayer()
	if err := p.Init(); err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
		return audio.Nop{}
	}
	return p
}

// loadLevels reads level data from dir when set, watching it for edits,
// and from the embedded data otherwise.
func loadLevels(dir string) (*gamedata.LevelRegistry, *gamedata.LevelWatcher) {
	if dir == "" {
		return gamedata.MustLoadLevelRegistry(), nil
	}
	levels, err := gamedata.LoadLevelRegistryFS(os.DirFS(dir))
	if err != nil {
		log.Printf("Warning: level data in %s unusable, using built-in levels: %v", dir, err)
		return gamedata.MustLoadLevelRegistry(), nil
	}
	watcher, err := gamedata.WatchLevels(dir)
	if err != nil {
		log.Printf("Warning: cannot watch %s for level edits: %v", dir, err)
		return levels, nil
	}
	return levels, watcher
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DREADHOLLOW_API_KEY")
	if apiKey == "" {
		return
	}
	// Point at Honeycomb unless an endpoint was set explicitly
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Construct headers here - the .env file may have an unexpanded
	// variable reference that doesn't work
	dataset := os.Getenv("HONEYCOMB_DREADHOLLOW_DATASET")
	if dataset == "" {
		dataset = "dreadhollow" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
