package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dreadhollow/internal/enemy"
)

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID          string       `json:"id"`          // Unique identifier (e.g., "zombie")
	Name        string       `json:"name"`        // Display name
	Glyph       string       `json:"glyph"`       // Single character for rendering
	Color       string       `json:"color"`       // Hex color code (e.g., "#00FF00")
	SpawnWeight int          `json:"spawnWeight"` // Relative spawn frequency
	Behavior    enemy.Config `json:"behavior"`    // Ranges, speeds, attack timing; zero timings take defaults
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return []rune(e.Glyph)[0]
}

// TCellColor returns the glyph color, white when unset or malformed.
func (e *EnemyDef) TCellColor() tcell.Color {
	return colorOr(e.Color, tcell.ColorWhite)
}

// Config returns the validated behavior tuning.
func (e *EnemyDef) Config() (enemy.Config, error) {
	cfg := e.Behavior.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return enemy.Config{}, err
	}
	return cfg, nil
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
