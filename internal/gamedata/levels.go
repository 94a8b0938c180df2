package gamedata

import (
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dreadhollow/internal/level"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// LayoutDef holds the feature counts scattered over a level (see world.Plan).
type LayoutDef struct {
	Enemies    int `json:"enemies"`
	Items      int `json:"items"`
	Heals      int `json:"heals"`
	ToxicZones int `json:"toxicZones"`
	Cracks     int `json:"cracks"`
	Doors      int `json:"doors"`
	Switches   int `json:"switches"`
}

// LevelDef defines a playable level loaded from JSON.
type LevelDef struct {
	ID          string    `json:"id"`          // Scene name that plays this level (e.g., "level1")
	Name        string    `json:"name"`        // Display name
	Kind        string    `json:"kind"`        // "exploration" or "survival"
	LimitTime   float64   `json:"limitTime"`   // Seconds
	OnTimeout   string    `json:"onTimeout"`   // "victory" or "defeat"; empty takes the kind's default
	ItemKind    string    `json:"itemKind"`    // Exploration only
	Required    int       `json:"required"`    // Exploration only
	Enemy       string    `json:"enemy"`       // EnemyDef ID; empty picks by spawn weight
	HealAmount  float64   `json:"healAmount"`  // Per heal pickup
	ToxicDamage float64   `json:"toxicDamage"` // Per second inside a toxic zone
	Color       string    `json:"color"`       // Floor tint
	Briefing    string    `json:"briefing"`    // Shown on the info screen
	Layout      LayoutDef `json:"layout"`
}

// Config converts the definition into level rules.
func (d *LevelDef) Config() (level.Config, error) {
	cfg := level.Config{
		Kind:      level.Kind(d.Kind),
		LimitTime: d.LimitTime,
		ItemKind:  d.ItemKind,
		Required:  d.Required,
	}
	if d.OnTimeout != "" {
		o, err := level.ParseOutcome(d.OnTimeout)
		if err != nil {
			return level.Config{}, fmt.Errorf("level %s: %w", d.ID, err)
		}
		cfg.OnTimeout = o
	}
	if err := cfg.Validate(); err != nil {
		return level.Config{}, fmt.Errorf("level %s: %w", d.ID, err)
	}
	return cfg, nil
}

// Plan returns the feature counts for world population.
func (d *LevelDef) Plan() world.Plan {
	return world.Plan{
		Enemies:    d.Layout.Enemies,
		Items:      d.Layout.Items,
		Heals:      d.Layout.Heals,
		ToxicZones: d.Layout.ToxicZones,
		Cracks:     d.Layout.Cracks,
		Doors:      d.Layout.Doors,
		Switches:   d.Layout.Switches,
	}
}

// FloorColor returns the floor tint, gray when unset or malformed.
func (d *LevelDef) FloorColor() tcell.Color {
	return colorOr(d.Color, tcell.ColorGray)
}

// LevelsFile represents the structure of levels.json.
type LevelsFile struct {
	Levels []LevelDef `json:"levels"`
}

// LoadLevels loads level definitions from the embedded levels.json file.
func LoadLevels() ([]LevelDef, error) {
	return LoadLevelsFS(dataFS)
}

// LoadLevelsFS loads levels.json from fsys and validates every entry.
func LoadLevelsFS(fsys fs.FS) ([]LevelDef, error) {
	file, err := LoadFS[LevelsFile](fsys, "levels.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Levels {
		if _, err := file.Levels[i].Config(); err != nil {
			return nil, err
		}
	}
	return file.Levels, nil
}
