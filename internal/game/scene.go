package game

import "fmt"

// Scene identifies one screen of the game. The numeric value is the build
// index unlock progress is stored against.
type Scene int

const (
	SceneMainMenu Scene = iota
	SceneOptions
	SceneSettings
	SceneInfoLevel1
	SceneLevel1
	SceneInfoLevel2
	SceneLevel2
)

var sceneNames = [...]string{
	SceneMainMenu:   "main_menu",
	SceneOptions:    "options",
	SceneSettings:   "settings",
	SceneInfoLevel1: "info_level1",
	SceneLevel1:     "level1",
	SceneInfoLevel2: "info_level2",
	SceneLevel2:     "level2",
}

// LevelScenes lists the playable scenes in order.
var LevelScenes = []Scene{SceneLevel1, SceneLevel2}

// String returns the scene name.
func (s Scene) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sceneNames[s]
}

// ParseScene looks a scene up by name.
func ParseScene(name string) (Scene, error) {
	for i, n := range sceneNames {
		if n == name {
			return Scene(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scene %q", name)
}

// Valid reports whether s is in the catalog.
func (s Scene) Valid() bool {
	return s >= 0 && int(s) < len(sceneNames)
}

// IsLevel reports whether s plays a level.
func (s Scene) IsLevel() bool {
	return s == SceneLevel1 || s == SceneLevel2
}

// IsInfo reports whether s is a level briefing screen.
func (s Scene) IsInfo() bool {
	return s == SceneInfoLevel1 || s == SceneInfoLevel2
}

// Info returns the briefing screen for a level or info scene.
func (s Scene) Info() Scene {
	if s.IsLevel() {
		return s - 1
	}
	return s
}

// Level returns the playable scene for a level or info scene.
func (s Scene) Level() Scene {
	if s.IsInfo() {
		return s + 1
	}
	return s
}

// LevelID is the level definition played by a level or info scene, or ""
// for menus.
func (s Scene) LevelID() string {
	if !s.IsLevel() && !s.IsInfo() {
		return ""
	}
	return s.Level().String()
}
