// Package gamedata provides the embedded level and enemy definitions and
// utilities for loading them, optionally from an override directory.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
