// Package settings holds the player-adjustable options: audio volume and
// mute, screen brightness, and interface language. Every change is written
// through to the prefs store.
package settings

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/samdwyer/dreadhollow/internal/prefs"
)

// Brightness bounds. Below the minimum the screen is unreadable.
const (
	MinBrightness = 0.3
	MaxBrightness = 1.0
)

// Languages in cycling order. The stored language index points into this.
var Languages = []language.Tag{
	language.Spanish,
	language.Catalan,
	language.English,
}

// AudioOutput is whatever plays sound. It is told about volume and mute
// changes as they happen.
type AudioOutput interface {
	SetVolume(v float64)
	SetMuted(m bool)
}

// Settings is the live option set.
type Settings struct {
	store      prefs.Store
	audio      AudioOutput
	volume     float64
	muted      bool
	brightness float64
	lang       int
}

// Load reads the stored options, falling back to full volume, unmuted, full
// brightness and the first language.
func Load(store prefs.Store) *Settings {
	if store == nil {
		store = prefs.NewMemory()
	}
	return &Settings{
		store:      store,
		volume:     clamp(store.GetFloat(prefs.KeyVolume, 1), 0, 1),
		muted:      store.GetInt(prefs.KeyMute, 0) == 1,
		brightness: clamp(store.GetFloat(prefs.KeyBrightness, MaxBrightness), MinBrightness, MaxBrightness),
		lang:       wrap(store.GetInt(prefs.KeyLanguage, 0)),
	}
}

// BindAudio attaches an output and pushes the current volume and mute to it.
func (s *Settings) BindAudio(out AudioOutput) {
	s.audio = out
	if out != nil {
		out.SetVolume(s.volume)
		out.SetMuted(s.muted)
	}
}

// Volume returns the master volume in [0, 1].
func (s *Settings) Volume() float64 { return s.volume }

// SetVolume clamps v to [0, 1], applies and persists it.
func (s *Settings) SetVolume(v float64) error {
	s.volume = clamp(v, 0, 1)
	if s.audio != nil {
		s.audio.SetVolume(s.volume)
	}
	s.store.SetFloat(prefs.KeyVolume, s.volume)
	return s.store.Save()
}

// Muted reports whether all sound is off.
func (s *Settings) Muted() bool { return s.muted }

// SetMuted applies and persists the mute flag.
func (s *Settings) SetMuted(m bool) error {
	s.muted = m
	if s.audio != nil {
		s.audio.SetMuted(m)
	}
	v := 0
	if m {
		v = 1
	}
	s.store.SetInt(prefs.KeyMute, v)
	return s.store.Save()
}

// ToggleMute flips mute.
func (s *Settings) ToggleMute() error {
	return s.SetMuted(!s.muted)
}

// Brightness returns the screen brightness in [MinBrightness, MaxBrightness].
func (s *Settings) Brightness() float64 { return s.brightness }

// SetBrightness clamps, applies and persists brightness.
func (s *Settings) SetBrightness(b float64) error {
	s.brightness = clamp(b, MinBrightness, MaxBrightness)
	s.store.SetFloat(prefs.KeyBrightness, s.brightness)
	return s.store.Save()
}

// LanguageIndex returns the position of the current language in Languages.
func (s *Settings) LanguageIndex() int { return s.lang }

// Language returns the current language tag.
func (s *Settings) Language() language.Tag { return Languages[s.lang] }

// LanguageName returns the current language's name in that language,
// upper-cased for the menu button.
func (s *Settings) LanguageName() string {
	return strings.ToUpper(display.Self.Name(s.Language()))
}

// NextLanguage advances to the next language, wrapping around.
func (s *Settings) NextLanguage() error {
	s.lang = wrap(s.lang + 1)
	s.store.SetInt(prefs.KeyLanguage, s.lang)
	return s.store.Save()
}

func wrap(i int) int {
	n := len(Languages)
	return ((i % n) + n) % n
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return hi
	}
	return math.Min(math.Max(v, lo), hi)
}
