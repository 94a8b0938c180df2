// Package audio plays the game's sound cues and background drone. Sound is
// optional: when the speaker cannot be opened every call is a no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a fire-and-forget sound.
type Cue int

const (
	CueCollect Cue = iota
	CueDoor
	CueSwitch
	CueVictory
	CueDefeat
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueCollect:
		return "collect"
	case CueDoor:
		return "door"
	case CueSwitch:
		return "switch"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Player is the sound surface the game talks to.
type Player interface {
	Play(c Cue)
	StartMusic()
	StopMusic()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) StartMusic() {}
func (Nop) StopMusic() {}
func (Nop) SetVolume(float64) {}
func (Nop) SetMuted(bool) {}
func (Nop) Close() {}

// tone describes one synthesized cue.
type tone struct {
	from, to float64 // frequency sweep in Hz
	dur      time.Duration
	amp      float64
}

var cueTones = map[Cue]tone{
	CueCollect: {from: 880, to: 1320, dur: 120 * time.Millisecond, amp: 0.25},
	CueDoor:    {from: 90, to: 60, dur: 400 * time.Millisecond, amp: 0.3},
	CueSwitch:  {from: 1500, to: 1500, dur: 40 * time.Millisecond, amp: 0.2},
	CueVictory: {from: 440, to: 880, dur: 900 * time.Millisecond, amp: 0.3},
	CueDefeat:  {from: 220, to: 55, dur: 1200 * time.Millisecond, amp: 0.3},
}

// BeepPlayer mixes cues through the system speaker.
type BeepPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicGain   *effects.Volume
	wantMusic   bool
	volume      float64
	muted       bool
	initialized bool
}

// NewBeepPlayer returns an uninitialized player at full volume.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{mixer: &beep.Mixer{}, volume: 1}
}

// Init opens the speaker. On error the player stays silent.
func (p *BeepPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops everything still playing.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.music = nil
	p.musicGain = nil
	p.initialized = false
}

// Play mixes in a cue. Muted players drop it.
func (p *BeepPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := cueTones[c]
	if !ok || !p.initialized || p.muted {
		return
	}
	if c == CueVictory || c == CueDefeat {
		p.wantMusic = false
		p.stopMusicLocked()
	}
	s := beep.Take(sampleRate.N(t.dur), newSweep(sampleRate, t))
	p.add(p.withVolume(s))
}

// StartMusic starts the background drone if it is not already playing.
// While muted the request is remembered and honored on unmute.
func (p *BeepPlayer) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantMusic = true
	if !p.initialized || p.muted {
		return
	}
	p.resumeMusicLocked()
}

// resumeMusicLocked unpauses the drone, creating it on first use. The one
// drone stays in the mixer for the player's lifetime.
func (p *BeepPlayer) resumeMusicLocked() {
	if p.music == nil {
		drone := newSweep(sampleRate, tone{from: 55, to: 58, dur: 4 * time.Second, amp: 0.08})
		p.musicGain = &effects.Volume{Streamer: drone, Base: 2}
		p.setGain(p.musicGain)
		p.music = &beep.Ctrl{Streamer: p.musicGain}
		p.add(p.music)
		return
	}
	speaker.Lock()
	p.music.Paused = false
	speaker.Unlock()
}

// StopMusic pauses the background drone.
func (p *BeepPlayer) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wantMusic = false
	p.stopMusicLocked()
}

func (p *BeepPlayer) stopMusicLocked() {
	if p.music == nil {
		return
	}
	speaker.Lock()
	p.music.Paused = true
	speaker.Unlock()
}

// SetVolume sets the gain of the drone and of cues started afterwards.
func (p *BeepPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Min(math.Max(v, 0), 1)
	if p.musicGain != nil {
		speaker.Lock()
		p.setGain(p.musicGain)
		speaker.Unlock()
	}
}

// SetMuted silences new cues and pauses the drone. Unmuting resumes a
// drone that was requested.
func (p *BeepPlayer) SetMuted(m bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = m
	switch {
	case m:
		p.stopMusicLocked()
	case p.wantMusic && p.initialized:
		p.resumeMusicLocked()
	}
}

// MusicPlaying reports whether the drone is audible.
func (p *BeepPlayer) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil && !p.music.Paused
}

// Muted reports the mute flag.
func (p *BeepPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *BeepPlayer) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *BeepPlayer) withVolume(s beep.Streamer) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2}
	p.setGain(v)
	return v
}

func (p *BeepPlayer) setGain(v *effects.Volume) {
	v.Silent = p.volume <= 0
	v.Volume = 0
	if !v.Silent {
		v.Volume = math.Log2(p.volume)
	}
}

// sweep is a sine tone gliding linearly between two frequencies with a
// short linear fade at both ends. It repeats forever; cues are cut with
// beep.Take.
type sweep struct {
	sr    beep.SampleRate
	t     tone
	pos   int
	total int
	phase float64
}

func newSweep(sr beep.SampleRate, t tone) *sweep {
	return &sweep{sr: sr, t: t, total: sr.N(t.dur)}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := float64(g.pos%g.total) / float64(g.total)
		freq := g.t.from + (g.t.to-g.t.from)*p
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
		env := math.Min(1, math.Min(p, 1-p)*20)
		v := g.t.amp * env * math.Sin(g.phase)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }
