package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dreadhollow/internal/audio"
	"github.com/samdwyer/dreadhollow/internal/enemy"
	"github.com/samdwyer/dreadhollow/internal/level"
	"github.com/samdwyer/dreadhollow/internal/prefs"
	"github.com/samdwyer/dreadhollow/internal/sim"
	"github.com/samdwyer/dreadhollow/internal/telemetry"
)

// Presenter shows the session's overlays.
type Presenter interface {
	level.Presenter
	ShowPause()
	HidePause()
}

// SessionOptions are the collaborators a Session is built from. Nil fields
// get working defaults: a fresh clock and scheduler, an in-memory store, no
// presenter, silent audio and the global tracer.
type SessionOptions struct {
	Clock     *sim.Clock
	Scheduler *sim.Scheduler
	Store     prefs.Store
	Presenter Presenter
	Audio     audio.Player
	Tracer    trace.Tracer
}

// Session is the process-wide orchestrator. It owns the current level,
// routes pause input and collect events, decides completion and writes
// unlock progress.
type Session struct {
	clock     *sim.Clock
	sched     *sim.Scheduler
	store     prefs.Store
	presenter Presenter
	audio     audio.Player
	tracer    trace.Tracer

	scene     Scene
	state     State
	level     level.Session
	result    level.Result
	hasResult bool

	sceneSpan trace.Span
}

// NewSession builds an inactive session on the main menu.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		clock:     opts.Clock,
		sched:     opts.Scheduler,
		store:     opts.Store,
		presenter: opts.Presenter,
		audio:     opts.Audio,
		tracer:    opts.Tracer,
	}
	if s.clock == nil {
		s.clock = sim.NewClock()
	}
	if s.sched == nil {
		s.sched = sim.NewScheduler()
	}
	if s.store == nil {
		s.store = prefs.NewMemory()
	}
	if s.audio == nil {
		s.audio = audio.Nop{}
	}
	if s.tracer == nil {
		s.tracer = telemetry.Tracer("game")
	}
	return s
}

// Clock returns the game clock.
func (s *Session) Clock() *sim.Clock { return s.clock }

// Scheduler returns the delayed effect queue.
func (s *Session) Scheduler() *sim.Scheduler { return s.sched }

// Scene returns the current scene.
func (s *Session) Scene() Scene { return s.scene }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Level returns the current level, nil outside level scenes.
func (s *Session) Level() level.Session { return s.level }

// Active reports whether a level is running unpaused.
func (s *Session) Active() bool { return s.state == StateActive }

// Paused reports whether the running level is paused.
func (s *Session) Paused() bool { return s.state == StatePaused }

// Result returns the snapshot taken when the current level completed.
func (s *Session) Result() (level.Result, bool) { return s.result, s.hasResult }

// EnterScene re-initializes the session for scene. A non-nil lvl makes the
// session active and initializes the level; menus pass nil. The clock is
// unfrozen and every pending delayed effect is dropped.
func (s *Session) EnterScene(ctx context.Context, scene Scene, lvl level.Session) {
	s.endSceneSpan()

	ctx, span := s.tracer.Start(ctx, "game.scene_enter")
	defer span.End()

	s.clock.Unfreeze()
	s.sched.Clear()
	s.scene = scene
	s.level = lvl
	s.result = level.Result{}
	s.hasResult = false
	if s.presenter != nil {
		s.presenter.HidePause()
	}

	if lvl == nil {
		s.state = StateInactive
	} else {
		s.initLevel(ctx, lvl)
		s.state = StateActive
		s.audio.StartMusic()
	}

	span.SetAttributes(
		attribute.String("scene", scene.String()),
		attribute.Int("scene.index", int(scene)),
		attribute.String("state", s.state.String()),
		attribute.Int("level_reached", s.LevelReached()),
	)
	_, s.sceneSpan = s.tracer.Start(ctx, "game.scene",
		trace.WithAttributes(attribute.String("scene", scene.String())))
}

func (s *Session) initLevel(ctx context.Context, lvl level.Session) {
	_, span := s.tracer.Start(ctx, "level.init")
	defer span.End()

	lvl.Initialize()
	span.SetAttributes(
		attribute.String("level.kind", string(lvl.Kind())),
		attribute.Float64("level.limit_time", lvl.LimitTime()),
	)
}

// Pause freezes the clock. It only applies to a running level.
func (s *Session) Pause(ctx context.Context) bool {
	if s.state != StateActive {
		return false
	}
	_, span := s.tracer.Start(s.spanContext(ctx), "game.pause")
	defer span.End()

	s.clock.Freeze()
	s.state = StatePaused
	if s.presenter != nil {
		s.presenter.ShowPause()
	}
	span.SetAttributes(attribute.Float64("level.remaining_time", s.level.RemainingTime()))
	return true
}

// Resume unfreezes the clock. It only applies to a paused level.
func (s *Session) Resume(ctx context.Context) bool {
	if s.state != StatePaused {
		return false
	}
	_, span := s.tracer.Start(s.spanContext(ctx), "game.resume")
	defer span.End()

	s.clock.Unfreeze()
	s.state = StateActive
	if s.presenter != nil {
		s.presenter.HidePause()
	}
	return true
}

// TogglePause pauses a running level or resumes a paused one.
func (s *Session) TogglePause(ctx context.Context) bool {
	if s.state == StatePaused {
		return s.Resume(ctx)
	}
	return s.Pause(ctx)
}

// CollectItem forwards a pickup to the level and completes it straight away
// if that decided the outcome. Ignored unless a level is running unpaused.
func (s *Session) CollectItem(ctx context.Context, kind string, quantity int) {
	if s.state != StateActive {
		return
	}
	s.level.OnItemCollected(kind, quantity)
	s.checkStatus(ctx)
}

// Tick evaluates the running level for dt seconds of game time and
// completes it on a terminal outcome. It returns the outcome it completed
// with, or level.OutcomeNone.
func (s *Session) Tick(ctx context.Context, dt float64) level.Outcome {
	if s.state != StateActive {
		return level.OutcomeNone
	}
	if outcome := s.level.TickLogic(dt); outcome != level.OutcomeNone {
		if s.Complete(ctx, outcome == level.OutcomeVictory) {
			return outcome
		}
		return level.OutcomeNone
	}
	return s.checkStatus(ctx)
}

func (s *Session) checkStatus(ctx context.Context) level.Outcome {
	switch {
	case s.level.VictoryConditionAchieved():
		if s.Complete(ctx, true) {
			return level.OutcomeVictory
		}
	case s.level.DefeatConditionAchieved():
		if s.Complete(ctx, false) {
			return level.OutcomeDefeat
		}
	}
	return level.OutcomeNone
}

// Complete ends the running level: the clock freezes, the result snapshot
// is shown and, on victory, unlock progress is written. It only applies to
// a running, unpaused level, so a level completes at most once per scene
// entry.
func (s *Session) Complete(ctx context.Context, victory bool) bool {
	if s.state != StateActive {
		return false
	}
	_, span := s.tracer.Start(s.spanContext(ctx), "game.complete")
	defer span.End()

	s.clock.Freeze()
	s.state = StateComplete
	s.audio.StopMusic()

	outcome := level.OutcomeDefeat
	if victory {
		outcome = level.OutcomeVictory
	}
	s.result = s.level.Result()
	s.result.Outcome = outcome
	s.hasResult = true

	unlocked := false
	if victory {
		s.audio.Play(audio.CueVictory)
		unlocked = s.recordVictory()
		s.level.ShowVictory(s.presenter)
	} else {
		s.audio.Play(audio.CueDefeat)
		s.level.ShowDefeat(s.presenter)
	}

	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.String("scene", s.scene.String()),
		attribute.Float64("level.remaining_time", s.result.Remaining),
		attribute.Bool("unlock.written", unlocked),
	)
	return true
}

// recordVictory raises levelReached past the current scene and reports
// whether anything was written.
func (s *Session) recordVictory() bool {
	next := int(s.scene) + 1
	if next <= s.LevelReached() {
		return false
	}
	s.store.SetInt(prefs.KeyLevelReached, next)
	if err := s.store.Save(); err != nil {
		s.sceneEvent("prefs.save_failed", attribute.String("error", err.Error()))
	}
	return true
}

// LevelReached is the stored unlock progress, the first briefing screen
// when nothing was stored yet.
func (s *Session) LevelReached() int {
	return s.store.GetInt(prefs.KeyLevelReached, int(SceneInfoLevel1))
}

// Selectable reports whether scene may be picked from the options menu.
// A level is selectable once its briefing screen has been reached.
func (s *Session) Selectable(scene Scene) bool {
	if !scene.Valid() {
		return false
	}
	if scene.IsLevel() || scene.IsInfo() {
		return int(scene.Info()) <= s.LevelReached()
	}
	return true
}

// EnemyObserver returns a callback that records enemy attack cycle events
// on the current scene span.
func (s *Session) EnemyObserver(name string) func(enemy.Event) {
	return func(ev enemy.Event) {
		s.sceneEvent("enemy."+ev.Kind.String(),
			attribute.String("enemy", name),
			attribute.Int64("enemy.cycle", int64(ev.Cycle)),
			attribute.Float64("enemy.damage", ev.Damage),
			attribute.Float64("game.time", s.clock.Now()),
		)
	}
}

// Close ends the scene span and stops the music.
func (s *Session) Close() {
	s.audio.StopMusic()
	s.endSceneSpan()
}

func (s *Session) sceneEvent(name string, attrs ...attribute.KeyValue) {
	if s.sceneSpan != nil {
		s.sceneSpan.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

func (s *Session) spanContext(ctx context.Context) context.Context {
	if s.sceneSpan == nil {
		return ctx
	}
	return trace.ContextWithSpan(ctx, s.sceneSpan)
}

func (s *Session) endSceneSpan() {
	if s.sceneSpan != nil {
		s.sceneSpan.End()
		s.sceneSpan = nil
	}
}
