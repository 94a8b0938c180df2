package level

import (
	"fmt"
	"math"
)

// Survival is won by outlasting the countdown and lost when the linked
// health runs out.
type Survival struct {
	countdown
	hp Health
}

func newSurvival(cfg Config, hp Health) *Survival {
	onTimeout := cfg.OnTimeout
	if onTimeout == OutcomeNone {
		onTimeout = OutcomeVictory
	}
	return &Survival{
		countdown: newCountdown(cfg.LimitTime, onTimeout),
		hp:        hp,
	}
}

func (s *Survival) Kind() Kind { return KindSurvival }

func (s *Survival) VictoryConditionAchieved() bool {
	return s.expired() && s.onTimeout == OutcomeVictory
}

func (s *Survival) DefeatConditionAchieved() bool {
	if s.VictoryConditionAchieved() {
		return false
	}
	if s.hp != nil && s.hp.IsDepleted() {
		return true
	}
	return s.expired() && s.onTimeout == OutcomeDefeat
}

// Initialize restarts the countdown. The linked health belongs to the
// player and is not touched.
func (s *Survival) Initialize() {
	s.restart()
}

func (s *Survival) TickLogic(dt float64) Outcome {
	s.consume(dt)
	return s.settle(s.VictoryConditionAchieved(), s.DefeatConditionAchieved())
}

func (s *Survival) OnItemCollected(string, int) {}

func (s *Survival) health() float64 {
	if s.hp == nil {
		return 0
	}
	return s.hp.Current()
}

func (s *Survival) HUD() HUD {
	return HUD{
		Time:     FormatTime(s.remaining),
		Progress: fmt.Sprintf("%d", int(math.Round(s.health()))),
	}
}

func (s *Survival) Result() Result {
	outcome := OutcomeNone
	switch {
	case s.VictoryConditionAchieved():
		outcome = OutcomeVictory
	case s.DefeatConditionAchieved():
		outcome = OutcomeDefeat
	}
	return Result{
		Kind:      KindSurvival,
		Outcome:   outcome,
		Progress:  fmt.Sprintf("%d", int(math.Round(s.health()))),
		Elapsed:   FormatTime(s.elapsed()),
		Remaining: s.remaining,
		Health:    s.health(),
	}
}

func (s *Survival) ShowVictory(p Presenter) { show(p, s.Result(), true) }
func (s *Survival) ShowDefeat(p Presenter)  { show(p, s.Result(), false) }
