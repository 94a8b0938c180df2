package level

import "fmt"

// Exploration is won by collecting Required items of ItemKind before the
// countdown runs out.
type Exploration struct {
	countdown
	itemKind  string
	required  int
	collected int
}

func newExploration(cfg Config) *Exploration {
	onTimeout := cfg.OnTimeout
	if onTimeout == OutcomeNone {
		onTimeout = OutcomeDefeat
	}
	return &Exploration{
		countdown: newCountdown(cfg.LimitTime, onTimeout),
		itemKind:  cfg.ItemKind,
		required:  cfg.Required,
	}
}

func (e *Exploration) Kind() Kind { return KindExploration }

// Collected returns how many matching items were picked up.
func (e *Exploration) Collected() int { return e.collected }

// Required returns the victory threshold.
func (e *Exploration) Required() int { return e.required }

func (e *Exploration) VictoryConditionAchieved() bool {
	return e.collected >= e.required || (e.expired() && e.onTimeout == OutcomeVictory)
}

func (e *Exploration) DefeatConditionAchieved() bool {
	return !e.VictoryConditionAchieved() && e.expired() && e.onTimeout == OutcomeDefeat
}

func (e *Exploration) Initialize() {
	e.restart()
	e.collected = 0
}

func (e *Exploration) TickLogic(dt float64) Outcome {
	e.consume(dt)
	return e.settle(e.VictoryConditionAchieved(), e.DefeatConditionAchieved())
}

// OnItemCollected counts items of the level's kind only.
func (e *Exploration) OnItemCollected(kind string, quantity int) {
	if kind != e.itemKind || quantity <= 0 {
		return
	}
	e.collected += quantity
}

func (e *Exploration) HUD() HUD {
	return HUD{
		Time:     FormatTime(e.remaining),
		Progress: fmt.Sprintf("%d / %d", e.collected, e.required),
	}
}

func (e *Exploration) Result() Result {
	outcome := OutcomeNone
	switch {
	case e.VictoryConditionAchieved():
		outcome = OutcomeVictory
	case e.DefeatConditionAchieved():
		outcome = OutcomeDefeat
	}
	return Result{
		Kind:      KindExploration,
		Outcome:   outcome,
		Progress:  fmt.Sprintf("%d/%d", e.collected, e.required),
		Elapsed:   FormatTime(e.elapsed()),
		Remaining: e.remaining,
		Collected: e.collected,
		Required:  e.required,
	}
}

func (e *Exploration) ShowVictory(p Presenter) { show(p, e.Result(), true) }
func (e *Exploration) ShowDefeat(p Presenter)  { show(p, e.Result(), false) }
