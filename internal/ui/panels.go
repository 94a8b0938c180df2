package ui

import "github.com/samdwyer/dreadhollow/internal/level"

// Panels tracks which overlay is up over the level view. It is the
// session's presenter.
type Panels struct {
	paused    bool
	result    level.Result
	hasResult bool
}

// NewPanels returns panels with nothing shown.
func NewPanels() *Panels {
	return &Panels{}
}

// ShowVictory raises the victory screen for r.
func (p *Panels) ShowVictory(r level.Result) { p.showResult(r, level.OutcomeVictory) }

// ShowDefeat raises the defeat screen for r.
func (p *Panels) ShowDefeat(r level.Result) { p.showResult(r, level.OutcomeDefeat) }

func (p *Panels) showResult(r level.Result, o level.Outcome) {
	r.Outcome = o
	p.result = r
	p.hasResult = true
	p.paused = false
}

// ShowPause raises the pause panel.
func (p *Panels) ShowPause() { p.paused = true }

// HidePause drops the pause panel.
func (p *Panels) HidePause() { p.paused = false }

// Reset drops every overlay.
func (p *Panels) Reset() {
	*p = Panels{}
}

// Paused reports whether the pause panel is up.
func (p *Panels) Paused() bool { return p.paused }

// Result returns the result being shown, if any.
func (p *Panels) Result() (level.Result, bool) { return p.result, p.hasResult }
