package level

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/dreadhollow/internal/health"
)

func exploration(t *testing.T) *Exploration {
	t.Helper()
	s, err := New(Config{
		Kind:      KindExploration,
		LimitTime: DefaultLimitTime,
		ItemKind:  DefaultItemKind,
		Required:  DefaultRequired,
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Initialize()
	return s.(*Exploration)
}

func survival(t *testing.T, hp *health.Health) *Survival {
	t.Helper()
	s, err := New(Config{Kind: KindSurvival, LimitTime: DefaultLimitTime}, hp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Initialize()
	return s.(*Survival)
}

type mockPresenter struct {
	victories []Result
	defeats   []Result
}

func (p *mockPresenter) ShowVictory(r Result) { p.victories = append(p.victories, r) }
func (p *mockPresenter) ShowDefeat(r Result)  { p.defeats = append(p.defeats, r) }

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"exploration", Config{Kind: KindExploration, LimitTime: 180, ItemKind: "Recollectible", Required: 5}, true},
		{"survival", Config{Kind: KindSurvival, LimitTime: 180}, true},
		{"zero limit", Config{Kind: KindSurvival, LimitTime: 0}, false},
		{"negative limit", Config{Kind: KindSurvival, LimitTime: -3}, false},
		{"zero required", Config{Kind: KindExploration, LimitTime: 180, ItemKind: "Recollectible"}, false},
		{"empty item kind", Config{Kind: KindExploration, LimitTime: 180, Required: 1}, false},
		{"unknown kind", Config{Kind: "arena", LimitTime: 180}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidConfig", tt.name, err)
		}
		if _, err := New(tt.cfg, nil); (err == nil) != tt.ok {
			t.Errorf("%s: New() error = %v", tt.name, err)
		}
	}
}

func TestParseOutcome(t *testing.T) {
	if o, err := ParseOutcome("victory"); err != nil || o != OutcomeVictory {
		t.Errorf("ParseOutcome(victory) = %v, %v", o, err)
	}
	if o, err := ParseOutcome("defeat"); err != nil || o != OutcomeDefeat {
		t.Errorf("ParseOutcome(defeat) = %v, %v", o, err)
	}
	if _, err := ParseOutcome("draw"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseOutcome(draw) error = %v", err)
	}
}

func TestExplorationCountsMatchingKindOnly(t *testing.T) {
	e := exploration(t)

	for i := 0; i < 3; i++ {
		e.OnItemCollected(DefaultItemKind, 1)
	}
	e.OnItemCollected("Key", 1)
	e.OnItemCollected("Battery", 1)

	if got := e.TickLogic(0.1); got != OutcomeNone {
		t.Fatalf("TickLogic() = %v with 3/5, want none", got)
	}
	if e.Collected() != 3 {
		t.Errorf("Collected() = %d, want 3", e.Collected())
	}

	e.OnItemCollected(DefaultItemKind, 1)
	e.OnItemCollected(DefaultItemKind, 1)
	if got := e.TickLogic(0.1); got != OutcomeVictory {
		t.Errorf("TickLogic() = %v with 5/5, want victory", got)
	}
}

func TestExplorationIgnoresNonPositiveQuantity(t *testing.T) {
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 0)
	e.OnItemCollected(DefaultItemKind, -4)
	if e.Collected() != 0 {
		t.Errorf("Collected() = %d, want 0", e.Collected())
	}
}

func TestExplorationDefeatOnTimeout(t *testing.T) {
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 2)

	if got := e.TickLogic(179); got != OutcomeNone {
		t.Fatalf("TickLogic(179) = %v, want none", got)
	}
	if got := e.TickLogic(5); got != OutcomeDefeat {
		t.Fatalf("TickLogic past limit = %v, want defeat", got)
	}
	if e.RemainingTime() != 0 {
		t.Errorf("RemainingTime() = %v, want floored at 0", e.RemainingTime())
	}
}

func TestVictoryWinsTies(t *testing.T) {
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 5)
	e.SetRemainingTime(0)

	if !e.VictoryConditionAchieved() || e.DefeatConditionAchieved() {
		t.Errorf("exploration tie: victory=%v defeat=%v", e.VictoryConditionAchieved(), e.DefeatConditionAchieved())
	}
	if got := e.TickLogic(0); got != OutcomeVictory {
		t.Errorf("TickLogic() = %v, want victory", got)
	}

	hp := health.MustNew(100)
	s := survival(t, hp)
	hp.ApplyDamage(100)
	s.SetRemainingTime(0)
	if !s.VictoryConditionAchieved() || s.DefeatConditionAchieved() {
		t.Errorf("survival tie: victory=%v defeat=%v", s.VictoryConditionAchieved(), s.DefeatConditionAchieved())
	}
}

func TestSurvivalDefeatWhenHealthDepleted(t *testing.T) {
	hp := health.MustNew(100)
	s := survival(t, hp)

	if got := s.TickLogic(90); got != OutcomeNone {
		t.Fatalf("TickLogic(90) = %v, want none", got)
	}
	if s.RemainingTime() != 90 {
		t.Fatalf("RemainingTime() = %v, want 90", s.RemainingTime())
	}

	hp.ApplyDamage(100)
	if got := s.TickLogic(0.1); got != OutcomeDefeat {
		t.Errorf("TickLogic() = %v at health 0, want defeat", got)
	}
}

func TestSurvivalVictoryOnTimeout(t *testing.T) {
	s := survival(t, health.MustNew(100))
	if got := s.TickLogic(200); got != OutcomeVictory {
		t.Errorf("TickLogic(200) = %v, want victory", got)
	}
}

func TestSurvivalWithoutHealthNeverLosesToDamage(t *testing.T) {
	s := survival(t, nil)
	if got := s.TickLogic(10); got != OutcomeNone {
		t.Errorf("TickLogic() = %v, want none", got)
	}
	if s.HUD().Progress != "0" {
		t.Errorf("HUD().Progress = %q, want 0", s.HUD().Progress)
	}
}

func TestOnTimeoutOverride(t *testing.T) {
	s, err := New(Config{Kind: KindSurvival, LimitTime: 10, OnTimeout: OutcomeDefeat}, health.MustNew(50))
	if err != nil {
		t.Fatal(err)
	}
	s.Initialize()
	if got := s.TickLogic(11); got != OutcomeDefeat {
		t.Errorf("survival with defeat timeout = %v, want defeat", got)
	}

	e, err := New(Config{Kind: KindExploration, LimitTime: 10, ItemKind: "Gem", Required: 3, OnTimeout: OutcomeVictory}, nil)
	if err != nil {
		t.Fatal(err)
	}
	e.Initialize()
	if got := e.TickLogic(11); got != OutcomeVictory {
		t.Errorf("exploration with victory timeout = %v, want victory", got)
	}
}

func TestTickLogicReportsOnce(t *testing.T) {
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 5)

	if got := e.TickLogic(1); got != OutcomeVictory {
		t.Fatalf("first TickLogic() = %v, want victory", got)
	}
	for i := 0; i < 3; i++ {
		if got := e.TickLogic(1); got != OutcomeNone {
			t.Errorf("repeat TickLogic() = %v, want none", got)
		}
	}

	e.Initialize()
	if e.Collected() != 0 || e.RemainingTime() != DefaultLimitTime {
		t.Errorf("Initialize() left collected=%d remaining=%v", e.Collected(), e.RemainingTime())
	}
	e.OnItemCollected(DefaultItemKind, 5)
	if got := e.TickLogic(1); got != OutcomeVictory {
		t.Errorf("TickLogic() after Initialize = %v, want victory", got)
	}
}

func TestRemainingTimeNonIncreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := survival(t, health.MustNew(100))
	prev := s.RemainingTime()
	for i := 0; i < 500; i++ {
		s.TickLogic(rng.Float64()*2 - 0.5)
		got := s.RemainingTime()
		if got > prev {
			t.Fatalf("remaining time rose from %v to %v", prev, got)
		}
		if got < 0 {
			t.Fatalf("remaining time %v below zero", got)
		}
		if s.VictoryConditionAchieved() && s.DefeatConditionAchieved() {
			t.Fatal("victory and defeat both true")
		}
		prev = got
	}
}

func TestSetRemainingTimeFloorsAtZero(t *testing.T) {
	e := exploration(t)
	e.SetRemainingTime(-5)
	if e.RemainingTime() != 0 {
		t.Errorf("RemainingTime() = %v, want 0", e.RemainingTime())
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00"},
		{59.99, "00:59"},
		{60, "01:00"},
		{180, "03:00"},
		{125.7, "02:05"},
		{-4, "00:00"},
		{3600, "60:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.expected {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestHUD(t *testing.T) {
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 2)
	e.TickLogic(30.5)
	hud := e.HUD()
	if hud.Time != "02:29" || hud.Progress != "2 / 5" {
		t.Errorf("exploration HUD = %+v", hud)
	}

	hp := health.MustNew(100)
	hp.ApplyDamage(12.6)
	s := survival(t, hp)
	if got := s.HUD().Progress; got != "87" {
		t.Errorf("survival HUD progress = %q, want 87", got)
	}
}

func TestShowUsesResultAtCallTime(t *testing.T) {
	p := &mockPresenter{}
	e := exploration(t)
	e.OnItemCollected(DefaultItemKind, 5)
	e.TickLogic(40)
	e.ShowVictory(p)

	// Later mutations must not leak into the shown result.
	e.OnItemCollected(DefaultItemKind, 3)

	if len(p.victories) != 1 {
		t.Fatalf("victories = %d, want 1", len(p.victories))
	}
	r := p.victories[0]
	if r.Progress != "5/5" || r.Elapsed != "00:40" || r.Outcome != OutcomeVictory {
		t.Errorf("result = %+v", r)
	}

	hp := health.MustNew(100)
	s := survival(t, hp)
	s.TickLogic(60)
	hp.ApplyDamage(100)
	s.TickLogic(0)
	s.ShowDefeat(p)
	if len(p.defeats) != 1 {
		t.Fatalf("defeats = %d, want 1", len(p.defeats))
	}
	if d := p.defeats[0]; d.Progress != "0" || d.Elapsed != "01:00" || d.Outcome != OutcomeDefeat {
		t.Errorf("survival result = %+v", d)
	}

	s.ShowVictory(nil)
}

func TestShowStampsCallerOutcome(t *testing.T) {
	p := &mockPresenter{}
	e := exploration(t)
	e.ShowVictory(p)
	e.ShowDefeat(p)

	if len(p.victories) != 1 || p.victories[0].Outcome != OutcomeVictory {
		t.Errorf("victories = %+v", p.victories)
	}
	if len(p.defeats) != 1 || p.defeats[0].Outcome != OutcomeDefeat {
		t.Errorf("defeats = %+v", p.defeats)
	}
}
