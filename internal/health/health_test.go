package health

import (
	"math/rand"
	"testing"
)

func TestNewRejectsNonPositiveMax(t *testing.T) {
	for _, max := range []float64{0, -1} {
		if _, err := New(max); err == nil {
			t.Errorf("New(%v) should fail", max)
		}
	}
}

func TestDamageScenario(t *testing.T) {
	h := MustNew(100)

	h.ApplyDamage(30)
	if got := h.Current(); got != 70 {
		t.Errorf("after 30 damage: current = %v, want 70", got)
	}

	h.ApplyDamage(80)
	if got := h.Current(); got != 0 {
		t.Errorf("after 80 more damage: current = %v, want 0", got)
	}
	if !h.IsDepleted() {
		t.Error("IsDepleted() should be true at zero health")
	}
}

func TestHealClampsAtMax(t *testing.T) {
	h := MustNew(100)
	h.ApplyDamage(10)
	h.Heal(25)

	if got := h.Current(); got != 100 {
		t.Errorf("Heal past max: current = %v, want 100", got)
	}
}

func TestNegativeAmountsAreIgnored(t *testing.T) {
	h := MustNew(50)
	h.ApplyDamage(-10)
	h.Heal(-10)
	if got := h.Current(); got != 50 {
		t.Errorf("current = %v, want 50", got)
	}
}

func TestClampPropertyRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		h := MustNew(1 + rng.Float64()*200)
		for step := 0; step < 50; step++ {
			amount := rng.Float64() * 150
			if rng.Intn(2) == 0 {
				h.ApplyDamage(amount)
			} else {
				h.Heal(amount)
			}
			if h.Current() < 0 || h.Current() > h.Max() {
				t.Fatalf("run %d step %d: current %v outside [0, %v]", run, step, h.Current(), h.Max())
			}
		}
	}
}

func TestReset(t *testing.T) {
	h := MustNew(80)
	h.ApplyDamage(80)
	h.Reset()
	if h.Current() != 80 || h.IsDepleted() {
		t.Errorf("Reset() left current = %v", h.Current())
	}
}

func TestNilHealthIsSafe(t *testing.T) {
	var h *Health
	h.ApplyDamage(1)
	h.Heal(1)
	if h.IsDepleted() {
		t.Error("nil health should not report depleted")
	}
}
