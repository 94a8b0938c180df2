// Package health provides the clamped health store shared by the player and
// the survival level.
package health

import "fmt"

// DefaultMax is the starting health of a freshly spawned player.
const DefaultMax = 100.0

// Health is a numeric health pool kept within [0, Max].
// The zero value is not usable; construct with New.
type Health struct {
	current float64
	max     float64
}

// New creates a full health pool. max must be positive.
func New(max float64) (*Health, error) {
	if max <= 0 {
		return nil, fmt.Errorf("health: max must be positive, got %v", max)
	}
	return &Health{current: max, max: max}, nil
}

// MustNew is New for constant inputs.
func MustNew(max float64) *Health {
	h, err := New(max)
	if err != nil {
		panic(err)
	}
	return h
}

// Current returns the current health.
func (h *Health) Current() float64 {
	if h == nil {
		return 0
	}
	return h.current
}

// Max returns the maximum health.
func (h *Health) Max() float64 {
	if h == nil {
		return 0
	}
	return h.max
}

// ApplyDamage lowers health by amount. Over-damage clamps at zero.
// Negative amounts are treated as zero.
func (h *Health) ApplyDamage(amount float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.current = clamp(h.current-amount, 0, h.max)
}

// Heal raises health by amount, clamped at Max.
func (h *Health) Heal(amount float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.current = clamp(h.current+amount, 0, h.max)
}

// IsDepleted reports whether health has run out.
func (h *Health) IsDepleted() bool {
	return h != nil && h.current <= 0
}

// Reset refills the pool, as on respawn.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.current = h.max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
