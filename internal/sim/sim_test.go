package sim

import (
	"reflect"
	"testing"
)

func TestClockFreeze(t *testing.T) {
	c := NewClock()
	if got := c.Advance(0.5); got != 0.5 {
		t.Errorf("Advance(0.5) = %v, want 0.5", got)
	}

	c.Freeze()
	if got := c.Advance(1); got != 0 {
		t.Errorf("Advance while frozen = %v, want 0", got)
	}
	if c.Now() != 0.5 {
		t.Errorf("Now() = %v, want 0.5 while frozen", c.Now())
	}

	c.Unfreeze()
	c.Advance(0.25)
	if c.Now() != 0.75 {
		t.Errorf("Now() = %v, want 0.75", c.Now())
	}
	if got := c.Advance(-1); got != 0 {
		t.Errorf("negative Advance = %v, want 0", got)
	}
}

func TestSchedulerFiresInTimeOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	key := Key{Owner: 1}

	s.At(1.2, key, func() { order = append(order, "finish") })
	s.At(0.5, key, func() { order = append(order, "damage") })
	s.At(0.5, key, func() { order = append(order, "damage-2") })

	if n := s.Run(0.4); n != 0 {
		t.Fatalf("Run(0.4) fired %d effects, want 0", n)
	}
	s.Run(2)

	want := []string{"damage", "damage-2", "finish"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestSchedulerNestedDueEffectFiresSameRun(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.At(1, Key{}, func() {
		s.At(1.5, Key{}, func() { fired = true })
	})
	s.Run(2)
	if !fired {
		t.Error("effect scheduled by an effect and already due should fire in the same Run")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.At(1, Key{Owner: 1}, func() { fired++ })

	if !s.Cancel(h) {
		t.Fatal("Cancel() = false, want true")
	}
	if s.Cancel(h) {
		t.Error("second Cancel() should report false")
	}
	s.Run(5)
	if fired != 0 {
		t.Errorf("canceled effect fired %d times", fired)
	}
}

func TestSchedulerCancelOwnerAndCycle(t *testing.T) {
	s := NewScheduler()
	var fired []Key
	record := func(k Key) func() { return func() { fired = append(fired, k) } }

	a1 := Key{Owner: 1, Cycle: 1}
	a2 := Key{Owner: 1, Cycle: 2}
	b1 := Key{Owner: 2, Cycle: 1}
	s.At(1, a1, record(a1))
	s.At(1, a2, record(a2))
	s.At(1, b1, record(b1))

	if n := s.CancelCycle(a1); n != 1 {
		t.Errorf("CancelCycle = %d, want 1", n)
	}
	if got := s.PendingFor(1); got != 1 {
		t.Errorf("PendingFor(1) = %d, want 1", got)
	}
	if n := s.CancelOwner(1); n != 1 {
		t.Errorf("CancelOwner = %d, want 1", n)
	}
	s.Run(2)

	if !reflect.DeepEqual(fired, []Key{b1}) {
		t.Errorf("fired = %v, want only %v", fired, b1)
	}
}

func TestSchedulerAfterUsesLastRunTime(t *testing.T) {
	s := NewScheduler()
	s.Run(10)
	fired := false
	s.After(0.5, Key{}, func() { fired = true })
	s.Run(10.4)
	if fired {
		t.Fatal("fired early")
	}
	s.Run(10.5)
	if !fired {
		t.Error("did not fire at 10.5")
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.At(1, Key{Owner: 3}, func() { fired = true })
	s.Clear()
	s.Run(5)
	if fired || s.Pending() != 0 {
		t.Error("Clear() should drop all pending effects")
	}
}
