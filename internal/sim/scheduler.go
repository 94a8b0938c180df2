package sim

import "container/heap"

// Key identifies who scheduled an effect. Owner is usually one actor and
// Cycle one of its action cycles (for example one enemy attack).
type Key struct {
	Owner uint64
	Cycle uint64
}

// Handle refers to a single scheduled effect.
type Handle uint64

type scheduled struct {
	at       float64
	seq      uint64
	id       Handle
	key      Key
	fn       func()
	canceled bool
	index    int
}

// Scheduler runs delayed effects on the simulation timeline. Effects fire
// from Run in (time, scheduling order) order, on the caller's goroutine.
// It is not safe for concurrent use.
type Scheduler struct {
	queue     eventQueue
	byID      map[Handle]*scheduled
	nextSeq   uint64
	nextOwner uint64
	now       float64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[Handle]*scheduled)}
}

// NewOwner allocates a fresh owner id.
func (s *Scheduler) NewOwner() uint64 {
	s.nextOwner++
	return s.nextOwner
}

// At schedules fn to run once game time reaches at.
func (s *Scheduler) At(at float64, key Key, fn func()) Handle {
	if fn == nil {
		return 0
	}
	s.nextSeq++
	ev := &scheduled{
		at:  at,
		seq: s.nextSeq,
		id:  Handle(s.nextSeq),
		key: key,
		fn:  fn,
	}
	heap.Push(&s.queue, ev)
	s.byID[ev.id] = ev
	return ev.id
}

// After schedules fn to run delay seconds after the last Run time.
func (s *Scheduler) After(delay float64, key Key, fn func()) Handle {
	return s.At(s.now+delay, key, fn)
}

// Cancel drops a pending effect. It reports whether anything was canceled.
func (s *Scheduler) Cancel(h Handle) bool {
	ev, ok := s.byID[h]
	if !ok {
		return false
	}
	s.drop(ev)
	return true
}

// CancelCycle drops every pending effect scheduled under key.
func (s *Scheduler) CancelCycle(key Key) int {
	return s.cancelWhere(func(k Key) bool { return k == key })
}

// CancelOwner drops every pending effect of owner, across all cycles.
func (s *Scheduler) CancelOwner(owner uint64) int {
	return s.cancelWhere(func(k Key) bool { return k.Owner == owner })
}

// Run fires every effect due at or before now. Effects scheduled by a
// running effect fire in the same call when they are already due.
func (s *Scheduler) Run(now float64) int {
	if now > s.now {
		s.now = now
	}
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.at > now {
			break
		}
		heap.Pop(&s.queue)
		delete(s.byID, next.id)
		if next.canceled {
			continue
		}
		next.fn()
		fired++
	}
	return fired
}

// Pending returns how many effects are waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.byID)
}

// PendingFor returns how many effects owner has waiting.
func (s *Scheduler) PendingFor(owner uint64) int {
	n := 0
	for _, ev := range s.byID {
		if ev.key.Owner == owner {
			n++
		}
	}
	return n
}

// Clear drops everything, as on scene change.
func (s *Scheduler) Clear() {
	for _, ev := range s.byID {
		ev.canceled = true
	}
	s.queue = nil
	s.byID = make(map[Handle]*scheduled)
}

func (s *Scheduler) cancelWhere(match func(Key) bool) int {
	n := 0
	for _, ev := range s.byID {
		if match(ev.key) {
			s.drop(ev)
			n++
		}
	}
	return n
}

func (s *Scheduler) drop(ev *scheduled) {
	ev.canceled = true
	delete(s.byID, ev.id)
	if ev.index >= 0 && ev.index < s.queue.Len() && s.queue[ev.index] == ev {
		heap.Remove(&s.queue, ev.index)
	}
}

// eventQueue is a min-heap on (at, seq).
type eventQueue []*scheduled

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*scheduled)
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*q = old[:n-1]
	return ev
}
