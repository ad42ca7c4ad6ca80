package fern

import "sync"

// coalescer is the generic request/flush primitive underlying both the
// render scheduler and the effect-flush scheduler. Any number of requests
// within one flush window collapse into a single run of fn.
//
// The pending flag is cleared before fn is invoked, so a request made from
// inside the run (a setter fired during an effect, say) parks a fresh future
// run instead of being absorbed into the current one.
type coalescer struct {
	mu      sync.Mutex
	pending bool
	fn      func()
	wake    func()
}

func newCoalescer(fn, wake func()) *coalescer {
	return &coalescer{fn: fn, wake: wake}
}

// request parks one run of fn. Requests while a run is already pending are
// absorbed. The wake callback, if any, fires on the transition to pending so
// a driver knows there is work to pump.
func (c *coalescer) request() {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = true
	wake := c.wake
	c.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// flush runs fn if a run is pending and reports whether it did.
func (c *coalescer) flush() bool {
	c.mu.Lock()
	if !c.pending {
		c.mu.Unlock()
		return false
	}
	c.pending = false
	c.mu.Unlock()

	c.fn()
	return true
}

// effectEntryKind tags effect-queue entries.
type effectEntryKind uint8

const (
	entryCleanup effectEntryKind = iota + 1
	entryEffect
)

// effectEntry is one pending cleanup or effect body.
type effectEntry struct {
	kind   effectEntryKind
	path   string
	cursor int
	run    func()
}

// effectQueue is the FIFO of pending cleanups and effects populated during
// reconciliation and drained after commit. Consumption is destructive.
type effectQueue struct {
	entries []effectEntry
}

func newEffectQueue() *effectQueue {
	return &effectQueue{}
}

func (q *effectQueue) push(e effectEntry) {
	q.entries = append(q.entries, e)
}

func (q *effectQueue) len() int {
	return len(q.entries)
}

// drain runs entries strictly in FIFO order until the queue is empty,
// including entries pushed by the effects it runs. It returns how many
// cleanups and effects ran.
//
// Cleanup-before-effect is guaranteed per slot (the cleanup is enqueued
// before its replacement effect), but not across slots: queue order means a
// later component's cleanup can run before an earlier component's effect.
func (q *effectQueue) drain() (cleanups, effects int) {
	for len(q.entries) > 0 {
		e := q.entries[0]
		q.entries = q.entries[1:]
		switch e.kind {
		case entryCleanup:
			cleanups++
		case entryEffect:
			effects++
		}
		e.run()
	}
	return cleanups, effects
}
