package usecase

import (
	"context"
	"sync"
)

// AvailabilityTracker keeps only the latest availability lookup of a session
// alive. Begin cancels the previous lookup; Deliver runs only for the newest.
type AvailabilityTracker struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewAvailabilityTracker() *AvailabilityTracker {
	return &AvailabilityTracker{}
}

// Begin starts a new lookup derived from parent and returns its sequence number.
func (t *AvailabilityTracker) Begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	t.cancel = cancel
	return ctx, t.seq
}

// Deliver calls fn while seq is still the latest lookup and reports whether it
// did. Results of superseded lookups are discarded.
func (t *AvailabilityTracker) Deliver(seq uint64, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return false
	}
	fn()
	return true
}

// Latest returns the sequence number of the newest lookup.
func (t *AvailabilityTracker) Latest() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// Stop cancels the in-flight lookup, if any, and discards its result.
func (t *AvailabilityTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
