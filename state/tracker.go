package state

import (
	"context"
	"sync"
)

// Tracker is a finite-state holder for states of type S.
//
// Thread Safety:
//   - SetState may be called from any goroutine
//   - Waiters never miss a wakeup: every state change is observed by every
//     waiter whose predicate it satisfies
//   - A successful wait returns the state that satisfied the predicate, never
//     a stale value
type Tracker[S comparable] struct {
	mu       sync.Mutex
	current  S
	changed  chan struct{}
	terminal map[S]struct{}
}

// NewTracker creates a tracker holding initial, with the given terminal states.
func NewTracker[S comparable](initial S, terminalStates ...S) *Tracker[S] {
	terminal := make(map[S]struct{}, len(terminalStates))
	for _, s := range terminalStates {
		terminal[s] = struct{}{}
	}

	return &Tracker[S]{
		current:  initial,
		changed:  make(chan struct{}),
		terminal: terminal,
	}
}

// State returns the current state.
func (t *Tracker[S]) State() S {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current
}

// SetState overwrites the current state and wakes every waiter whose
// predicate is now satisfied.
//
// Once a terminal state is set the tracker is frozen: setting the same
// terminal state again is a no-op, and attempts to leave it are ignored.
func (t *Tracker[S]) SetState(s S) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.isTerminalLocked(t.current) {
		return
	}
	if t.current == s {
		return
	}

	t.current = s
	// Broadcast by closing the generation channel and starting a new one.
	close(t.changed)
	t.changed = make(chan struct{})
}

// IsFinal reports whether the current state is terminal.
func (t *Tracker[S]) IsFinal() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.isTerminalLocked(t.current)
}

// IsFinalState reports whether s is a terminal state of this tracker.
func (t *Tracker[S]) IsFinalState(s S) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.isTerminalLocked(s)
}

// WaitUntil blocks until the current state equals want or a terminal state
// has been reached, and returns the observed state.
//
// Cancelling ctx aborts the wait with ctx.Err() without affecting the tracker.
func (t *Tracker[S]) WaitUntil(ctx context.Context, want S) (S, error) {
	return t.wait(ctx, func(s S) bool {
		return s == want || t.isTerminalLocked(s)
	})
}

// WaitUntilChangedFrom blocks until the current state differs from have and
// returns the observed state.
func (t *Tracker[S]) WaitUntilChangedFrom(ctx context.Context, have S) (S, error) {
	return t.wait(ctx, func(s S) bool {
		return s != have
	})
}

// wait blocks until satisfied reports true for the current state.
// The predicate is always evaluated under the tracker lock.
func (t *Tracker[S]) wait(ctx context.Context, satisfied func(S) bool) (S, error) {
	for {
		t.mu.Lock()
		current := t.current
		if satisfied(current) {
			t.mu.Unlock()

			return current, nil
		}
		changed := t.changed
		t.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero S
			return zero, ctx.Err()
		case <-changed:
		}
	}
}

func (t *Tracker[S]) isTerminalLocked(s S) bool {
	_, ok := t.terminal[s]

	return ok
}
