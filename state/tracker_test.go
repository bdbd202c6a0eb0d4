package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testState int

const (
	stateIdle testState = iota
	stateRunning
	stateDegraded
	stateStopped
	stateBroken
)

func newTestTracker() *Tracker[testState] {
	return NewTracker(stateIdle, stateStopped, stateBroken)
}

func TestTrackerState(t *testing.T) {
	tr := newTestTracker()
	require.Equal(t, stateIdle, tr.State())

	tr.SetState(stateRunning)
	require.Equal(t, stateRunning, tr.State())
}

func TestTrackerTerminalStates(t *testing.T) {
	t.Run("terminal state is sticky", func(t *testing.T) {
		tr := newTestTracker()
		tr.SetState(stateStopped)
		require.True(t, tr.IsFinal())

		tr.SetState(stateRunning)
		require.Equal(t, stateStopped, tr.State())

		tr.SetState(stateBroken)
		require.Equal(t, stateStopped, tr.State())
	})

	t.Run("IsFinalState checks membership not current", func(t *testing.T) {
		tr := newTestTracker()
		require.False(t, tr.IsFinal())
		require.True(t, tr.IsFinalState(stateStopped))
		require.True(t, tr.IsFinalState(stateBroken))
		require.False(t, tr.IsFinalState(stateRunning))
	})
}

func TestTrackerWaitUntil(t *testing.T) {
	t.Run("returns immediately when already satisfied", func(t *testing.T) {
		tr := newTestTracker()
		tr.SetState(stateRunning)

		got, err := tr.WaitUntil(context.Background(), stateRunning)
		require.NoError(t, err)
		require.Equal(t, stateRunning, got)
	})

	t.Run("wakes on transition to wanted state", func(t *testing.T) {
		tr := newTestTracker()

		done := make(chan testState, 1)
		go func() {
			got, err := tr.WaitUntil(context.Background(), stateRunning)
			require.NoError(t, err)
			done <- got
		}()

		time.Sleep(10 * time.Millisecond)
		tr.SetState(stateRunning)

		select {
		case got := <-done:
			require.Equal(t, stateRunning, got)
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken")
		}
	})

	t.Run("terminal state satisfies any wait", func(t *testing.T) {
		tr := newTestTracker()

		done := make(chan testState, 1)
		go func() {
			got, err := tr.WaitUntil(context.Background(), stateRunning)
			require.NoError(t, err)
			done <- got
		}()

		time.Sleep(10 * time.Millisecond)
		tr.SetState(stateBroken)

		select {
		case got := <-done:
			require.Equal(t, stateBroken, got)
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken by terminal state")
		}
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		tr := newTestTracker()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := tr.WaitUntil(ctx, stateRunning)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Equal(t, stateIdle, tr.State())
	})
}

func TestTrackerWaitUntilChangedFrom(t *testing.T) {
	t.Run("returns immediately when state already differs", func(t *testing.T) {
		tr := newTestTracker()
		tr.SetState(stateRunning)

		got, err := tr.WaitUntilChangedFrom(context.Background(), stateIdle)
		require.NoError(t, err)
		require.Equal(t, stateRunning, got)
	})

	t.Run("blocks until the state moves away", func(t *testing.T) {
		tr := newTestTracker()

		done := make(chan testState, 1)
		go func() {
			got, err := tr.WaitUntilChangedFrom(context.Background(), stateIdle)
			require.NoError(t, err)
			done <- got
		}()

		time.Sleep(10 * time.Millisecond)
		tr.SetState(stateDegraded)

		select {
		case got := <-done:
			require.Equal(t, stateDegraded, got)
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken")
		}
	})
}

func TestTrackerBroadcastWakesAllWaiters(t *testing.T) {
	tr := newTestTracker()

	const waiters = 8

	var wg sync.WaitGroup
	results := make(chan testState, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := tr.WaitUntil(context.Background(), stateRunning)
			require.NoError(t, err)
			results <- got
		}()
	}

	time.Sleep(10 * time.Millisecond)
	tr.SetState(stateRunning)
	wg.Wait()

	close(results)
	count := 0
	for got := range results {
		require.Equal(t, stateRunning, got)
		count++
	}
	require.Equal(t, waiters, count)
}

func TestTrackerNoLostWakeupAcrossGenerations(t *testing.T) {
	tr := newTestTracker()

	done := make(chan testState, 1)
	go func() {
		got, err := tr.WaitUntil(context.Background(), stateDegraded)
		require.NoError(t, err)
		done <- got
	}()

	// The waiter must survive intermediate transitions it does not care
	// about and still observe the one it does.
	time.Sleep(10 * time.Millisecond)
	tr.SetState(stateRunning)
	tr.SetState(stateIdle)
	tr.SetState(stateDegraded)

	select {
	case got := <-done:
		require.Equal(t, stateDegraded, got)
	case <-time.After(time.Second):
		t.Fatal("waiter missed the wanted transition")
	}
}

func TestTrackerSetSameStateIsNoOp(t *testing.T) {
	tr := newTestTracker()
	tr.SetState(stateRunning)

	// Setting the current state again must not panic or wake waiters
	// spuriously; a subsequent real transition still works.
	tr.SetState(stateRunning)
	tr.SetState(stateDegraded)
	require.Equal(t, stateDegraded, tr.State())
}
