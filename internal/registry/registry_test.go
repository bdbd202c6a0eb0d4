package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nodece/pulsar-dotpulsar/types"
)

func newProcess(topic string) types.Process {
	return types.Process{
		CorrelationID: uuid.New(),
		Topic:         topic,
	}
}

func TestInMemory(t *testing.T) {
	r := NewInMemory()
	require.Equal(t, 0, r.Len())

	p1 := newProcess("persistent://public/default/events-partition-0")
	p2 := newProcess("persistent://public/default/events-partition-1")
	r.Add(p1)
	r.Add(p2)
	require.Equal(t, 2, r.Len())

	got, ok := r.Get(p1.CorrelationID)
	require.True(t, ok)
	require.Equal(t, p1, got)

	r.Remove(p1.CorrelationID)
	require.Equal(t, 1, r.Len())
	_, ok = r.Get(p1.CorrelationID)
	require.False(t, ok)

	// Removing an unknown ID is a no-op.
	r.Remove(uuid.New())
	require.Equal(t, 1, r.Len())
}

func TestInMemoryRange(t *testing.T) {
	r := NewInMemory()
	for i := 0; i < 5; i++ {
		r.Add(newProcess("topic"))
	}

	seen := 0
	r.Range(func(p types.Process) bool {
		seen++

		return true
	})
	require.Equal(t, 5, seen)

	// Early stop.
	seen = 0
	r.Range(func(p types.Process) bool {
		seen++

		return false
	})
	require.Equal(t, 1, seen)
}
