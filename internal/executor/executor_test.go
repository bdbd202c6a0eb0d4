package executor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialExecute(t *testing.T) {
	t.Run("runs the operation and returns its error", func(t *testing.T) {
		e := NewSerial(nil)

		ran := false
		require.NoError(t, e.Execute(context.Background(), "id", func(ctx context.Context) error {
			ran = true

			return nil
		}))
		require.True(t, ran)

		cause := errors.New("op failed")
		err := e.Execute(context.Background(), "id", func(ctx context.Context) error {
			return cause
		})
		require.ErrorIs(t, err, cause)
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		var reported error
		e := NewSerial(func(err error) { reported = err })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := e.Execute(ctx, "id", func(ctx context.Context) error {
			t.Fatal("operation must not run")

			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, reported, context.Canceled)
	})

	t.Run("nil handler discards reports", func(t *testing.T) {
		e := NewSerial(nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := e.Execute(ctx, "id", func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSerialExecuteSerializesPerIdentity(t *testing.T) {
	e := NewSerial(nil)

	const iterations = 200

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Execute(context.Background(), "same-identity", func(ctx context.Context) error {
				// Unsynchronized on purpose: serialization is what makes
				// this race-free.
				counter++

				return nil
			})
		}()
	}
	wg.Wait()

	require.Equal(t, iterations, counter)
}
