// Package executor provides the default serialized-execution implementation
// of types.Executor.
package executor

import (
	"context"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/nodece/pulsar-dotpulsar/types"
)

const defaultStripes = 32

// Serial executes operations under per-identity mutual exclusion.
//
// Identities are hashed onto a fixed set of lock stripes, so two operations
// sharing an identity never interleave, while operations with distinct
// identities usually run concurrently. A stripe collision between distinct
// identities costs throughput, never correctness.
type Serial struct {
	stripes []sync.Mutex
	handler types.ExceptionHandler
}

// Compile-time assertion that Serial implements Executor.
var _ types.Executor = (*Serial)(nil)

// NewSerial creates a new striped serial executor.
//
// Parameters:
//   - handler: Optional hook receiving otherwise-unobserved failures (nil discards them)
//
// Returns:
//   - *Serial: Executor with the default stripe count
func NewSerial(handler types.ExceptionHandler) *Serial {
	return &Serial{
		stripes: make([]sync.Mutex, defaultStripes),
		handler: handler,
	}
}

// Execute runs op while holding the stripe lock for identity.
//
// The operation's own failure is returned unchanged. If the caller's context
// was already cancelled the operation never runs; that failure is additionally
// reported to the exception handler since the caller may not inspect it.
func (e *Serial) Execute(ctx context.Context, identity string, op types.Operation) error {
	if err := ctx.Err(); err != nil {
		e.report(err)

		return err
	}

	mu := &e.stripes[xxh3.HashString(identity)%uint64(len(e.stripes))]
	mu.Lock()
	defer mu.Unlock()

	return op(ctx)
}

func (e *Serial) report(err error) {
	if e.handler != nil && err != nil {
		e.handler(err)
	}
}
