package types

import "context"

// Operation is a unit of work scheduled on an Executor.
type Operation func(ctx context.Context) error

// Executor serializes operations that share a logical identity.
//
// At most one operation belonging to the same identity runs at a time;
// operations with distinct identities may run concurrently. The operation's
// own failure is surfaced unchanged to the caller, and otherwise-unobserved
// failures are reported to the shared ExceptionHandler.
type Executor interface {
	// Execute runs op under the serialization guarantee for identity.
	Execute(ctx context.Context, identity string, op Operation) error
}

// ExceptionHandler is a single hook invoked with unhandled failures for
// out-of-band diagnostics. It never influences control flow.
type ExceptionHandler func(err error)
