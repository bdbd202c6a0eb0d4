package types

import (
	"context"
	"time"
)

// StateWaiter exposes observable lifecycle state.
//
// Implementations are expected to be backed by a state tracker with the
// ConsumerState terminal set: waits return early with the terminal state
// whenever one has been reached.
type StateWaiter interface {
	// State returns the current state.
	State() ConsumerState

	// WaitUntil blocks until the state equals want, or a terminal state was
	// reached, and returns the observed state. Cancelling ctx aborts the wait
	// without affecting the tracked state.
	WaitUntil(ctx context.Context, want ConsumerState) (ConsumerState, error)

	// WaitUntilChangedFrom blocks until the state differs from have and
	// returns the observed state.
	WaitUntilChangedFrom(ctx context.Context, have ConsumerState) (ConsumerState, error)
}

// SubConsumer is one physical subscription bound to exactly one concrete
// (possibly partition-expanded) topic.
//
// The multi-topic consumer owns the lifecycle of every SubConsumer it
// creates and is the only caller of Close. All other operations may be
// invoked concurrently.
type SubConsumer interface {
	StateWaiter

	// Topic returns the concrete topic this sub-consumer is bound to.
	Topic() string

	// Receive returns the next message, blocking until one is available.
	Receive(ctx context.Context) (*Message, error)

	// Acknowledge acknowledges a single message.
	Acknowledge(ctx context.Context, msg *Message) error

	// AcknowledgeCumulative acknowledges every message up to and including msg.
	AcknowledgeCumulative(ctx context.Context, msg *Message) error

	// RedeliverUnacknowledgedMessages asks the broker to redeliver everything
	// outstanding on this subscription.
	RedeliverUnacknowledgedMessages(ctx context.Context) error

	// Unsubscribe removes the subscription from the broker.
	Unsubscribe(ctx context.Context) error

	// Seek repositions the subscription to the given message id.
	Seek(ctx context.Context, id MessageID) error

	// SeekPublishTime repositions the subscription to the given publish time.
	SeekPublishTime(ctx context.Context, publishTime time.Time) error

	// GetLastMessageID returns the identifier of the last message on the topic.
	GetLastMessageID(ctx context.Context) (MessageID, error)

	// Close releases the sub-consumer. Called at most once, by the owner.
	Close(ctx context.Context) error
}
