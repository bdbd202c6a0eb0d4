package types

import "errors"

// Sentinel errors for the dotpulsar library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Consumer errors - Public API errors returned by the Consumer component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLookupServiceRequired is returned when the lookup service is nil.
	ErrLookupServiceRequired = errors.New("lookup service is required")

	// ErrFactoryRequired is returned when the sub-consumer factory is nil.
	ErrFactoryRequired = errors.New("sub-consumer factory is required")

	// ErrConsumerClosed is returned when an operation is attempted after the
	// consumer was disposed.
	ErrConsumerClosed = errors.New("consumer is closed")

	// ErrConsumerNotActive is returned when an operation requires the Active
	// aggregate state and the consumer is not there yet (or anymore).
	ErrConsumerNotActive = errors.New("consumer is not active")

	// ErrConsumerFaulted is returned when the consumer entered the Faulted
	// state. The stored cause is attached via error wrapping.
	ErrConsumerFaulted = errors.New("consumer has faulted")

	// ErrIllegalSeekTarget is returned when a multi-topic seek is given a
	// concrete position instead of the earliest/latest sentinel. A numeric
	// position is meaningless across independent partitions.
	ErrIllegalSeekTarget = errors.New("seek on a multi-topic consumer accepts only the earliest or latest message id")

	// ErrUnknownTopic is returned when an acknowledgement references a topic
	// no sub-consumer of this consumer owns.
	ErrUnknownTopic = errors.New("message topic is not owned by this consumer")
)

// Lookup errors - Failures reported by the lookup/connection collaborator.
var (
	// ErrLookupFailed wraps a server-reported lookup failure.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrUnexpectedResponse is returned when a broker response does not carry
	// the variant matching the request kind.
	ErrUnexpectedResponse = errors.New("unexpected broker response")
)
