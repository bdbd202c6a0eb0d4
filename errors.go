package dotpulsar

import "github.com/nodece/pulsar-dotpulsar/types"

// Sentinel errors returned by the Consumer. These are the canonical
// definitions from the types package, re-exported for user convenience so
// that errors.Is checks work against either name.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrLookupServiceRequired is returned when the lookup service is nil.
	ErrLookupServiceRequired = types.ErrLookupServiceRequired

	// ErrFactoryRequired is returned when the sub-consumer factory is nil.
	ErrFactoryRequired = types.ErrFactoryRequired

	// ErrConsumerClosed is returned when an operation is attempted after Close.
	ErrConsumerClosed = types.ErrConsumerClosed

	// ErrConsumerNotActive is returned when an operation requires the Active
	// aggregate state.
	ErrConsumerNotActive = types.ErrConsumerNotActive

	// ErrConsumerFaulted is returned when the consumer entered the Faulted state.
	ErrConsumerFaulted = types.ErrConsumerFaulted

	// ErrIllegalSeekTarget is returned when a multi-topic seek is given a
	// concrete position instead of the earliest/latest sentinel.
	ErrIllegalSeekTarget = types.ErrIllegalSeekTarget

	// ErrUnknownTopic is returned when an acknowledgement references a topic
	// no sub-consumer of this consumer owns.
	ErrUnknownTopic = types.ErrUnknownTopic
)
