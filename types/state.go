package types

// ConsumerState represents the consumer lifecycle state.
//
// A freshly created consumer starts Disconnected. As sub-consumers come
// online the state moves through PartiallyActive to Active, and back again
// when connections drop:
//
//	Disconnected ⇄ PartiallyActive ⇄ Active
//
// ReachedEndOfTopic, Unsubscribed, Faulted, and Closed are terminal states.
// Once a consumer enters a terminal state it never leaves it.
type ConsumerState int

const (
	// ConsumerStateDisconnected is the initial state: no sub-consumer has an
	// active connection to its broker.
	ConsumerStateDisconnected ConsumerState = iota

	// ConsumerStatePartiallyActive indicates some, but not all, sub-consumers
	// are active.
	ConsumerStatePartiallyActive

	// ConsumerStateActive indicates every sub-consumer is active.
	ConsumerStateActive

	// ConsumerStateReachedEndOfTopic indicates a sub-consumer consumed the last
	// message of a terminated topic. Terminal.
	ConsumerStateReachedEndOfTopic

	// ConsumerStateUnsubscribed indicates the subscription was removed. Terminal.
	ConsumerStateUnsubscribed

	// ConsumerStateFaulted indicates an unrecoverable error. Terminal.
	ConsumerStateFaulted

	// ConsumerStateClosed indicates the consumer was disposed. Terminal.
	ConsumerStateClosed
)

// String returns the string representation of the state.
func (s ConsumerState) String() string {
	switch s {
	case ConsumerStateDisconnected:
		return "Disconnected"
	case ConsumerStatePartiallyActive:
		return "PartiallyActive"
	case ConsumerStateActive:
		return "Active"
	case ConsumerStateReachedEndOfTopic:
		return "ReachedEndOfTopic"
	case ConsumerStateUnsubscribed:
		return "Unsubscribed"
	case ConsumerStateFaulted:
		return "Faulted"
	case ConsumerStateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// IsFinal reports whether the state is terminal.
func (s ConsumerState) IsFinal() bool {
	switch s {
	case ConsumerStateReachedEndOfTopic, ConsumerStateUnsubscribed, ConsumerStateFaulted, ConsumerStateClosed:
		return true
	default:
		return false
	}
}

// FinalConsumerStates lists every terminal consumer state. It is the terminal
// set handed to state trackers created for consumers and sub-consumers.
var FinalConsumerStates = []ConsumerState{
	ConsumerStateReachedEndOfTopic,
	ConsumerStateUnsubscribed,
	ConsumerStateFaulted,
	ConsumerStateClosed,
}
