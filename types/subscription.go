package types

import "github.com/google/uuid"

// SubscriptionType determines how messages of a subscription are distributed
// among its consumers.
type SubscriptionType int

const (
	// SubscriptionTypeExclusive allows a single consumer on the subscription.
	SubscriptionTypeExclusive SubscriptionType = iota

	// SubscriptionTypeShared distributes messages round-robin across consumers.
	SubscriptionTypeShared

	// SubscriptionTypeFailover keeps one consumer active with the rest standing by.
	SubscriptionTypeFailover

	// SubscriptionTypeKeyShared distributes messages by key across consumers.
	SubscriptionTypeKeyShared
)

// String returns the string representation of the subscription type.
func (t SubscriptionType) String() string {
	switch t {
	case SubscriptionTypeExclusive:
		return "Exclusive"
	case SubscriptionTypeShared:
		return "Shared"
	case SubscriptionTypeFailover:
		return "Failover"
	case SubscriptionTypeKeyShared:
		return "KeyShared"
	default:
		return "Unknown"
	}
}

// InitialPosition selects where a brand-new subscription starts reading.
type InitialPosition int

const (
	// InitialPositionLatest starts from the next message published after subscribing.
	InitialPositionLatest InitialPosition = iota

	// InitialPositionEarliest starts from the first available message.
	InitialPositionEarliest
)

// String returns the string representation of the initial position.
func (p InitialPosition) String() string {
	switch p {
	case InitialPositionLatest:
		return "Latest"
	case InitialPositionEarliest:
		return "Earliest"
	default:
		return "Unknown"
	}
}

// RegexSubscriptionMode filters the topic domains considered when a consumer
// discovers topics by pattern under a namespace.
type RegexSubscriptionMode int

const (
	// RegexSubscriptionModePersistent matches persistent topics only.
	RegexSubscriptionModePersistent RegexSubscriptionMode = iota

	// RegexSubscriptionModeNonPersistent matches non-persistent topics only.
	RegexSubscriptionModeNonPersistent

	// RegexSubscriptionModeAll matches both domains.
	RegexSubscriptionModeAll
)

// String returns the string representation of the mode.
func (m RegexSubscriptionMode) String() string {
	switch m {
	case RegexSubscriptionModePersistent:
		return "Persistent"
	case RegexSubscriptionModeNonPersistent:
		return "NonPersistent"
	case RegexSubscriptionModeAll:
		return "All"
	default:
		return "Unknown"
	}
}

// SubscribeCommand carries everything a sub-consumer needs to establish a
// subscription on one concrete topic.
type SubscribeCommand struct {
	// CorrelationID ties the sub-consumer to its supervision registry entry.
	CorrelationID uuid.UUID

	// Topic is the concrete (partition-expanded) topic to subscribe to.
	Topic string

	// SubscriptionName names the subscription on the broker.
	SubscriptionName string

	// SubscriptionType selects the message distribution mode.
	SubscriptionType SubscriptionType

	// ConsumerName identifies this consumer on the subscription.
	ConsumerName string

	// InitialPosition selects where a new subscription starts reading.
	InitialPosition InitialPosition

	// PriorityLevel gives shared-subscription dispatch priority (lower is higher).
	PriorityLevel int32

	// ReadCompacted reads from the compacted topic view when available.
	ReadCompacted bool
}
