package types

import "context"

// LookupService answers topic discovery and partition metadata queries.
//
// Implementations talk to the broker's lookup endpoints; failures should be
// wrapped with ErrLookupFailed so callers can classify them.
type LookupService interface {
	// GetPartitionCount returns the number of partitions of a topic.
	// Zero means the topic is not partitioned.
	GetPartitionCount(ctx context.Context, topic string) (uint32, error)

	// GetTopicsOfNamespace returns the full set of topic names under a
	// namespace, filtered by the persistence mode.
	GetTopicsOfNamespace(ctx context.Context, namespace string, mode RegexSubscriptionMode) ([]string, error)
}
