package types

import (
	"fmt"
	"math"
	"time"
)

// MessageID identifies a message position within a single topic.
//
// The zero value is not a valid position; use EarliestMessageID or
// LatestMessageID for the canonical seek sentinels.
type MessageID struct {
	// LedgerID is the ledger the message entry was written to.
	LedgerID int64 `json:"ledgerId"`

	// EntryID is the entry within the ledger.
	EntryID int64 `json:"entryId"`

	// Partition is the partition index, or -1 for a non-partitioned topic.
	Partition int32 `json:"partition"`

	// BatchIndex is the index within a batched entry, or -1 when not batched.
	BatchIndex int32 `json:"batchIndex"`
}

// EarliestMessageID returns the sentinel identifying the first available
// message of a topic.
func EarliestMessageID() MessageID {
	return MessageID{LedgerID: -1, EntryID: -1, Partition: -1, BatchIndex: -1}
}

// LatestMessageID returns the sentinel identifying the last available
// message of a topic.
func LatestMessageID() MessageID {
	return MessageID{LedgerID: math.MaxInt64, EntryID: math.MaxInt64, Partition: -1, BatchIndex: -1}
}

// IsEarliest reports whether the identifier is the earliest sentinel.
func (id MessageID) IsEarliest() bool {
	return id == EarliestMessageID()
}

// IsLatest reports whether the identifier is the latest sentinel.
func (id MessageID) IsLatest() bool {
	return id == LatestMessageID()
}

// String returns the canonical "ledger:entry:partition:batch" form.
func (id MessageID) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", id.LedgerID, id.EntryID, id.Partition, id.BatchIndex)
}

// LastMessageID is the result of querying the last message position of a
// consumer. For a consumer backed by a single sub-consumer only ID is set;
// for a multi-topic consumer ByTopic maps every concrete topic to the last
// identifier reported by its sub-consumer.
type LastMessageID struct {
	// ID is the last identifier when exactly one sub-consumer backs the consumer.
	ID MessageID

	// ByTopic maps concrete topic name to last identifier. Nil when ID is set.
	ByTopic map[string]MessageID
}

// Message is a single message received from a topic.
type Message struct {
	// ID is the position of the message within Topic.
	ID MessageID

	// Topic is the concrete (partition-expanded) topic the message came from.
	Topic string

	// Key is the optional partitioning key.
	Key string

	// Payload is the raw message payload.
	Payload []byte

	// Properties holds application-defined metadata.
	Properties map[string]string

	// ProducerName is the name of the producer that published the message.
	ProducerName string

	// PublishTime is the broker-assigned publish timestamp.
	PublishTime time.Time

	// EventTime is the application-assigned event timestamp (zero if unset).
	EventTime time.Time

	// RedeliveryCount is the number of times the message was redelivered.
	RedeliveryCount uint32
}
