package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	ConsumerMetrics
	MessageMetrics
}

// ConsumerMetrics defines metrics for consumer lifecycle operations.
type ConsumerMetrics interface {
	// RecordStateTransition records an aggregate state transition event.
	RecordStateTransition(from, to ConsumerState)

	// RecordSubConsumerCount sets the number of sub-consumers backing the
	// consumer after topic resolution (gauge metric).
	RecordSubConsumerCount(count int)

	// RecordActiveSubConsumers sets the number of sub-consumers currently in
	// the Active state (gauge metric).
	RecordActiveSubConsumers(count int)

	// RecordSeek records a seek fan-out by target kind ("message_id" or
	// "publish_time").
	RecordSeek(target string)
}

// MessageMetrics defines metrics for the message path.
type MessageMetrics interface {
	// RecordReceive records a message handed to the caller, noting whether it
	// was served from the pending buffer.
	RecordReceive(fromBuffer bool)

	// RecordRaceLoserBuffered records a message that lost a receive race and
	// was parked in the pending buffer.
	RecordRaceLoserBuffered()

	// RecordPendingBufferSize sets the current pending buffer depth (gauge metric).
	RecordPendingBufferSize(size int)

	// RecordAcknowledge records an acknowledgement by kind ("individual" or
	// "cumulative").
	RecordAcknowledge(kind string)

	// RecordRedelivery records a redelivery request fanned out to count
	// sub-consumers.
	RecordRedelivery(count int)
}
