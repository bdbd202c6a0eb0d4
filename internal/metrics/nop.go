// Package metrics provides no-op and Prometheus implementations of
// types.MetricsCollector.
package metrics

import "github.com/nodece/pulsar-dotpulsar/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordStateTransition discards the event.
func (m *NopMetrics) RecordStateTransition(from, to types.ConsumerState) {}

// RecordSubConsumerCount discards the value.
func (m *NopMetrics) RecordSubConsumerCount(count int) {}

// RecordActiveSubConsumers discards the value.
func (m *NopMetrics) RecordActiveSubConsumers(count int) {}

// RecordSeek discards the event.
func (m *NopMetrics) RecordSeek(target string) {}

// RecordReceive discards the event.
func (m *NopMetrics) RecordReceive(fromBuffer bool) {}

// RecordRaceLoserBuffered discards the event.
func (m *NopMetrics) RecordRaceLoserBuffered() {}

// RecordPendingBufferSize discards the value.
func (m *NopMetrics) RecordPendingBufferSize(size int) {}

// RecordAcknowledge discards the event.
func (m *NopMetrics) RecordAcknowledge(kind string) {}

// RecordRedelivery discards the event.
func (m *NopMetrics) RecordRedelivery(count int) {}
