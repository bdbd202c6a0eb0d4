package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nodece/pulsar-dotpulsar/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	stateTransitions   *prometheus.CounterVec
	subConsumersGauge  prometheus.Gauge
	activeSubConsumers prometheus.Gauge
	seeks              *prometheus.CounterVec
	receives           *prometheus.CounterVec
	raceLosersBuffered prometheus.Counter
	pendingBufferSize  prometheus.Gauge
	acknowledgements   *prometheus.CounterVec
	redeliveries       prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "dotpulsar" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "dotpulsar"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.stateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "consumer",
			Name:      "state_transitions_total",
			Help:      "Total aggregate consumer state transitions by from/to state.",
		}, []string{"from", "to"})

		p.subConsumersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "consumer",
			Name:      "sub_consumers",
			Help:      "Number of sub-consumers backing the consumer after topic resolution.",
		})

		p.activeSubConsumers = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "consumer",
			Name:      "sub_consumers_active",
			Help:      "Number of sub-consumers currently in the Active state.",
		})

		p.seeks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "consumer",
			Name:      "seeks_total",
			Help:      "Total seek fan-outs by target kind (message_id, publish_time).",
		}, []string{"target"})

		p.receives = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "messages",
			Name:      "received_total",
			Help:      "Total messages handed to the caller by source (race, buffer).",
		}, []string{"source"})

		p.raceLosersBuffered = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "messages",
			Name:      "race_losers_buffered_total",
			Help:      "Total messages that lost a receive race and were parked in the pending buffer.",
		})

		p.pendingBufferSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "messages",
			Name:      "pending_buffer_size",
			Help:      "Current depth of the pending message buffer.",
		})

		p.acknowledgements = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "messages",
			Name:      "acknowledged_total",
			Help:      "Total acknowledgements by kind (individual, cumulative).",
		}, []string{"kind"})

		p.redeliveries = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "messages",
			Name:      "redelivery_requests_total",
			Help:      "Total redelivery requests fanned out to sub-consumers.",
		})

		p.reg.MustRegister(
			p.stateTransitions,
			p.subConsumersGauge,
			p.activeSubConsumers,
			p.seeks,
			p.receives,
			p.raceLosersBuffered,
			p.pendingBufferSize,
			p.acknowledgements,
			p.redeliveries,
		)
	})
}

// RecordStateTransition records an aggregate state transition event.
func (p *PrometheusCollector) RecordStateTransition(from, to types.ConsumerState) {
	p.ensureRegistered()
	p.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordSubConsumerCount sets the sub-consumer gauge.
func (p *PrometheusCollector) RecordSubConsumerCount(count int) {
	p.ensureRegistered()
	p.subConsumersGauge.Set(float64(count))
}

// RecordActiveSubConsumers sets the active sub-consumer gauge.
func (p *PrometheusCollector) RecordActiveSubConsumers(count int) {
	p.ensureRegistered()
	p.activeSubConsumers.Set(float64(count))
}

// RecordSeek records a seek fan-out by target kind.
func (p *PrometheusCollector) RecordSeek(target string) {
	p.ensureRegistered()
	p.seeks.WithLabelValues(target).Inc()
}

// RecordReceive records a message handed to the caller.
func (p *PrometheusCollector) RecordReceive(fromBuffer bool) {
	p.ensureRegistered()
	source := "race"
	if fromBuffer {
		source = "buffer"
	}
	p.receives.WithLabelValues(source).Inc()
}

// RecordRaceLoserBuffered records a message parked in the pending buffer.
func (p *PrometheusCollector) RecordRaceLoserBuffered() {
	p.ensureRegistered()
	p.raceLosersBuffered.Inc()
}

// RecordPendingBufferSize sets the pending buffer gauge.
func (p *PrometheusCollector) RecordPendingBufferSize(size int) {
	p.ensureRegistered()
	p.pendingBufferSize.Set(float64(size))
}

// RecordAcknowledge records an acknowledgement by kind.
func (p *PrometheusCollector) RecordAcknowledge(kind string) {
	p.ensureRegistered()
	p.acknowledgements.WithLabelValues(kind).Inc()
}

// RecordRedelivery records a redelivery fan-out.
func (p *PrometheusCollector) RecordRedelivery(count int) {
	p.ensureRegistered()
	p.redeliveries.Add(float64(count))
}
