package dotpulsar

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nodece/pulsar-dotpulsar/internal/executor"
	"github.com/nodece/pulsar-dotpulsar/internal/logger"
	"github.com/nodece/pulsar-dotpulsar/internal/metrics"
	"github.com/nodece/pulsar-dotpulsar/internal/registry"
	"github.com/nodece/pulsar-dotpulsar/state"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// SubConsumerFactory constructs the physical subscription for one concrete
// topic. The command carries everything needed to subscribe; the tracker is
// owned by the Consumer and must be driven by the sub-consumer as its
// connection state changes.
type SubConsumerFactory interface {
	// CreateSubConsumer builds and starts a sub-consumer bound to cmd.Topic.
	CreateSubConsumer(ctx context.Context, cmd types.SubscribeCommand, tracker *state.Tracker[types.ConsumerState]) (types.SubConsumer, error)
}

// SubConsumerFactoryFunc adapts a function to the SubConsumerFactory interface.
type SubConsumerFactoryFunc func(ctx context.Context, cmd types.SubscribeCommand, tracker *state.Tracker[types.ConsumerState]) (types.SubConsumer, error)

// CreateSubConsumer calls f.
func (f SubConsumerFactoryFunc) CreateSubConsumer(ctx context.Context, cmd types.SubscribeCommand, tracker *state.Tracker[types.ConsumerState]) (types.SubConsumer, error) {
	return f(ctx, cmd, tracker)
}

// Consumer is a logical multi-topic, multi-partition consumer.
//
// It resolves its topic specification into concrete partitioned topics,
// spawns one sub-consumer per partition, supervises their lifecycle states
// into a single aggregate state, and fans out every consumer-facing
// operation across them.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Mutating operations are serialized on the consumer's correlation identity
//   - The sub-consumer registry is populated once during resolution and
//     read-only afterwards
//
// Lifecycle:
//   - Create with NewConsumer(); topic resolution starts immediately in the
//     background, the constructor never blocks on it
//   - Observe readiness via WaitUntil(ctx, ConsumerStateActive)
//   - Call Close() for teardown; Close is idempotent
type Consumer struct {
	cfg      ConsumerConfig
	lookup   types.LookupService
	factory  SubConsumerFactory
	registry types.ProcessRegistry
	executor types.Executor
	logger   types.Logger
	metrics  types.MetricsCollector

	// correlationID is the consumer's identity for operation serialization.
	correlationID uuid.UUID

	// tracker holds the aggregate state. It is the single source of truth for
	// "is this consumer usable right now".
	tracker *state.Tracker[types.ConsumerState]

	// Sub-consumer registry, written once by the monitor goroutine before
	// ready is closed, read-only afterwards.
	subs      map[string]types.SubConsumer
	subList   []types.SubConsumer
	topics    []string
	processes []types.Process

	// ready is closed when setup finished, successfully or not.
	ready chan struct{}

	// pending holds messages that won a receive race but were not yet handed
	// to a caller. Seek swaps the whole buffer.
	pending atomic.Pointer[messageBuffer]

	faultMu  sync.Mutex
	faultErr error

	// Lifecycle management
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool
}

// Compile-time assertion that Consumer exposes the StateWaiter surface.
var _ types.StateWaiter = (*Consumer)(nil)

// NewConsumer creates a new multi-topic Consumer.
//
// Construction validates the configuration (exactly one of Topics and
// TopicsPattern must be set) and kicks off topic resolution asynchronously;
// it never blocks on network round-trips.
//
// Parameters:
//   - cfg: Consumer configuration
//   - lookup: Topic discovery and partition metadata service
//   - factory: Constructor for per-topic sub-consumers
//   - opts: Optional configuration (logger, metrics, registry, executor)
//
// Returns:
//   - *Consumer: Initialized consumer instance
//   - error: Validation error if the configuration is invalid
//
// Example:
//
//	cfg := dotpulsar.ConsumerConfig{
//	    TopicsPattern:    "persistent://public/default/events-.*",
//	    SubscriptionName: "analytics",
//	}
//	consumer, err := dotpulsar.NewConsumer(&cfg, lookup, factory)
func NewConsumer(cfg *ConsumerConfig, lookup types.LookupService, factory SubConsumerFactory, opts ...Option) (*Consumer, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if lookup == nil {
		return nil, ErrLookupServiceRequired
	}
	if factory == nil {
		return nil, ErrFactoryRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	options := &consumerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	registryInstance := options.registry
	if registryInstance == nil {
		registryInstance = registry.NewInMemory()
	}

	executorInstance := options.executor
	if executorInstance == nil {
		executorInstance = executor.NewSerial(options.exceptionHandler)
	}

	c := &Consumer{
		cfg:           *cfg,
		lookup:        lookup,
		factory:       factory,
		registry:      registryInstance,
		executor:      executorInstance,
		logger:        loggerInstance,
		metrics:       metricsCollector,
		correlationID: uuid.New(),
		tracker:       state.NewTracker(types.ConsumerStateDisconnected, types.FinalConsumerStates...),
		ready:         make(chan struct{}),
	}
	c.pending.Store(newMessageBuffer())
	c.ctx, c.cancel = context.WithCancel(context.Background())

	c.wg.Add(1)
	go c.monitor()

	return c, nil
}

// State returns the current aggregate state.
func (c *Consumer) State() types.ConsumerState {
	return c.tracker.State()
}

// WaitUntil blocks until the aggregate state equals want, or a terminal
// state was reached, and returns the observed state.
func (c *Consumer) WaitUntil(ctx context.Context, want types.ConsumerState) (types.ConsumerState, error) {
	return c.tracker.WaitUntil(ctx, want)
}

// WaitUntilChangedFrom blocks until the aggregate state differs from have
// and returns the observed state.
func (c *Consumer) WaitUntilChangedFrom(ctx context.Context, have types.ConsumerState) (types.ConsumerState, error) {
	return c.tracker.WaitUntilChangedFrom(ctx, have)
}

// Error returns the stored cause once the consumer has faulted, wrapped in
// ErrConsumerFaulted, and nil otherwise.
func (c *Consumer) Error() error {
	c.faultMu.Lock()
	defer c.faultMu.Unlock()

	if c.faultErr == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrConsumerFaulted, c.faultErr)
}

// Topics returns the concrete (partition-expanded) topics backing this
// consumer, in creation order. Empty until resolution completes.
func (c *Consumer) Topics() []string {
	select {
	case <-c.ready:
	default:
		return nil
	}

	out := make([]string, len(c.topics))
	copy(out, c.topics)

	return out
}

// Close tears the consumer down.
//
// Safe to call multiple times: only the first call has effect. It cancels
// the consumer's lifetime context, forces the aggregate state to Closed,
// then disposes every sub-consumer exactly once.
//
// Parameters:
//   - ctx: Context bounding the sub-consumer disposal round-trips
//
// Returns:
//   - error: First disposal error observed, nil otherwise
func (c *Consumer) Close(ctx context.Context) error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.cancel()
		c.tracker.SetState(types.ConsumerStateClosed)

		// Monitor and watcher goroutines observe the cancelled context; wait
		// for them so the sub-consumer registry is quiescent before disposal.
		c.wg.Wait()

		for _, sub := range c.subList {
			if err := sub.Close(ctx); err != nil {
				c.logger.Error("failed to close sub-consumer", "topic", sub.Topic(), "error", err)
				if closeErr == nil {
					closeErr = fmt.Errorf("failed to close sub-consumer for %s: %w", sub.Topic(), err)
				}
			}
		}

		for _, p := range c.processes {
			c.registry.Remove(p.CorrelationID)
		}

		c.logger.Info("consumer closed", "correlation_id", c.correlationID.String())
	})

	return closeErr
}

// fault stores the first fault cause and forces the aggregate state to Faulted.
func (c *Consumer) fault(err error) {
	c.faultMu.Lock()
	if c.faultErr == nil {
		c.faultErr = err
	}
	c.faultMu.Unlock()

	c.logger.Error("consumer faulted", "correlation_id", c.correlationID.String(), "error", err)
	c.tracker.SetState(types.ConsumerStateFaulted)
}

// setAggregate transitions the aggregate state, recording the transition.
func (c *Consumer) setAggregate(to types.ConsumerState) {
	from := c.tracker.State()
	if from == to || c.tracker.IsFinal() {
		return
	}

	c.tracker.SetState(to)
	c.logger.Info("state transition",
		"from", from.String(),
		"to", to.String(),
		"correlation_id", c.correlationID.String(),
	)
	c.metrics.RecordStateTransition(from, to)
}
