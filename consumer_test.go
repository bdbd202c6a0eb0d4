package dotpulsar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nodece/pulsar-dotpulsar/consumertest"
	"github.com/nodece/pulsar-dotpulsar/internal/logger"
	"github.com/nodece/pulsar-dotpulsar/types"
)

const testTimeout = 2 * time.Second

func testConfig(topics ...string) ConsumerConfig {
	cfg := DefaultConsumerConfig()
	cfg.Topics = topics
	cfg.SubscriptionName = "test-sub"

	return cfg
}

// newTestConsumer builds a consumer backed by fakes and waits for topic
// resolution to finish.
func newTestConsumer(t *testing.T, cfg ConsumerConfig, lookup *consumertest.LookupService, factory *consumertest.Factory) *Consumer {
	t.Helper()

	c, err := NewConsumer(&cfg, lookup, factory, WithLogger(logger.NewTest(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	require.Eventually(t, func() bool {
		return len(c.Topics()) > 0
	}, testTimeout, 5*time.Millisecond, "topic resolution did not finish")

	return c
}

// newActiveConsumer additionally activates every fake sub-consumer and waits
// for the aggregate Active state.
func newActiveConsumer(t *testing.T, cfg ConsumerConfig, lookup *consumertest.LookupService, factory *consumertest.Factory) *Consumer {
	t.Helper()

	c := newTestConsumer(t, cfg, lookup, factory)
	factory.ActivateAll()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s, err := c.WaitUntil(ctx, types.ConsumerStateActive)
	require.NoError(t, err)
	require.Equal(t, types.ConsumerStateActive, s)

	return c
}

func waitState(t *testing.T, c *Consumer, want types.ConsumerState) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s, err := c.WaitUntil(ctx, want)
	require.NoError(t, err)
	require.Equal(t, want, s)
}

func TestNewConsumerValidation(t *testing.T) {
	lookup := consumertest.NewLookupService()
	factory := consumertest.NewFactory()
	cfg := testConfig("events")

	t.Run("nil config", func(t *testing.T) {
		_, err := NewConsumer(nil, lookup, factory)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nil lookup service", func(t *testing.T) {
		_, err := NewConsumer(&cfg, nil, factory)
		require.ErrorIs(t, err, ErrLookupServiceRequired)
	})

	t.Run("nil factory", func(t *testing.T) {
		_, err := NewConsumer(&cfg, lookup, nil)
		require.ErrorIs(t, err, ErrFactoryRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := testConfig()
		_, err := NewConsumer(&bad, lookup, factory)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConsumerBecomesActive(t *testing.T) {
	lookup := consumertest.NewLookupService()
	lookup.SetPartitionCount("persistent://public/default/events", 3)
	factory := consumertest.NewFactory()

	c := newTestConsumer(t, testConfig("events"), lookup, factory)

	require.Equal(t, []string{
		"persistent://public/default/events-partition-0",
		"persistent://public/default/events-partition-1",
		"persistent://public/default/events-partition-2",
	}, c.Topics())
	require.Equal(t, types.ConsumerStateDisconnected, c.State())

	factory.ActivateAll()
	waitState(t, c, types.ConsumerStateActive)
}

func TestConsumerNonPartitionedTopic(t *testing.T) {
	lookup := consumertest.NewLookupService()
	factory := consumertest.NewFactory()

	c := newTestConsumer(t, testConfig("events"), lookup, factory)

	require.Equal(t, []string{"persistent://public/default/events"}, c.Topics())
	require.Len(t, factory.All(), 1)
}

func TestConsumerAggregateStateMerge(t *testing.T) {
	lookup := consumertest.NewLookupService()
	lookup.SetPartitionCount("persistent://public/default/events", 3)
	factory := consumertest.NewFactory()

	c := newTestConsumer(t, testConfig("events"), lookup, factory)
	subs := factory.All()
	require.Len(t, subs, 3)

	// Two of three active: the consumer is only partially usable.
	subs[0].Transition(types.ConsumerStateActive)
	subs[1].Transition(types.ConsumerStateActive)
	waitState(t, c, types.ConsumerStatePartiallyActive)

	// All three active.
	subs[2].Transition(types.ConsumerStateActive)
	waitState(t, c, types.ConsumerStateActive)

	// One drops out again.
	subs[1].Transition(types.ConsumerStateDisconnected)
	waitState(t, c, types.ConsumerStatePartiallyActive)
}

func TestConsumerTerminalPropagation(t *testing.T) {
	t.Run("unsubscribed sub-consumer ends the consumer", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		lookup.SetPartitionCount("persistent://public/default/events", 2)
		factory := consumertest.NewFactory()

		c := newActiveConsumer(t, testConfig("events"), lookup, factory)

		factory.All()[0].Transition(types.ConsumerStateUnsubscribed)
		waitState(t, c, types.ConsumerStateUnsubscribed)
		require.NoError(t, c.Error())
	})

	t.Run("reached end of topic ends the consumer", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		lookup.SetPartitionCount("persistent://public/default/events", 2)
		factory := consumertest.NewFactory()

		c := newActiveConsumer(t, testConfig("events"), lookup, factory)

		factory.All()[1].Transition(types.ConsumerStateReachedEndOfTopic)
		waitState(t, c, types.ConsumerStateReachedEndOfTopic)
	})

	t.Run("faulted sub-consumer faults the consumer", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		lookup.SetPartitionCount("persistent://public/default/events", 2)
		factory := consumertest.NewFactory()

		c := newActiveConsumer(t, testConfig("events"), lookup, factory)

		factory.All()[0].Transition(types.ConsumerStateFaulted)
		waitState(t, c, types.ConsumerStateFaulted)
		require.ErrorIs(t, c.Error(), ErrConsumerFaulted)
	})

	t.Run("first terminal state wins", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		lookup.SetPartitionCount("persistent://public/default/events", 2)
		factory := consumertest.NewFactory()

		c := newActiveConsumer(t, testConfig("events"), lookup, factory)

		factory.All()[0].Transition(types.ConsumerStateUnsubscribed)
		waitState(t, c, types.ConsumerStateUnsubscribed)

		// A later fault cannot displace the terminal state already reached.
		factory.All()[1].Transition(types.ConsumerStateFaulted)
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, types.ConsumerStateUnsubscribed, c.State())
	})
}

func TestConsumerSetupFailureFaults(t *testing.T) {
	t.Run("partition lookup failure", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		lookup.FailPartitionLookups(errors.New("broker unreachable"))
		factory := consumertest.NewFactory()
		cfg := testConfig("events")

		c, err := NewConsumer(&cfg, lookup, factory, WithLogger(logger.NewTest(t)))
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close(context.Background()) })

		waitState(t, c, types.ConsumerStateFaulted)
		require.ErrorIs(t, c.Error(), ErrConsumerFaulted)
	})

	t.Run("sub-consumer creation failure", func(t *testing.T) {
		lookup := consumertest.NewLookupService()
		factory := consumertest.NewFactory()
		factory.FailCreation(errors.New("subscribe denied"))
		cfg := testConfig("events")

		c, err := NewConsumer(&cfg, lookup, factory, WithLogger(logger.NewTest(t)))
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close(context.Background()) })

		waitState(t, c, types.ConsumerStateFaulted)
	})
}

func TestConsumerPatternDiscovery(t *testing.T) {
	lookup := consumertest.NewLookupService()
	lookup.SetNamespaceTopics("public/default", []string{
		"persistent://public/default/events-orders",
		"persistent://public/default/events-payments",
		"persistent://public/default/audit-log",
	})
	factory := consumertest.NewFactory()

	cfg := DefaultConsumerConfig()
	cfg.TopicsPattern = "persistent://public/default/events-.*"
	cfg.SubscriptionName = "test-sub"

	c := newTestConsumer(t, cfg, lookup, factory)

	require.Equal(t, []string{
		"persistent://public/default/events-orders",
		"persistent://public/default/events-payments",
	}, c.Topics())
}

func TestConsumerClose(t *testing.T) {
	lookup := consumertest.NewLookupService()
	lookup.SetPartitionCount("persistent://public/default/events", 2)
	factory := consumertest.NewFactory()

	c := newActiveConsumer(t, testConfig("events"), lookup, factory)

	require.NoError(t, c.Close(context.Background()))
	require.Equal(t, types.ConsumerStateClosed, c.State())
	for _, sub := range factory.All() {
		require.True(t, sub.Closed())
	}

	// Second close is a no-op.
	require.NoError(t, c.Close(context.Background()))
	require.Equal(t, types.ConsumerStateClosed, c.State())
}

func TestConsumerTopicsBeforeResolution(t *testing.T) {
	lookup := consumertest.NewLookupService()
	factory := consumertest.NewFactory()
	cfg := testConfig("events")

	c, err := NewConsumer(&cfg, lookup, factory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	// May legitimately be resolved already; only the eventual value matters.
	require.Eventually(t, func() bool {
		return len(c.Topics()) == 1
	}, testTimeout, 5*time.Millisecond)
}
