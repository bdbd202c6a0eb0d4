package dotpulsar

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nodece/pulsar-dotpulsar/state"
	"github.com/nodece/pulsar-dotpulsar/topic"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// stateEvent is one observed sub-consumer state change, keyed by the
// sub-consumer's slot index.
type stateEvent struct {
	slot  int
	state types.ConsumerState
}

// monitor is the consumer's supervision loop. It runs once per consumer
// lifetime: it resolves topics, creates every sub-consumer, then merges
// their state changes into the aggregate state until a terminal state is
// observed or the consumer is closed.
func (c *Consumer) monitor() {
	defer c.wg.Done()

	err := c.setup(c.ctx)
	close(c.ready)

	if err != nil {
		// Cancellation is teardown, not a genuine fault.
		if c.ctx.Err() != nil {
			return
		}
		c.fault(err)

		return
	}

	c.metrics.RecordSubConsumerCount(len(c.subList))
	c.logger.Info("sub-consumers created",
		"count", len(c.subList),
		"subscription", c.cfg.SubscriptionName,
		"correlation_id", c.correlationID.String(),
	)

	// One watcher per sub-consumer slot. Each delivers state changes and
	// re-arms itself with a wait-for-change-away-from the state it just saw.
	events := make(chan stateEvent)
	for i, sub := range c.subList {
		c.wg.Add(1)
		go c.watchSubConsumer(i, sub, events)
	}

	active := 0
	for {
		var ev stateEvent
		select {
		case <-c.ctx.Done():
			return
		case ev = <-events:
		}

		// Gather everything else that completed this round before aggregating.
		round := []stateEvent{ev}
	drain:
		for {
			select {
			case more := <-events:
				round = append(round, more)
			default:
				break drain
			}
		}

		for _, e := range round {
			switch e.state {
			case types.ConsumerStateActive:
				active++
			case types.ConsumerStateDisconnected:
				active--
			case types.ConsumerStateReachedEndOfTopic, types.ConsumerStateUnsubscribed, types.ConsumerStateFaulted:
				// First seen wins: one sub-consumer reaching a terminal state
				// ends monitoring for the whole consumer.
				if e.state == types.ConsumerStateFaulted {
					c.fault(fmt.Errorf("sub-consumer for topic %s faulted", c.topics[e.slot]))
				} else {
					c.logger.Warn("sub-consumer reached terminal state",
						"topic", c.topics[e.slot],
						"state", e.state.String(),
					)
					c.setAggregate(e.state)
				}

				return
			default:
				// PartiallyActive and Closed are aggregate-only states;
				// sub-consumers never report them.
			}
		}

		c.metrics.RecordActiveSubConsumers(active)

		switch {
		case active <= 0:
			c.setAggregate(types.ConsumerStateDisconnected)
		case active == len(c.subList):
			c.setAggregate(types.ConsumerStateActive)
		default:
			c.setAggregate(types.ConsumerStatePartiallyActive)
		}
	}
}

// watchSubConsumer forwards one sub-consumer's state changes to the monitor
// loop, re-arming after every delivery until a terminal state is seen or the
// consumer shuts down.
func (c *Consumer) watchSubConsumer(slot int, sub types.SubConsumer, events chan<- stateEvent) {
	defer c.wg.Done()

	last := types.ConsumerStateDisconnected
	for {
		observed, err := sub.WaitUntilChangedFrom(c.ctx, last)
		if err != nil {
			return
		}

		select {
		case events <- stateEvent{slot: slot, state: observed}:
		case <-c.ctx.Done():
			return
		}

		if observed.IsFinal() {
			return
		}
		last = observed
	}
}

// setup resolves the topic specification, expands partitions, and creates
// one sub-consumer per concrete topic. Any failure aborts the whole setup;
// sub-consumers created before the failure are disposed by Close.
func (c *Consumer) setup(ctx context.Context) error {
	resolved, err := c.resolveTopics(ctx)
	if err != nil {
		return err
	}

	concrete, err := c.expandPartitions(ctx, resolved)
	if err != nil {
		return err
	}

	c.subs = make(map[string]types.SubConsumer, len(concrete))

	for _, t := range concrete {
		sub, process, err := c.createSubConsumer(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to create sub-consumer for %s: %w", t, err)
		}

		c.subs[t] = sub
		c.subList = append(c.subList, sub)
		c.topics = append(c.topics, t)
		c.processes = append(c.processes, process)
	}

	return nil
}

// resolveTopics turns the topic specification into canonical topic names.
func (c *Consumer) resolveTopics(ctx context.Context) ([]string, error) {
	if len(c.cfg.Topics) > 0 {
		out := make([]string, 0, len(c.cfg.Topics))
		for _, raw := range c.cfg.Topics {
			tn, err := topic.ParseTopic(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, tn.String())
		}

		return out, nil
	}

	pattern, re, err := c.cfg.compilePattern()
	if err != nil {
		return nil, err
	}

	namespace := pattern.Namespace().String()
	candidates, err := c.lookup.GetTopicsOfNamespace(ctx, namespace, c.cfg.RegexSubscriptionMode)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics of namespace %s: %w", namespace, err)
	}

	var out []string
	for _, raw := range candidates {
		tn, err := topic.ParseTopic(raw)
		if err != nil {
			return nil, err
		}
		stripped := strings.TrimPrefix(tn.String(), string(tn.Domain())+"://")
		if re.MatchString(stripped) {
			out = append(out, tn.String())
		}
	}

	c.logger.Debug("resolved topics by pattern",
		"namespace", namespace,
		"candidates", len(candidates),
		"matches", len(out),
	)

	return out, nil
}

// expandPartitions queries partition metadata for every resolved topic and
// expands partitioned topics into their concrete partition topics.
func (c *Consumer) expandPartitions(ctx context.Context, resolved []string) ([]string, error) {
	var out []string
	for _, t := range resolved {
		count, err := c.lookup.GetPartitionCount(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to get partition count for %s: %w", t, err)
		}

		if count == 0 {
			out = append(out, t)

			continue
		}

		tn, err := topic.ParseTopic(t)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(count); i++ {
			out = append(out, tn.PartitionTopic(i))
		}
	}

	return out, nil
}

// createSubConsumer builds the subscribe command and sub-consumer for one
// concrete topic and registers it for supervision. Failures are not caught
// here: they propagate and fault the whole consumer.
func (c *Consumer) createSubConsumer(ctx context.Context, concreteTopic string) (types.SubConsumer, types.Process, error) {
	correlationID := uuid.New()

	consumerName := c.cfg.ConsumerName
	if consumerName == "" {
		consumerName = "consumer-" + uuid.NewString()
	}

	cmd := types.SubscribeCommand{
		CorrelationID:    correlationID,
		Topic:            concreteTopic,
		SubscriptionName: c.cfg.SubscriptionName,
		SubscriptionType: c.cfg.SubscriptionType,
		ConsumerName:     consumerName,
		InitialPosition:  c.cfg.InitialPosition,
		PriorityLevel:    c.cfg.PriorityLevel,
		ReadCompacted:    c.cfg.ReadCompacted,
	}

	tracker := state.NewTracker(types.ConsumerStateDisconnected, types.FinalConsumerStates...)

	sub, err := c.factory.CreateSubConsumer(ctx, cmd, tracker)
	if err != nil {
		return nil, types.Process{}, err
	}

	process := types.Process{
		CorrelationID:          correlationID,
		Topic:                  concreteTopic,
		SubConsumer:            sub,
		IsFailoverSubscription: c.cfg.SubscriptionType == types.SubscriptionTypeFailover,
	}
	c.registry.Add(process)

	return sub, process, nil
}
