package dotpulsar

import (
	"context"
	"fmt"
	"time"

	"github.com/nodece/pulsar-dotpulsar/types"
)

// receiveResult is one completed sub-consumer receive within a race.
type receiveResult struct {
	msg *types.Message
	err error
}

// Receive returns the next message from any of the consumer's topics.
//
// A buffered message from an earlier receive race is returned first. When
// the buffer is empty every sub-consumer is raced with a shared cancellation
// scope: the first completion wins, and every other call that also happened
// to complete by that moment is drained into the pending buffer in arrival
// order instead of being dropped.
//
// Receive blocks until topic resolution has finished; it does not require
// the aggregate state to be Active.
func (c *Consumer) Receive(ctx context.Context) (*types.Message, error) {
	if c.closed.Load() {
		return nil, ErrConsumerClosed
	}

	if err := c.awaitReady(ctx); err != nil {
		return nil, err
	}

	if msg, ok := c.pending.Load().pop(); ok {
		c.metrics.RecordReceive(true)
		c.metrics.RecordPendingBufferSize(c.pending.Load().size())

		return msg, nil
	}

	// A pattern can legitimately match zero topics; there is nothing to
	// race then and receive blocks until cancelled.
	if len(c.subList) == 0 {
		<-ctx.Done()

		return nil, ctx.Err()
	}

	raceCtx, cancelRace := context.WithCancel(ctx)
	defer cancelRace()

	results := make(chan receiveResult, len(c.subList))
	for _, sub := range c.subList {
		go func(sub types.SubConsumer) {
			msg, err := sub.Receive(raceCtx)
			results <- receiveResult{msg: msg, err: err}
		}(sub)
	}

	winner := <-results
	cancelRace()

	// Pin the current buffer generation before draining: a concurrent seek
	// swaps the buffer, and losers drained into the old generation must
	// disappear with it.
	buf := c.pending.Load()
	for i := 1; i < len(c.subList); i++ {
		r := <-results
		if r.err == nil && r.msg != nil {
			buf.push(r.msg)
			c.metrics.RecordRaceLoserBuffered()
		}
	}
	c.metrics.RecordPendingBufferSize(buf.size())

	if winner.err != nil {
		return nil, winner.err
	}

	c.metrics.RecordReceive(false)

	return winner.msg, nil
}

// Acknowledge acknowledges a single message on the sub-consumer owning its
// topic. Fails with ErrConsumerNotActive unless the aggregate state is Active.
func (c *Consumer) Acknowledge(ctx context.Context, msg *types.Message) error {
	return c.execute(ctx, func(ctx context.Context) error {
		sub, err := c.subConsumerFor(msg)
		if err != nil {
			return err
		}
		if err := sub.Acknowledge(ctx, msg); err != nil {
			return err
		}
		c.metrics.RecordAcknowledge("individual")

		return nil
	})
}

// AcknowledgeCumulative acknowledges every message up to and including msg
// on the sub-consumer owning its topic. Fails with ErrConsumerNotActive
// unless the aggregate state is Active.
func (c *Consumer) AcknowledgeCumulative(ctx context.Context, msg *types.Message) error {
	return c.execute(ctx, func(ctx context.Context) error {
		sub, err := c.subConsumerFor(msg)
		if err != nil {
			return err
		}
		if err := sub.AcknowledgeCumulative(ctx, msg); err != nil {
			return err
		}
		c.metrics.RecordAcknowledge("cumulative")

		return nil
	})
}

// RedeliverUnacknowledgedMessages requests redelivery of outstanding messages.
//
// With an explicit message set, the messages are grouped by owning topic and
// redelivery is requested once per distinct sub-consumer, concurrently. With
// no messages, the request is broadcast to every sub-consumer.
func (c *Consumer) RedeliverUnacknowledgedMessages(ctx context.Context, msgs ...*types.Message) error {
	return c.execute(ctx, func(ctx context.Context) error {
		targets := c.subList
		if len(msgs) > 0 {
			seen := make(map[string]struct{}, len(msgs))
			targets = targets[:0:0]
			for _, msg := range msgs {
				if _, ok := seen[msg.Topic]; ok {
					continue
				}
				seen[msg.Topic] = struct{}{}

				sub, err := c.subConsumerFor(msg)
				if err != nil {
					return err
				}
				targets = append(targets, sub)
			}
		}

		err := c.fanOut(ctx, targets, func(ctx context.Context, sub types.SubConsumer) error {
			return sub.RedeliverUnacknowledgedMessages(ctx)
		})
		if err != nil {
			return err
		}
		c.metrics.RecordRedelivery(len(targets))

		return nil
	})
}

// Unsubscribe removes the subscription from every sub-consumer, waiting for
// all of them to complete.
func (c *Consumer) Unsubscribe(ctx context.Context) error {
	return c.execute(ctx, func(ctx context.Context) error {
		return c.fanOut(ctx, c.subList, func(ctx context.Context, sub types.SubConsumer) error {
			return sub.Unsubscribe(ctx)
		})
	})
}

// Seek repositions every sub-consumer to the given message id, then discards
// the pending buffer since buffered pre-seek messages are invalid downstream
// of the new position.
//
// Only the earliest and latest sentinels are accepted: a concrete numeric
// position cannot be meaningfully replicated across independent partitions.
func (c *Consumer) Seek(ctx context.Context, id types.MessageID) error {
	return c.execute(ctx, func(ctx context.Context) error {
		if !id.IsEarliest() && !id.IsLatest() {
			return fmt.Errorf("%w: got %s", ErrIllegalSeekTarget, id)
		}

		err := c.fanOut(ctx, c.subList, func(ctx context.Context, sub types.SubConsumer) error {
			return sub.Seek(ctx, id)
		})
		if err != nil {
			return err
		}

		c.discardPending()
		c.metrics.RecordSeek("message_id")

		return nil
	})
}

// SeekPublishTime repositions every sub-consumer to the given publish time,
// then discards the pending buffer.
func (c *Consumer) SeekPublishTime(ctx context.Context, publishTime time.Time) error {
	return c.execute(ctx, func(ctx context.Context) error {
		err := c.fanOut(ctx, c.subList, func(ctx context.Context, sub types.SubConsumer) error {
			return sub.SeekPublishTime(ctx, publishTime)
		})
		if err != nil {
			return err
		}

		c.discardPending()
		c.metrics.RecordSeek("publish_time")

		return nil
	})
}

// GetLastMessageID returns the last message position of the consumer.
//
// With a single sub-consumer the query is delegated directly. With multiple
// sub-consumers each is queried in turn and the result carries the whole
// topic-to-identifier mapping.
func (c *Consumer) GetLastMessageID(ctx context.Context) (types.LastMessageID, error) {
	var out types.LastMessageID

	err := c.execute(ctx, func(ctx context.Context) error {
		if len(c.subList) == 1 {
			id, err := c.subList[0].GetLastMessageID(ctx)
			if err != nil {
				return err
			}
			out.ID = id

			return nil
		}

		byTopic := make(map[string]types.MessageID, len(c.subList))
		for i, sub := range c.subList {
			id, err := sub.GetLastMessageID(ctx)
			if err != nil {
				return fmt.Errorf("failed to get last message id for %s: %w", c.topics[i], err)
			}
			byTopic[c.topics[i]] = id
		}
		out.ByTopic = byTopic

		return nil
	})

	return out, err
}

// execute wraps a mutating operation with the serialized-execution contract:
// at most one operation of this consumer runs at a time, and each first
// asserts the consumer is neither disposed nor inactive.
func (c *Consumer) execute(ctx context.Context, op types.Operation) error {
	return c.executor.Execute(ctx, c.correlationID.String(), func(ctx context.Context) error {
		if c.closed.Load() {
			return ErrConsumerClosed
		}
		if err := c.Error(); err != nil {
			return err
		}
		if s := c.tracker.State(); s != types.ConsumerStateActive {
			return fmt.Errorf("%w: state is %s", ErrConsumerNotActive, s)
		}

		return op(ctx)
	})
}

// fanOut runs op against every given sub-consumer concurrently, waits for
// all of them, and returns the first failure observed.
func (c *Consumer) fanOut(ctx context.Context, subs []types.SubConsumer, op func(context.Context, types.SubConsumer) error) error {
	if len(subs) == 0 {
		return nil
	}

	errs := make(chan error, len(subs))
	for _, sub := range subs {
		go func(sub types.SubConsumer) {
			errs <- op(ctx, sub)
		}(sub)
	}

	var first error
	for range subs {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}

	return first
}

// subConsumerFor resolves the sub-consumer owning a message's topic by
// exact-match lookup in the registry.
func (c *Consumer) subConsumerFor(msg *types.Message) (types.SubConsumer, error) {
	sub, ok := c.subs[msg.Topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, msg.Topic)
	}

	return sub, nil
}

// discardPending replaces the pending buffer wholesale. Racing drains land
// their messages in the discarded generation.
func (c *Consumer) discardPending() {
	c.pending.Store(newMessageBuffer())
	c.metrics.RecordPendingBufferSize(0)
}

// awaitReady blocks until topic resolution finished, surfacing a stored
// fault or teardown instead of hanging forever.
func (c *Consumer) awaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	if c.closed.Load() {
		return ErrConsumerClosed
	}
	if err := c.Error(); err != nil {
		return err
	}

	return nil
}
