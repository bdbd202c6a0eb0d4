// Package dotpulsar provides the client-side orchestration core of a
// pub/sub consumer: a logical multi-topic, multi-partition consumer that
// transparently fans out to one physical subscription per partition.
//
// The Consumer resolves a topic specification (an explicit topic set or a
// regex pattern over a namespace) into concrete partitioned topics, spawns
// one sub-consumer per partition, merges their lifecycle states into a
// single observable aggregate state, and load-balances message retrieval,
// acknowledgement, redelivery, seek, and unsubscribe across them.
//
// # Quick Start
//
//	cfg := dotpulsar.ConsumerConfig{
//	    Topics:           []string{"persistent://public/default/events"},
//	    SubscriptionName: "my-subscription",
//	}
//
//	consumer, err := dotpulsar.NewConsumer(&cfg, lookup, factory)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer consumer.Close(context.Background())
//
//	msg, err := consumer.Receive(ctx)
//
// # Aggregate State
//
// Each sub-consumer reports its own lifecycle state; the consumer merges
// them continuously:
//
//	Disconnected ⇄ PartiallyActive ⇄ Active
//
// Any sub-consumer reaching ReachedEndOfTopic, Unsubscribed, or Faulted
// moves the whole consumer to that terminal state. Closing the consumer
// forces the Closed terminal state.
//
// # Collaborators
//
// The wire protocol, the per-partition subscription internals, and the
// broker are out of scope: they are consumed through the contracts in the
// types package (LookupService, SubConsumer, ConnectionProvider). The
// library ships working defaults for the cross-cutting pieces (process
// registry, serialized executor, logging, metrics), all replaceable via
// functional options.
package dotpulsar
