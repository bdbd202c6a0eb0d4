// Package consumertest provides in-memory fakes for exercising consumer
// orchestration without a broker: a state-driven sub-consumer whose lifecycle
// is steered by the test, and a scripted lookup service with canned partition
// counts and namespace listings.
package consumertest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nodece/pulsar-dotpulsar/state"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// SubConsumer is a fake sub-consumer driven entirely by the test. Its
// lifecycle state lives in a tracker the test transitions explicitly, and
// messages are delivered by pushing them through Deliver.
type SubConsumer struct {
	topic   string
	tracker *state.Tracker[types.ConsumerState]

	inbox chan *types.Message

	mu       sync.Mutex
	acked    []types.MessageID
	cumAcked []types.MessageID

	redeliverCalls int
	unsubscribed   bool
	closed         bool

	lastMessageID types.MessageID
	seekTargets   []types.MessageID
	seekTimes     []time.Time

	receiveErr error
	opErr      error
}

var _ types.SubConsumer = (*SubConsumer)(nil)

// NewSubConsumer returns a fake sub-consumer for the given topic, reporting
// state through the given tracker.
func NewSubConsumer(topic string, tracker *state.Tracker[types.ConsumerState]) *SubConsumer {
	return &SubConsumer{
		topic:   topic,
		tracker: tracker,
		inbox:   make(chan *types.Message, 128),
	}
}

// Deliver queues a message for a subsequent Receive call.
func (s *SubConsumer) Deliver(msg *types.Message) {
	s.inbox <- msg
}

// SetReceiveError makes every subsequent Receive fail with err.
func (s *SubConsumer) SetReceiveError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receiveErr = err
}

// SetOperationError makes acknowledge, redeliver, unsubscribe and seek calls
// fail with err.
func (s *SubConsumer) SetOperationError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opErr = err
}

// SetLastMessageID sets the identifier returned by GetLastMessageID.
func (s *SubConsumer) SetLastMessageID(id types.MessageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessageID = id
}

// Transition moves the fake into the given lifecycle state.
func (s *SubConsumer) Transition(to types.ConsumerState) {
	s.tracker.SetState(to)
}

// Acked returns the individually acknowledged message identifiers.
func (s *SubConsumer) Acked() []types.MessageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]types.MessageID(nil), s.acked...)
}

// CumulativelyAcked returns the cumulatively acknowledged identifiers.
func (s *SubConsumer) CumulativelyAcked() []types.MessageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]types.MessageID(nil), s.cumAcked...)
}

// RedeliverCalls returns how many redelivery requests were issued.
func (s *SubConsumer) RedeliverCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.redeliverCalls
}

// Unsubscribed reports whether Unsubscribe was called.
func (s *SubConsumer) Unsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unsubscribed
}

// Closed reports whether Close was called.
func (s *SubConsumer) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// SeekTargets returns the message-id seek targets received so far.
func (s *SubConsumer) SeekTargets() []types.MessageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]types.MessageID(nil), s.seekTargets...)
}

// SeekTimes returns the publish-time seek targets received so far.
func (s *SubConsumer) SeekTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]time.Time(nil), s.seekTimes...)
}

func (s *SubConsumer) Topic() string { return s.topic }

func (s *SubConsumer) State() types.ConsumerState { return s.tracker.State() }

func (s *SubConsumer) WaitUntil(ctx context.Context, want types.ConsumerState) (types.ConsumerState, error) {
	return s.tracker.WaitUntil(ctx, want)
}

func (s *SubConsumer) WaitUntilChangedFrom(ctx context.Context, have types.ConsumerState) (types.ConsumerState, error) {
	return s.tracker.WaitUntilChangedFrom(ctx, have)
}

func (s *SubConsumer) Receive(ctx context.Context) (*types.Message, error) {
	s.mu.Lock()
	err := s.receiveErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case msg := <-s.inbox:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *SubConsumer) Acknowledge(_ context.Context, msg *types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return s.opErr
	}
	s.acked = append(s.acked, msg.ID)

	return nil
}

func (s *SubConsumer) AcknowledgeCumulative(_ context.Context, msg *types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return s.opErr
	}
	s.cumAcked = append(s.cumAcked, msg.ID)

	return nil
}

func (s *SubConsumer) RedeliverUnacknowledgedMessages(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return s.opErr
	}
	s.redeliverCalls++

	return nil
}

func (s *SubConsumer) Unsubscribe(_ context.Context) error {
	s.mu.Lock()
	if s.opErr != nil {
		s.mu.Unlock()

		return s.opErr
	}
	s.unsubscribed = true
	s.mu.Unlock()

	s.tracker.SetState(types.ConsumerStateUnsubscribed)

	return nil
}

func (s *SubConsumer) Seek(_ context.Context, id types.MessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return s.opErr
	}
	s.seekTargets = append(s.seekTargets, id)

	return nil
}

func (s *SubConsumer) SeekPublishTime(_ context.Context, publishTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return s.opErr
	}
	s.seekTimes = append(s.seekTimes, publishTime)

	return nil
}

func (s *SubConsumer) GetLastMessageID(_ context.Context) (types.MessageID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opErr != nil {
		return types.MessageID{}, s.opErr
	}

	return s.lastMessageID, nil
}

func (s *SubConsumer) Close(_ context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.tracker.SetState(types.ConsumerStateClosed)

	return nil
}

// LookupService is a scripted lookup with canned partition counts per topic
// and canned topic listings per namespace.
type LookupService struct {
	mu sync.Mutex

	partitions map[string]uint32
	namespaces map[string][]string

	partitionErr error
	namespaceErr error
}

var _ types.LookupService = (*LookupService)(nil)

// NewLookupService returns an empty scripted lookup. Topics without a
// scripted count resolve as non-partitioned.
func NewLookupService() *LookupService {
	return &LookupService{
		partitions: make(map[string]uint32),
		namespaces: make(map[string][]string),
	}
}

// SetPartitionCount scripts the partition count for a canonical topic name.
func (l *LookupService) SetPartitionCount(topic string, count uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.partitions[topic] = count
}

// SetNamespaceTopics scripts the topic listing for a namespace.
func (l *LookupService) SetNamespaceTopics(namespace string, topics []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.namespaces[namespace] = append([]string(nil), topics...)
}

// FailPartitionLookups makes GetPartitionCount fail with err.
func (l *LookupService) FailPartitionLookups(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.partitionErr = err
}

// FailNamespaceLookups makes GetTopicsOfNamespace fail with err.
func (l *LookupService) FailNamespaceLookups(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.namespaceErr = err
}

func (l *LookupService) GetPartitionCount(_ context.Context, topic string) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.partitionErr != nil {
		return 0, l.partitionErr
	}

	return l.partitions[topic], nil
}

func (l *LookupService) GetTopicsOfNamespace(_ context.Context, namespace string, _ types.RegexSubscriptionMode) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.namespaceErr != nil {
		return nil, l.namespaceErr
	}
	topics, ok := l.namespaces[namespace]
	if !ok {
		return nil, fmt.Errorf("no topics scripted for namespace %q", namespace)
	}

	return append([]string(nil), topics...), nil
}
