package consumertest

import (
	"context"
	"sync"

	"github.com/nodece/pulsar-dotpulsar/state"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// Factory creates fake sub-consumers and remembers every one it produced,
// keyed by topic, so tests can steer their lifecycles afterwards.
type Factory struct {
	mu      sync.Mutex
	created map[string]*SubConsumer
	order   []*SubConsumer

	createErr error
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{created: make(map[string]*SubConsumer)}
}

// FailCreation makes every subsequent CreateSubConsumer fail with err.
func (f *Factory) FailCreation(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createErr = err
}

// CreateSubConsumer builds a fake sub-consumer bound to the given tracker.
func (f *Factory) CreateSubConsumer(_ context.Context, cmd types.SubscribeCommand, tracker *state.Tracker[types.ConsumerState]) (types.SubConsumer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}

	sub := NewSubConsumer(cmd.Topic, tracker)
	f.created[cmd.Topic] = sub
	f.order = append(f.order, sub)

	return sub, nil
}

// Get returns the fake created for the given concrete topic, or nil.
func (f *Factory) Get(topic string) *SubConsumer {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.created[topic]
}

// All returns every created fake in creation order.
func (f *Factory) All() []*SubConsumer {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*SubConsumer(nil), f.order...)
}

// ActivateAll transitions every created fake to Active.
func (f *Factory) ActivateAll() {
	for _, sub := range f.All() {
		sub.Transition(types.ConsumerStateActive)
	}
}
