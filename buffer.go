package dotpulsar

import (
	"sync"

	"github.com/nodece/pulsar-dotpulsar/types"
)

// messageBuffer is the pending-message queue holding messages that won a
// receive race but were not yet handed to a caller.
//
// It is a plain FIFO guarded by a mutex, safe for concurrent producers and
// consumers. Seek replaces the whole buffer instead of clearing it, so an
// in-flight drain racing a seek lands its messages in the discarded
// generation where they are dropped together with the rest.
type messageBuffer struct {
	mu   sync.Mutex
	msgs []*types.Message
}

func newMessageBuffer() *messageBuffer {
	return &messageBuffer{}
}

// push appends a message, preserving arrival order.
func (b *messageBuffer) push(msg *types.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.msgs = append(b.msgs, msg)
}

// pop removes and returns the oldest message, if any.
func (b *messageBuffer) pop() (*types.Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.msgs) == 0 {
		return nil, false
	}

	msg := b.msgs[0]
	b.msgs = b.msgs[1:]

	return msg, true
}

// size returns the current depth.
func (b *messageBuffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.msgs)
}
