package types

import (
	"context"
	"fmt"
)

// CommandKind tags broker requests and their correlated responses.
type CommandKind int

const (
	// CommandKindSubscribe establishes a subscription on a topic.
	CommandKindSubscribe CommandKind = iota

	// CommandKindLookup resolves the broker owning a topic.
	CommandKindLookup

	// CommandKindPartitionMetadata queries the partition count of a topic.
	CommandKindPartitionMetadata

	// CommandKindGetTopicsOfNamespace lists the topics under a namespace.
	CommandKindGetTopicsOfNamespace
)

// Request is a broker command awaiting a correlated response. The payload
// encoding belongs to the transport layer and is opaque to this library.
type Request struct {
	Kind    CommandKind
	Payload any
}

// Response is the broker reply to a Request, carrying a tagged variant
// matching the request kind.
type Response struct {
	Kind    CommandKind
	Payload any
}

// Expect verifies the response variant matches the expected kind.
func (r Response) Expect(kind CommandKind) error {
	if r.Kind != kind {
		return fmt.Errorf("%w: got kind %d, want %d", ErrUnexpectedResponse, r.Kind, kind)
	}

	return nil
}

// Connection is an established broker connection.
type Connection interface {
	// Send transmits a request and waits for its correlated response.
	Send(ctx context.Context, req Request) (Response, error)

	// Close tears down the connection.
	Close() error
}

// ConnectionProvider hands out broker connections. Pooling and retry policy
// are entirely owned by the implementation.
type ConnectionProvider interface {
	// GetConnection returns a connection to the given service URL.
	GetConnection(ctx context.Context, serviceURL string) (Connection, error)

	// FindConnectionForTopic returns a connection to the broker owning topic.
	FindConnectionForTopic(ctx context.Context, topic string) (Connection, error)
}
