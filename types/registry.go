package types

import "github.com/google/uuid"

// Process bundles everything the supervision layer needs to track one
// sub-consumer: its correlation identity, its observable state, the
// sub-consumer itself, and whether the owning subscription is of failover
// type (which affects external supervision policy only).
type Process struct {
	// CorrelationID is the identity shared with the SubscribeCommand.
	CorrelationID uuid.UUID

	// Topic is the concrete topic the sub-consumer is bound to.
	Topic string

	// SubConsumer is the supervised subscription.
	SubConsumer SubConsumer

	// IsFailoverSubscription marks failover-type subscriptions for the
	// supervisor; it never influences consumer logic.
	IsFailoverSubscription bool
}

// ProcessRegistry tracks active sub-consumer processes for cross-cutting
// supervision. The registry observes lifecycles; it never owns message-path
// state and never disposes the sub-consumers it tracks.
type ProcessRegistry interface {
	// Add registers a process for supervision.
	Add(process Process)

	// Remove drops a process from supervision.
	Remove(correlationID uuid.UUID)
}
