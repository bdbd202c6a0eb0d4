// Package registry provides the default in-memory implementation of
// types.ProcessRegistry.
package registry

import (
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/nodece/pulsar-dotpulsar/types"
)

// InMemory tracks sub-consumer processes in a concurrent map.
//
// It observes lifecycles only: it never disposes the sub-consumers it holds.
type InMemory struct {
	processes *xsync.MapOf[uuid.UUID, types.Process]
}

// Compile-time assertion that InMemory implements ProcessRegistry.
var _ types.ProcessRegistry = (*InMemory)(nil)

// NewInMemory creates a new in-memory process registry.
func NewInMemory() *InMemory {
	return &InMemory{
		processes: xsync.NewMapOf[uuid.UUID, types.Process](),
	}
}

// Add registers a process for supervision.
func (r *InMemory) Add(process types.Process) {
	r.processes.Store(process.CorrelationID, process)
}

// Remove drops a process from supervision.
func (r *InMemory) Remove(correlationID uuid.UUID) {
	r.processes.Delete(correlationID)
}

// Get returns the tracked process for a correlation ID.
func (r *InMemory) Get(correlationID uuid.UUID) (types.Process, bool) {
	return r.processes.Load(correlationID)
}

// Len returns the number of tracked processes.
func (r *InMemory) Len() int {
	return r.processes.Size()
}

// Range iterates over tracked processes until fn returns false.
func (r *InMemory) Range(fn func(types.Process) bool) {
	r.processes.Range(func(_ uuid.UUID, p types.Process) bool {
		return fn(p)
	})
}
