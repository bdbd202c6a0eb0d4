// Package types provides core type definitions and interfaces for the
// dotpulsar library.
//
// This package contains shared types that are used across multiple packages
// in the library. By keeping these types in a separate package, we avoid
// import cycles between the main dotpulsar package and its internal
// implementations.
//
// Key types:
//   - ConsumerState: Consumer lifecycle state
//   - Message / MessageID: Received message and its position
//   - SubConsumer: Contract of a single-topic subscription
//   - LookupService: Topic discovery and partition metadata contract
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
