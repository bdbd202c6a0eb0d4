package dotpulsar

import (
	"log/slog"

	"github.com/nodece/pulsar-dotpulsar/internal/logging"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// Option configures a Consumer with optional dependencies.
type Option func(*consumerOptions)

// consumerOptions holds optional Consumer configuration.
type consumerOptions struct {
	logger           types.Logger
	metrics          types.MetricsCollector
	registry         types.ProcessRegistry
	executor         types.Executor
	exceptionHandler types.ExceptionHandler
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	consumer, err := dotpulsar.NewConsumer(&cfg, lookup, factory, dotpulsar.WithLogger(logger))
func WithLogger(logger types.Logger) Option {
	return func(o *consumerOptions) {
		o.logger = logger
	}
}

// WithSlogLogger sets a logger backed by the given slog.Logger.
//
// Parameters:
//   - logger: Underlying slog.Logger (slog.Default() when nil)
func WithSlogLogger(logger *slog.Logger) Option {
	if logger == nil {
		return WithLogger(logging.NewSlogDefault())
	}

	return WithLogger(logging.NewSlog(logger))
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *consumerOptions) {
		o.metrics = metrics
	}
}

// WithProcessRegistry sets the registry tracking sub-consumer processes for
// cross-cutting supervision. The registry observes lifecycles only; the
// Consumer keeps exclusive ownership of sub-consumer disposal.
//
// Parameters:
//   - registry: ProcessRegistry implementation
func WithProcessRegistry(registry types.ProcessRegistry) Option {
	return func(o *consumerOptions) {
		o.registry = registry
	}
}

// WithExecutor sets the executor serializing the consumer's mutating
// operations. The default stripe-locks on the consumer's correlation
// identity; inject a shared executor to serialize across consumers.
//
// Parameters:
//   - executor: Executor implementation
func WithExecutor(executor types.Executor) Option {
	return func(o *consumerOptions) {
		o.executor = executor
	}
}

// WithExceptionHandler sets the hook receiving otherwise-unobserved failures
// for out-of-band diagnostics. The hook never influences control flow.
//
// Parameters:
//   - handler: ExceptionHandler function
func WithExceptionHandler(handler types.ExceptionHandler) Option {
	return func(o *consumerOptions) {
		o.exceptionHandler = handler
	}
}
