// Package logger provides no-op and test implementations of types.Logger.
package logger

import "github.com/nodece/pulsar-dotpulsar/types"

// NopLogger implements a no-op logger that discards all messages.
//
// Used as the default when no logger is injected, avoiding nil checks at
// every log site.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(msg string, keysAndValues ...any) {}

// Info discards the message.
func (l *NopLogger) Info(msg string, keysAndValues ...any) {}

// Warn discards the message.
func (l *NopLogger) Warn(msg string, keysAndValues ...any) {}

// Error discards the message.
func (l *NopLogger) Error(msg string, keysAndValues ...any) {}

// Fatal discards the message. Unlike real loggers it does not exit.
func (l *NopLogger) Fatal(msg string, keysAndValues ...any) {}
