package topic

import "errors"

// Parse errors for topic and namespace names.

// ErrInvalidTopicName is returned for any malformed topic name. It always
// wraps the underlying cause and carries the raw input in its message.
var ErrInvalidTopicName = errors.New("invalid topic name")

// ErrInvalidNamespace is returned for any malformed namespace name. It always
// wraps the underlying cause and carries the raw input in its message.
var ErrInvalidNamespace = errors.New("invalid namespace name")
