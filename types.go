package dotpulsar

import "github.com/nodece/pulsar-dotpulsar/types"

// Re-export types from the types package.
//
// This file provides a stable, convenient public API for the library's core
// types and interfaces. It uses type aliases to re-export definitions from
// the `types` subpackage, which contains the actual declarations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root dotpulsar
// package, while still providing `dotpulsar.Message`, `dotpulsar.Logger`,
// etc. for users.
type (
	ConsumerState    = types.ConsumerState
	Message          = types.Message
	MessageID        = types.MessageID
	LastMessageID    = types.LastMessageID
	SubscribeCommand = types.SubscribeCommand
	Process          = types.Process
)

// Re-export interfaces from the types package for convenience.
type (
	SubConsumer      = types.SubConsumer
	StateWaiter      = types.StateWaiter
	LookupService    = types.LookupService
	ProcessRegistry  = types.ProcessRegistry
	Executor         = types.Executor
	ExceptionHandler = types.ExceptionHandler
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export enumerations from the types package.
type (
	SubscriptionType      = types.SubscriptionType
	InitialPosition       = types.InitialPosition
	RegexSubscriptionMode = types.RegexSubscriptionMode
)

// Re-export ConsumerState constants from the types package.
const (
	ConsumerStateDisconnected      = types.ConsumerStateDisconnected
	ConsumerStatePartiallyActive   = types.ConsumerStatePartiallyActive
	ConsumerStateActive            = types.ConsumerStateActive
	ConsumerStateReachedEndOfTopic = types.ConsumerStateReachedEndOfTopic
	ConsumerStateUnsubscribed      = types.ConsumerStateUnsubscribed
	ConsumerStateFaulted           = types.ConsumerStateFaulted
	ConsumerStateClosed            = types.ConsumerStateClosed
)

// Re-export subscription enumeration constants from the types package.
const (
	SubscriptionTypeExclusive = types.SubscriptionTypeExclusive
	SubscriptionTypeShared    = types.SubscriptionTypeShared
	SubscriptionTypeFailover  = types.SubscriptionTypeFailover
	SubscriptionTypeKeyShared = types.SubscriptionTypeKeyShared

	InitialPositionLatest   = types.InitialPositionLatest
	InitialPositionEarliest = types.InitialPositionEarliest

	RegexSubscriptionModePersistent    = types.RegexSubscriptionModePersistent
	RegexSubscriptionModeNonPersistent = types.RegexSubscriptionModeNonPersistent
	RegexSubscriptionModeAll           = types.RegexSubscriptionModeAll
)
