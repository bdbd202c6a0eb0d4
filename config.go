package dotpulsar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nodece/pulsar-dotpulsar/topic"
	"github.com/nodece/pulsar-dotpulsar/types"
)

// ConsumerConfig configures a multi-topic Consumer.
//
// Exactly one of Topics or TopicsPattern must be set. Topics subscribes to
// an explicit set of topic names (short or fully qualified forms are both
// accepted). TopicsPattern subscribes to every topic of a namespace whose
// domain-stripped name matches the pattern; the pattern itself is written as
// a topic name whose local part is a regular expression, e.g.
// "persistent://public/default/events-.*".
type ConsumerConfig struct {
	// Topics is the explicit set of topics to subscribe to.
	Topics []string `yaml:"topics"`

	// TopicsPattern discovers topics by regex under the pattern's namespace.
	TopicsPattern string `yaml:"topicsPattern"`

	// RegexSubscriptionMode filters discovered topics by persistence domain.
	// Only used with TopicsPattern.
	RegexSubscriptionMode types.RegexSubscriptionMode `yaml:"regexSubscriptionMode"`

	// SubscriptionName names the subscription on the broker. Required.
	SubscriptionName string `yaml:"subscriptionName"`

	// SubscriptionType selects the message distribution mode.
	SubscriptionType types.SubscriptionType `yaml:"subscriptionType"`

	// ConsumerName identifies this consumer on the subscription.
	// A unique name is generated when empty.
	ConsumerName string `yaml:"consumerName"`

	// InitialPosition selects where a brand-new subscription starts reading.
	InitialPosition types.InitialPosition `yaml:"initialPosition"`

	// PriorityLevel gives shared-subscription dispatch priority (lower is
	// higher priority).
	PriorityLevel int32 `yaml:"priorityLevel"`

	// ReadCompacted reads from the compacted topic view when available.
	ReadCompacted bool `yaml:"readCompacted"`
}

// DefaultConsumerConfig returns a configuration with default values.
//
// Topic selection and SubscriptionName are deliberately left empty: there is
// no library-wide default topic set, callers always choose explicitly.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		RegexSubscriptionMode: types.RegexSubscriptionModePersistent,
		SubscriptionType:      types.SubscriptionTypeExclusive,
		InitialPosition:       types.InitialPositionLatest,
	}
}

// Validate checks configuration constraints and returns an error for invalid
// values.
//
// Hard validation rules:
//   - Exactly one of Topics / TopicsPattern is set
//   - SubscriptionName is non-empty
//   - Every explicit topic parses
//   - TopicsPattern parses as a topic name and compiles as a regex
//   - PriorityLevel is non-negative
func (cfg *ConsumerConfig) Validate() error {
	if len(cfg.Topics) > 0 && cfg.TopicsPattern != "" {
		return fmt.Errorf("%w: Topics and TopicsPattern are mutually exclusive", ErrInvalidConfig)
	}
	if len(cfg.Topics) == 0 && cfg.TopicsPattern == "" {
		return fmt.Errorf("%w: one of Topics or TopicsPattern is required", ErrInvalidConfig)
	}
	if cfg.SubscriptionName == "" {
		return fmt.Errorf("%w: SubscriptionName is required", ErrInvalidConfig)
	}
	if cfg.PriorityLevel < 0 {
		return fmt.Errorf("%w: PriorityLevel must be >= 0, got %d", ErrInvalidConfig, cfg.PriorityLevel)
	}

	for _, t := range cfg.Topics {
		if _, err := topic.ParseTopic(t); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if cfg.TopicsPattern != "" {
		if _, _, err := cfg.compilePattern(); err != nil {
			return err
		}
	}

	return nil
}

// compilePattern parses TopicsPattern as a topic name and compiles the
// domain-stripped canonical form as the discovery regex.
//
// Returns:
//   - topic.TopicName: Parsed pattern carrying the namespace to list
//   - *regexp.Regexp: Compiled regex applied to candidates' domain-stripped names
//   - error: ErrInvalidConfig wrapping the cause
func (cfg *ConsumerConfig) compilePattern() (topic.TopicName, *regexp.Regexp, error) {
	tn, err := topic.ParseTopic(cfg.TopicsPattern)
	if err != nil {
		return topic.TopicName{}, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	stripped := strings.TrimPrefix(tn.String(), string(tn.Domain())+"://")
	re, err := regexp.Compile("^" + stripped + "$")
	if err != nil {
		return topic.TopicName{}, nil, fmt.Errorf("%w: TopicsPattern does not compile: %w", ErrInvalidConfig, err)
	}

	return tn, re, nil
}
