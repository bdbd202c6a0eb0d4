package topic

import (
	"fmt"
	"strconv"
	"strings"
)

// Domain is the persistence domain of a topic.
type Domain string

const (
	// DomainPersistent marks topics whose messages are durably stored.
	DomainPersistent Domain = "persistent"

	// DomainNonPersistent marks topics whose messages are never stored.
	DomainNonPersistent Domain = "non-persistent"
)

const (
	schemeSeparator = "://"
	partitionMarker = "-partition-"

	defaultTenant    = "public"
	defaultNamespace = "default"
)

// TopicName is an immutable, validated, canonicalized topic identifier.
type TopicName struct {
	domain    Domain
	tenant    string
	cluster   string
	nsLocal   string
	local     string
	partition int
	namespace NamespaceName
	name      string
}

// ParseTopic parses a raw topic name.
//
// Accepted inputs:
//   - "t"                                   → persistent://public/default/t
//   - "tenant/ns/t"                         → persistent://tenant/ns/t
//   - "persistent://tenant/ns/t"            (v2 form)
//   - "scheme://tenant/cluster/ns/t"        (legacy form)
//
// A scheme other than "persistent" is normalized to the non-persistent
// domain rather than rejected. A trailing "-partition-<n>" suffix is
// recovered as the partition index only when rendering n back to decimal
// text reproduces the suffix exactly; otherwise the topic is treated as not
// partitioned. Every malformed input fails with ErrInvalidTopicName wrapping
// the cause.
//
// Returns:
//   - TopicName: Parsed identifier whose String() is the canonical form
//   - error: ErrInvalidTopicName wrapping the cause, nil if valid
func ParseTopic(raw string) (TopicName, error) {
	full := raw
	if !strings.Contains(full, schemeSeparator) {
		expanded, err := expandShortForm(full)
		if err != nil {
			return TopicName{}, invalidTopic(raw, err)
		}
		full = expanded
	}

	idx := strings.Index(full, schemeSeparator)
	prefix, rest := full[:idx], full[idx+len(schemeSeparator):]

	// Unrecognized prefixes deliberately fall back to the non-persistent
	// domain instead of failing.
	domain := DomainNonPersistent
	if prefix == string(DomainPersistent) {
		domain = DomainPersistent
	}

	parts := strings.SplitN(rest, "/", 4)

	var (
		tn  TopicName
		err error
	)

	switch len(parts) {
	case 3:
		tn, err = newTopicName(domain, parts[0], "", parts[1], parts[2])
	case 4:
		tn, err = newTopicName(domain, parts[0], parts[1], parts[2], parts[3])
	default:
		err = fmt.Errorf("expected tenant/namespace/topic or tenant/cluster/namespace/topic after scheme, got %d segments", len(parts))
	}

	if err != nil {
		return TopicName{}, invalidTopic(raw, err)
	}

	tn.partition = extractPartitionIndex(full)

	return tn, nil
}

// newTopicName validates the segments, synthesizes the namespace identifier,
// and recomputes the canonical string.
func newTopicName(domain Domain, tenant, cluster, nsLocal, local string) (TopicName, error) {
	if local == "" {
		return TopicName{}, fmt.Errorf("topic name segment is empty")
	}

	var (
		ns  NamespaceName
		err error
	)
	if cluster == "" {
		ns, err = NewNamespaceName(tenant, nsLocal)
	} else {
		ns, err = NewNamespaceNameWithCluster(tenant, cluster, nsLocal)
	}
	if err != nil {
		return TopicName{}, err
	}

	return TopicName{
		domain:    domain,
		tenant:    tenant,
		cluster:   cluster,
		nsLocal:   nsLocal,
		local:     local,
		partition: -1,
		namespace: ns,
		name:      string(domain) + schemeSeparator + ns.String() + "/" + local,
	}, nil
}

// expandShortForm expands "t" and "tenant/ns/t" into fully qualified names.
func expandShortForm(short string) (string, error) {
	parts := strings.Split(short, "/")
	switch len(parts) {
	case 1:
		return string(DomainPersistent) + schemeSeparator + defaultTenant + "/" + defaultNamespace + "/" + short, nil
	case 3:
		return string(DomainPersistent) + schemeSeparator + short, nil
	default:
		return "", fmt.Errorf("short topic name must have 1 or 3 segments, got %d", len(parts))
	}
}

// extractPartitionIndex recovers the partition index from a "-partition-<n>"
// suffix of the full topic string.
//
// The decimal digits must round-trip exactly: "-partition-01" and
// "-partition--5" both yield -1, as does any non-numeric suffix. A topic
// whose local name legitimately contains the marker is then simply treated
// as not partitioned, which is indistinguishable from an unparseable suffix
// on purpose.
func extractPartitionIndex(full string) int {
	idx := strings.LastIndex(full, partitionMarker)
	if idx < 0 {
		return -1
	}

	suffix := full[idx+len(partitionMarker):]
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 || strconv.Itoa(n) != suffix {
		return -1
	}

	return n
}

// Domain returns the persistence domain.
func (t TopicName) Domain() Domain { return t.domain }

// Tenant returns the tenant segment.
func (t TopicName) Tenant() string { return t.tenant }

// Cluster returns the cluster segment ("" for the v2 form).
func (t TopicName) Cluster() string { return t.cluster }

// Namespace returns the namespace identifier the topic belongs to.
func (t TopicName) Namespace() NamespaceName { return t.namespace }

// LocalName returns the topic segment under the namespace.
func (t TopicName) LocalName() string { return t.local }

// PartitionIndex returns the recovered partition index, or -1 when the topic
// is not partitioned.
func (t TopicName) PartitionIndex() int { return t.partition }

// IsPartitioned reports whether a partition index was recovered.
func (t TopicName) IsPartitioned() bool { return t.partition >= 0 }

// PartitionTopic renders the concrete topic name of partition i of this topic.
func (t TopicName) PartitionTopic(i int) string {
	return t.name + partitionMarker + strconv.Itoa(i)
}

// String returns the canonical fully qualified form.
func (t TopicName) String() string { return t.name }

func invalidTopic(raw string, cause error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidTopicName, raw, cause)
}
