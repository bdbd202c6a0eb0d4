package topic

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// namespaceSegment is the allowed character set for tenant, cluster, and
// namespace segments.
var namespaceSegment = regexp.MustCompile(`^[-=:.\w]+$`)

// NamespaceName is an immutable, validated namespace identifier.
//
// The v2 form is "tenant/namespace"; the legacy form carries a cluster
// segment as "tenant/cluster/namespace".
type NamespaceName struct {
	tenant  string
	cluster string
	local   string
	v2      bool
	name    string
}

// ParseNamespace parses a raw namespace name in either form.
//
// Returns:
//   - NamespaceName: Parsed identifier
//   - error: ErrInvalidNamespace wrapping the cause, nil if valid
func ParseNamespace(raw string) (NamespaceName, error) {
	parts := strings.Split(raw, "/")

	var (
		ns  NamespaceName
		err error
	)

	switch len(parts) {
	case 2:
		ns, err = NewNamespaceName(parts[0], parts[1])
	case 3:
		ns, err = NewNamespaceNameWithCluster(parts[0], parts[1], parts[2])
	default:
		err = fmt.Errorf("expected tenant/namespace or tenant/cluster/namespace, got %d segments", len(parts))
	}

	if err != nil {
		// The builders already wrap with ErrInvalidNamespace; avoid doubling up.
		if errors.Is(err, ErrInvalidNamespace) {
			return NamespaceName{}, err
		}

		return NamespaceName{}, invalidNamespace(raw, err)
	}

	return ns, nil
}

// NewNamespaceName constructs a v2 namespace identifier from its segments,
// validating each with the same rule as ParseNamespace.
func NewNamespaceName(tenant, namespace string) (NamespaceName, error) {
	if err := checkSegment("tenant", tenant); err != nil {
		return NamespaceName{}, invalidNamespace(tenant+"/"+namespace, err)
	}
	if err := checkSegment("namespace", namespace); err != nil {
		return NamespaceName{}, invalidNamespace(tenant+"/"+namespace, err)
	}

	return NamespaceName{
		tenant: tenant,
		local:  namespace,
		v2:     true,
		name:   tenant + "/" + namespace,
	}, nil
}

// NewNamespaceNameWithCluster constructs a legacy namespace identifier from
// its segments, validating each with the same rule as ParseNamespace.
func NewNamespaceNameWithCluster(tenant, cluster, namespace string) (NamespaceName, error) {
	raw := tenant + "/" + cluster + "/" + namespace
	if err := checkSegment("tenant", tenant); err != nil {
		return NamespaceName{}, invalidNamespace(raw, err)
	}
	if err := checkSegment("cluster", cluster); err != nil {
		return NamespaceName{}, invalidNamespace(raw, err)
	}
	if err := checkSegment("namespace", namespace); err != nil {
		return NamespaceName{}, invalidNamespace(raw, err)
	}

	return NamespaceName{
		tenant:  tenant,
		cluster: cluster,
		local:   namespace,
		name:    raw,
	}, nil
}

// Tenant returns the tenant segment.
func (n NamespaceName) Tenant() string { return n.tenant }

// Cluster returns the cluster segment ("" for the v2 form).
func (n NamespaceName) Cluster() string { return n.cluster }

// Local returns the namespace segment under the tenant.
func (n NamespaceName) Local() string { return n.local }

// IsV2 reports whether the identifier uses the cluster-less v2 form.
func (n NamespaceName) IsV2() bool { return n.v2 }

// String returns the canonical "tenant/namespace" or
// "tenant/cluster/namespace" form.
func (n NamespaceName) String() string { return n.name }

// checkSegment validates one path segment against the allowed character set.
func checkSegment(kind, segment string) error {
	if segment == "" {
		return fmt.Errorf("%s segment is empty", kind)
	}
	if !namespaceSegment.MatchString(segment) {
		return fmt.Errorf("%s segment %q contains disallowed characters", kind, segment)
	}

	return nil
}

func invalidNamespace(raw string, cause error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidNamespace, raw, cause)
}
