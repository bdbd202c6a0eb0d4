package topic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTopic(t *testing.T) {
	t.Run("expands bare topic name", func(t *testing.T) {
		tn, err := ParseTopic("events")
		require.NoError(t, err)
		require.Equal(t, "persistent://public/default/events", tn.String())
		require.Equal(t, DomainPersistent, tn.Domain())
		require.Equal(t, "public", tn.Tenant())
		require.Equal(t, "events", tn.LocalName())
		require.False(t, tn.IsPartitioned())
		require.Equal(t, -1, tn.PartitionIndex())
	})

	t.Run("expands three-segment short form", func(t *testing.T) {
		tn, err := ParseTopic("acme/orders/created")
		require.NoError(t, err)
		require.Equal(t, "persistent://acme/orders/created", tn.String())
		require.Equal(t, "acme", tn.Tenant())
		require.Equal(t, "acme/orders", tn.Namespace().String())
	})

	t.Run("parses fully qualified v2 form", func(t *testing.T) {
		tn, err := ParseTopic("persistent://acme/orders/created")
		require.NoError(t, err)
		require.Equal(t, "persistent://acme/orders/created", tn.String())
		require.Empty(t, tn.Cluster())
		require.True(t, tn.Namespace().IsV2())
	})

	t.Run("parses legacy four-segment form", func(t *testing.T) {
		tn, err := ParseTopic("persistent://acme/us-west/orders/created")
		require.NoError(t, err)
		require.Equal(t, "persistent://acme/us-west/orders/created", tn.String())
		require.Equal(t, "us-west", tn.Cluster())
		require.Equal(t, "acme/us-west/orders", tn.Namespace().String())
		require.False(t, tn.Namespace().IsV2())
	})

	t.Run("normalizes non-persistent scheme", func(t *testing.T) {
		tn, err := ParseTopic("non-persistent://acme/orders/created")
		require.NoError(t, err)
		require.Equal(t, DomainNonPersistent, tn.Domain())
		require.Equal(t, "non-persistent://acme/orders/created", tn.String())
	})

	t.Run("normalizes unknown scheme to non-persistent", func(t *testing.T) {
		tn, err := ParseTopic("bogus://acme/orders/created")
		require.NoError(t, err)
		require.Equal(t, DomainNonPersistent, tn.Domain())
		require.Equal(t, "non-persistent://acme/orders/created", tn.String())
	})

	t.Run("legacy local name may contain slashes", func(t *testing.T) {
		tn, err := ParseTopic("persistent://acme/us-west/orders/a/b")
		require.NoError(t, err)
		require.Equal(t, "us-west", tn.Cluster())
		require.Equal(t, "a/b", tn.LocalName())
		require.Equal(t, "persistent://acme/us-west/orders/a/b", tn.String())
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"two segments", "acme/created"},
			{"four segments short", "a/b/c/d"},
			{"empty tenant", "persistent:///orders/created"},
			{"disallowed tenant chars", "persistent://ac me/orders/created"},
			{"empty local name", "persistent://acme/orders/"},
			{"only scheme", "persistent://"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseTopic(tt.raw)
				require.ErrorIs(t, err, ErrInvalidTopicName)
			})
		}
	})
}

func TestPartitionIndexRecovery(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		index int
	}{
		{"plain partition suffix", "persistent://acme/orders/created-partition-5", 5},
		{"zero index", "persistent://acme/orders/created-partition-0", 0},
		{"large index", "persistent://acme/orders/created-partition-128", 128},
		{"leading zeros do not round-trip", "persistent://acme/orders/created-partition-01", -1},
		{"negative index rejected", "persistent://acme/orders/created-partition--5", -1},
		{"non-numeric suffix", "persistent://acme/orders/created-partition-x", -1},
		{"empty suffix", "persistent://acme/orders/created-partition-", -1},
		{"no marker at all", "persistent://acme/orders/created", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn, err := ParseTopic(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.index, tn.PartitionIndex())
			require.Equal(t, tt.index >= 0, tn.IsPartitioned())
		})
	}
}

func TestPartitionTopic(t *testing.T) {
	tn, err := ParseTopic("acme/orders/created")
	require.NoError(t, err)

	concrete := tn.PartitionTopic(3)
	require.Equal(t, "persistent://acme/orders/created-partition-3", concrete)

	// The rendered partition topic parses back with the same index.
	back, err := ParseTopic(concrete)
	require.NoError(t, err)
	require.Equal(t, 3, back.PartitionIndex())
}

func TestParseTopicCanonicalIdempotence(t *testing.T) {
	inputs := []string{
		"events",
		"acme/orders/created",
		"persistent://acme/orders/created",
		"non-persistent://acme/orders/created",
		"persistent://acme/us-west/orders/created",
		"persistent://acme/orders/created-partition-2",
	}

	for _, raw := range inputs {
		tn, err := ParseTopic(raw)
		require.NoError(t, err)

		again, err := ParseTopic(tn.String())
		require.NoError(t, err)
		require.Equal(t, tn.String(), again.String())
		require.Equal(t, tn.PartitionIndex(), again.PartitionIndex())
	}
}
