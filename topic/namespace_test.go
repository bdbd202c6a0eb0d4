package topic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNamespace(t *testing.T) {
	t.Run("parses v2 form", func(t *testing.T) {
		ns, err := ParseNamespace("acme/orders")
		require.NoError(t, err)
		require.Equal(t, "acme", ns.Tenant())
		require.Equal(t, "orders", ns.Local())
		require.Empty(t, ns.Cluster())
		require.True(t, ns.IsV2())
		require.Equal(t, "acme/orders", ns.String())
	})

	t.Run("parses legacy form", func(t *testing.T) {
		ns, err := ParseNamespace("acme/us-west/orders")
		require.NoError(t, err)
		require.Equal(t, "acme", ns.Tenant())
		require.Equal(t, "us-west", ns.Cluster())
		require.Equal(t, "orders", ns.Local())
		require.False(t, ns.IsV2())
		require.Equal(t, "acme/us-west/orders", ns.String())
	})

	t.Run("accepts the full allowed character set", func(t *testing.T) {
		ns, err := ParseNamespace("t-1.a_b/ns=x:y")
		require.NoError(t, err)
		require.Equal(t, "t-1.a_b/ns=x:y", ns.String())
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"single segment", "acme"},
			{"four segments", "a/b/c/d"},
			{"empty tenant", "/orders"},
			{"empty namespace", "acme/"},
			{"empty middle segment", "acme//orders"},
			{"space in segment", "ac me/orders"},
			{"slash-only", "/"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseNamespace(tt.raw)
				require.ErrorIs(t, err, ErrInvalidNamespace)
			})
		}
	})
}

func TestNewNamespaceName(t *testing.T) {
	t.Run("valid segments", func(t *testing.T) {
		ns, err := NewNamespaceName("acme", "orders")
		require.NoError(t, err)
		require.Equal(t, "acme/orders", ns.String())
	})

	t.Run("invalid segment", func(t *testing.T) {
		_, err := NewNamespaceName("acme", "ord ers")
		require.ErrorIs(t, err, ErrInvalidNamespace)
	})
}

func TestNewNamespaceNameWithCluster(t *testing.T) {
	t.Run("valid segments", func(t *testing.T) {
		ns, err := NewNamespaceNameWithCluster("acme", "us-west", "orders")
		require.NoError(t, err)
		require.Equal(t, "acme/us-west/orders", ns.String())
	})

	t.Run("invalid cluster", func(t *testing.T) {
		_, err := NewNamespaceNameWithCluster("acme", "us west", "orders")
		require.ErrorIs(t, err, ErrInvalidNamespace)
	})
}
