// Package topic parses, validates, and canonicalizes the hierarchical topic
// and namespace addressing scheme.
//
// Topic names come in a short form ("my-topic" or "tenant/ns/my-topic"), a
// fully qualified v2 form ("persistent://tenant/ns/my-topic"), and a legacy
// form carrying a cluster segment ("persistent://tenant/cluster/ns/my-topic").
// Parsing always yields an immutable value whose String() renders the
// canonical fully qualified form.
package topic
