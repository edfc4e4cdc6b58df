// Package connect implements the ambient transport: dialing, binding, and
// paged searching against a real LDAP server. The collection pipeline in
// package collect never imports this package's concrete types directly —
// it depends only on the Directory interface below, so it can be driven
// against a fake in tests without a live domain controller.
package connect

import (
	"context"

	"github.com/go-ldap/ldap/v3"
)

// SearchRequest is the transport-agnostic description of one LDAP search.
type SearchRequest struct {
	BaseDN     string
	Filter     string
	Attributes []string
	Scope      int
}

// Entry is the transport-agnostic view of one directory object. Raw holds
// the byte-exact attribute values (needed for binary attributes like
// nTSecurityDescriptor); Attrs holds the string form LDAP itself produces.
// entryFromLDAP fills both for every attribute.
type Entry struct {
	DN     string
	Attrs  map[string][]string
	Raw    map[string][][]byte
}

// GetAttributeValue returns the first string value of an attribute, or "".
func (e *Entry) GetAttributeValue(name string) string {
	if vs := e.Attrs[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GetAttributeValues returns all string values of an attribute.
func (e *Entry) GetAttributeValues(name string) []string {
	return e.Attrs[name]
}

// GetRawAttributeValue returns the first raw byte value of an attribute.
func (e *Entry) GetRawAttributeValue(name string) []byte {
	if vs := e.Raw[name]; len(vs) > 0 {
		return vs[0]
	}
	return nil
}

func entryFromLDAP(e *ldap.Entry) *Entry {
	attrs := make(map[string][]string, len(e.Attributes))
	raw := make(map[string][][]byte, len(e.Attributes))
	for _, a := range e.Attributes {
		attrs[a.Name] = a.Values
		raw[a.Name] = a.ByteValues
	}
	return &Entry{DN: e.DN, Attrs: attrs, Raw: raw}
}

// Directory is the capability the collection pipeline depends on. Every
// concrete implementation must attach the mandatory SD-flags control
// (analyze.OIDControlSDFlags) to every Search call (spec.md §6).
type Directory interface {
	Search(ctx context.Context, req SearchRequest) (<-chan *Entry, <-chan error)
	WhoAmI(ctx context.Context) (string, error)
	BaseDN() string
	ConfigurationNamingContext() string
	SchemaNamingContext() string
	Close() error
}
