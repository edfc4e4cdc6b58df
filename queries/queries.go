// Package queries is the Query Engine: one fixed filter/attribute pair per
// logical category, each overridable from external config (spec.md §4.3).
package queries

import (
	"sort"
	"strings"

	"adldap/analyze"
)

// NamingContext selects which RootDSE-advertised base DN a category
// searches under.
type NamingContext int

const (
	DefaultNamingContext NamingContext = iota
	ConfigurationNamingContext
)

// Query is one category's fixed LDAP filter, attribute set, and base DN
// selector.
type Query struct {
	Filter     string
	Attributes []string
	BaseDN     NamingContext
}

// Registry holds the fixed category methods plus any supplemental queries
// (custom_query, dcclonerights, dcsync) registered alongside them.
type Registry struct {
	queries map[string]Query
}

var registry = newRegistry()

func newRegistry() *Registry {
	r := &Registry{queries: make(map[string]Query)}
	for name, q := range categoryQueries {
		r.queries[name] = q
	}
	for name, q := range supplementalQueries {
		r.queries[name] = q
	}
	return r
}

// Register adds or overrides a query, used for config-driven per-method
// overrides (spec.md §4.3: "Each category SHALL accept a per-method
// override of filter and attribute list").
func Register(name string, q Query) {
	q.Attributes = withMinimumAttributes(q.Attributes)
	registry.queries[name] = q
}

// Get retrieves a query by name.
func Get(name string) (Query, bool) {
	q, ok := registry.queries[name]
	return q, ok
}

// GetNames returns the sorted list of all registered query names.
func GetNames() []string {
	names := make([]string, 0, len(registry.queries))
	for name := range registry.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryNames is the fixed, ordered method list the Enumeration
// Pipeline iterates (spec.md §4.3, §4.7): every category in categoryQueries
// in a stable order, independent of map iteration.
var CategoryNames = []string{
	"users", "groups", "computers", "ous", "gpos", "domains", "forests",
	"containers", "trusted_domains", "certauthorities", "certenrollservices",
	"certtemplates",
}

// withMinimumAttributes re-adds the attributes every query must retrieve
// regardless of override (spec.md §4.3).
func withMinimumAttributes(attrs []string) []string {
	present := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		present[strings.ToLower(a)] = true
	}
	out := append([]string{}, attrs...)
	for _, must := range analyze.MinimumAttributes {
		if !present[strings.ToLower(must)] {
			out = append(out, must)
		}
	}
	return out
}

func init() {
	for name, q := range registry.queries {
		q.Attributes = withMinimumAttributes(q.Attributes)
		registry.queries[name] = q
	}
}
