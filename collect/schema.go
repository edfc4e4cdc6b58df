package collect

import (
	"context"
	"fmt"

	"adldap/analyze"
	"adldap/connect"
)

// Schema is the Schema Collector's output: the set of lDAPDisplayNames
// actually present in this forest's schema, used to prune a requested
// attribute list before querying (spec.md §4.3, §6.1), and a loaded
// TypeRegistry seeded with every schemaIDGUID the Schema NC names.
type Schema struct {
	displayNames map[string]bool
	Types        *analyze.TypeRegistry
}

// Has reports whether an attribute name is defined in this forest's schema.
func (s *Schema) Has(attr string) bool {
	if s == nil {
		return true
	}
	return s.displayNames[attr]
}

// AttributeNames returns every lDAPDisplayName this schema collected, for
// the dump file's "schema" section (spec.md §6).
func (s *Schema) AttributeNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.displayNames))
	for name := range s.displayNames {
		names = append(names, name)
	}
	return names
}

// Prune removes attributes not present in the schema from a requested list,
// always keeping the minimum attribute set (spec.md §4.3: "attributes not
// present in the schema are silently dropped rather than causing a search
// error").
func (s *Schema) Prune(attrs []string) []string {
	if s == nil {
		return attrs
	}
	keep := make(map[string]bool, len(analyze.MinimumAttributes))
	for _, a := range analyze.MinimumAttributes {
		keep[a] = true
	}
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if keep[a] || s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// schemaClassAttrs are the classSchema/attributeSchema attributes read to
// build the Schema Collector's output (spec.md §4.3's Schema-Loaded phase).
var schemaClassAttrs = []string{analyze.AttrLDAPDisplayName, analyze.AttrSchemaIDGUID}

// LoadSchema reads attributeSchema and classSchema off the directory's
// Schema naming context, seeding types with every schemaIDGUID found and
// recording every lDAPDisplayName seen (spec.md §4.3, §4.7: Bound ->
// Schema-Loaded transition).
func LoadSchema(ctx context.Context, dir connect.Directory, types *analyze.TypeRegistry) (*Schema, error) {
	s := &Schema{displayNames: make(map[string]bool), Types: types}

	for _, class := range []string{"attributeSchema", "classSchema"} {
		req := connect.SearchRequest{
			BaseDN:     dir.SchemaNamingContext(),
			Filter:     fmt.Sprintf("(objectClass=%s)", class),
			Attributes: schemaClassAttrs,
		}
		entries, errs := dir.Search(ctx, req)
		for e := range entries {
			name := e.GetAttributeValue(analyze.AttrLDAPDisplayName)
			if name != "" {
				s.displayNames[name] = true
			}
			if guid := e.GetRawAttributeValue(analyze.AttrSchemaIDGUID); len(guid) == 16 && name != "" {
				if parsed, err := analyze.ParseGUID(guid); err == nil {
					types.Seed(parsed, name)
				}
			}
		}
		if err := <-errs; err != nil {
			return s, fmt.Errorf("loading schema (%s): %w", class, err)
		}
	}
	return s, nil
}
