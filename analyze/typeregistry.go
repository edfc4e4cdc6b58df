package analyze

import "sync"

// wellKnownObjectTypes seeds the registry with the extended rights and
// attributes every AD/LDAP collector needs named, independent of any
// particular forest's schema (spec.md §9's Type Registry).
var wellKnownObjectTypes = map[string]string{
	"00000000-0000-0000-0000-000000000000": "AllProperties",
	"00299570-246d-11d0-a768-00aa006e0529": "User-Force-Change-Password",
	"ab721a53-1e2f-11d0-9819-00aa0040529b": "User-Change-Password",
	"1131f6aa-9c07-11d1-f79f-00c04fc2dcd2": "DS-Replication-Get-Changes",
	"1131f6ad-9c07-11d1-f79f-00c04fc2dcd2": "DS-Replication-Get-Changes-All",
	"89e95b76-444d-4c62-991a-0facbeda640c": "DS-Replication-Get-Changes-In-Filtered-Set",
	"bf9679c0-0de6-11d0-a285-00aa003049e2": "Self-Membership",
	"f30e3bbe-9ff0-11d1-b603-0000f80367c1": "General-Information",
	"5b47d60f-6090-40b2-9f37-2a4de88f3063": "ms-DS-Key-Credential-Link",
	"bf967a86-0de6-11d0-a285-00aa003049e2": "Group-Membership",
	"bf967953-0de6-11d0-a285-00aa003049e2": "Account-Restrictions",
	"e45795b3-9455-11d1-aebd-0000f80367c1": "Remote-Access-Information",
	"4c164200-20c0-11d0-a768-00aa006e0529": "User-Account-Restrictions",
	"77b5b886-944a-11d1-aebd-0000f80367c1": "Remote-Access-Information",
}

// TypeRegistry resolves binary GUIDs found in AD ACEs and the schema to
// their friendly names. It is seeded with the static well-known table and
// then grows with the collector's own schemaIDGUID values read off the
// Schema NC during the Schema-Loaded phase (spec.md §4.3, §4.7).
//
// A GUID can legitimately map to more than one name: one GUID can name
// both an extended right and an attribute (see
// wellKnownObjectTypeAliases), and spec.md §9 requires that collision be
// preserved rather than silently resolved to one winner. ResolveObjectType returns all
// known names joined with "/" in the order they were seen.
type TypeRegistry struct {
	mu    sync.RWMutex
	names map[string][]string
}

// wellKnownObjectTypeAliases are additional names for a GUID already in
// wellKnownObjectTypes — a legitimate historical collision (spec.md §9:
// "bf9679c0-0de6-11d0-a285-00aa003049e2" names both the Self-Membership
// extended right and the "member" attribute's schemaIDGUID).
var wellKnownObjectTypeAliases = [][2]string{
	{"bf9679c0-0de6-11d0-a285-00aa003049e2", "Member"},
}

// NewTypeRegistry returns a registry seeded with the static well-known
// object types.
func NewTypeRegistry() *TypeRegistry {
	t := &TypeRegistry{names: make(map[string][]string)}
	for guid, name := range wellKnownObjectTypes {
		t.names[guid] = []string{name}
	}
	for _, alias := range wellKnownObjectTypeAliases {
		t.Seed(alias[0], alias[1])
	}
	return t
}

// Seed records a schemaIDGUID -> name binding discovered while walking the
// Schema NC. Existing bindings for the same GUID are kept, not replaced.
func (t *TypeRegistry) Seed(guid, name string) {
	if guid == "" || name == "" {
		return
	}
	guid = NormalizeGUID(guid)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.names[guid] {
		if existing == name {
			return
		}
	}
	t.names[guid] = append(t.names[guid], name)
}

// ResolveObjectType returns the friendly name(s) for a GUID, or the
// normalized GUID text itself when nothing in the registry matches it
// (spec.md §4.1: unresolved object types still render, just unlabeled).
func (t *TypeRegistry) ResolveObjectType(guid string) string {
	if t == nil {
		return NormalizeGUID(guid)
	}
	key := NormalizeGUID(guid)
	t.mu.RLock()
	defer t.mu.RUnlock()
	names, ok := t.names[key]
	if !ok || len(names) == 0 {
		return key
	}
	out := names[0]
	for _, n := range names[1:] {
		out += "/" + n
	}
	return out
}

// Len reports how many distinct GUIDs are registered.
func (t *TypeRegistry) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
