package graph

import "strings"

// GPLink is one Group Policy link, resolved to the GPO's objectGUID
// (spec.md §4.6: "OU/Domain.Links via gPLink parsing + GPO map").
type GPLink struct {
	GUID       string `json:"GUID"`
	IsEnforced bool   `json:"IsEnforced"`
}

// parseGPLink decodes the gPLink attribute's
// "[LDAP://cn={guid},cn=policies,cn=system,DC=...;options]..." syntax into
// its constituent GPO container DNs and enforcement flags. Option bit 1
// (0x2) means the link is enforced (MS-GPOL 2.2.2).
func parseGPLink(raw string) []struct {
	dn        string
	enforced bool
} {
	var links []struct {
		dn        string
		enforced bool
	}
	for _, entry := range strings.Split(raw, "[") {
		entry = strings.TrimSuffix(entry, "]")
		if entry == "" {
			continue
		}
		entry = strings.TrimPrefix(entry, "LDAP://")
		semi := strings.LastIndex(entry, ";")
		if semi < 0 {
			continue
		}
		dn := entry[:semi]
		opts := atoiDefault(entry[semi+1:], 0)
		links = append(links, struct {
			dn        string
			enforced bool
		}{dn: dn, enforced: opts&0x2 != 0})
	}
	return links
}

// resolveGPLinks turns a raw gPLink string into graph-ready GPLink
// references, dropping any link whose GPO container was never enumerated.
func resolveGPLinks(raw string, resolveGPO func(dn string) (string, bool)) []GPLink {
	if raw == "" {
		return nil
	}
	var out []GPLink
	for _, l := range parseGPLink(raw) {
		guid, ok := resolveGPO(l.dn)
		if !ok {
			continue
		}
		out = append(out, GPLink{GUID: guid, IsEnforced: l.enforced})
	}
	return out
}
