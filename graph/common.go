// Package graph implements the Graph Assembler: it shapes decoded,
// post-processed directory records into the attack-graph ingest schema,
// invoking the ACL Translator for each object's Aces and resolving
// memberships, delegation, trusts, and GPO links through the Enumeration
// Pipeline's catalogs (spec.md §4.6).
package graph

import (
	"strings"

	"adldap/acl"
	"adldap/analyze"
	"adldap/collect"
)

// TypedRef is the {ObjectIdentifier, ObjectType} shape used for
// ContainedBy, group members, SID-history entries, and SPN target
// resolution alike (spec.md §4.6).
type TypedRef struct {
	ObjectIdentifier string `json:"ObjectIdentifier"`
	ObjectType       string `json:"ObjectType"`
}

// Common holds the per-object properties every category emits (spec.md
// §4.6): identity, naming, ACL-protection state, containment, and Aces.
type Common struct {
	ObjectIdentifier  string        `json:"ObjectIdentifier"`
	Name              string        `json:"name"`
	Domain            string        `json:"domain"`
	DomainSID         string        `json:"domainsid"`
	DistinguishedName string        `json:"distinguishedname"`
	Description       string        `json:"description,omitempty"`
	DisplayName       string        `json:"displayname,omitempty"`
	IsACLProtected    bool          `json:"isaclprotected"`
	IsDeleted         bool          `json:"IsDeleted"`
	ContainedBy       *TypedRef     `json:"ContainedBy"`
	Aces              []acl.AceRow  `json:"Aces"`
}

// Envelope wraps one category's records with the fixed metadata block
// every graph file carries (spec.md §4.6, §6).
type Envelope struct {
	Data []any `json:"data"`
	Meta Meta  `json:"meta"`
}

// Meta is the per-file metadata block.
type Meta struct {
	Methods uint32 `json:"methods"`
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Version int    `json:"version"`
}

// objectIdentifier returns a record's SID if present, otherwise its
// objectGUID rendered uppercase without braces (spec.md §3's Principal
// identity rule).
func objectIdentifier(rec *collect.Record) string {
	if rec.ObjectSID != "" {
		return rec.ObjectSID
	}
	return strings.ToUpper(rec.ObjectGUID)
}

// buildCommon assembles the shared Common block for one record, deriving
// the object's `name` as NAME@DOMAIN_FQDN (spec.md §4.6) and its Aces via
// the ACL Translator.
func buildCommon(rec *collect.Record, class acl.Class, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs, hasLAPS bool) Common {
	name := rec.Attrs.String(analyze.AttrSAMAccountName)
	if name == "" {
		name = rec.Attrs.String(analyze.AttrName)
	}
	fullName := strings.ToUpper(name)
	if domainFQDN != "" {
		fullName = fullName + "@" + strings.ToUpper(domainFQDN)
	}

	var aces []acl.AceRow
	if rec.SD != nil || rec.GMSASD != nil {
		aces = acl.Translate(acl.Input{
			Class:         class,
			CoreDomainSID: coreDomainSID,
			SD:            rec.SD,
			GMSASD:        rec.GMSASD,
			HasLAPS:       hasLAPS,
		}, catalogs.ResolvePrincipalClass)
	}

	var isACLProtected bool
	if rec.SD != nil {
		isACLProtected = rec.SD.IsACLProtected
	}

	return Common{
		ObjectIdentifier:  objectIdentifier(rec),
		Name:              fullName,
		Domain:            strings.ToUpper(domainFQDN),
		DomainSID:         coreDomainSID,
		DistinguishedName: rec.DN,
		Description:       firstOf(rec.Attrs.Strings(analyze.AttrDescription)),
		DisplayName:       rec.Attrs.String(analyze.AttrDisplayName),
		IsACLProtected:     isACLProtected,
		IsDeleted:          rec.Attrs.String(analyze.AttrIsDeleted) == "TRUE",
		ContainedBy:        containedBy(rec.DN, catalogs),
		Aces:               aces,
	}
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// builtinContainerSID is the well-known SID built-in containers (CN=Users,
// CN=Computers, ...) report as their own SID when emitted as a ContainedBy
// reference (spec.md §4.6: "built-in container DNs map to {S-1-5-32, Base}").
const builtinContainerSID = "S-1-5-32"

// containedBy resolves a record's parent container (spec.md §4.6):
// the parent's {SID, class} from the catalog when the parent was itself
// enumerated (an OU, container, or domain root), the built-in container
// sentinel for an un-enumerated CN= container, or nil at the forest root.
func containedBy(dn string, catalogs *collect.Catalogs) *TypedRef {
	parent := collect.ParentDN(dn)
	if parent == "" {
		return nil
	}
	if sid, class, ok := catalogs.ResolveMemberDN(parent); ok {
		return &TypedRef{ObjectIdentifier: sid, ObjectType: class}
	}
	if strings.HasPrefix(strings.ToUpper(parent), "CN=") {
		return &TypedRef{ObjectIdentifier: builtinContainerSID, ObjectType: "Base"}
	}
	return nil
}
