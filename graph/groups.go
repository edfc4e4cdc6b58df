package graph

import (
	"strings"

	"adldap/acl"
	"adldap/analyze"
	"adldap/collect"
)

// Group is the Group category's graph shape (spec.md §4.6).
type Group struct {
	Common
	SAMAccountName string     `json:"samaccountname"`
	AdminCount     bool       `json:"admincount"`
	Members        []TypedRef `json:"Members"`
}

// BuildGroup assembles one Group graph object, resolving each `member` DN
// to its {SID, class} via the catalog. A member DN under
// CN=ForeignSecurityPrincipals is special-cased: its RDN value is itself
// the foreign principal's SID and it is always reported as a Group
// reference, since BloodHound FSPs never resolve to a collected object
// (spec.md §4.6).
func BuildGroup(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) Group {
	members := make([]TypedRef, 0, len(rec.Attrs.Strings(analyze.AttrMember)))
	for _, dn := range rec.Attrs.Strings(analyze.AttrMember) {
		if sid, class, ok := catalogs.ResolveMemberDN(dn); ok {
			members = append(members, TypedRef{ObjectIdentifier: sid, ObjectType: class})
			continue
		}
		if sid, ok := foreignSecurityPrincipalSID(dn); ok {
			members = append(members, TypedRef{ObjectIdentifier: sid, ObjectType: "Group"})
		}
	}

	return Group{
		Common:         buildCommon(rec, acl.ClassGroup, coreDomainSID, domainFQDN, catalogs, false),
		SAMAccountName: rec.Attrs.String(analyze.AttrSAMAccountName),
		AdminCount:     rec.Attrs.String(analyze.AttrAdminCount) == "1",
		Members:        members,
	}
}

// foreignSecurityPrincipalSID extracts the SID from a
// CN=<sid>,CN=ForeignSecurityPrincipals,... DN, the RDN convention AD uses
// to name cross-trust principals that were never locally enumerated.
func foreignSecurityPrincipalSID(dn string) (string, bool) {
	if !strings.Contains(strings.ToUpper(dn), "CN=FOREIGNSECURITYPRINCIPALS") {
		return "", false
	}
	comma := strings.Index(dn, ",")
	if comma < 0 {
		return "", false
	}
	rdn := dn[:comma]
	eq := strings.Index(rdn, "=")
	if eq < 0 {
		return "", false
	}
	sid := rdn[eq+1:]
	if !strings.HasPrefix(sid, "S-1-") {
		return "", false
	}
	return sid, true
}
