package graph

import (
	"strings"

	"adldap/acl"
	"adldap/analyze"
	"adldap/collect"
)

// User is the User category's graph shape (spec.md §4.6).
type User struct {
	Common
	SAMAccountName          string     `json:"samaccountname"`
	UserPrincipalName       string     `json:"userprincipalname,omitempty"`
	Enabled                 bool       `json:"enabled"`
	PwdNeverExpires         bool       `json:"pwdneverexpires"`
	PasswordNotRequired     bool       `json:"passwordnotreqd"`
	UnconstrainedDelegation bool       `json:"unconstraineddelegation"`
	TrustedToAuth           bool       `json:"trustedtodelegate"`
	Sensitive               bool       `json:"sensitive"`
	DontReqPreauth          bool       `json:"dontreqpreauth"`
	AdminCount              bool       `json:"admincount"`
	HasLAPS                 bool       `json:"haslaps"`
	HasSIDHistory           []TypedRef `json:"HasSIDHistory"`
	AllowedToDelegate       []string   `json:"AllowedToDelegate,omitempty"`
	PrimaryGroupSID         string     `json:"primarygroupsid,omitempty"`
}

// Computer is the Computer category's graph shape (spec.md §4.6).
type Computer struct {
	Common
	SAMAccountName          string      `json:"samaccountname"`
	DNSHostName             string      `json:"dNSHostName,omitempty"`
	OperatingSystem         string      `json:"operatingsystem,omitempty"`
	Enabled                 bool        `json:"enabled"`
	UnconstrainedDelegation bool        `json:"unconstraineddelegation"`
	TrustedToAuth           bool        `json:"trustedtodelegate"`
	HasLAPS                 bool        `json:"haslaps"`
	HasSIDHistory           []TypedRef  `json:"HasSIDHistory"`
	AllowedToDelegate       []string    `json:"AllowedToDelegate,omitempty"`
	PrimaryGroupSID         string      `json:"primarygroupsid,omitempty"`
	SPNTargets              []SPNTarget `json:"SPNTargets,omitempty"`
}

// SPNTarget is one resolved service-target edge for a Computer's
// servicePrincipalName values (spec.md §4.6: "MSSQLSvc/... SPNs").
type SPNTarget struct {
	ComputerSID string `json:"ComputerSID"`
	Port        int    `json:"Port"`
	Service     string `json:"Service"`
}

func sidHistoryRefs(sids []string, catalogs *collect.Catalogs) []TypedRef {
	refs := make([]TypedRef, 0, len(sids))
	for _, sid := range sids {
		refs = append(refs, TypedRef{ObjectIdentifier: sid, ObjectType: catalogs.ResolvePrincipalClass(sid)})
	}
	return refs
}

// allowedToDelegate resolves msDS-AllowedToDelegateTo SPNs to the target
// computers' SIDs, gated on the TRUSTED_TO_AUTH_FOR_DELEGATION UAC bit
// (spec.md §4.6).
func allowedToDelegate(rec *collect.Record, trustedToAuth bool, catalogs *collect.Catalogs) []string {
	if !trustedToAuth {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, spn := range rec.Attrs.Strings(analyze.AttrMSDSAllowedToDelegateTo) {
		_, host, _, ok := spnHostPort(spn)
		if !ok {
			continue
		}
		sid, found := catalogs.ResolveComputer(host)
		if !found || seen[sid] {
			continue
		}
		seen[sid] = true
		out = append(out, sid)
	}
	return out
}

func primaryGroupSID(domainSID, primaryGroupID string) string {
	if domainSID == "" || primaryGroupID == "" {
		return ""
	}
	return domainSID + "-" + primaryGroupID
}

func hasFlag(flags []string, name string) bool {
	for _, f := range flags {
		if f == name {
			return true
		}
	}
	return false
}

// BuildUser assembles one User graph object from a post-processed users
// record (spec.md §4.6).
func BuildUser(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) User {
	flags, _ := rec.Attrs["userAccountControlFlags"].([]string)
	hasLAPS := rec.Attrs.String(analyze.AttrMsMcsAdmPwdExpirationTime) != ""
	trustedToAuth := hasFlag(flags, "TRUSTED_TO_AUTH_FOR_DELEGATION")

	return User{
		Common:                  buildCommon(rec, acl.ClassUser, coreDomainSID, domainFQDN, catalogs, hasLAPS),
		SAMAccountName:          rec.Attrs.String(analyze.AttrSAMAccountName),
		UserPrincipalName:       rec.Attrs.String(analyze.AttrUserPrincipalName),
		Enabled:                 !hasFlag(flags, "ACCOUNTDISABLE"),
		PwdNeverExpires:         hasFlag(flags, "DONT_EXPIRE_PASSWORD"),
		PasswordNotRequired:     hasFlag(flags, "PASSWD_NOTREQD"),
		UnconstrainedDelegation: hasFlag(flags, "TRUSTED_FOR_DELEGATION"),
		TrustedToAuth:           trustedToAuth,
		Sensitive:               hasFlag(flags, "NOT_DELEGATED"),
		DontReqPreauth:          hasFlag(flags, "DONT_REQ_PREAUTH"),
		AdminCount:              rec.Attrs.String(analyze.AttrAdminCount) == "1",
		HasLAPS:                 hasLAPS,
		HasSIDHistory:           sidHistoryRefs(rec.SIDHistory, catalogs),
		AllowedToDelegate:       allowedToDelegate(rec, trustedToAuth, catalogs),
		PrimaryGroupSID:         primaryGroupSID(coreDomainSID, rec.Attrs.String(analyze.AttrPrimaryGroupID)),
	}
}

// BuildComputer assembles one Computer graph object, including SPNTargets
// resolution for MSSQLSvc service principal names (spec.md §4.6).
func BuildComputer(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) Computer {
	flags, _ := rec.Attrs["userAccountControlFlags"].([]string)
	hasLAPS := rec.Attrs.String(analyze.AttrMsMcsAdmPwdExpirationTime) != ""
	trustedToAuth := hasFlag(flags, "TRUSTED_TO_AUTH_FOR_DELEGATION")

	return Computer{
		Common:                  buildCommon(rec, acl.ClassComputer, coreDomainSID, domainFQDN, catalogs, hasLAPS),
		SAMAccountName:          rec.Attrs.String(analyze.AttrSAMAccountName),
		DNSHostName:             rec.Attrs.String(analyze.AttrDNSHostName),
		OperatingSystem:         rec.Attrs.String(analyze.AttrOperatingSystem),
		Enabled:                 !hasFlag(flags, "ACCOUNTDISABLE"),
		UnconstrainedDelegation: hasFlag(flags, "TRUSTED_FOR_DELEGATION"),
		TrustedToAuth:           trustedToAuth,
		HasLAPS:                 hasLAPS,
		HasSIDHistory:           sidHistoryRefs(rec.SIDHistory, catalogs),
		AllowedToDelegate:       allowedToDelegate(rec, trustedToAuth, catalogs),
		PrimaryGroupSID:         primaryGroupSID(coreDomainSID, rec.Attrs.String(analyze.AttrPrimaryGroupID)),
		SPNTargets:              spnTargets(rec, catalogs),
	}
}

// spnTargets resolves MSSQLSvc service principal names into ComputerSID/
// Port/Service edges, defaulting to port 1433 when the SPN names no
// explicit instance (spec.md §4.6).
func spnTargets(rec *collect.Record, catalogs *collect.Catalogs) []SPNTarget {
	var targets []SPNTarget
	for _, spn := range rec.Attrs.Strings(analyze.AttrServicePrincipalName) {
		service, host, port, ok := spnHostPort(spn)
		if !ok || !strings.EqualFold(service, "mssqlsvc") {
			continue
		}
		sid, found := catalogs.ResolveComputer(host)
		if !found {
			continue
		}
		if port == 0 {
			port = defaultMSSQLPort
		}
		targets = append(targets, SPNTarget{ComputerSID: sid, Port: port, Service: "SQLAdmin"})
	}
	return targets
}
