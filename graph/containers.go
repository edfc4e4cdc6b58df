package graph

import (
	"strconv"

	"adldap/acl"
	"adldap/analyze"
	"adldap/collect"
)

// OU is the Organizational Unit category's graph shape (spec.md §4.6).
type OU struct {
	Common
	Links []GPLink `json:"Links"`
}

// Container is the Container category's graph shape. Containers carry no
// properties beyond the common block (spec.md §4.6).
type Container struct {
	Common
}

// GPO is the Group Policy Object category's graph shape (spec.md §4.6).
type GPO struct {
	Common
	GPCFileSysPath string `json:"gPCFileSysPath,omitempty"`
}

// Domain is the Domain category's graph shape (spec.md §4.6).
type Domain struct {
	Common
	FunctionalLevel string        `json:"functionallevel"`
	Links           []GPLink      `json:"Links"`
	Trusts          []TrustRecord `json:"Trusts"`
}

// BuildOU assembles one OU graph object, resolving its gPLink into GPO
// references (spec.md §4.6).
func BuildOU(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) OU {
	return OU{
		Common: buildCommon(rec, acl.ClassOU, coreDomainSID, domainFQDN, catalogs, false),
		Links:  resolveGPLinks(rec.Attrs.String(analyze.AttrGPLink), catalogs.ResolveGPO),
	}
}

// BuildContainer assembles one Container graph object.
func BuildContainer(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) Container {
	return Container{Common: buildCommon(rec, acl.ClassContainer, coreDomainSID, domainFQDN, catalogs, false)}
}

// BuildGPO assembles one GPO graph object.
func BuildGPO(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) GPO {
	return GPO{
		Common:         buildCommon(rec, acl.ClassGPO, coreDomainSID, domainFQDN, catalogs, false),
		GPCFileSysPath: rec.Attrs.String(analyze.AttrGPCFileSysPath),
	}
}

// BuildDomain assembles one Domain graph object, resolving its functional
// level, GPO links, and incoming trust records (spec.md §4.6).
func BuildDomain(rec *collect.Record, trustRecs []*collect.Record, domainFQDN string, catalogs *collect.Catalogs) Domain {
	coreDomainSID := rec.ObjectSID
	level := ""
	if raw := rec.Attrs.String(analyze.AttrMSDSBehaviorVersion); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			level = analyze.LookupFunctionalLevel(n)
		}
	}

	return Domain{
		Common:          buildCommon(rec, acl.ClassDomain, coreDomainSID, domainFQDN, catalogs, false),
		FunctionalLevel: level,
		Links:           resolveGPLinks(rec.Attrs.String(analyze.AttrGPLink), catalogs.ResolveGPO),
		Trusts:          buildTrusts(trustRecs),
	}
}
