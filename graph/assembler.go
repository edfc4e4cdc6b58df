package graph

import (
	"adldap/analyze"
	"adldap/collect"
)

// GraphCategories lists the graph file categories the Assembler emits,
// distinct from the Enumeration Pipeline's twelve query categories: the
// "certauthorities" query splits three ways by container DN,
// "certenrollservices" becomes "enterprisecas", "trusted_domains" folds
// into Domain.Trusts rather than its own file, and "forests" records are
// not used in any graph file (spec.md §4.6, §6).
var GraphCategories = []string{
	"users", "groups", "computers", "ous", "gpos", "domains", "containers",
	"certtemplates", "enterprisecas", "aiacas", "ntauthstores", "rootcas",
}

// Assembler shapes a completed Enumeration Pipeline's records into the
// attack-graph ingest schema (spec.md §4.6).
type Assembler struct {
	catalogs *collect.Catalogs
	records  map[string][]*collect.Record
	methods  uint32
}

// NewAssembler builds an Assembler over a finished pipeline's records and
// catalogs. methods is the bitfield of collection methods that actually
// ran, reported verbatim in every file's meta.methods (spec.md §6).
func NewAssembler(catalogs *collect.Catalogs, records map[string][]*collect.Record, methods uint32) *Assembler {
	return &Assembler{catalogs: catalogs, records: records, methods: methods}
}

// domainContext picks the core domain SID and FQDN a record's objects
// should be rendered against: the domain whose DN the record's DN falls
// under, falling back to the first enumerated domain for config-NC objects
// (schema, PKI, GPOs) that have no domain-rooted DN of their own.
func (a *Assembler) domainContext(rec *collect.Record) (sid, fqdn string) {
	for _, d := range a.records["domains"] {
		if d.ObjectSID == "" {
			continue
		}
		domainDN := d.DN
		if len(rec.DN) >= len(domainDN) && rec.DN[len(rec.DN)-len(domainDN):] == domainDN {
			return d.ObjectSID, collect.FQDNFromDN(domainDN)
		}
	}
	if len(a.records["domains"]) > 0 {
		d := a.records["domains"][0]
		return d.ObjectSID, collect.FQDNFromDN(d.DN)
	}
	return "", ""
}

// Assemble shapes one graph category's records into its Envelope. Callers
// iterate GraphCategories and write one file per category (spec.md §6).
func (a *Assembler) Assemble(category string) Envelope {
	var data []any

	switch category {
	case "users":
		for _, rec := range a.records["users"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildUser(rec, sid, fqdn, a.catalogs))
		}
	case "groups":
		for _, rec := range a.records["groups"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildGroup(rec, sid, fqdn, a.catalogs))
		}
	case "computers":
		for _, rec := range a.records["computers"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildComputer(rec, sid, fqdn, a.catalogs))
		}
	case "ous":
		for _, rec := range a.records["ous"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildOU(rec, sid, fqdn, a.catalogs))
		}
	case "gpos":
		for _, rec := range a.records["gpos"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildGPO(rec, sid, fqdn, a.catalogs))
		}
	case "containers":
		for _, rec := range a.records["containers"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildContainer(rec, sid, fqdn, a.catalogs))
		}
	case "domains":
		for _, rec := range a.records["domains"] {
			fqdn := collect.FQDNFromDN(rec.DN)
			data = append(data, BuildDomain(rec, a.records["trusted_domains"], fqdn, a.catalogs))
		}
	case "certtemplates":
		for _, rec := range a.records["certtemplates"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildCertTemplate(rec, sid, fqdn, a.catalogs))
		}
	case "enterprisecas":
		templateGUIDByDN := a.templateGUIDIndex()
		for _, rec := range a.records["certenrollservices"] {
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildEnterpriseCA(rec, sid, fqdn, a.catalogs, templateGUIDByDN))
		}
	case "aiacas":
		for _, rec := range a.records["certauthorities"] {
			if caContainerKind(rec.DN) != "aiaca" {
				continue
			}
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildAIACA(rec, sid, fqdn, a.catalogs, rec.CrossCertificates))
		}
	case "rootcas":
		for _, rec := range a.records["certauthorities"] {
			if caContainerKind(rec.DN) != "rootca" {
				continue
			}
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildRootCA(rec, sid, fqdn, a.catalogs))
		}
	case "ntauthstores":
		for _, rec := range a.records["certauthorities"] {
			if caContainerKind(rec.DN) != "ntauthstore" {
				continue
			}
			sid, fqdn := a.domainContext(rec)
			data = append(data, BuildNTAuthStore(rec, sid, fqdn, a.catalogs))
		}
	}

	return Envelope{
		Data: data,
		Meta: Meta{
			Methods: a.methods,
			Type:    category,
			Count:   len(data),
			Version: analyze.BloodHoundIngestVersion,
		},
	}
}

// templateGUIDIndex maps a cert template's DN to its objectGUID, for
// EnterpriseCA.EnabledCertTemplates resolution.
func (a *Assembler) templateGUIDIndex() map[string]string {
	idx := make(map[string]string, len(a.records["certtemplates"]))
	for _, rec := range a.records["certtemplates"] {
		if rec.ObjectGUID != "" {
			idx[rec.DN] = rec.ObjectGUID
		}
	}
	return idx
}
