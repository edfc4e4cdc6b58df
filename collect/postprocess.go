package collect

import (
	"adldap/analyze"
	"adldap/connect"
)

// Record is one fully decoded directory object: its normalized attributes
// plus the SID/GUID/security-descriptor fields the Post-Processor resolves
// from binary attributes the normalizer deliberately left alone (spec.md
// §4.5).
type Record struct {
	DN                 string
	Attrs              Normalized
	ObjectSID          string
	ObjectGUID         string
	SecurityIdentifier string // securityIdentifier, carried by trustedDomain objects in place of objectSid
	SIDHistory         []string
	SD                 *analyze.SecurityDescriptor
	GMSASD             *analyze.SecurityDescriptor
	RBCD               []string // SIDs resource-based constrained delegation permits to act as this object
	CACertificates     [][]byte // raw DER cACertificate values, for the Graph Assembler's X.509 parsing
	CrossCertificates  [][]byte // raw DER crossCertificatePair values, for AIACA chain building
}

// PostProcess decodes the binary attributes the Attribute Normalizer
// skipped: objectSid, objectGUID, sIDHistory, securityIdentifier,
// nTSecurityDescriptor, msDS-GroupMSAMembership, and
// msDS-AllowedToActOnBehalfOfOtherIdentity (spec.md §4.5). resolveSid
// resolves owner/group SIDs to display names for
// the decoded security descriptor; it may be nil during the first pass,
// before the SID Catalog is complete.
func PostProcess(e *connect.Entry, norm Normalized, types *analyze.TypeRegistry, resolveSid func(string) string) *Record {
	rec := &Record{DN: e.DN, Attrs: norm}

	if raw := e.GetRawAttributeValue(analyze.AttrObjectSID); len(raw) > 0 {
		if sid, err := analyze.ParseSID(raw); err == nil {
			rec.ObjectSID = sid
		}
	}
	if raw := e.GetRawAttributeValue(analyze.AttrObjectGUID); len(raw) == 16 {
		if guid, err := analyze.ParseGUID(raw); err == nil {
			rec.ObjectGUID = guid
		}
	}
	for _, raw := range e.Raw[analyze.AttrSIDHistory] {
		if sid, err := analyze.ParseSID(raw); err == nil {
			rec.SIDHistory = append(rec.SIDHistory, sid)
		}
	}
	if raw := e.GetRawAttributeValue(analyze.AttrSecurityIdentifier); len(raw) > 0 {
		if sid, err := analyze.ParseSID(raw); err == nil {
			rec.SecurityIdentifier = sid
		}
	}

	if raw := e.GetRawAttributeValue(analyze.AttrNTSecurityDescriptor); len(raw) > 0 {
		if sd, err := analyze.DecodeSecurityDescriptor(raw, types, resolveSid); err == nil {
			rec.SD = sd
		}
	}
	if raw := e.GetRawAttributeValue(analyze.AttrMSDSGroupMSAMembership); len(raw) > 0 {
		if sd, err := analyze.DecodeSecurityDescriptor(raw, types, resolveSid); err == nil {
			rec.GMSASD = sd
		}
	}
	if raw := e.GetRawAttributeValue(analyze.AttrMSDSAllowedToActOnBehalfOfOtherIdentity); len(raw) > 0 {
		if sids, err := analyze.ParseAllowedToActOnBehalfOfOtherIdentity(raw, types, resolveSid); err == nil {
			rec.RBCD = sids
		}
	}
	if certs := e.Raw[analyze.AttrCACertificate]; len(certs) > 0 {
		rec.CACertificates = certs
	}
	if certs := e.Raw[analyze.AttrCrossCertificatePair]; len(certs) > 0 {
		rec.CrossCertificates = certs
	}

	return rec
}
