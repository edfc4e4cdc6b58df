package graph

import (
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"strconv"
	"strings"

	"adldap/acl"
	"adldap/analyze"
	"adldap/collect"
)

// CertTemplate is the CertTemplate category's graph shape (spec.md §4.6).
type CertTemplate struct {
	Common
	SchemaVersion          int      `json:"schemaversion"`
	ValidityPeriod         string   `json:"validityperiod,omitempty"`
	RenewalPeriod          string   `json:"renewalperiod,omitempty"`
	EnrollmentFlag         []string `json:"enrollmentflag,omitempty"`
	CertificateNameFlag    []string `json:"certificatenameflag,omitempty"`
	EffectiveEKUs          []string `json:"effectiveekus,omitempty"`
	AuthenticationEnabled  bool     `json:"authenticationenabled"`
}

// caCertInfo is the X.509-derived fields shared by EnterpriseCA, AIACA,
// and RootCA (spec.md §4.6).
type caCertInfo struct {
	Thumbprint                string
	Chain                     []string
	HasBasicConstraints       bool
	BasicConstraintPathLength int
}

// EnterpriseCA is the EnterpriseCA category's graph shape.
type EnterpriseCA struct {
	Common
	caCertInfo
	DNSHostName          string   `json:"dNSHostName,omitempty"`
	EnabledCertTemplates []string `json:"EnabledCertTemplates,omitempty"`
}

// AIACA is the AIACA category's graph shape.
type AIACA struct {
	Common
	caCertInfo
}

// RootCA is the RootCA category's graph shape.
type RootCA struct {
	Common
	caCertInfo
}

// NTAuthStore is the NTAuthStore category's graph shape: only the set of
// certificate thumbprints published to NTAuth, per spec.md §4.6.
type NTAuthStore struct {
	Common
	CertThumbprints []string `json:"CertThumbprints"`
}

// BuildCertTemplate assembles one CertTemplate graph object (spec.md §4.6).
func BuildCertTemplate(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) CertTemplate {
	ekus := rec.Attrs.Strings(analyze.AttrPKIExtendedKeyUsage)
	schemaVersion := 0
	if raw := rec.Attrs.String(analyze.AttrMSPKITemplateSchemaVersion); raw != "" {
		schemaVersion, _ = strconv.Atoi(raw)
	}
	enrollFlags, _ := rec.Attrs["msPKI-Enrollment-FlagFlags"].([]string)
	nameFlags, _ := rec.Attrs["msPKI-Certificate-Name-FlagFlags"].([]string)

	return CertTemplate{
		Common:                buildCommon(rec, acl.ClassCertTemplate, coreDomainSID, domainFQDN, catalogs, false),
		SchemaVersion:         schemaVersion,
		ValidityPeriod:        rec.Attrs.String(analyze.AttrPKIExpirationPeriod),
		RenewalPeriod:         rec.Attrs.String(analyze.AttrPKIOverlapPeriod),
		EnrollmentFlag:        enrollFlags,
		CertificateNameFlag:   nameFlags,
		EffectiveEKUs:         ekus,
		AuthenticationEnabled: authenticationEnabled(ekus),
	}
}

// authenticationEnabled reports whether a cert template's EKU set allows
// client authentication: no EKUs at all means "Any Purpose" (spec.md
// §4.6), otherwise any EKU on the authentication allowlist qualifies.
func authenticationEnabled(ekus []string) bool {
	if len(ekus) == 0 {
		return true
	}
	for _, oid := range ekus {
		if analyze.IsAuthenticationEKU(oid) {
			return true
		}
	}
	return false
}

// decodeCACert parses a raw DER cACertificate value into the fields every
// CA-shaped graph object reports (spec.md §4.6): SHA-1 thumbprint,
// basicConstraints CA flag, and path length. Cross-certificates (when
// present) are appended to Chain by their own thumbprint, approximating
// the issuance chain without a full PKI path build.
func decodeCACert(rawCert []byte, crossCerts [][]byte) caCertInfo {
	info := caCertInfo{}
	if len(rawCert) == 0 {
		return info
	}
	sum := sha1.Sum(rawCert)
	info.Thumbprint = strings.ToUpper(hex.EncodeToString(sum[:]))
	info.Chain = []string{info.Thumbprint}

	if cert, err := x509.ParseCertificate(rawCert); err == nil {
		info.HasBasicConstraints = cert.BasicConstraintsValid
		if cert.MaxPathLenZero {
			info.BasicConstraintPathLength = 0
		} else {
			info.BasicConstraintPathLength = cert.MaxPathLen
		}
	}

	for _, raw := range crossCerts {
		if len(raw) == 0 {
			continue
		}
		sum := sha1.Sum(raw)
		info.Chain = append(info.Chain, strings.ToUpper(hex.EncodeToString(sum[:])))
	}
	return info
}

// BuildEnterpriseCA assembles one EnterpriseCA graph object from a
// certenrollservices (pKIEnrollmentService) record, resolving its
// certificateTemplates names to the templates' DNs/GUIDs (spec.md §4.6).
func BuildEnterpriseCA(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs, templateGUIDByDN map[string]string) EnterpriseCA {
	var certBytes []byte
	if len(rec.CACertificates) > 0 {
		certBytes = rec.CACertificates[0]
	}

	var templates []string
	for _, name := range rec.Attrs.Strings(analyze.AttrCertificateTemplates) {
		if dn, ok := catalogs.ResolveCertTemplate(name); ok {
			if guid, ok := templateGUIDByDN[dn]; ok {
				templates = append(templates, guid)
			}
		}
	}

	return EnterpriseCA{
		Common:               buildCommon(rec, acl.ClassEnterpriseCA, coreDomainSID, domainFQDN, catalogs, false),
		caCertInfo:           decodeCACert(certBytes, nil),
		DNSHostName:          rec.Attrs.String(analyze.AttrDNSHostName),
		EnabledCertTemplates: templates,
	}
}

// BuildAIACA assembles one AIACA graph object from a certauthorities
// record categorized under the AIA container (spec.md §4.6).
func BuildAIACA(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs, crossCerts [][]byte) AIACA {
	var certBytes []byte
	if len(rec.CACertificates) > 0 {
		certBytes = rec.CACertificates[0]
	}
	return AIACA{
		Common:     buildCommon(rec, acl.ClassAIACA, coreDomainSID, domainFQDN, catalogs, false),
		caCertInfo: decodeCACert(certBytes, crossCerts),
	}
}

// BuildRootCA assembles one RootCA graph object from a certauthorities
// record categorized under the Certification Authorities container
// (spec.md §4.6).
func BuildRootCA(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) RootCA {
	var certBytes []byte
	if len(rec.CACertificates) > 0 {
		certBytes = rec.CACertificates[0]
	}
	return RootCA{
		Common:     buildCommon(rec, acl.ClassRootCA, coreDomainSID, domainFQDN, catalogs, false),
		caCertInfo: decodeCACert(certBytes, nil),
	}
}

// BuildNTAuthStore assembles the NTAuthStore graph object from a
// certauthorities record categorized under CN=NTAuthCertificates, whose
// cACertificate attribute is a multi-valued list of published certs
// (spec.md §4.6: "NTAuthStore emits only certthumbprints").
func BuildNTAuthStore(rec *collect.Record, coreDomainSID, domainFQDN string, catalogs *collect.Catalogs) NTAuthStore {
	var thumbprints []string
	for _, raw := range rec.CACertificates {
		sum := sha1.Sum(raw)
		thumbprints = append(thumbprints, strings.ToUpper(hex.EncodeToString(sum[:])))
	}
	return NTAuthStore{
		Common:          buildCommon(rec, acl.ClassNTAuthStore, coreDomainSID, domainFQDN, catalogs, false),
		CertThumbprints: thumbprints,
	}
}

// caContainerKind classifies a certauthorities record by its parent
// container DN prefix into RootCA, AIACA, or NTAuthStore (spec.md §4.6).
func caContainerKind(dn string) string {
	upper := strings.ToUpper(dn)
	switch {
	case strings.Contains(upper, "CN=NTAUTHCERTIFICATES"):
		return "ntauthstore"
	case strings.Contains(upper, "CN=AIA,"):
		return "aiaca"
	case strings.Contains(upper, "CN=CERTIFICATION AUTHORITIES,"):
		return "rootca"
	default:
		return ""
	}
}
