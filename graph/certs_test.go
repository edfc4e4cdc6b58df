package graph

import "testing"

func TestAuthenticationEnabledAnyPurposeWhenNoEKUs(t *testing.T) {
	if !authenticationEnabled(nil) {
		t.Error("authenticationEnabled(nil) = false, want true (Any Purpose)")
	}
}

func TestAuthenticationEnabledMatchesClientAuthOID(t *testing.T) {
	if !authenticationEnabled([]string{"1.3.6.1.5.5.7.3.2"}) {
		t.Error("Client Authentication OID should be authentication-enabled")
	}
	if authenticationEnabled([]string{"1.3.6.1.4.1.311.10.3.11"}) {
		t.Error("Key Recovery Agent OID should not be authentication-enabled")
	}
}

func TestCAContainerKindClassifiesByParentDN(t *testing.T) {
	cases := map[string]string{
		"CN=ca1,CN=NTAuthCertificates,CN=Public Key Services,CN=Services,CN=Configuration,DC=corp,DC=local": "ntauthstore",
		"CN=ca2,CN=AIA,CN=Public Key Services,CN=Services,CN=Configuration,DC=corp,DC=local":                "aiaca",
		"CN=ca3,CN=Certification Authorities,CN=Public Key Services,CN=Services,CN=Configuration,DC=corp,DC=local": "rootca",
		"CN=svc1,CN=Enrollment Services,CN=Public Key Services,CN=Services,CN=Configuration,DC=corp,DC=local":      "",
	}
	for dn, want := range cases {
		if got := caContainerKind(dn); got != want {
			t.Errorf("caContainerKind(%q) = %q, want %q", dn, got, want)
		}
	}
}

func TestDecodeCACertThumbprintFromRawBytes(t *testing.T) {
	info := decodeCACert([]byte("test-cert-bytes"), nil)
	if info.Thumbprint != "7BE55EE6BA3DC1578FCDD87EB3F51A96520579FD" {
		t.Errorf("Thumbprint = %q", info.Thumbprint)
	}
	if len(info.Chain) != 1 || info.Chain[0] != info.Thumbprint {
		t.Errorf("Chain = %v, want [Thumbprint]", info.Chain)
	}
	// not valid DER, so x509 parsing fails and HasBasicConstraints stays false
	if info.HasBasicConstraints {
		t.Error("HasBasicConstraints should be false for non-certificate bytes")
	}
}

func TestDecodeCACertEmpty(t *testing.T) {
	info := decodeCACert(nil, nil)
	if info.Thumbprint != "" || info.Chain != nil {
		t.Errorf("decodeCACert(nil) = %+v, want zero value", info)
	}
}
