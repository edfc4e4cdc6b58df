package connect

import (
	"errors"
	"testing"
)

func TestFormatBindUsernameSAMAccountName(t *testing.T) {
	c := &Config{BaseDN: "DC=sec,DC=lab", Username: "alice", LoginName: SAMAccountName}
	got, err := formatBindUsername(c)
	if err != nil {
		t.Fatalf("formatBindUsername: %v", err)
	}
	if got != "alice" {
		t.Errorf("formatBindUsername = %q, want alice (bare sAMAccountName)", got)
	}
}

func TestFormatBindUsernameUPNDefault(t *testing.T) {
	c := &Config{BaseDN: "DC=sec,DC=lab", Username: "alice"}
	got, err := formatBindUsername(c)
	if err != nil {
		t.Fatalf("formatBindUsername: %v", err)
	}
	if got != "alice@sec.lab" {
		t.Errorf("formatBindUsername = %q, want alice@sec.lab", got)
	}
}

func TestFormatBindUsernameEmpty(t *testing.T) {
	c := &Config{BaseDN: "DC=sec,DC=lab"}
	if _, err := formatBindUsername(c); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestSplitNTLMUsername(t *testing.T) {
	domain, user := splitNTLMUsername(`SEC\alice`)
	if domain != "SEC" || user != "alice" {
		t.Errorf("splitNTLMUsername = (%q, %q)", domain, user)
	}
}

func TestSplitNTLMUsernameNoDomain(t *testing.T) {
	domain, user := splitNTLMUsername("alice")
	if domain != "" || user != "alice" {
		t.Errorf("splitNTLMUsername = (%q, %q), want empty domain", domain, user)
	}
}

func TestSecuritySettingsDefaults(t *testing.T) {
	scheme, port, tlsConf := securitySettings(&Config{Security: SecurityNone})
	if scheme != "ldap" || port != 389 || tlsConf != nil {
		t.Errorf("securitySettings(None) = (%q, %d, %v)", scheme, port, tlsConf)
	}
}

func TestSecuritySettingsTLS(t *testing.T) {
	scheme, port, tlsConf := securitySettings(&Config{Security: SecurityTLS, Server: "dc.sec.lab"})
	if scheme != "ldaps" || port != 636 || tlsConf == nil {
		t.Errorf("securitySettings(TLS) = (%q, %d, %v)", scheme, port, tlsConf)
	}
	if tlsConf.InsecureSkipVerify {
		t.Error("did not expect InsecureSkipVerify for SecurityTLS")
	}
}

func TestSecuritySettingsInsecureTLS(t *testing.T) {
	_, _, tlsConf := securitySettings(&Config{Security: SecurityInsecureTLS, Server: "dc.sec.lab"})
	if tlsConf == nil || !tlsConf.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify for SecurityInsecureTLS")
	}
}

func TestIsTLSError(t *testing.T) {
	if !isTLSError(errors.New("remote error: tls: handshake failure")) {
		t.Error("expected handshake failure to be a TLS error")
	}
	if isTLSError(errors.New("connection refused")) {
		t.Error("did not expect connection refused to be a TLS error")
	}
	if isTLSError(nil) {
		t.Error("did not expect nil to be a TLS error")
	}
}
