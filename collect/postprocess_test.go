package collect

import (
	"testing"

	"adldap/analyze"
	"adldap/connect"
)

func TestPostProcessDecodesSecurityIdentifier(t *testing.T) {
	sid := "S-1-5-21-1-2-3"
	e := &connect.Entry{
		DN: "CN=partner.example.com,CN=System,DC=corp,DC=local",
		Raw: map[string][][]byte{
			analyze.AttrSecurityIdentifier: {testSID(t, sid)},
		},
	}

	rec := PostProcess(e, Normalized{}, analyze.NewTypeRegistry(), nil)

	if rec.SecurityIdentifier != sid {
		t.Errorf("SecurityIdentifier = %q, want %q", rec.SecurityIdentifier, sid)
	}
	if rec.ObjectSID != "" {
		t.Errorf("ObjectSID = %q, want empty (trustedDomain objects carry no objectSid)", rec.ObjectSID)
	}
}

func TestPostProcessLeavesSecurityIdentifierEmptyWhenAbsent(t *testing.T) {
	e := &connect.Entry{DN: "CN=no-sid,DC=corp,DC=local"}

	rec := PostProcess(e, Normalized{}, analyze.NewTypeRegistry(), nil)

	if rec.SecurityIdentifier != "" {
		t.Errorf("SecurityIdentifier = %q, want empty", rec.SecurityIdentifier)
	}
}
