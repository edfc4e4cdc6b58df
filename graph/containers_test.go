package graph

import (
	"testing"

	"adldap/collect"
)

func TestParseGPLinkDecodesEnforcement(t *testing.T) {
	raw := "[LDAP://cn={6AC1786C-016F-11D2-945F-00C04FB984F9},cn=policies,cn=system,DC=corp,DC=local;0]" +
		"[LDAP://cn={31B2F340-016D-11D2-945F-00C04FB984F9},cn=policies,cn=system,DC=corp,DC=local;2]"
	links := parseGPLink(raw)
	if len(links) != 2 {
		t.Fatalf("parseGPLink returned %d links, want 2", len(links))
	}
	if links[0].enforced {
		t.Error("first link should not be enforced (options=0)")
	}
	if !links[1].enforced {
		t.Error("second link should be enforced (options=2)")
	}
}

func TestResolveGPLinksDropsUnknownGPOs(t *testing.T) {
	catalogs := collect.NewCatalogs()
	catalogs.AddGPO("cn={6AC1786C-016F-11D2-945F-00C04FB984F9},cn=policies,cn=system,DC=corp,DC=local", "{6AC1786C-016F-11D2-945F-00C04FB984F9}")

	raw := "[LDAP://cn={6AC1786C-016F-11D2-945F-00C04FB984F9},cn=policies,cn=system,DC=corp,DC=local;0]" +
		"[LDAP://cn={DEADBEEF-0000-0000-0000-000000000000},cn=policies,cn=system,DC=corp,DC=local;0]"
	links := resolveGPLinks(raw, catalogs.ResolveGPO)
	if len(links) != 1 {
		t.Fatalf("resolveGPLinks = %+v, want 1 resolved link", links)
	}
	if links[0].GUID != "6ac1786c-016f-11d2-945f-00c04fb984f9" {
		t.Errorf("GUID = %q", links[0].GUID)
	}
}

func TestTrustKindDerivation(t *testing.T) {
	cases := []struct {
		flags []string
		want  string
	}{
		{[]string{"WITHIN_FOREST"}, "ParentChild"},
		{[]string{"FOREST_TRANSITIVE"}, "Forest"},
		{[]string{"CROSS_ORGANIZATION"}, "External"},
		{nil, "External"},
	}
	for _, c := range cases {
		if got := trustKind(c.flags); got != c.want {
			t.Errorf("trustKind(%v) = %q, want %q", c.flags, got, c.want)
		}
	}
}

func TestBuildTrustsDirectionAndTransitivity(t *testing.T) {
	recs := []*collect.Record{
		{
			DN:                 "CN=partner.example.com,CN=System,DC=corp,DC=local",
			SecurityIdentifier: "S-1-5-21-9-9-9",
			Attrs: collect.Normalized{
				"trustPartner":         "partner.example.com",
				"trustDirection":       "3",
				"trustAttributesFlags": []string{"FOREST_TRANSITIVE"},
			},
		},
	}
	trusts := buildTrusts(recs)
	if len(trusts) != 1 {
		t.Fatalf("buildTrusts = %+v, want 1", trusts)
	}
	tr := trusts[0]
	if tr.TargetDomainName != "PARTNER.EXAMPLE.COM" {
		t.Errorf("TargetDomainName = %q, want upper-cased", tr.TargetDomainName)
	}
	if tr.TargetDomainSid != "S-1-5-21-9-9-9" {
		t.Errorf("TargetDomainSid = %q, want the decoded securityIdentifier", tr.TargetDomainSid)
	}
	if tr.TrustDirection != "Bidirectional" {
		t.Errorf("TrustDirection = %q", tr.TrustDirection)
	}
	if tr.TrustType != "Forest" {
		t.Errorf("TrustType = %q", tr.TrustType)
	}
	if !tr.IsTransitive {
		t.Error("IsTransitive = false, want true (no TREAT_AS_EXTERNAL/CROSS_ORGANIZATION flag)")
	}
	if tr.SidFilteringEnabled {
		t.Error("SidFilteringEnabled = true, want false (no QUARANTINED_DOMAIN flag)")
	}
}

// TestBuildTrustsWithinForestSidFiltering pins spec §8 scenario 5:
// trustAttributesFlags = {WITHIN_FOREST} must yield SidFilteringEnabled =
// false, since sid filtering is governed by QUARANTINED_DOMAIN alone.
func TestBuildTrustsWithinForestSidFiltering(t *testing.T) {
	recs := []*collect.Record{
		{
			DN: "CN=child.corp.local,CN=System,DC=corp,DC=local",
			Attrs: collect.Normalized{
				"trustPartner":         "child.corp.local",
				"trustDirection":       "3",
				"trustAttributesFlags": []string{"WITHIN_FOREST"},
			},
		},
	}
	trusts := buildTrusts(recs)
	if len(trusts) != 1 {
		t.Fatalf("buildTrusts = %+v, want 1", trusts)
	}
	tr := trusts[0]
	if tr.TrustType != "ParentChild" {
		t.Errorf("TrustType = %q, want ParentChild", tr.TrustType)
	}
	if tr.SidFilteringEnabled {
		t.Error("SidFilteringEnabled = true, want false for a WITHIN_FOREST-only trust")
	}
}

// TestBuildTrustsTreatAsExternalIsNonTransitive guards against deriving
// IsTransitive from NON_TRANSITIVE alone: a trust with TREAT_AS_EXTERNAL set
// but NON_TRANSITIVE unset must still report non-transitive.
func TestBuildTrustsTreatAsExternalIsNonTransitive(t *testing.T) {
	recs := []*collect.Record{
		{
			DN: "CN=external.example.com,CN=System,DC=corp,DC=local",
			Attrs: collect.Normalized{
				"trustPartner":         "external.example.com",
				"trustDirection":       "1",
				"trustAttributesFlags": []string{"TREAT_AS_EXTERNAL"},
			},
		},
	}
	trusts := buildTrusts(recs)
	if len(trusts) != 1 {
		t.Fatalf("buildTrusts = %+v, want 1", trusts)
	}
	if trusts[0].IsTransitive {
		t.Error("IsTransitive = true, want false when TREAT_AS_EXTERNAL is set")
	}
}
