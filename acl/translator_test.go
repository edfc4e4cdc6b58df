package acl

import (
	"testing"

	"adldap/analyze"
)

func ace(sid string, mask uint32, flags []string, dataFlags []string, controlType string) analyze.Ace {
	return analyze.NewAce(analyze.AceTypeAccessAllowed, sid, mask, flags, dataFlags, controlType, "")
}

func TestTranslateGenericAllShortCircuits(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1104", analyze.GenericAll, nil, nil, "")},
	}
	rows := Translate(Input{Class: ClassUser, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 1 || rows[0].RightName != RightGenericAll {
		t.Fatalf("rows = %+v, want exactly one GenericAll row", rows)
	}
}

func TestTranslateLAPSCarveOut(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1104", analyze.GenericAll, nil, []string{"ACE_OBJECT_TYPE_PRESENT"}, "ms-Mcs-AdmPwd")},
	}
	rows := Translate(Input{Class: ClassComputer, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd, HasLAPS: true}, nil)
	if len(rows) != 1 || rows[0].RightName != RightReadLAPSPassword {
		t.Fatalf("rows = %+v, want exactly one ReadLAPSPassword row", rows)
	}
}

func TestTranslateReadLAPSPasswordNonGenericAll(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-X-1104", analyze.RightReadProp, nil, []string{"ACE_OBJECT_TYPE_PRESENT"}, "ms-Mcs-AdmPwd")},
	}
	rows := Translate(Input{Class: ClassComputer, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd, HasLAPS: true}, nil)
	if len(rows) != 1 || rows[0].RightName != RightReadLAPSPassword || rows[0].PrincipalSID != "S-1-5-21-X-1104" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestTranslateAllExtendedRights(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-500", analyze.RightControlAccess, nil, []string{"ACE_OBJECT_TYPE_PRESENT"}, "AllProperties")},
	}
	rows := Translate(Input{Class: ClassDomain, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	want := map[string]bool{
		RightAllExtendedRights: false, RightGetChanges: false, RightGetChangesAll: false, RightGetChangesInFilteredSet: false,
	}
	for _, r := range rows {
		if _, ok := want[r.RightName]; ok {
			want[r.RightName] = true
		}
	}
	for right, ok := range want {
		if !ok {
			t.Errorf("missing expected right %q in %+v", right, rows)
		}
	}
}

func TestTranslateAddSelf(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1105", analyze.RightSelf, nil, []string{"ACE_OBJECT_TYPE_PRESENT"}, "Member")},
	}
	rows := Translate(Input{Class: ClassGroup, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 1 || rows[0].RightName != RightAddSelf {
		t.Fatalf("rows = %+v, want exactly one AddSelf row", rows)
	}
}

func TestTranslateExcludesCreatorSystemSelf(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{
			ace(analyze.SIDCreatorOwner, analyze.GenericAll, nil, nil, ""),
			ace(analyze.SIDLocalSystem, analyze.GenericAll, nil, nil, ""),
			ace(analyze.SIDPrincipalSelf, analyze.GenericAll, nil, nil, ""),
		},
	}
	rows := Translate(Input{Class: ClassUser, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 0 {
		t.Fatalf("rows = %+v, want none for excluded principals", rows)
	}
}

func TestTranslateInheritOnlyDropped(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1104", analyze.GenericAll, []string{"INHERIT_ONLY_ACE"}, nil, "")},
	}
	rows := Translate(Input{Class: ClassUser, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 0 {
		t.Fatalf("rows = %+v, want none for INHERIT_ONLY without INHERITED", rows)
	}
}

func TestTranslateOwnership(t *testing.T) {
	sd := &analyze.SecurityDescriptor{OwnerSid: "S-1-5-21-1-2-3-1104"}
	rows := Translate(Input{Class: ClassUser, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 1 || rows[0].RightName != RightOwns {
		t.Fatalf("rows = %+v, want exactly one Owns row", rows)
	}
}

func TestTranslateOwnershipExcludesSystem(t *testing.T) {
	sd := &analyze.SecurityDescriptor{OwnerSid: analyze.SIDLocalSystem}
	rows := Translate(Input{Class: ClassUser, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	if len(rows) != 0 {
		t.Fatalf("rows = %+v, want none when owner is LOCAL SYSTEM", rows)
	}
}

func TestTranslateReadGMSAPassword(t *testing.T) {
	gmsaSD := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1106", analyze.GenericAll, nil, nil, "")},
	}
	rows := Translate(Input{Class: ClassGMSA, CoreDomainSID: "S-1-5-21-1-2-3", GMSASD: gmsaSD}, nil)
	if len(rows) != 1 || rows[0].RightName != RightReadGMSAPassword {
		t.Fatalf("rows = %+v, want exactly one ReadGMSAPassword row", rows)
	}
}

func TestRewriteSIDPreservesDomainSIDs(t *testing.T) {
	got := RewriteSID("S-1-5-21-1-2-3", "S-1-5-21-1-2-3-1104")
	if got != "S-1-5-21-1-2-3-1104" {
		t.Errorf("RewriteSID = %q", got)
	}
}

func TestRewriteSIDRewritesNonDomainSIDs(t *testing.T) {
	got := RewriteSID("S-1-5-21-1-2-3", "S-1-5-32-544")
	if got != "S-1-5-21-1-2-3-544" {
		t.Errorf("RewriteSID = %q, want S-1-5-21-1-2-3-544", got)
	}
}

func TestTranslateManageCertificates(t *testing.T) {
	sd := &analyze.SecurityDescriptor{
		Dacl: []analyze.Ace{ace("S-1-5-21-1-2-3-1107", analyze.GenericWrite|analyze.RightDeleteChild, nil, nil, "")},
	}
	rows := Translate(Input{Class: ClassEnterpriseCA, CoreDomainSID: "S-1-5-21-1-2-3", SD: sd}, nil)
	seen := map[string]bool{}
	for _, r := range rows {
		seen[r.RightName] = true
	}
	if !seen[RightManageCA] || !seen[RightManageCertificates] {
		t.Errorf("rows = %+v, want ManageCA and ManageCertificates", rows)
	}
}
