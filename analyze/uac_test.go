package analyze

import "testing"

func TestParseUserAccountControl(t *testing.T) {
	// NORMAL_ACCOUNT (0x200) | PASSWD_NOTREQD (0x20)
	got := ParseUserAccountControl(0x220)
	want := []string{"PASSWD_NOTREQD", "NORMAL_ACCOUNT"}
	if len(got) != len(want) {
		t.Fatalf("ParseUserAccountControl(0x220) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseUserAccountControl(0x220)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseUserAccountControlDisabledWorkstation(t *testing.T) {
	got := ParseUserAccountControl(UACAccountDisable | UACWorkstationTrustAccount)
	found := map[string]bool{}
	for _, f := range got {
		found[f] = true
	}
	if !found["ACCOUNTDISABLE"] || !found["WORKSTATION_TRUST_ACCOUNT"] {
		t.Errorf("ParseUserAccountControl = %v, missing expected flags", got)
	}
}

func TestParseUserAccountControlZero(t *testing.T) {
	if got := ParseUserAccountControl(0); len(got) != 0 {
		t.Errorf("expected no flags for 0, got %v", got)
	}
}
