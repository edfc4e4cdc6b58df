package analyze

import (
	"encoding/binary"
	"testing"
)

func encodeSID(revision byte, authority uint64, subAuthorities ...uint32) []byte {
	b := make([]byte, 8+4*len(subAuthorities))
	b[0] = revision
	b[1] = byte(len(subAuthorities))
	for i := 0; i < 6; i++ {
		b[7-i] = byte(authority >> (8 * i))
	}
	for i, sub := range subAuthorities {
		binary.LittleEndian.PutUint32(b[8+4*i:], sub)
	}
	return b
}

func TestParseSID(t *testing.T) {
	raw := encodeSID(1, 5, 21, 111111111, 222222222, 333333333, 1104)
	got, err := ParseSID(raw)
	if err != nil {
		t.Fatalf("ParseSID: %v", err)
	}
	want := "S-1-5-21-111111111-222222222-333333333-1104"
	if got != want {
		t.Errorf("ParseSID = %q, want %q", got, want)
	}
}

func TestParseSIDTruncated(t *testing.T) {
	raw := encodeSID(1, 5, 21, 1, 2)
	if _, err := ParseSID(raw[:len(raw)-2]); err == nil {
		t.Error("expected error for truncated sub-authorities")
	}
}

func TestDomainSIDAndRID(t *testing.T) {
	sid := "S-1-5-21-111111111-222222222-333333333-1104"
	if got := DomainSID(sid); got != "S-1-5-21-111111111-222222222-333333333" {
		t.Errorf("DomainSID = %q", got)
	}
	if got := RID(sid); got != "1104" {
		t.Errorf("RID = %q", got)
	}
}

func TestIsWellKnownAuthority(t *testing.T) {
	if !IsWellKnownAuthority("S-1-5-32") {
		t.Error("expected S-1-5-32 to be well-known")
	}
	if IsWellKnownAuthority("S-1-5-21-111111111-222222222-333333333") {
		t.Error("did not expect a domain SID to be well-known")
	}
}

func TestIsExcludedPrincipal(t *testing.T) {
	for _, sid := range []string{SIDCreatorOwner, SIDLocalSystem, SIDPrincipalSelf} {
		if !IsExcludedPrincipal(sid) {
			t.Errorf("expected %s to be excluded", sid)
		}
	}
	if IsExcludedPrincipal("S-1-5-21-1-2-3-1104") {
		t.Error("did not expect a normal principal to be excluded")
	}
}

func TestWellKnownSIDName(t *testing.T) {
	if got := WellKnownSIDName("S-1-5-32-544"); got != "Administrators" {
		t.Errorf("WellKnownSIDName(Administrators) = %q", got)
	}
	if got := WellKnownSIDName("S-1-5-21-1-2-3-1104"); got != "" {
		t.Errorf("expected empty name for unknown SID, got %q", got)
	}
}
