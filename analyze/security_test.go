package analyze

import "testing"

func TestMSDSSupportedEncryptionTypes(t *testing.T) {
	// RC4_HMAC | AES256_CTS_HMAC_SHA1_96
	got, err := MSDSSupportedEncryptionTypes("20")
	if err != nil {
		t.Fatalf("MSDSSupportedEncryptionTypes: %v", err)
	}
	want := "RC4_HMAC | AES256_CTS_HMAC_SHA1_96"
	if got != want {
		t.Errorf("MSDSSupportedEncryptionTypes(20) = %q, want %q", got, want)
	}
}

func TestMSDSSupportedEncryptionTypesNone(t *testing.T) {
	got, err := MSDSSupportedEncryptionTypes("0")
	if err != nil {
		t.Fatalf("MSDSSupportedEncryptionTypes: %v", err)
	}
	if got != "NONE(0x0)" {
		t.Errorf("MSDSSupportedEncryptionTypes(0) = %q", got)
	}
}

func TestMSDSSupportedEncryptionTypesInvalid(t *testing.T) {
	if _, err := MSDSSupportedEncryptionTypes("not-a-number"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseAllowedToActOnBehalfOfOtherIdentity(t *testing.T) {
	owner := encodeSID(1, 5, 21, 1, 2, 3, 500)
	group := encodeSID(1, 5, 21, 1, 2, 3, 513)
	trustee := encodeSID(1, 5, 21, 1, 2, 3, 2105)

	ace := buildAce(AceTypeAccessAllowed, 0, GenericAll, trustee)
	dacl := buildACL(ace)
	raw := buildSD(0x8004, owner, group, dacl)

	sids, err := ParseAllowedToActOnBehalfOfOtherIdentity(raw, NewTypeRegistry(), nil)
	if err != nil {
		t.Fatalf("ParseAllowedToActOnBehalfOfOtherIdentity: %v", err)
	}
	if len(sids) != 1 || sids[0] != "S-1-5-21-1-2-3-2105" {
		t.Errorf("sids = %v, want the trustee SID", sids)
	}
}

func TestParseAllowedToActOnBehalfOfOtherIdentityEmpty(t *testing.T) {
	sids, err := ParseAllowedToActOnBehalfOfOtherIdentity(nil, NewTypeRegistry(), nil)
	if err != nil || sids != nil {
		t.Errorf("expected (nil, nil) for empty input, got (%v, %v)", sids, err)
	}
}
