package analyze

import "testing"

func TestFileTimeToTime(t *testing.T) {
	// 132223104000000000 -> 2020-01-01T00:00:00Z
	got, err := FileTimeToTime("132223104000000000")
	if err != nil {
		t.Fatalf("FileTimeToTime: %v", err)
	}
	if got.Year() != 2020 || got.Month() != 1 || got.Day() != 1 {
		t.Errorf("FileTimeToTime = %v, want 2020-01-01", got)
	}
}

func TestFileTimeToTimeZero(t *testing.T) {
	if _, err := FileTimeToTime("0"); err == nil {
		t.Error("expected error for zero filetime")
	}
}

func TestAccountExpiresNever(t *testing.T) {
	for _, raw := range []string{"0", "9223372036854775807"} {
		got, err := AccountExpires(raw)
		if err != nil {
			t.Fatalf("AccountExpires(%s): %v", raw, err)
		}
		if got != "9223372036854775807,never" {
			t.Errorf("AccountExpires(%s) = %q, want never sentinel", raw, got)
		}
	}
}

func TestAccountExpiresEmpty(t *testing.T) {
	got, err := AccountExpires("")
	if err != nil || got != "" {
		t.Errorf("AccountExpires(\"\") = (%q, %v), want (\"\", nil)", got, err)
	}
}

func TestConvertPKIPeriodExactYear(t *testing.T) {
	// -1 year expressed as 100ns intervals: -315360000000000
	raw := []byte{0x00, 0x40, 0x39, 0x87, 0x2e, 0xe1, 0xfe, 0xff}
	got, err := ConvertPKIPeriod(raw)
	if err != nil {
		t.Fatalf("ConvertPKIPeriod: %v", err)
	}
	if got != "1 year" {
		t.Errorf("ConvertPKIPeriod = %q, want %q", got, "1 year")
	}
}

func TestConvertPKIPeriodWrongLength(t *testing.T) {
	if _, err := ConvertPKIPeriod([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for wrong-length input")
	}
}
