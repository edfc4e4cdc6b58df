package analyze

import "testing"

func TestResolveAccessMaskGenericAll(t *testing.T) {
	got := ResolveAccessMask(GenericAll)
	if len(got) == 0 || got[0] != "GenericAll" {
		t.Errorf("ResolveAccessMask(GenericAll) = %v, want GenericAll first", got)
	}
}

func TestResolveAccessMaskWriteDacl(t *testing.T) {
	got := ResolveAccessMask(RightWriteDacl)
	found := false
	for _, p := range got {
		if p == "WriteDacl" {
			found = true
		}
	}
	if !found {
		t.Errorf("ResolveAccessMask(RightWriteDacl) = %v, missing WriteDacl", got)
	}
}

func TestResolveAccessMaskControlAccess(t *testing.T) {
	got := ResolveAccessMask(RightControlAccess | RightReadProp)
	has := func(name string) bool {
		for _, p := range got {
			if p == name {
				return true
			}
		}
		return false
	}
	if !has("ControlAccess") || !has("ReadProp") {
		t.Errorf("ResolveAccessMask = %v, expected ControlAccess and ReadProp", got)
	}
}

func TestResolveAccessMaskZero(t *testing.T) {
	if got := ResolveAccessMask(0); len(got) != 0 {
		t.Errorf("ResolveAccessMask(0) = %v, want empty", got)
	}
}
