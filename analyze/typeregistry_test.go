package analyze

import "testing"

func TestTypeRegistryWellKnown(t *testing.T) {
	types := NewTypeRegistry()
	got := types.ResolveObjectType("00299570-246d-11d0-a768-00aa006e0529")
	if got != "User-Force-Change-Password" {
		t.Errorf("ResolveObjectType = %q", got)
	}
}

func TestTypeRegistrySeedAndCollision(t *testing.T) {
	types := NewTypeRegistry()
	guid := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	types.Seed(guid, "ms-DS-Example-Attribute")
	types.Seed(guid, "ms-DS-Example-Attribute-Renamed")
	// re-seeding the same name must not duplicate it.
	types.Seed(guid, "ms-DS-Example-Attribute")

	got := types.ResolveObjectType(guid)
	want := "ms-DS-Example-Attribute/ms-DS-Example-Attribute-Renamed"
	if got != want {
		t.Errorf("ResolveObjectType = %q, want %q", got, want)
	}
}

func TestTypeRegistryUnknownFallsBackToGUID(t *testing.T) {
	types := NewTypeRegistry()
	guid := "{11111111-2222-3333-4444-555555555555}"
	got := types.ResolveObjectType(guid)
	if got != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("ResolveObjectType = %q, want normalized guid", got)
	}
}

func TestTypeRegistryNilReceiver(t *testing.T) {
	var types *TypeRegistry
	got := types.ResolveObjectType("{AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE}")
	if got != "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" {
		t.Errorf("ResolveObjectType on nil registry = %q", got)
	}
}
