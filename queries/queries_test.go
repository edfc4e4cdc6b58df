package queries

import "testing"

func TestGetKnownCategory(t *testing.T) {
	q, ok := Get("users")
	if !ok {
		t.Fatal("expected users category to be registered")
	}
	if q.Filter == "" {
		t.Error("expected non-empty filter for users")
	}
	if q.BaseDN != DefaultNamingContext {
		t.Errorf("users BaseDN = %v, want DefaultNamingContext", q.BaseDN)
	}
}

func TestGetForestUsesConfigurationNamingContext(t *testing.T) {
	q, ok := Get("forests")
	if !ok {
		t.Fatal("expected forests category to be registered")
	}
	if q.BaseDN != ConfigurationNamingContext {
		t.Errorf("forests BaseDN = %v, want ConfigurationNamingContext", q.BaseDN)
	}
}

func TestGetUnknownCategory(t *testing.T) {
	if _, ok := Get("does-not-exist"); ok {
		t.Error("expected unknown category to be absent")
	}
}

func TestCategoryNamesCompletenessAndOrder(t *testing.T) {
	want := []string{
		"users", "groups", "computers", "ous", "gpos", "domains", "forests",
		"containers", "trusted_domains", "certauthorities", "certenrollservices",
		"certtemplates",
	}
	if len(CategoryNames) != len(want) {
		t.Fatalf("CategoryNames has %d entries, want %d", len(CategoryNames), len(want))
	}
	for i, name := range want {
		if CategoryNames[i] != name {
			t.Errorf("CategoryNames[%d] = %q, want %q", i, CategoryNames[i], name)
		}
		if _, ok := Get(name); !ok {
			t.Errorf("CategoryNames entry %q not registered", name)
		}
	}
}

func TestMinimumAttributesAlwaysPresent(t *testing.T) {
	for _, name := range CategoryNames {
		q, _ := Get(name)
		present := make(map[string]bool, len(q.Attributes))
		for _, a := range q.Attributes {
			present[a] = true
		}
		for _, must := range []string{"objectSid", "distinguishedName", "name"} {
			if !present[must] {
				t.Errorf("category %q missing minimum attribute %q", name, must)
			}
		}
	}
}

func TestRegisterOverride(t *testing.T) {
	original := categoryQueries["users"]
	Register("users", Query{
		Filter:     "(objectClass=user)",
		Attributes: []string{"sAMAccountName"},
		BaseDN:     DefaultNamingContext,
	})
	defer Register("users", original)

	q, ok := Get("users")
	if !ok {
		t.Fatal("expected users to still be registered after override")
	}
	if q.Filter != "(objectClass=user)" {
		t.Errorf("Register did not override filter, got %q", q.Filter)
	}
	present := false
	for _, a := range q.Attributes {
		if a == "objectSid" {
			present = true
		}
	}
	if !present {
		t.Error("Register override should still inject minimum attributes")
	}
}

func TestSupplementalQueriesRegistered(t *testing.T) {
	for _, name := range []string{"dcclonerights", "dcsync", "custom_query"} {
		if _, ok := Get(name); !ok {
			t.Errorf("expected supplemental query %q to be registered", name)
		}
	}
}

func TestBuildCustomQuery(t *testing.T) {
	BuildCustomQuery("(cn=test)", []string{"cn"}, DefaultNamingContext)
	q, ok := Get("custom_query")
	if !ok {
		t.Fatal("expected custom_query to be registered")
	}
	if q.Filter != "(cn=test)" {
		t.Errorf("custom_query filter = %q, want (cn=test)", q.Filter)
	}
}

func TestGetNamesIncludesAllCategories(t *testing.T) {
	names := GetNames()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range CategoryNames {
		if !seen[n] {
			t.Errorf("GetNames missing category %q", n)
		}
	}
}
