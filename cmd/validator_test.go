package cmd

import "testing"

func TestValidateFilterAcceptsWellFormedFilter(t *testing.T) {
	if err := ValidateFilter("(objectClass=user)"); err != nil {
		t.Errorf("ValidateFilter = %v, want nil", err)
	}
}

func TestValidateFilterRejectsUnbalancedParens(t *testing.T) {
	if err := ValidateFilter("(objectClass=user"); err == nil {
		t.Error("ValidateFilter = nil, want error for unbalanced parens")
	}
}

func TestValidateFilterRejectsEmpty(t *testing.T) {
	if err := ValidateFilter(""); err == nil {
		t.Error("ValidateFilter = nil, want error for empty filter")
	}
}

func TestValidateAttributesAcceptsWildcard(t *testing.T) {
	if err := ValidateAttributes([]string{"*"}); err != nil {
		t.Errorf("ValidateAttributes([*]) = %v, want nil", err)
	}
}

func TestValidateAttributesRejectsInjectionAttempt(t *testing.T) {
	if err := ValidateAttributes([]string{"cn", "(cn=*)"}); err == nil {
		t.Error("ValidateAttributes = nil, want error for a filter-shaped attribute name")
	}
}

func TestValidateServerRejectsDangerousCharacters(t *testing.T) {
	if err := ValidateServer("dc01.corp.local"); err != nil {
		t.Errorf("ValidateServer(plain host) = %v, want nil", err)
	}
	if err := ValidateServer("dc01(evil)"); err == nil {
		t.Error("ValidateServer = nil, want error for a filter-metacharacter-bearing server string")
	}
}

func TestValidateUsernameRejectsDangerousCharacters(t *testing.T) {
	if err := ValidateUsername("jdoe"); err != nil {
		t.Errorf("ValidateUsername(plain username) = %v, want nil", err)
	}
	if err := ValidateUsername("jdoe)(uid=*"); err == nil {
		t.Error("ValidateUsername = nil, want error for a filter-metacharacter-bearing username")
	}
}
