package graph

import (
	"testing"

	"adldap/collect"
)

func userRecord(dn string, attrs collect.Normalized, sid string) *collect.Record {
	return &collect.Record{DN: dn, Attrs: attrs, ObjectSID: sid}
}

func TestBuildUserDerivesUACBooleans(t *testing.T) {
	catalogs := collect.NewCatalogs()
	rec := userRecord("CN=alice,CN=Users,DC=corp,DC=local", collect.Normalized{
		"sAMAccountName":          "alice",
		"userAccountControl":      "544", // 0x220 NORMAL_ACCOUNT|PASSWD_NOTREQD
		"userAccountControlFlags": []string{"NORMAL_ACCOUNT", "PASSWD_NOTREQD"},
	}, "S-1-5-21-1-2-3-1104")

	u := BuildUser(rec, "S-1-5-21-1-2-3", "corp.local", catalogs)
	if !u.Enabled {
		t.Error("Enabled = false, want true (ACCOUNTDISABLE not set)")
	}
	if !u.PasswordNotRequired {
		t.Error("PasswordNotRequired = false, want true")
	}
	if u.Name != "ALICE@CORP.LOCAL" {
		t.Errorf("Name = %q, want ALICE@CORP.LOCAL", u.Name)
	}
}

func TestBuildUserHasLAPSFromExpirationAttribute(t *testing.T) {
	catalogs := collect.NewCatalogs()
	rec := userRecord("CN=svc,DC=corp,DC=local", collect.Normalized{
		"sAMAccountName":             "svc",
		"ms-Mcs-AdmPwdExpirationTime": "132931104000000000",
	}, "S-1-5-21-1-2-3-2000")

	u := BuildUser(rec, "S-1-5-21-1-2-3", "corp.local", catalogs)
	if !u.HasLAPS {
		t.Error("HasLAPS = false, want true")
	}
}

func TestAllowedToDelegateRequiresTrustedToAuthFlag(t *testing.T) {
	catalogs := collect.NewCatalogs()
	catalogs.AddComputer("S-1-5-21-1-2-3-3000", "sql01.corp.local", "SQL01$")
	rec := userRecord("CN=svc,DC=corp,DC=local", collect.Normalized{
		"sAMAccountName":              "svc",
		"msDS-AllowedToDelegateTo":    []string{"MSSQLSvc/sql01.corp.local:1433"},
		"userAccountControlFlags":     []string{"NORMAL_ACCOUNT"}, // no TRUSTED_TO_AUTH_FOR_DELEGATION
	}, "S-1-5-21-1-2-3-3001")

	u := BuildUser(rec, "S-1-5-21-1-2-3", "corp.local", catalogs)
	if len(u.AllowedToDelegate) != 0 {
		t.Errorf("AllowedToDelegate = %v, want empty without the UAC bit", u.AllowedToDelegate)
	}

	rec.Attrs["userAccountControlFlags"] = []string{"TRUSTED_TO_AUTH_FOR_DELEGATION"}
	u = BuildUser(rec, "S-1-5-21-1-2-3", "corp.local", catalogs)
	if len(u.AllowedToDelegate) != 1 || u.AllowedToDelegate[0] != "S-1-5-21-1-2-3-3000" {
		t.Errorf("AllowedToDelegate = %v, want [S-1-5-21-1-2-3-3000]", u.AllowedToDelegate)
	}
}

func TestSPNTargetsResolvesMSSQLWithDefaultPort(t *testing.T) {
	catalogs := collect.NewCatalogs()
	catalogs.AddComputer("S-1-5-21-1-2-3-4000", "sql02.corp.local", "SQL02$")
	rec := &collect.Record{
		DN:        "CN=SQL02,CN=Computers,DC=corp,DC=local",
		ObjectSID: "S-1-5-21-1-2-3-4000",
		Attrs: collect.Normalized{
			"sAMAccountName":        "SQL02$",
			"servicePrincipalName": []string{"MSSQLSvc/sql02.corp.local"},
		},
	}

	c := BuildComputer(rec, "S-1-5-21-1-2-3", "corp.local", catalogs)
	if len(c.SPNTargets) != 1 {
		t.Fatalf("SPNTargets = %+v, want 1 entry", c.SPNTargets)
	}
	if c.SPNTargets[0].Port != defaultMSSQLPort {
		t.Errorf("Port = %d, want %d", c.SPNTargets[0].Port, defaultMSSQLPort)
	}
}

func TestPrimaryGroupSID(t *testing.T) {
	if got := primaryGroupSID("S-1-5-21-1-2-3", "513"); got != "S-1-5-21-1-2-3-513" {
		t.Errorf("primaryGroupSID = %q", got)
	}
	if got := primaryGroupSID("", "513"); got != "" {
		t.Errorf("primaryGroupSID with no domain = %q, want empty", got)
	}
}
