package output

import (
	"testing"

	"adldap/collect"
)

func rec(dn string, attrs collect.Normalized) *collect.Record {
	return &collect.Record{DN: dn, Attrs: attrs}
}

func TestObjectTypeClassifiesByDN(t *testing.T) {
	cases := map[string]string{
		"CN=dc01,OU=Domain Controllers,DC=corp,DC=local": "DC",
		"CN=srv01,CN=Computers,DC=corp,DC=local":          "COMPUTER",
		"CN=alice,CN=Users,DC=corp,DC=local":               "USER",
		"CN=Domain Admins,CN=Users,DC=corp,DC=local":       "USER",
		"OU=Sales,DC=corp,DC=local":                        "OU",
		"CN=foo,CN=System,DC=corp,DC=local":                "OTHER",
	}
	for dn, want := range cases {
		if got := objectType(dn); got != want {
			t.Errorf("objectType(%q) = %q, want %q", dn, got, want)
		}
	}
}

func TestCollectStatsCountsDisabledAndAdmin(t *testing.T) {
	records := []*collect.Record{
		rec("CN=alice,CN=Users,DC=corp,DC=local", collect.Normalized{
			"userAccountControl": "512",
			"adminCount":         "1",
		}),
		rec("CN=bob,CN=Users,DC=corp,DC=local", collect.Normalized{
			"userAccountControl": "514",
		}),
	}
	stats := collectStats(records)
	if stats.Total != 2 || stats.Enabled != 1 || stats.Disabled != 1 || stats.Admins != 1 {
		t.Errorf("collectStats = %+v", stats)
	}
}

func TestIsHighValueTargetBySensitiveSPN(t *testing.T) {
	r := rec("CN=sqlsvc,CN=Users,DC=corp,DC=local", collect.Normalized{
		"servicePrincipalName": []string{"MSSQLSvc/sql01.corp.local:1433"},
	})
	if !isHighValueTarget(r) {
		t.Error("expected MSSQLSvc principal to be high-value")
	}
}

func TestSortByValuePrefersAdminOverPlainUser(t *testing.T) {
	admin := rec("CN=admin,CN=Users,DC=corp,DC=local", collect.Normalized{"adminCount": "1"})
	plain := rec("CN=plain,CN=Users,DC=corp,DC=local", collect.Normalized{})
	sorted := sortByValue([]*collect.Record{plain, admin})
	if sorted[0] != admin {
		t.Error("sortByValue should rank the admin account first")
	}
}

func TestRecordAttributesFlattensMultivaluedAndSidFields(t *testing.T) {
	r := rec("CN=alice,CN=Users,DC=corp,DC=local", collect.Normalized{
		"servicePrincipalName": []string{"HTTP/web01", "HTTP/web02"},
	})
	r.ObjectSID = "S-1-5-21-1-2-3-1104"
	r.SIDHistory = []string{"S-1-5-21-9-9-9-500"}
	r.SecurityIdentifier = "S-1-5-21-9-9-9"

	attrs := recordAttributes(r)
	if attrs["servicePrincipalName"] != "HTTP/web01; HTTP/web02" {
		t.Errorf("servicePrincipalName = %q", attrs["servicePrincipalName"])
	}
	if attrs["objectSid"] != "S-1-5-21-1-2-3-1104" {
		t.Errorf("objectSid = %q", attrs["objectSid"])
	}
	if attrs["sIDHistory"] != "S-1-5-21-9-9-9-500" {
		t.Errorf("sIDHistory = %q", attrs["sIDHistory"])
	}
	if attrs["securityIdentifier"] != "S-1-5-21-9-9-9" {
		t.Errorf("securityIdentifier = %q", attrs["securityIdentifier"])
	}
}
