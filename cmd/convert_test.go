package cmd

import "testing"

func TestRecordsFromRowsRebuildsSIDAndGUIDFields(t *testing.T) {
	rows := []map[string]string{
		{
			"distinguishedName": "CN=alice,CN=Users,DC=corp,DC=local",
			"sAMAccountName":    "alice",
			"objectSid":         "S-1-5-21-1-2-3-1104",
			"objectGUID":        "11111111-2222-3333-4444-555555555555",
			"sIDHistory":        "S-1-5-21-9-9-9-500; S-1-5-21-9-9-9-501",
		},
	}

	records := recordsFromRows(rows)
	if len(records) != 1 {
		t.Fatalf("recordsFromRows returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.DN != "CN=alice,CN=Users,DC=corp,DC=local" {
		t.Errorf("DN = %q", rec.DN)
	}
	if rec.ObjectSID != "S-1-5-21-1-2-3-1104" {
		t.Errorf("ObjectSID = %q", rec.ObjectSID)
	}
	if rec.ObjectGUID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("ObjectGUID = %q", rec.ObjectGUID)
	}
	if len(rec.SIDHistory) != 2 || rec.SIDHistory[0] != "S-1-5-21-9-9-9-500" {
		t.Errorf("SIDHistory = %v", rec.SIDHistory)
	}
	if rec.Attrs.String("sAMAccountName") != "alice" {
		t.Errorf("Attrs[sAMAccountName] = %q", rec.Attrs.String("sAMAccountName"))
	}
	if _, ok := rec.Attrs["objectSid"]; ok {
		t.Error("objectSid should not be duplicated into Attrs")
	}
}

func TestRecordsFromRowsRebuildsSecurityIdentifier(t *testing.T) {
	rows := []map[string]string{
		{
			"distinguishedName":  "CN=partner.example.com,CN=System,DC=corp,DC=local",
			"trustPartner":       "partner.example.com",
			"securityIdentifier": "S-1-5-21-9-9-9",
		},
	}

	records := recordsFromRows(rows)
	rec := records[0]
	if rec.SecurityIdentifier != "S-1-5-21-9-9-9" {
		t.Errorf("SecurityIdentifier = %q", rec.SecurityIdentifier)
	}
	if _, ok := rec.Attrs["securityIdentifier"]; ok {
		t.Error("securityIdentifier should not be duplicated into Attrs")
	}
}

func TestRecordsFromRowsHandlesMissingSIDHistory(t *testing.T) {
	rows := []map[string]string{
		{"distinguishedName": "CN=g,CN=Users,DC=corp,DC=local"},
	}
	records := recordsFromRows(rows)
	if len(records[0].SIDHistory) != 0 {
		t.Errorf("SIDHistory = %v, want empty", records[0].SIDHistory)
	}
}
