package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"adldap/collect"
)

func TestWriteDumpIncludesRequestedCategoriesAndMeta(t *testing.T) {
	pipeline := collect.NewPipeline(nil)
	pipeline.Records["users"] = []*collect.Record{
		{
			DN:        "CN=alice,CN=Users,DC=corp,DC=local",
			ObjectSID: "S-1-5-21-1-2-3-1104",
			Attrs:     collect.Normalized{"sAMAccountName": "alice"},
		},
	}
	pipeline.Records["groups"] = nil

	meta := DumpMeta{
		StartTime: "2026-07-31 00:00:00.000000 UTC +0000",
		EndTime:   "2026-07-31 00:01:00.000000 UTC +0000",
		Username:  "alice",
		Whoami:    "CORP\\alice",
		Server:    "dc01.corp.local",
		Methods:   []string{"users", "groups"},
		SidLookup: pipeline.Catalogs.SIDLookup(),
	}

	var buf bytes.Buffer
	if err := WriteDump(&buf, pipeline, meta, []string{"users", "groups"}); err != nil {
		t.Fatalf("WriteDump: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal dump: %v", err)
	}

	users, ok := out["users"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("users = %v, want one record", out["users"])
	}
	if _, ok := out["schema"]; !ok {
		t.Error("expected a schema key even with no schema loaded")
	}
	metaOut, ok := out["meta"].(map[string]any)
	if !ok || metaOut["username"] != "alice" {
		t.Errorf("meta = %v", out["meta"])
	}
}

func TestSortedCategoriesIsAlphabetical(t *testing.T) {
	records := map[string][]*collect.Record{
		"users":   {},
		"domains": {},
		"gpos":    {},
	}
	got := sortedCategories(records)
	want := []string{"domains", "gpos", "users"}
	if len(got) != len(want) {
		t.Fatalf("sortedCategories = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sortedCategories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
