package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"adldap/analyze"
	"adldap/collect"
)

func TestGraphMethodsBitfieldBaseline(t *testing.T) {
	records := map[string][]*collect.Record{
		"users": {{DN: "CN=alice,CN=Users,DC=corp,DC=local"}},
	}
	want := analyze.MethodBitACL | analyze.MethodBitObjectProps | analyze.MethodBitTrusts | analyze.MethodBitUserRights
	if got := GraphMethodsBitfield(records); got != want {
		t.Errorf("GraphMethodsBitfield = %#x, want %#x", got, want)
	}
}

func TestGraphMethodsBitfieldAddsGroupContainerCertServices(t *testing.T) {
	records := map[string][]*collect.Record{
		"groups":        {{DN: "CN=g,CN=Users,DC=corp,DC=local"}},
		"containers":    {{DN: "CN=c,DC=corp,DC=local"}},
		"certtemplates": {{DN: "CN=t,CN=Certificate Templates,DC=corp,DC=local"}},
	}
	got := GraphMethodsBitfield(records)
	want := analyze.MethodBitACL | analyze.MethodBitObjectProps | analyze.MethodBitTrusts |
		analyze.MethodBitUserRights | analyze.MethodBitGroup | analyze.MethodBitContainer | analyze.MethodBitCertServices
	if got != want {
		t.Errorf("GraphMethodsBitfield = %#x, want %#x", got, want)
	}
}

func TestWriteGraphFilesWritesOneFilePerCategory(t *testing.T) {
	dir := t.TempDir()
	catalogs := collect.NewCatalogs()
	records := map[string][]*collect.Record{
		"domains": {{DN: "DC=corp,DC=local", ObjectSID: "S-1-5-21-1-2-3"}},
		"users": {
			{
				DN:        "CN=alice,CN=Users,DC=corp,DC=local",
				ObjectSID: "S-1-5-21-1-2-3-1104",
				Attrs:     collect.Normalized{"sAMAccountName": "alice"},
			},
		},
	}

	written, err := WriteGraphFiles(catalogs, records, dir, "test", 1700000000)
	if err != nil {
		t.Fatalf("WriteGraphFiles: %v", err)
	}
	if len(written) != 12 {
		t.Fatalf("wrote %d files, want 12 (one per GraphCategories entry)", len(written))
	}

	usersFile := filepath.Join(dir, "test_1700000000_users.json")
	data, err := os.ReadFile(usersFile)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", usersFile, err)
	}

	var env struct {
		Meta struct {
			Type    string `json:"type"`
			Count   int    `json:"count"`
			Version int    `json:"version"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal users graph file: %v", err)
	}
	if env.Meta.Type != "users" || env.Meta.Count != 1 || env.Meta.Version != analyze.BloodHoundIngestVersion {
		t.Errorf("users graph file meta = %+v", env.Meta)
	}
}
