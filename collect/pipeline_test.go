package collect

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"
	"testing"

	"adldap/connect"
	"adldap/queries"
)

// fakeDirectory is a minimal connect.Directory double keyed by filter
// string, letting tests hand back canned entries per category without a
// live LDAP server.
type fakeDirectory struct {
	baseDN   string
	configNC string
	schemaNC string
	byFilter map[string][]*connect.Entry
}

func (f *fakeDirectory) Search(ctx context.Context, req connect.SearchRequest) (<-chan *connect.Entry, <-chan error) {
	entries := make(chan *connect.Entry, 16)
	errs := make(chan error, 1)
	go func() {
		defer close(entries)
		defer close(errs)
		for _, e := range f.byFilter[req.Filter] {
			entries <- e
		}
		errs <- nil
	}()
	return entries, errs
}

func (f *fakeDirectory) WhoAmI(ctx context.Context) (string, error) { return "corp\\tester", nil }
func (f *fakeDirectory) BaseDN() string                             { return f.baseDN }
func (f *fakeDirectory) ConfigurationNamingContext() string         { return f.configNC }
func (f *fakeDirectory) SchemaNamingContext() string                { return f.schemaNC }
func (f *fakeDirectory) Close() error                               { return nil }

// testSID encodes a textual "S-1-5-21-..." SID into its binary MS-DTYP
// form, the inverse of analyze.ParseSID, so fixtures can hand PostProcess
// something it can decode.
func testSID(t *testing.T, text string) []byte {
	t.Helper()
	parts := strings.Split(text, "-")
	if len(parts) < 3 || parts[0] != "S" {
		t.Fatalf("invalid test SID %q", text)
	}
	authority, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		t.Fatalf("invalid authority in %q: %v", text, err)
	}
	subAuthorities := parts[3:]

	buf := make([]byte, 8+4*len(subAuthorities))
	buf[0] = 1
	buf[1] = byte(len(subAuthorities))
	for i := 0; i < 6; i++ {
		buf[7-i] = byte(authority >> (8 * i))
	}
	for i, s := range subAuthorities {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			t.Fatalf("invalid sub-authority %q: %v", s, err)
		}
		binary.LittleEndian.PutUint32(buf[8+i*4:], uint32(v))
	}
	return buf
}

func TestPipelineRunPopulatesRecordsAndCatalogs(t *testing.T) {
	usersQuery, _ := queries.Get("users")
	groupsQuery, _ := queries.Get("groups")

	dir := &fakeDirectory{
		baseDN:   "DC=corp,DC=local",
		configNC: "CN=Configuration,DC=corp,DC=local",
		schemaNC: "CN=Schema,CN=Configuration,DC=corp,DC=local",
		byFilter: map[string][]*connect.Entry{
			usersQuery.Filter: {
				{
					DN:    "CN=alice,CN=Users,DC=corp,DC=local",
					Attrs: map[string][]string{"sAMAccountName": {"alice"}, "objectClass": {"top", "person", "user"}},
					Raw:   map[string][][]byte{"objectSid": {testSID(t, "S-1-5-21-1-2-3-1104")}},
				},
			},
			groupsQuery.Filter: {
				{
					DN:    "CN=Domain Admins,CN=Users,DC=corp,DC=local",
					Attrs: map[string][]string{"sAMAccountName": {"Domain Admins"}},
					Raw:   map[string][][]byte{"objectSid": {testSID(t, "S-1-5-21-1-2-3-512")}},
				},
			},
		},
	}

	p := NewPipeline(dir)
	if err := p.Run(context.Background(), Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.State() != StateDone {
		t.Errorf("State = %v, want Done", p.State())
	}
	if len(p.Records["users"]) != 1 {
		t.Fatalf("users records = %d, want 1", len(p.Records["users"]))
	}
	if got := p.Catalogs.ResolvePrincipalClass("S-1-5-21-1-2-3-1104"); got != "User" {
		t.Errorf("ResolvePrincipalClass(alice) = %q", got)
	}
	if got := p.Catalogs.ResolvePrincipalClass("S-1-5-21-1-2-3-512"); got != "Group" {
		t.Errorf("ResolvePrincipalClass(Domain Admins) = %q", got)
	}
}

func TestPipelineRunRespectsCategorySubset(t *testing.T) {
	usersQuery, _ := queries.Get("users")
	dir := &fakeDirectory{
		baseDN: "DC=corp,DC=local",
		byFilter: map[string][]*connect.Entry{
			usersQuery.Filter: {
				{
					DN:    "CN=bob,CN=Users,DC=corp,DC=local",
					Attrs: map[string][]string{"sAMAccountName": {"bob"}},
					Raw:   map[string][][]byte{"objectSid": {testSID(t, "S-1-5-21-1-2-3-1105")}},
				},
			},
		},
	}

	p := NewPipeline(dir)
	if err := p.Run(context.Background(), Options{Categories: []string{"users"}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(p.Records) != 1 {
		t.Fatalf("Records categories = %d, want 1 (only users)", len(p.Records))
	}
}
