package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"adldap/analyze"
	"adldap/collect"
	"adldap/graph"
)

// GraphMethodsBitfield derives the methods bitfield recorded in every graph
// file's meta.methods: ACL/ObjectProps/Trusts/UserRights are always
// considered to have run once any records exist, Group/Container are added
// when their categories were collected, and CertServices is added when any
// certificate-shaped category was collected (ad_ldap_dumper.py's
// bloodhound_convert: methods_included list built from dump.keys()).
func GraphMethodsBitfield(records map[string][]*collect.Record) uint32 {
	methods := analyze.MethodBitACL | analyze.MethodBitObjectProps | analyze.MethodBitTrusts | analyze.MethodBitUserRights
	if len(records["containers"]) > 0 {
		methods |= analyze.MethodBitContainer
	}
	if len(records["groups"]) > 0 {
		methods |= analyze.MethodBitGroup
	}
	for category, recs := range records {
		if len(recs) > 0 && strings.HasPrefix(category, "cert") {
			methods |= analyze.MethodBitCertServices
			break
		}
	}
	return methods
}

// WriteGraphFiles assembles and writes one file per graph.GraphCategories
// entry into dir, named "{filenameBase}{timestamp}_{category}.json" (an
// empty filenameBase omits the leading underscore BloodHound otherwise
// expects, matching bloodhound_convert's "filename_base + '_' if
// filename_base else ''" behavior). Categories whose Assemble produced zero
// records are still written, mirroring the original tool's unconditional
// per-category file emission.
func WriteGraphFiles(catalogs *collect.Catalogs, records map[string][]*collect.Record, dir, filenameBase string, timestamp int64) ([]string, error) {
	methods := GraphMethodsBitfield(records)
	asm := graph.NewAssembler(catalogs, records, methods)

	prefix := ""
	if filenameBase != "" {
		prefix = filenameBase + "_"
	}

	var written []string
	for _, category := range graph.GraphCategories {
		env := asm.Assemble(category)

		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return written, fmt.Errorf("marshaling graph category %q: %w", category, err)
		}

		name := fmt.Sprintf("%s%d_%s.json", prefix, timestamp, category)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("writing graph category %q: %w", category, err)
		}
		written = append(written, path)
	}

	return written, nil
}
