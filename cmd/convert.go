package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"adldap/analyze"
	"adldap/collect"
	"adldap/log"
	"adldap/output"
	"adldap/queries"

	"github.com/spf13/cobra"
)

// convertCmd turns a previously written dump file back into graph files,
// without re-querying the directory (spec.md §6.1's dump/graph round trip).
var convertCmd = &cobra.Command{
	Use:   "convert DUMP_FILE",
	Short: "Convert a dump file into graph files",
	Long:  "Reads a dump JSON file produced by 'adldap collect' and writes the per-category graph files, without touching the directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("dir", ".", "Directory to write graph files into")
	convertCmd.Flags().String("base", "", "Filename prefix for graph files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading dump file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing dump file: %w", err)
	}

	records := make(map[string][]*collect.Record)
	for _, category := range queries.CategoryNames {
		rowsRaw, ok := raw[category]
		if !ok {
			continue
		}
		var rows []map[string]string
		if err := json.Unmarshal(rowsRaw, &rows); err != nil {
			return fmt.Errorf("parsing dump category %q: %w", category, err)
		}
		records[category] = recordsFromRows(rows)
	}

	catalogs := collect.RebuildCatalogs(records)

	outDir, _ := cmd.Flags().GetString("dir")
	base, _ := cmd.Flags().GetString("base")

	written, err := output.WriteGraphFiles(catalogs, records, outDir, base, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing graph files: %w", err)
	}
	log.Infof("Graph files written: %d", len(written))

	return nil
}

// recordsFromRows rebuilds Records from a dump category's flattened
// attribute rows (output.recordAttributes' inverse).
func recordsFromRows(rows []map[string]string) []*collect.Record {
	records := make([]*collect.Record, 0, len(rows))
	for _, row := range rows {
		attrs := make(collect.Normalized, len(row))
		for name, value := range row {
			switch name {
			case "objectSid", "objectGUID", "sIDHistory", "securityIdentifier":
				continue
			default:
				attrs[name] = value
			}
		}

		objectGUID := row["objectGUID"]
		if canonical, err := analyze.CanonicalGUID(objectGUID); err == nil {
			objectGUID = canonical
		} else if objectGUID != "" {
			log.Warnf("dump record %q: %v, keeping raw value", row[analyze.AttrDistinguishedName], err)
		}

		rec := &collect.Record{
			DN:                 row[analyze.AttrDistinguishedName],
			Attrs:              attrs,
			ObjectSID:          row["objectSid"],
			ObjectGUID:         objectGUID,
			SecurityIdentifier: row["securityIdentifier"],
		}
		if sidHistory, ok := row["sIDHistory"]; ok && sidHistory != "" {
			rec.SIDHistory = strings.Split(sidHistory, "; ")
		}
		records = append(records, rec)
	}
	return records
}
