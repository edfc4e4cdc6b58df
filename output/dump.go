package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"adldap/collect"
)

// DumpMeta is the dump file's "meta" section (spec.md §6): `{start_time,
// end_time, username, whoami, server, methods, sid_lookup,
// launch_arguments?, query_config?}`.
type DumpMeta struct {
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	Username        string            `json:"username"`
	Whoami          string            `json:"whoami"`
	Server          string            `json:"server"`
	Methods         []string          `json:"methods"`
	SidLookup       map[string]string `json:"sid_lookup"`
	LaunchArguments string            `json:"launch_arguments,omitempty"`
	QueryConfig     json.RawMessage   `json:"query_config,omitempty"`
}

// WriteDump serializes a finished pipeline's records, loaded schema, and
// run metadata into the spec's dump file shape: a single JSON object keyed
// by every query category plus "schema" and "meta" (spec.md §6).
func WriteDump(w io.Writer, pipeline *collect.Pipeline, meta DumpMeta, categories []string) error {
	out := make(map[string]any, len(categories)+2)

	for _, category := range categories {
		recs := pipeline.Records[category]
		rows := make([]map[string]string, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, recordAttributes(rec))
		}
		out[category] = rows
	}

	out["schema"] = pipeline.Schema.AttributeNames()
	out["meta"] = meta

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dump: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// sortedCategories returns categories present in records, in a stable
// alphabetical order, for callers that did not run a fixed-order pipeline
// (e.g. a custom-query result set).
func sortedCategories(records map[string][]*collect.Record) []string {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
