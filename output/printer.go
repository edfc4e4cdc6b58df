package output

import (
	"fmt"
	"strings"

	"adldap/collect"
)

// PrinterConfig defines configuration options for output printers.
type PrinterConfig struct {
	Format string // Output format: "text", "json", or "csv"
	Path   string // Optional file path. If empty, writes to stdout
}

// Printer defines the interface for ad-hoc query result formatters.
// Implementations must support both batch printing and streaming of decoded
// records. This is distinct from the dump file and graph file writers
// (dump.go, graph.go), which always emit the full spec-mandated schema
// regardless of Format.
type Printer interface {
	Print(records []*collect.Record) error
	StreamPrint(records <-chan *collect.Record) error
}

// NewPrinter creates a new Printer instance based on the specified format.
// Returns an error if the format is not supported.
//
// Supported formats:
//   - "text" or "card": human-readable card-based output with color
//   - "json": structured JSON output with metadata
//   - "csv": comma-separated values for spreadsheet compatibility
func NewPrinter(cfg PrinterConfig) (Printer, error) {
	switch cfg.Format {
	case "text", "card":
		return NewTextPrinter(cfg), nil
	case "json":
		return NewJSONPrinter(cfg), nil
	case "csv":
		return NewCSVPrinter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}

// recordAttributes flattens a record's normalized attributes to a flat
// string map for display, joining multi-valued fields with "; ".
func recordAttributes(rec *collect.Record) map[string]string {
	attrs := make(map[string]string, len(rec.Attrs))
	for name, v := range rec.Attrs {
		switch val := v.(type) {
		case string:
			attrs[name] = val
		case []string:
			attrs[name] = strings.Join(val, "; ")
		}
	}
	if rec.ObjectSID != "" {
		attrs["objectSid"] = rec.ObjectSID
	}
	if rec.ObjectGUID != "" {
		attrs["objectGUID"] = rec.ObjectGUID
	}
	if len(rec.SIDHistory) > 0 {
		attrs["sIDHistory"] = strings.Join(rec.SIDHistory, "; ")
	}
	if rec.SecurityIdentifier != "" {
		attrs["securityIdentifier"] = rec.SecurityIdentifier
	}
	return attrs
}
