package cmd

import (
	"context"
	"fmt"

	"adldap/analyze"
	"adldap/collect"
	"adldap/connect"
	"adldap/log"
	"adldap/output"
	"adldap/queries"

	"github.com/spf13/cobra"
)

// RunQuery executes one ad-hoc LDAP query outside the full collection
// pipeline: it encapsulates the logic every quick/custom-query command
// shares.
// 1. Get configuration
// 2. Dial and bind a Directory
// 3. Resolve the search base (RootDSE default vs. configuration NC)
// 4. Stream decoded records through the configured printer
//
// The cmd parameter provides Cobra command context (for flags and output).
// The filter is the LDAP search filter string.
// The attributes are the LDAP attributes to retrieve.
//
// Returns an error if any step fails.
func RunQuery(cmd *cobra.Command, filter string, attributes []string) error {
	return runQuery(cmd, filter, attributes, queries.DefaultNamingContext)
}

func runQuery(cmd *cobra.Command, filter string, attributes []string, baseDN queries.NamingContext) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := GetConfig()

	dir, err := connect.NewDirectory(&cfg.LDAP)
	if err != nil {
		return fmt.Errorf("connecting to directory: %w", err)
	}
	defer dir.Close()

	searchBase := dir.BaseDN()
	if baseDN == queries.ConfigurationNamingContext {
		searchBase = dir.ConfigurationNamingContext()
	}

	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = cfg.Output
	}

	var csvPath string
	if format == "csv" {
		csvPath = connect.GenerateFilename(cfg.LDAP.BaseDN)
	}

	printer, err := output.NewPrinter(output.PrinterConfig{
		Format: format,
		Path:   csvPath,
	})
	if err != nil {
		return fmt.Errorf("creating printer: %w", err)
	}

	entries, errs := dir.Search(ctx, connect.SearchRequest{
		BaseDN:     searchBase,
		Filter:     filter,
		Attributes: attributes,
	})

	catalogs := collect.NewCatalogs()
	types := analyze.NewTypeRegistry()
	records := make(chan *collect.Record, 100)
	go func() {
		defer close(records)
		for e := range entries {
			norm := collect.NormalizeEntry(e, false)
			records <- collect.PostProcess(e, norm, types, catalogs.ResolveSIDName)
		}
	}()

	if err := printer.StreamPrint(records); err != nil {
		return fmt.Errorf("printing results: %w", err)
	}

	if err := <-errs; err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	if csvPath != "" {
		log.Infof("CSV file generated: %s", csvPath)
	}

	return nil
}
