package cmd

import (
	"fmt"

	"adldap/analyze"
	"adldap/collect"
	"adldap/connect"

	"github.com/spf13/cobra"
)

// schemaCmd loads the schema collector and reports every lDAPDisplayName
// it found, for debugging attribute pruning (SPEC_FULL.md §6.1's
// schema-driven attribute pruning detail).
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Load the schema and list known attribute display names",
	Long:  "Connects to the configured directory, collects classSchema/attributeSchema objects from the schema naming context, and prints every lDAPDisplayName found.",
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dir, err := connect.NewDirectory(&cfg.LDAP)
	if err != nil {
		return fmt.Errorf("connecting to directory: %w", err)
	}
	defer dir.Close()

	types := analyze.NewTypeRegistry()
	schema, err := collect.LoadSchema(cmd.Context(), dir, types)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	names := schema.AttributeNames()
	cmd.Printf("%d attributes known\n", len(names))
	for _, name := range names {
		cmd.Println(name)
	}

	return nil
}
