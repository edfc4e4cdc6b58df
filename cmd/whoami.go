package cmd

import (
	"fmt"

	"adldap/connect"

	"github.com/spf13/cobra"
)

// whoamiCmd reports the identity the configured bind resolves to, per the
// original tool's whoami() extended-operation call (SPEC_FULL.md §6.1).
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Report the identity the current bind resolves to",
	Long:  "Connects to the configured directory and runs the \"Who Am I?\" extended operation, stripping the leading \"u:\" authzid prefix.",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dir, err := connect.NewDirectory(&cfg.LDAP)
	if err != nil {
		return fmt.Errorf("connecting to directory: %w", err)
	}
	defer dir.Close()

	whoami, err := dir.WhoAmI(cmd.Context())
	if err != nil {
		cmd.Println("Anonymous")
		return nil
	}

	cmd.Println(whoami)
	return nil
}
