package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"adldap/collect"
	"adldap/connect"
	"adldap/log"
	"adldap/output"
	"adldap/queries"

	"github.com/spf13/cobra"
)

// collectCmd runs the full Enumeration Pipeline against the configured
// directory and writes a dump file (spec.md §6), optionally followed by
// graph files (the BloodHound-style per-category exports).
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Enumerate the directory and write a dump file",
	Long:  "Runs every collection method against the configured directory, normalizes and post-processes the results, and writes a single JSON dump file.",
	RunE:  runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringSlice("methods", nil, "Collection methods to run (default: all 12 categories)")
	collectCmd.Flags().Bool("timestamp", false, "Render timestamps as raw Unix seconds instead of formatted strings")
	collectCmd.Flags().Bool("graph", false, "Also write per-category graph files after the dump")
	collectCmd.Flags().String("dir", ".", "Directory to write output files into")
	collectCmd.Flags().String("base", "", "Filename prefix for dump/graph files")
	collectCmd.Flags().Int("delay", 0, "Seconds to pace between collection methods")
	collectCmd.Flags().Int("jitter", 0, "Seconds of random jitter added to --delay")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dir, err := connect.NewDirectory(&cfg.LDAP)
	if err != nil {
		return fmt.Errorf("connecting to directory: %w", err)
	}
	defer dir.Close()

	whoami, err := dir.WhoAmI(cmd.Context())
	if err != nil {
		whoami = "Anonymous"
	}

	methods, _ := cmd.Flags().GetStringSlice("methods")
	timestampMode, _ := cmd.Flags().GetBool("timestamp")
	writeGraph, _ := cmd.Flags().GetBool("graph")
	outDir, _ := cmd.Flags().GetString("dir")
	base, _ := cmd.Flags().GetString("base")
	delay, _ := cmd.Flags().GetInt("delay")
	jitter, _ := cmd.Flags().GetInt("jitter")

	categories := methods
	if len(categories) == 0 {
		categories = queries.CategoryNames
	}

	pipeline := collect.NewPipeline(dir)

	startTime := time.Now().UTC()
	err = pipeline.Run(cmd.Context(), collect.Options{
		Categories:          categories,
		TimestampMode:       timestampMode,
		LoadSchema:          true,
		MethodDelaySeconds:  delay,
		MethodJitterSeconds: jitter,
	})
	if err != nil {
		return fmt.Errorf("running collection pipeline: %w", err)
	}
	endTime := time.Now().UTC()

	meta := output.DumpMeta{
		StartTime: formatDumpTimestamp(startTime, timestampMode),
		EndTime:   formatDumpTimestamp(endTime, timestampMode),
		Username:  cfg.LDAP.Username,
		Whoami:    whoami,
		Server:    cfg.LDAP.Server,
		Methods:   categories,
		SidLookup: pipeline.Catalogs.SIDLookup(),
	}

	dumpPath := dumpFilePath(outDir, base, cfg.LDAP.BaseDN)
	f, err := os.Create(dumpPath)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	err = output.WriteDump(f, pipeline, meta, categories)
	f.Close()
	if err != nil {
		return fmt.Errorf("writing dump file: %w", err)
	}
	log.Infof("Dump written: %s", dumpPath)

	if writeGraph {
		written, err := output.WriteGraphFiles(pipeline.Catalogs, pipeline.Records, outDir, base, endTime.Unix())
		if err != nil {
			return fmt.Errorf("writing graph files: %w", err)
		}
		log.Infof("Graph files written: %d", len(written))
	}

	return nil
}

// formatDumpTimestamp mirrors the Attribute Normalizer's timestamp layout
// (spec.md §4.4) so meta.start_time/end_time agree with every other
// timestamp in the dump.
func formatDumpTimestamp(t time.Time, timestampMode bool) string {
	if timestampMode {
		return fmt.Sprintf("%d", t.Unix())
	}
	return t.Format("2006-01-02 15:04:05.000000 MST -0700")
}

// dumpFilePath names the dump file "{base_}{timestamp}_{domain}_dump.json",
// with a compact timestamp and the domain taken from baseDN ("ad" when
// baseDN yields no domain).
func dumpFilePath(dir, base, baseDN string) string {
	domain, err := connect.BaseDNToDomain(baseDN)
	if err != nil || domain == "" {
		domain = "ad"
	}
	timestamp := time.Now().Format("20060102-150405")
	name := fmt.Sprintf("%s_%s_dump.json", timestamp, domain)
	if base != "" {
		name = fmt.Sprintf("%s_%s", base, name)
	}
	return filepath.Join(dir, name)
}
