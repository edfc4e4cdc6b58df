package cmd

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDumpTimestampDefault(t *testing.T) {
	ts := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	got := formatDumpTimestamp(ts, false)
	if !strings.HasPrefix(got, "2026-07-31 12:00:00.000000") {
		t.Errorf("formatDumpTimestamp = %q", got)
	}
}

func TestFormatDumpTimestampUnixMode(t *testing.T) {
	ts := time.Unix(1700000000, 0).UTC()
	got := formatDumpTimestamp(ts, true)
	if got != "1700000000" {
		t.Errorf("formatDumpTimestamp(timestampMode) = %q, want 1700000000", got)
	}
}

func TestDumpFilePathUsesDomainFromBaseDN(t *testing.T) {
	path := dumpFilePath("/tmp", "", "DC=corp,DC=local")
	if !strings.Contains(path, "corp.local") {
		t.Errorf("dumpFilePath = %q, want it to contain the resolved domain", path)
	}
	if !strings.HasSuffix(path, "_dump.json") {
		t.Errorf("dumpFilePath = %q, want a _dump.json suffix", path)
	}
}

func TestDumpFilePathFallsBackOnUnparsableBaseDN(t *testing.T) {
	path := dumpFilePath("/tmp", "nightly", "not a dn")
	if !strings.Contains(path, "_ad_dump.json") {
		t.Errorf("dumpFilePath = %q, want the 'ad' fallback domain", path)
	}
	if !strings.Contains(path, "nightly_") {
		t.Errorf("dumpFilePath = %q, want the base prefix applied", path)
	}
}
