package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"adldap/analyze"
	"adldap/collect"
)

// colorFunctions holds color functions for output formatting.
type colorFunctions struct {
	Red    func(...interface{}) string
	Green  func(...interface{}) string
	Yellow func(...interface{}) string
	Blue   func(...interface{}) string
	Cyan   func(...interface{}) string
	Bold   func(...interface{}) string
	Dim    func(...interface{}) string
}

// initColors initializes color functions based on terminal support.
func initColors() colorFunctions {
	if color.NoColor {
		return colorFunctions{
			Red:    fmt.Sprint,
			Green:  fmt.Sprint,
			Yellow: fmt.Sprint,
			Blue:   fmt.Sprint,
			Cyan:   fmt.Sprint,
			Bold:   fmt.Sprint,
			Dim:    fmt.Sprint,
		}
	}

	return colorFunctions{
		Red:    color.New(color.FgRed).SprintFunc(),
		Green:  color.New(color.FgGreen).SprintFunc(),
		Yellow: color.New(color.FgYellow).SprintFunc(),
		Blue:   color.New(color.FgBlue).SprintFunc(),
		Cyan:   color.New(color.FgCyan).SprintFunc(),
		Bold:   color.New(color.Bold).SprintFunc(),
		Dim:    color.New(color.Faint).SprintFunc(),
	}
}

// objectType determines the AD object type from a distinguished name, for
// card/CSV display only — the Graph Assembler's acl.Class is authoritative
// for graph output.
func objectType(dn string) string {
	switch {
	case strings.Contains(dn, "OU=Domain Controllers,"):
		return "DC"
	case strings.Contains(dn, "CN=Computers,"):
		return "COMPUTER"
	case strings.Contains(dn, "CN=Users,") || strings.Contains(dn, "OU=Users,"):
		return "USER"
	case strings.Contains(dn, "CN=Groups,") || strings.Contains(dn, "OU=Groups,"):
		return "GROUP"
	case strings.Contains(dn, "OU="):
		return "OU"
	default:
		return "OTHER"
	}
}

// Statistics summarizes one category's records for the text printer's
// footer.
type Statistics struct {
	Total    int
	Enabled  int
	Disabled int
	Admins   int
	SPN      int
	ASRep    int
	DCs      int
}

// collectStats collects statistics from a list of decoded records.
func collectStats(records []*collect.Record) Statistics {
	stats := Statistics{}
	for _, rec := range records {
		stats.Total++
		objType := objectType(rec.DN)
		uac := rec.Attrs.String("userAccountControl")
		if n, err := strconv.Atoi(uac); err == nil {
			flags, _ := analyze.ResolveFlags(analyze.AttrUserAccountControl, n)
			uac = strings.Join(flags, " ")
		}

		switch objType {
		case "USER":
			if strings.Contains(uac, "ACCOUNTDISABLE") {
				stats.Disabled++
			} else {
				stats.Enabled++
			}

			if rec.Attrs.String("adminCount") == "1" {
				stats.Admins++
			}

			if len(rec.Attrs.Strings("servicePrincipalName")) > 0 {
				stats.SPN++
			}

			// AS-REP roastable: preauth not required, account not disabled.
			if strings.Contains(uac, "DONT_REQ_PREAUTH") && !strings.Contains(uac, "ACCOUNTDISABLE") {
				stats.ASRep++
			}

		case "DC":
			stats.DCs++
			stats.Enabled++

		case "COMPUTER":
			if !strings.Contains(uac, "ACCOUNTDISABLE") {
				stats.Enabled++
			}
		}
	}
	return stats
}

// isHighValueTarget flags records worth calling out in card view: admin
// accounts, domain controllers, and sensitive-SPN principals.
func isHighValueTarget(rec *collect.Record) bool {
	if rec.Attrs.String("adminCount") == "1" {
		return true
	}
	if strings.Contains(rec.DN, "OU=Domain Controllers,") {
		return true
	}
	sensitiveSPNs := []string{"MSSQLSvc", "HTTP", "cifs", "GC", "ldap", "krbtgt"}
	for _, spn := range rec.Attrs.Strings("servicePrincipalName") {
		for _, s := range sensitiveSPNs {
			if strings.HasPrefix(spn, s) {
				return true
			}
		}
	}
	return false
}

// scoreTarget calculates a value score for a record for sorting.
func scoreTarget(rec *collect.Record) int {
	score := 0
	objType := objectType(rec.DN)
	uac := rec.Attrs.String("userAccountControl")

	switch objType {
	case "USER":
		if rec.Attrs.String("adminCount") == "1" {
			score += 50
		}
		if len(rec.Attrs.Strings("servicePrincipalName")) > 0 {
			score += 20
		}
		if !strings.Contains(uac, "DONT_REQUIRE_PREAUTH") && !strings.Contains(uac, "ACCOUNTDISABLE") {
			score += 15
		}
		if lastLogon := rec.Attrs.String("lastLogon"); lastLogon != "" && lastLogon != "0" {
			score += 10
		}
		if strings.Contains(uac, "DONT_EXPIRE_PASSWORD") {
			score += 5
		}

	case "COMPUTER", "DC":
		if strings.Contains(rec.DN, "OU=Domain Controllers,") {
			score += 40
		}
		if lastLogon := rec.Attrs.String("lastLogon"); lastLogon != "" && lastLogon != "0" {
			score += 10
		}

	case "GROUP":
		if rec.Attrs.String("adminCount") == "1" {
			score += 30
		}
		if len(rec.Attrs.Strings("member")) > 10 {
			score += 5
		}
	}

	return score
}

// sortByValue sorts records by their value score (highest first).
func sortByValue(records []*collect.Record) []*collect.Record {
	sorted := make([]*collect.Record, len(records))
	copy(sorted, records)

	sort.Slice(sorted, func(i, j int) bool {
		return scoreTarget(sorted[i]) > scoreTarget(sorted[j])
	})

	return sorted
}
