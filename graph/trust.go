package graph

import (
	"strconv"
	"strings"

	"adldap/analyze"
	"adldap/collect"
)

// TrustRecord is one inter-domain trust edge attached to a Domain object
// (spec.md §4.6).
type TrustRecord struct {
	TargetDomainName    string `json:"TargetDomainName"`
	TargetDomainSid     string `json:"TargetDomainSid,omitempty"`
	TrustDirection      string `json:"TrustDirection"`
	TrustType           string `json:"TrustType"`
	IsTransitive        bool   `json:"IsTransitive"`
	SidFilteringEnabled bool   `json:"SidFilteringEnabled"`
}

// trustKind derives the graph's TrustType classification from the
// trustAttributes bitfield (spec.md §4.6, §8): a within-forest trust is
// ParentChild, a forest-transitive trust not within the forest is Forest,
// anything else is External.
func trustKind(flags []string) string {
	if hasFlag(flags, "WITHIN_FOREST") {
		return "ParentChild"
	}
	if hasFlag(flags, "FOREST_TRANSITIVE") {
		return "Forest"
	}
	return "External"
}

// buildTrusts shapes the "trusted_domains" records that name this domain
// as their parent into TrustRecord entries.
func buildTrusts(recs []*collect.Record) []TrustRecord {
	trusts := make([]TrustRecord, 0, len(recs))
	for _, rec := range recs {
		flags, _ := rec.Attrs["trustAttributesFlags"].([]string)
		direction := "Disabled"
		if raw := rec.Attrs.String(analyze.AttrTrustDirection); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				direction = analyze.LookupTrustDirection(n)
			}
		}
		trusts = append(trusts, TrustRecord{
			TargetDomainName:    strings.ToUpper(rec.Attrs.String(analyze.AttrTrustPartner)),
			TargetDomainSid:     rec.SecurityIdentifier,
			TrustDirection:      direction,
			TrustType:           trustKind(flags),
			IsTransitive:        !(hasFlag(flags, "TREAT_AS_EXTERNAL") || hasFlag(flags, "CROSS_ORGANIZATION")),
			SidFilteringEnabled: hasFlag(flags, "QUARANTINED_DOMAIN"),
		})
	}
	return trusts
}
