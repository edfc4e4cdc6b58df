package queries

import (
	"fmt"

	"adldap/analyze"
)

// supplementalQueries are registered alongside the fixed categories:
// dcclonerights walks group membership with LDAP_MATCHING_RULE_IN_CHAIN,
// dcsync matches the domain's nTSecurityDescriptor with
// LDAP_MATCHING_RULE_BIT_AND, and custom_query is the
// passthrough slot a caller fills in with BuildCustomQuery. Grounded on the
// teacher's DomainSpecificQueries map and
// original_source/ad_ldap_dumper.py's dcsync/dcclonerights checks.
var supplementalQueries = map[string]Query{
	"dcclonerights": {
		BaseDN: DefaultNamingContext,
		Filter: fmt.Sprintf(
			"(&(objectClass=group)(member:%s:=%%{dn}))",
			analyze.OIDMatchRuleInChain,
		),
		Attributes: []string{analyze.AttrDistinguishedName, analyze.AttrName, analyze.AttrObjectSID},
	},
	"dcsync": {
		BaseDN: DefaultNamingContext,
		Filter: fmt.Sprintf(
			"(&(objectClass=domain)(nTSecurityDescriptor:%s:=%%{mask}))",
			analyze.OIDMatchRuleBitAnd,
		),
		Attributes: []string{analyze.AttrDistinguishedName, analyze.AttrNTSecurityDescriptor},
	},
	"custom_query": {
		BaseDN:     DefaultNamingContext,
		Filter:     "(objectClass=*)",
		Attributes: []string{analyze.AttrObjectSID, analyze.AttrDistinguishedName, analyze.AttrName},
	},
}

// BuildCustomQuery overrides the custom_query slot with a caller-supplied
// filter and attribute list (spec.md §4.3's "custom_query" escape hatch for
// arbitrary LDAP searches outside the fixed category set).
func BuildCustomQuery(filter string, attributes []string, baseDN NamingContext) Query {
	q := Query{Filter: filter, Attributes: attributes, BaseDN: baseDN}
	q.Attributes = withMinimumAttributes(q.Attributes)
	Register("custom_query", q)
	return q
}
