package queries

import "adldap/analyze"

// categoryQueries are the twelve fixed categories the Enumeration Pipeline
// iterates in CategoryNames order (spec.md §4.3). Grounded on
// original_source/ad_ldap_dumper.py's query_users/query_groups/
// query_computers/query_ous/query_gpos/query_domain/query_forest/
// query_containers/query_trusted_domains/query_certauthorities/
// query_certenrollservices/query_certtemplates.
var categoryQueries = map[string]Query{
	"users": {
		BaseDN: DefaultNamingContext,
		Filter: "(&(objectClass=user)(|(objectCategory=person)(objectCategory=msDS-GroupManagedServiceAccount)(objectCategory=msDS-ManagedServiceAccount)))",
		Attributes: []string{
			analyze.AttrObjectClass, analyze.AttrObjectCategory, analyze.AttrSAMAccountName,
			analyze.AttrUserPrincipalName, analyze.AttrUserAccountControl, analyze.AttrObjectSID,
			analyze.AttrSIDHistory, analyze.AttrPrimaryGroupID, analyze.AttrServicePrincipalName,
			analyze.AttrAdminCount, analyze.AttrWhenCreated, analyze.AttrWhenChanged,
			analyze.AttrPwdLastSet, analyze.AttrLastLogon, analyze.AttrLastLogonTimestamp,
			analyze.AttrBadPasswordTime, analyze.AttrAccountExpires, analyze.AttrDescription,
			analyze.AttrDisplayName, analyze.AttrMSDSAllowedToDelegateTo,
			analyze.AttrMSDSAllowedToActOnBehalfOfOtherIdentity, analyze.AttrMSDSGroupMSAMembership,
			analyze.AttrMail, analyze.AttrMemberOf, analyze.AttrNTSecurityDescriptor,
			analyze.AttrIsDeleted, analyze.AttrMsMcsAdmPwdExpirationTime,
		},
	},
	"groups": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=group)",
		Attributes: []string{
			analyze.AttrObjectClass, analyze.AttrSAMAccountName, analyze.AttrObjectSID,
			analyze.AttrGroupType, analyze.AttrMember, analyze.AttrMemberOf,
			analyze.AttrAdminCount, analyze.AttrWhenCreated, analyze.AttrDescription,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"computers": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=computer)",
		Attributes: []string{
			analyze.AttrObjectClass, analyze.AttrSAMAccountName, analyze.AttrDNSHostName,
			analyze.AttrOperatingSystem, analyze.AttrUserAccountControl, analyze.AttrObjectSID,
			analyze.AttrSIDHistory, analyze.AttrPrimaryGroupID, analyze.AttrServicePrincipalName,
			analyze.AttrWhenCreated, analyze.AttrDescription, analyze.AttrMSDSAllowedToDelegateTo,
			analyze.AttrMSDSAllowedToActOnBehalfOfOtherIdentity, analyze.AttrMsMcsAdmPwdExpirationTime,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"ous": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=organizationalUnit)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrDistinguishedName, analyze.AttrGPLink,
			analyze.AttrGPOptions, analyze.AttrDescription, analyze.AttrWhenCreated,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"gpos": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=groupPolicyContainer)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrDisplayName, analyze.AttrGPCFileSysPath,
			analyze.AttrWhenCreated, analyze.AttrWhenChanged, analyze.AttrDescription,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"domains": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=domain)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrObjectSID, analyze.AttrMSDSBehaviorVersion,
			analyze.AttrGPLink, analyze.AttrDescription, analyze.AttrWhenCreated,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"forests": {
		BaseDN: ConfigurationNamingContext,
		Filter: "(objectClass=crossRefContainer)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrMSDSBehaviorVersion, analyze.AttrDescription,
			analyze.AttrWhenCreated, analyze.AttrIsDeleted,
		},
	},
	"containers": {
		BaseDN: DefaultNamingContext,
		Filter: "(|(objectClass=container)(objectClass=configuration))",
		Attributes: []string{
			analyze.AttrName, analyze.AttrDistinguishedName, analyze.AttrDescription,
			analyze.AttrNTSecurityDescriptor, analyze.AttrIsDeleted,
		},
	},
	"trusted_domains": {
		BaseDN: DefaultNamingContext,
		Filter: "(objectClass=trustedDomain)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrTrustPartner, analyze.AttrTrustDirection,
			analyze.AttrTrustType, analyze.AttrTrustAttributes, analyze.AttrSecurityIdentifier,
			analyze.AttrWhenCreated, analyze.AttrIsDeleted,
		},
	},
	"certauthorities": {
		BaseDN: ConfigurationNamingContext,
		Filter: "(|(objectClass=certificationAuthority)(objectClass=certificationAuthority))",
		Attributes: []string{
			analyze.AttrName, analyze.AttrCACertificate, analyze.AttrCrossCertificatePair,
			analyze.AttrFlags, analyze.AttrWhenCreated, analyze.AttrIsDeleted,
		},
	},
	"certenrollservices": {
		BaseDN: ConfigurationNamingContext,
		Filter: "(objectClass=pKIEnrollmentService)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrCACertificate, analyze.AttrCertificateTemplates,
			analyze.AttrFlags, analyze.AttrDNSHostName, analyze.AttrNTSecurityDescriptor,
			analyze.AttrWhenCreated, analyze.AttrIsDeleted,
		},
	},
	"certtemplates": {
		BaseDN: ConfigurationNamingContext,
		Filter: "(objectClass=pKICertificateTemplate)",
		Attributes: []string{
			analyze.AttrName, analyze.AttrDisplayName, analyze.AttrMSPKICertTemplateOID,
			analyze.AttrMSPKICertificateApplicationPolicy, analyze.AttrPKIExtendedKeyUsage,
			analyze.AttrMSPKITemplateSchemaVersion, analyze.AttrMSPKIEnrollmentFlag,
			analyze.AttrMSPKICertificateNameFlag, analyze.AttrMSPKIPrivateKeyFlag,
			analyze.AttrPKIExpirationPeriod, analyze.AttrPKIOverlapPeriod,
			analyze.AttrNTSecurityDescriptor, analyze.AttrWhenCreated, analyze.AttrIsDeleted,
		},
	},
}
