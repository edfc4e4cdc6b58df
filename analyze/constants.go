package analyze

// Well-known LDAP attribute names referenced by the query registry, the
// attribute normalizer, and the post-processor.
const (
	AttrObjectClass                             = "objectClass"
	AttrObjectGUID                               = "objectGUID"
	AttrObjectSID                                = "objectSid"
	AttrObjectCategory                           = "objectCategory"
	AttrWhenCreated                              = "whenCreated"
	AttrWhenChanged                              = "whenChanged"
	AttrDSCorePropagationData                    = "dSCorePropagationData"
	AttrMSDSSupportedEncryptionTypes             = "msDS-SupportedEncryptionTypes"
	AttrLastLogon                                = "lastLogon"
	AttrPwdLastSet                               = "pwdLastSet"
	AttrLastLogonTimestamp                       = "lastLogonTimestamp"
	AttrBadPasswordTime                          = "badPasswordTime"
	AttrMSDSAllowedToActOnBehalfOfOtherIdentity   = "msDS-AllowedToActOnBehalfOfOtherIdentity"
	AttrMSDSGroupMSAMembership                   = "msDS-GroupMSAMembership"
	AttrNTSecurityDescriptor                     = "nTSecurityDescriptor"
	AttrUserAccountControl                       = "userAccountControl"
	AttrAccountExpires                           = "accountExpires"
	AttrSAMAccountName                           = "sAMAccountName"
	AttrUserPrincipalName                        = "userPrincipalName"
	AttrMSDSAllowedToDelegateTo                  = "msDS-AllowedToDelegateTo"
	AttrName                                     = "name"
	AttrOperatingSystem                          = "operatingSystem"
	AttrDNSHostName                              = "dNSHostName"
	AttrDistinguishedName                        = "distinguishedName"
	AttrServicePrincipalName                     = "servicePrincipalName"
	AttrMember                                   = "member"
	AttrMemberOf                                 = "memberOf"
	AttrGroupType                                = "groupType"
	AttrTrustPartner                             = "trustPartner"
	AttrTrustDirection                           = "trustDirection"
	AttrTrustType                                = "trustType"
	AttrTrustAttributes                          = "trustAttributes"
	AttrSecurityIdentifier                       = "securityIdentifier"
	AttrSIDHistory                               = "sIDHistory"
	AttrDisplayName                              = "displayName"
	AttrGPCFileSysPath                           = "gPCFileSysPath"
	AttrGPLink                                   = "gPLink"
	AttrGPOptions                                = "gPOptions"
	AttrAdminCount                               = "adminCount"
	AttrManagedBy                                = "managedBy"
	AttrPrimaryGroupID                           = "primaryGroupID"
	AttrMail                                     = "mail"
	AttrDescription                              = "description"
	AttrSchemaIDGUID                             = "schemaIDGUID"
	AttrLDAPDisplayName                          = "lDAPDisplayName"
	AttrMSDSBehaviorVersion                      = "msDS-Behavior-Version"
	AttrMsMcsAdmPwd                              = "ms-Mcs-AdmPwd"
	AttrMsMcsAdmPwdExpirationTime                = "ms-Mcs-AdmPwdExpirationTime"
	AttrPKIExpirationPeriod                      = "pKIExpirationPeriod"
	AttrPKIOverlapPeriod                         = "pKIOverlapPeriod"
	AttrPKIExtendedKeyUsage                      = "pKIExtendedKeyUsage"
	AttrMSPKICertTemplateOID                     = "msPKI-Cert-Template-OID"
	AttrMSPKICertificateApplicationPolicy        = "msPKI-Certificate-Application-Policy"
	AttrMSPKITemplateSchemaVersion               = "msPKI-Template-Schema-Version"
	AttrMSPKIEnrollmentFlag                      = "msPKI-Enrollment-Flag"
	AttrMSPKICertificateNameFlag                 = "msPKI-Certificate-Name-Flag"
	AttrMSPKIPrivateKeyFlag                      = "msPKI-Private-Key-Flag"
	AttrCACertificate                            = "cACertificate"
	AttrCrossCertificatePair                     = "crossCertificatePair"
	AttrCertificateTemplates                     = "certificateTemplates"
	AttrFlags                                    = "flags"
	AttrIsDeleted                                = "isDeleted"
)

// Minimum attribute set re-added to any user-supplied attribute override
// (spec.md §4.3: "A minimum attribute set ... is always added to any
// user/config override").
var MinimumAttributes = []string{AttrObjectSID, AttrDistinguishedName, AttrName}

// Configuration keys bound by viper for the ambient connect.Config.
const (
	ConfigLDAPServer    = "ldap.server"
	ConfigLDAPPort      = "ldap.port"
	ConfigLDAPBaseDN    = "ldap.baseDN"
	ConfigLDAPUsername  = "ldap.username"
	ConfigLDAPPassword  = "ldap.password"
	ConfigLDAPLoginName = "ldap.loginName"
	ConfigLDAPSecurity  = "ldap.security"
	ConfigOutput        = "output"
)

// Output formats accepted by the ambient printer layer.
const (
	OutputFormatText       = "text"
	OutputFormatJSON       = "json"
	OutputFormatCSV        = "csv"
	OutputFormatBloodhound = "bloodhound"
)

// Defaults, overridable from config (spec.md §4.3: page size default 500).
const (
	DefaultLDAPPort          = 389
	DefaultLDAPSecurity      = 0
	DefaultOutputFormat      = OutputFormatText
	DefaultLoginName         = "userPrincipalName"
	DefaultPagingSize        = 500
	DefaultConnectionTimeout = 30
	DefaultSearchTimeout     = 30

	DefaultRetryMaxAttempts  = 3
	DefaultRetryInitialDelay = 500
	DefaultRetryMaxDelay     = 10
	DefaultRetryMultiplier   = 2.0

	// DefaultDelayMin/DefaultDelayMaxJitter bound the pacing sleep applied
	// between pages and before each subsequent method (spec.md §5).
	DefaultDelayMin       = 0
	DefaultDelayMaxJitter = 0
)

// MinPort/MaxPort bound the valid TCP port range accepted for the LDAP
// server configuration.
const (
	MinPort = 1
	MaxPort = 65535
)

// LDAP control and matching-rule OIDs.
const (
	OIDMatchRuleBitOr    = "1.2.840.113556.1.4.803"
	OIDMatchRuleBitAnd   = "1.2.840.113556.1.4.804"
	OIDMatchRuleInChain  = "1.2.840.113556.1.4.1941"
	OIDControlTypePaging = "1.2.840.113556.1.4.319"
	// OIDControlSDFlags is the server-side control requesting a subset of
	// the security descriptor. Payload 0x30 0x03 0x02 0x01 0x07 requests
	// Owner|Group|DACL (bits 1|2|4), intentionally omitting SACL (bit 8).
	OIDControlSDFlags = "1.2.840.113556.1.4.801"
	// OIDWhoAmI is the "Who am I?" LDAP extended operation.
	OIDWhoAmI = "1.3.6.1.4.1.4203.1.11.3"
)

// SDFlagsControlValue is the mandatory BER-encoded payload for
// OIDControlSDFlags: SEQUENCE { INTEGER 7 } (Owner=1 | Group=2 | Dacl=4).
var SDFlagsControlValue = []byte{0x30, 0x03, 0x02, 0x01, 0x07}

// UserAccountControl bit flags (MS-ADTS 2.2.16). Values with both a bit
// position and a small number of historically reused bit names keep the
// name that appears in the spec's round-trip examples.
const (
	UACScript                       = 0x0000001
	UACAccountDisable               = 0x0000002
	UACHomedirRequired              = 0x0000008
	UACLockout                      = 0x0000010
	UACPasswdNotreqd                = 0x0000020
	UACPasswdCantChange             = 0x0000040
	UACEncryptedTextPasswordAllowed = 0x0000080
	UACTempDuplicateAccount         = 0x0000100
	UACNormalAccount                = 0x0000200
	UACInterdomainTrustAccount      = 0x0000800
	UACWorkstationTrustAccount      = 0x0001000
	UACServerTrustAccount           = 0x0002000
	UACDontExpirePassword           = 0x0010000
	UACMnsLogonAccount              = 0x0020000
	UACSmartcardRequired            = 0x0040000
	UACTrustedForDelegation         = 0x0080000
	UACNotDelegated                 = 0x0100000
	UACUseDESKeyOnly                = 0x0200000
	UACDontReqPreauth               = 0x0400000
	UACPasswordExpired              = 0x0800000
	UACTrustedToAuthForDelegation   = 0x1000000
	UACPartialSecretsAccount        = 0x4000000
)

// userAccountControlFlagNames lists bit/name pairs in the order the source
// decodes them, used by the Attribute Normalizer's <name>Flags expansion.
var userAccountControlFlagNames = []flagName{
	{UACScript, "SCRIPT"},
	{UACAccountDisable, "ACCOUNTDISABLE"},
	{UACHomedirRequired, "HOMEDIR_REQUIRED"},
	{UACLockout, "LOCKOUT"},
	{UACPasswdNotreqd, "PASSWD_NOTREQD"},
	{UACPasswdCantChange, "PASSWD_CANT_CHANGE"},
	{UACEncryptedTextPasswordAllowed, "ENCRYPTED_TEXT_PWD_ALLOWED"},
	{UACTempDuplicateAccount, "TEMP_DUPLICATE_ACCOUNT"},
	{UACNormalAccount, "NORMAL_ACCOUNT"},
	{UACInterdomainTrustAccount, "INTERDOMAIN_TRUST_ACCOUNT"},
	{UACWorkstationTrustAccount, "WORKSTATION_TRUST_ACCOUNT"},
	{UACServerTrustAccount, "SERVER_TRUST_ACCOUNT"},
	{UACDontExpirePassword, "DONT_EXPIRE_PASSWORD"},
	{UACMnsLogonAccount, "MNS_LOGON_ACCOUNT"},
	{UACSmartcardRequired, "SMARTCARD_REQUIRED"},
	{UACTrustedForDelegation, "TRUSTED_FOR_DELEGATION"},
	{UACNotDelegated, "NOT_DELEGATED"},
	{UACUseDESKeyOnly, "USE_DES_KEY_ONLY"},
	{UACDontReqPreauth, "DONT_REQ_PREAUTH"},
	{UACPasswordExpired, "PASSWORD_EXPIRED"},
	{UACTrustedToAuthForDelegation, "TRUSTED_TO_AUTH_FOR_DELEGATION"},
	{UACPartialSecretsAccount, "PARTIAL_SECRETS_ACCOUNT"},
}

// flagName pairs a bit value with its symbolic name.
type flagName struct {
	Bit  int
	Name string
}

// trustAttributesFlagNames decodes the trustAttributes bitfield.
var trustAttributesFlagNames = []flagName{
	{0x1, "NON_TRANSITIVE"},
	{0x2, "UPLEVEL_ONLY"},
	{0x4, "QUARANTINED_DOMAIN"},
	{0x8, "FOREST_TRANSITIVE"},
	{0x10, "CROSS_ORGANIZATION"},
	{0x20, "WITHIN_FOREST"},
	{0x40, "TREAT_AS_EXTERNAL"},
	{0x80, "USES_RC4_ENCRYPTION"},
	{0x200, "CROSS_ORGANIZATION_NO_TGT_DELEGATION"},
	{0x400, "PIM_TRUST"},
}

// msPKIEnrollmentFlagNames decodes msPKI-Enrollment-Flag (MS-CRTD).
var msPKIEnrollmentFlagNames = []flagName{
	{0x00000001, "CT_FLAG_INCLUDE_SYMMETRIC_ALGORITHMS"},
	{0x00000002, "CT_FLAG_PEND_ALL_REQUESTS"},
	{0x00000004, "CT_FLAG_PUBLISH_TO_KRA_CONTAINER"},
	{0x00000008, "CT_FLAG_PUBLISH_TO_DS"},
	{0x00000010, "CT_FLAG_AUTO_ENROLLMENT_CHECK_USER_DS_CERTIFICATE"},
	{0x00000020, "CT_FLAG_AUTO_ENROLLMENT"},
	{0x00000080, "CT_FLAG_MACHINE_TYPE"},
	{0x00000100, "CT_FLAG_IS_CA"},
	{0x00000400, "CT_FLAG_ADD_TEMPLATE_NAME"},
	{0x00000800, "CT_FLAG_IS_CROSS_CA"},
	{0x00002000, "CT_FLAG_IS_DEFAULT"},
	{0x00004000, "CT_FLAG_IS_MODIFIED"},
	{0x00020000, "CT_FLAG_DONOTPERSISTINDB"},
	{0x00040000, "CT_FLAG_ATTEST_NONE"},
	{0x00080000, "CT_FLAG_ATTEST_REQUIRED"},
	{0x00100000, "CT_FLAG_ATTEST_PREFERRED"},
	{0x00200000, "CT_FLAG_ATTESTATION_WITHOUT_POLICY"},
	{0x00400000, "CT_FLAG_NO_SECURITY_EXTENSION"},
}

// msPKICertificateNameFlagNames decodes msPKI-Certificate-Name-Flag.
var msPKICertificateNameFlagNames = []flagName{
	{0x00000001, "CT_FLAG_ENROLLEE_SUPPLIES_SUBJECT"},
	{0x00000008, "CT_FLAG_OLD_CERT_SUPPLIES_SUBJECT_AND_ALT_NAME"},
	{0x00010000, "CT_FLAG_SUBJECT_ALT_REQUIRE_DOMAIN_DNS"},
	{0x00400000, "CT_FLAG_SUBJECT_ALT_REQUIRE_SPN"},
	{0x00800000, "CT_FLAG_SUBJECT_ALT_REQUIRE_DIRECTORY_GUID"},
	{0x01000000, "CT_FLAG_SUBJECT_ALT_REQUIRE_UPN"},
	{0x02000000, "CT_FLAG_SUBJECT_ALT_REQUIRE_EMAIL"},
	{0x04000000, "CT_FLAG_SUBJECT_ALT_REQUIRE_DNS"},
	{0x08000000, "CT_FLAG_SUBJECT_REQUIRE_DNS_AS_CN"},
	{0x10000000, "CT_FLAG_SUBJECT_REQUIRE_EMAIL"},
	{0x20000000, "CT_FLAG_SUBJECT_REQUIRE_COMMON_NAME"},
	{0x40000000, "CT_FLAG_SUBJECT_REQUIRE_DIRECTORY_PATH"},
}

// msPKIPrivateKeyFlagNames decodes msPKI-Private-Key-Flag.
var msPKIPrivateKeyFlagNames = []flagName{
	{0x00000001, "CT_FLAG_REQUIRE_PRIVATE_KEY_ARCHIVAL"},
	{0x00000010, "CT_FLAG_EXPORTABLE_KEY"},
	{0x00000020, "CT_FLAG_STRONG_KEY_PROTECTION_REQUIRED"},
	{0x00000040, "CT_FLAG_REQUIRE_ALTERNATE_SIGNATURE_ALGORITHM"},
	{0x00000080, "CT_FLAG_REQUIRE_SAME_KEY_RENEWAL"},
	{0x00000100, "CT_FLAG_USE_LEGACY_PROVIDER"},
	{0x00020000, "CT_FLAG_ATTEST_NONE"},
	{0x00100000, "CT_FLAG_EARLY_RENEWAL"},
}

// caFlagNames decodes the generic "flags" attribute on pKIEnrollmentService
// / certificationAuthority objects.
var caFlagNames = []flagName{
	{0x1, "NO_TEMPLATE_SUPPORT"},
	{0x2, "SUPPORTS_NT_AUTHENTICATION"},
	{0x10, "CA_SUPPORTS_MANUAL_AUTHENTICATION"},
	{0x20, "CA_SERVERTYPE_ADVANCED"},
}

// trustDirectionLookup resolves the trustDirection integer attribute.
var trustDirectionLookup = map[int]string{
	0: "Disabled",
	1: "Inbound",
	2: "Outbound",
	3: "Bidirectional",
}

// trustTypeLookup resolves the trustType integer attribute.
var trustTypeLookup = map[int]string{
	1: "Downlevel",
	2: "Uplevel",
	3: "MIT",
	4: "DCE",
}

// functionalLevels resolves msDS-Behavior-Version on domain/forest objects.
var functionalLevels = map[int]string{
	0: "2000 Mixed/Native",
	1: "2003 Interim",
	2: "2003",
	3: "2008",
	4: "2008 R2",
	5: "2012",
	6: "2012 R2",
	7: "2016",
}

// authenticationOIDs are the EKUs that make a cert template
// authentication-enabled (spec.md §3's CertTemplate.authenticationenabled).
var authenticationOIDs = map[string]bool{
	"1.3.6.1.5.5.7.3.2":       true, // Client Authentication
	"1.3.6.1.5.2.3.4":         true, // PKINIT Client Authentication
	"1.3.6.1.4.1.311.20.2.2":  true, // Smartcard Logon
	"2.5.29.37.0":             true, // Any Purpose
	"1.3.6.1.4.1.311.10.3.4":  true, // EFS (commonly bundled, kept per source parity)
}

// BloodHound collection-method bits (ingest "methods" field, spec §6).
const (
	MethodBitGroup          = 1 << 0
	MethodBitLocalAdmin     = 1 << 1
	MethodBitRDP            = 1 << 2
	MethodBitDCOM           = 1 << 3
	MethodBitSession        = 1 << 5
	MethodBitLoggedOn       = 1 << 6
	MethodBitTrusts         = 1 << 7
	MethodBitACL            = 1 << 8
	MethodBitContainer      = 1 << 9
	MethodBitObjectProps    = 1 << 10
	MethodBitSPNTargets     = 1 << 11
	MethodBitPSRemote       = 1 << 12
	MethodBitUserRights     = 1 << 13
	MethodBitCARegistry     = 1 << 16
	MethodBitDCRegistry     = 1 << 17
	MethodBitCertServices   = 1 << 18
)

// BloodHoundIngestVersion is the ingest schema version emitted in every
// graph file's meta.version (spec §4.6 / §6).
const BloodHoundIngestVersion = 6
