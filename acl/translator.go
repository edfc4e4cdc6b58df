// Package acl implements the object-class-aware translation from decoded
// DACL entries into the finite set of abstract rights the graph consumes
// (spec.md §4.2). It depends only on analyze's decoded SecurityDescriptor/
// Ace types, never on the wire format.
package acl

import (
	"strings"

	"adldap/analyze"
)

// Class is the short, schema-derived class name an entry is evaluated
// against (class-from-objectCategory, spec.md §4.2/§9). These are the
// exact tokens the matrix table in spec.md §4.2 names.
type Class string

const (
	ClassUser          Class = "user"
	ClassGroup         Class = "group"
	ClassComputer      Class = "computer"
	ClassGPO           Class = "gpo"
	ClassGMSA          Class = "gmsa"
	ClassOU            Class = "ou"
	ClassContainer     Class = "container"
	ClassDomain        Class = "domain"
	ClassConfiguration Class = "configuration"
	ClassCertTemplate  Class = "pki-cert-template"
	ClassEnterpriseCA  Class = "pki-enrollment-service"
	ClassAIACA         Class = "aiaca"
	ClassNTAuthStore   Class = "ntauthstore"
	ClassRootCA        Class = "rootca"
	ClassUnknown       Class = "unknown"
)

// Abstract right names emitted by the translator (spec.md §1, §4.2).
const (
	RightGenericAll              = "GenericAll"
	RightGenericWrite            = "GenericWrite"
	RightWriteDacl               = "WriteDacl"
	RightWriteOwner              = "WriteOwner"
	RightAllExtendedRights       = "AllExtendedRights"
	RightAddMember               = "AddMember"
	RightAddAllowedToAct         = "AddAllowedToAct"
	RightWriteAccountRestrict    = "WriteAccountRestrictions"
	RightAddKeyCredentialLink    = "AddKeyCredentialLink"
	RightWriteSPN                = "WriteSPN"
	RightWritePKIEnrollmentFlag  = "WritePKIEnrollmentFlag"
	RightWritePKINameFlag        = "WritePKINameFlag"
	RightAddSelf                 = "AddSelf"
	RightReadLAPSPassword        = "ReadLAPSPassword"
	RightForceChangePassword     = "ForceChangePassword"
	RightGetChanges              = "GetChanges"
	RightGetChangesAll           = "GetChangesAll"
	RightGetChangesInFilteredSet = "GetChangesInFilteredSet"
	RightEnroll                  = "Enroll"
	RightManageCA                = "ManageCA"
	RightManageCertificates      = "ManageCertificates"
	RightReadGMSAPassword        = "ReadGMSAPassword"
	RightOwns                    = "Owns"
)

// Object-type friendly names the matrix compares ControlObjectType
// against. "AllProperties" is the zero-GUID sentinel; it and several of the
// names below (e.g. "Member", the replication rights) are in the Type
// Registry's static well-known table, and the rest are schema
// attribute/extended-right names seeded during schema collection
// (spec.md §6.1).
const (
	objAllProperties                   = "AllProperties"
	objMember                          = "Member"
	objAllowedToActOnBehalfOfOtherID   = "ms-DS-Allowed-To-Act-On-Behalf-Of-Other-Identity"
	objUserAccountRestrictions         = "User-Account-Restrictions"
	objKeyCredentialLink               = "ms-DS-Key-Credential-Link"
	objServicePrincipalName            = "Service-Principal-Name"
	objPKIEnrollmentFlag               = "ms-PKI-Enrollment-Flag"
	objPKICertificateNameFlag          = "ms-PKI-Certificate-Name-Flag"
	objUserForceChangePassword         = "User-Force-Change-Password"
	objDSReplicationGetChanges         = "DS-Replication-Get-Changes"
	objDSReplicationGetChangesAll      = "DS-Replication-Get-Changes-All"
	objDSReplicationGetChangesInFilter = "DS-Replication-Get-Changes-In-Filtered-Set"
	objCertificateEnrollment           = "Certificate-Enrollment"
	objCertificateAutoEnrollment       = "Certificate-AutoEnrollment"
	objMsMcsAdmPwd                     = "ms-Mcs-AdmPwd"
)

// AceRow is one emitted translator output row (spec.md §4.2).
type AceRow struct {
	PrincipalSID  string
	PrincipalType string
	RightName     string
	IsInherited   bool
}

// Input is one enumerated entry's translator inputs.
type Input struct {
	Class         Class
	CoreDomainSID string
	SD            *analyze.SecurityDescriptor
	GMSASD        *analyze.SecurityDescriptor
	HasLAPS       bool
}

// ResolvePrincipalType looks up a principal SID's class for PrincipalType,
// typically backed by the SID Catalog; an empty return is rendered
// "Unknown" by Translate.
type ResolvePrincipalType func(sid string) string

// Translate applies the object-class matrix in spec.md §4.2 to one
// entry's decoded security descriptor (and, if present, its decoded
// msDS-GroupMSAMembership descriptor) and returns the ACE rows.
func Translate(in Input, resolveType ResolvePrincipalType) []AceRow {
	var rows []AceRow

	if in.SD != nil {
		if in.SD.OwnerSid != "" && !analyze.IsExcludedPrincipal(in.SD.OwnerSid) {
			rows = append(rows, newRow(in.CoreDomainSID, in.SD.OwnerSid, RightOwns, false, resolveType))
		}
		for _, ace := range in.SD.Dacl {
			rows = append(rows, translateAce(ace, in, resolveType)...)
		}
	}

	if in.GMSASD != nil {
		for _, ace := range in.GMSASD.Dacl {
			rows = append(rows, newRow(in.CoreDomainSID, ace.Sid, RightReadGMSAPassword, ace.HasFlag("INHERITED_ACE"), resolveType))
		}
	}

	return rows
}

func translateAce(ace analyze.Ace, in Input, resolveType ResolvePrincipalType) []AceRow {
	if !globalFilterPasses(ace, in.Class) {
		return nil
	}

	inherited := ace.HasFlag("INHERITED_ACE")
	emit := func(right string) AceRow {
		return newRow(in.CoreDomainSID, ace.Sid, right, inherited, resolveType)
	}

	if ace.HasPriv("GenericAll") {
		if in.Class == ClassComputer && in.HasLAPS && objectTypePresentAny(ace, objMsMcsAdmPwd, objAllProperties) {
			return []AceRow{emit(RightReadLAPSPassword)}
		}
		return []AceRow{emit(RightGenericAll)}
	}

	seen := make(map[string]bool)
	var rows []AceRow
	add := func(right string) {
		if !seen[right] {
			seen[right] = true
			rows = append(rows, emit(right))
		}
	}

	if ace.HasPriv("GenericWrite") && classIn(in.Class, ClassUser, ClassGroup, ClassComputer, ClassGPO, ClassGMSA) {
		add(RightGenericWrite)
	}
	if ace.HasPriv("WriteProp") && !ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") &&
		classIn(in.Class, ClassUser, ClassGroup, ClassComputer, ClassGPO) {
		add(RightGenericWrite)
	}
	if ace.HasPriv("WriteDacl") {
		add(RightWriteDacl)
	}
	if ace.HasPriv("WriteOwner") {
		add(RightWriteOwner)
	}
	if ace.HasPriv("ControlAccess") && classIn(in.Class, ClassUser, ClassDomain, ClassComputer, ClassGMSA, ClassCertTemplate) &&
		objectTypeOrAll(ace, objAllProperties) {
		add(RightAllExtendedRights)
	}

	writeLike := ace.HasPriv("WriteProp") || ace.HasPriv("GenericWrite")
	if writeLike && ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") {
		if in.Class == ClassGroup && objectTypePresentAny(ace, objMember, objAllProperties) {
			add(RightAddMember)
		}
		if in.Class == ClassComputer && objectTypePresentAny(ace, objAllowedToActOnBehalfOfOtherID, objAllProperties) {
			add(RightAddAllowedToAct)
		}
		if in.Class == ClassComputer && objectTypePresentAny(ace, objUserAccountRestrictions, objAllProperties) {
			add(RightWriteAccountRestrict)
		}
		if classIn(in.Class, ClassComputer, ClassUser, ClassGMSA) && objectTypePresentAny(ace, objKeyCredentialLink, objAllProperties) {
			add(RightAddKeyCredentialLink)
		}
		if in.Class == ClassUser && objectTypePresentAny(ace, objServicePrincipalName, objAllProperties) {
			add(RightWriteSPN)
		}
		if in.Class == ClassCertTemplate && objectTypePresentAny(ace, objPKIEnrollmentFlag, objAllProperties) {
			add(RightWritePKIEnrollmentFlag)
		}
		if in.Class == ClassCertTemplate && objectTypePresentAny(ace, objPKICertificateNameFlag, objAllProperties) {
			add(RightWritePKINameFlag)
		}
	}

	if ace.HasPriv("Self") && objectTypePresentAny(ace, objMember, objAllProperties) && in.Class == ClassGroup {
		add(RightAddSelf)
	}

	if ace.HasPriv("ReadProp") && in.Class == ClassComputer && in.HasLAPS && objectTypePresentAny(ace, objMsMcsAdmPwd, objAllProperties) {
		add(RightReadLAPSPassword)
	}

	if ace.HasPriv("ControlAccess") && ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") {
		if in.Class == ClassUser && objectTypePresentAny(ace, objUserForceChangePassword, objAllProperties) {
			add(RightForceChangePassword)
		}
		if in.Class == ClassDomain && objectTypePresentAny(ace, objDSReplicationGetChanges, objAllProperties) {
			add(RightGetChanges)
		}
		if in.Class == ClassDomain && objectTypePresentAny(ace, objDSReplicationGetChangesAll, objAllProperties) {
			add(RightGetChangesAll)
		}
		if in.Class == ClassDomain && objectTypePresentAny(ace, objDSReplicationGetChangesInFilter, objAllProperties) {
			add(RightGetChangesInFilteredSet)
		}
		if classIn(in.Class, ClassEnterpriseCA, ClassCertTemplate) && objectTypePresentAny(ace, objCertificateEnrollment, objCertificateAutoEnrollment, objAllProperties) {
			add(RightEnroll)
		}
	}

	if ace.HasPriv("GenericWrite") && !ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") && in.Class == ClassEnterpriseCA {
		add(RightManageCA)
		if ace.HasPriv("DeleteChild") {
			add(RightManageCertificates)
		}
	}

	return rows
}

// globalFilterPasses applies spec.md §4.2's drop-before-rule-application
// filters.
func globalFilterPasses(ace analyze.Ace, class Class) bool {
	if analyze.IsExcludedPrincipal(ace.Sid) {
		return false
	}
	if !ace.Participates() {
		return false
	}
	if ace.HasFlag("INHERIT_ONLY_ACE") && !ace.HasFlag("INHERITED_ACE") {
		return false
	}
	if ace.HasDataFlag("ACE_INHERITED_OBJECT_TYPE_PRESENT") && ace.HasFlag("INHERITED_ACE") {
		if !matchesEntryClass(ace.InheritableObjectType, class) {
			return false
		}
	}
	return true
}

// matchesEntryClass compares an object ACE's InheritableObjectType against
// the entry's own class, case-insensitively, treating "Person" as an alias
// for "user" (spec.md §9's "Person→User" example).
func matchesEntryClass(inheritableType string, class Class) bool {
	name := strings.ToLower(inheritableType)
	if name == "person" {
		name = string(ClassUser)
	}
	return name == strings.ToLower(string(class))
}

func classIn(class Class, options ...Class) bool {
	for _, o := range options {
		if class == o {
			return true
		}
	}
	return false
}

// objectTypeOrAll reports whether the ACE's object type is absent, or
// present and equal to one of names (the "absent or = X" matrix phrasing).
// A multi-name object type such as "Self-Membership/Member" matches on any
// of its "/"-separated names.
func objectTypeOrAll(ace analyze.Ace, names ...string) bool {
	if !ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") {
		return true
	}
	for _, n := range names {
		for _, part := range strings.Split(ace.ControlObjectType, "/") {
			if strings.EqualFold(part, n) {
				return true
			}
		}
	}
	return false
}

// objectTypePresentAny reports whether the ACE's object type is present
// and equal to one of names (the "present AND ∈ {...}" matrix phrasing),
// matching a multi-name object type on any of its "/"-separated names.
func objectTypePresentAny(ace analyze.Ace, names ...string) bool {
	if !ace.HasDataFlag("ACE_OBJECT_TYPE_PRESENT") {
		return false
	}
	for _, n := range names {
		for _, part := range strings.Split(ace.ControlObjectType, "/") {
			if strings.EqualFold(part, n) {
				return true
			}
		}
	}
	return false
}

func newRow(coreDomainSID, rawSID, right string, inherited bool, resolveType ResolvePrincipalType) AceRow {
	sid := RewriteSID(coreDomainSID, rawSID)
	ptype := "Unknown"
	if resolveType != nil {
		if t := resolveType(sid); t != "" {
			ptype = t
		}
	}
	return AceRow{PrincipalSID: sid, PrincipalType: ptype, RightName: right, IsInherited: inherited}
}

// RewriteSID applies spec.md §4.2's "PrincipalSID is rewritten to
// {coreDomainSID}-{rid} when the raw SID does not already start with
// S-1-5-21-" rule.
func RewriteSID(coreDomainSID, sid string) string {
	if strings.HasPrefix(sid, "S-1-5-21-") {
		return sid
	}
	rid := analyze.RID(sid)
	if rid == "" {
		return sid
	}
	return coreDomainSID + "-" + rid
}
