package analyze

// Access-mask bits as they appear on directory-object ACEs (MS-ADTS
// 5.1.3.2 combined with MS-DTYP 2.4.3's standard rights). The four
// GENERIC_* values are the directory-service-specific overrides the
// domain controller substitutes at evaluation time; they are NOT the
// raw Windows generic-right values (0x10000000-0x80000000), which is what the
// teacher's analyze/acl.go used and why it produced the wrong Privs for
// any ACE a real DC would treat as GenericAll/GenericWrite/etc.
const (
	RightCreateChild   = 0x00000001
	RightDeleteChild   = 0x00000002
	RightActrlDSList   = 0x00000004
	RightSelf          = 0x00000008
	RightReadProp      = 0x00000010
	RightWriteProp     = 0x00000020
	RightDeleteTree    = 0x00000040
	RightListObject    = 0x00000080
	RightControlAccess = 0x00000100

	RightDelete       = 0x00010000
	RightReadControl  = 0x00020000
	RightWriteDacl    = 0x00040000
	RightWriteOwner   = 0x00080000
	RightSynchronize  = 0x00100000

	GenericRead    = 0x00020094
	GenericWrite   = 0x00020028
	GenericExecute = 0x00020004
	GenericAll     = 0x000F01FF
)

var accessMaskFlagNames = []flagName{
	{GenericAll, "GenericAll"},
	{GenericWrite, "GenericWrite"},
	{GenericRead, "GenericRead"},
	{GenericExecute, "GenericExecute"},
	{RightCreateChild, "CreateChild"},
	{RightDeleteChild, "DeleteChild"},
	{RightActrlDSList, "ActrlDsList"},
	{RightSelf, "Self"},
	{RightReadProp, "ReadProp"},
	{RightWriteProp, "WriteProp"},
	{RightDeleteTree, "DeleteTree"},
	{RightListObject, "ListObject"},
	{RightControlAccess, "ControlAccess"},
	{RightDelete, "Delete"},
	{RightReadControl, "ReadControl"},
	{RightWriteDacl, "WriteDacl"},
	{RightWriteOwner, "WriteOwner"},
	{RightSynchronize, "Synchronize"},
}

// ResolveAccessMask decomposes a raw ACE access mask into its symbolic
// rights, largest composite (GenericAll) first so the ACL Translator can
// short-circuit on it without re-deriving the bit arithmetic (spec.md
// §4.2).
func ResolveAccessMask(mask uint32) []string {
	return expandFlags(int(mask), accessMaskFlagNames)
}
