package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ResolveFlags expands a bitfield attribute value into its symbolic flag
// names, dispatching on the LDAP attribute name so callers don't need to
// know which table applies. ok is false for attributes with no known flag
// table, in which case the Attribute Normalizer falls back to rendering
// the raw integer.
func ResolveFlags(attr string, value int) (flags []string, ok bool) {
	switch attr {
	case AttrUserAccountControl:
		return expandFlags(value, userAccountControlFlagNames), true
	case AttrTrustAttributes:
		return expandFlags(value, trustAttributesFlagNames), true
	case AttrMSPKIEnrollmentFlag:
		return expandFlags(value, msPKIEnrollmentFlagNames), true
	case AttrMSPKICertificateNameFlag:
		return expandFlags(value, msPKICertificateNameFlagNames), true
	case AttrMSPKIPrivateKeyFlag:
		return expandFlags(value, msPKIPrivateKeyFlagNames), true
	case AttrFlags:
		return expandFlags(value, caFlagNames), true
	default:
		return nil, false
	}
}

// LookupTrustDirection resolves the trustDirection integer attribute.
func LookupTrustDirection(value int) string {
	if name, ok := trustDirectionLookup[value]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", value)
}

// LookupTrustType resolves the trustType integer attribute.
func LookupTrustType(value int) string {
	if name, ok := trustTypeLookup[value]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", value)
}

// LookupFunctionalLevel resolves msDS-Behavior-Version on domain and forest
// objects to the Windows Server release it represents.
func LookupFunctionalLevel(value int) string {
	if name, ok := functionalLevels[value]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", value)
}

// IsAuthenticationEKU reports whether an extended-key-usage OID makes a
// certificate template authentication-enabled (spec.md §3, §4.6).
func IsAuthenticationEKU(oid string) bool {
	return authenticationOIDs[oid]
}

// HexOrUTF8 renders an arbitrary binary attribute value: valid UTF-8 text
// is returned as-is, anything else is hex-encoded with a 0x prefix.
// Used for binary attributes the normalizer has no dedicated decoder for
// (e.g. msDS-GenerationId, logonHours).
func HexOrUTF8(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.WriteString("0x")
	for _, c := range raw {
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}

func isPrintableASCII(raw []byte) bool {
	for _, c := range raw {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
