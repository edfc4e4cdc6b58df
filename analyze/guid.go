package analyze

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseGUID decodes a 16-byte binary objectGUID/schemaIDGUID (mixed-endian
// per MS-DTYP GUID) into the canonical "{8x-4x-4x-4x-12x}"-shaped string,
// without braces. Grounded on the teacher's analyze/identity.go
// ParseObjectGUID.
func ParseGUID(raw []byte) (string, error) {
	if len(raw) < 16 {
		return "", fmt.Errorf("guid: too short (%d bytes)", len(raw))
	}
	d1 := binary.LittleEndian.Uint32(raw[0:4])
	d2 := binary.LittleEndian.Uint16(raw[4:6])
	d3 := binary.LittleEndian.Uint16(raw[6:8])
	return fmt.Sprintf("%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		d1, d2, d3,
		raw[8], raw[9],
		raw[10], raw[11], raw[12], raw[13], raw[14], raw[15]), nil
}

// NormalizeGUID lowercases and strips braces from a textual GUID, the form
// it needs to be in to compare against Type Registry keys or the GPO map.
func NormalizeGUID(guid string) string {
	guid = strings.ToLower(guid)
	guid = strings.TrimPrefix(guid, "{")
	guid = strings.TrimSuffix(guid, "}")
	return guid
}

// CanonicalGUID validates a textual GUID encountered outside a binary LDAP
// attribute (a config override, or a GUID re-loaded from a dump file) and
// returns its canonical lowercase, unbraced form. Unlike NormalizeGUID,
// which just reshapes whatever text it's handed, this rejects anything
// that isn't actually a well-formed GUID.
func CanonicalGUID(text string) (string, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return "", fmt.Errorf("guid: %q is not a valid GUID: %w", text, err)
	}
	return id.String(), nil
}
