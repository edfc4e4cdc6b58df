package collect

import (
	"fmt"
	"strconv"

	"adldap/analyze"
	"adldap/connect"
)

// flagAttrs lists attributes the Attribute Normalizer expands into a
// parallel "<name>Flags" field in addition to the raw integer (spec.md
// §4.4).
var flagAttrs = map[string]bool{
	analyze.AttrUserAccountControl:       true,
	analyze.AttrTrustAttributes:          true,
	analyze.AttrMSPKIEnrollmentFlag:      true,
	analyze.AttrMSPKICertificateNameFlag: true,
	analyze.AttrMSPKIPrivateKeyFlag:      true,
	analyze.AttrFlags:                    true,
}

// generalizedTimeAttrs are formatted via GeneralizedTimeToTime.
var generalizedTimeAttrs = map[string]bool{
	analyze.AttrWhenCreated: true,
	analyze.AttrWhenChanged: true,
}

// fileTimeAttrs are formatted via FileTimeToTime, with the zero/never
// sentinel rendered as the literal "0" (spec.md §4.4).
var fileTimeAttrs = map[string]bool{
	analyze.AttrLastLogon:          true,
	analyze.AttrLastLogonTimestamp: true,
	analyze.AttrPwdLastSet:         true,
	analyze.AttrBadPasswordTime:    true,
}

// pkiPeriodAttrs are 8-byte little-endian intervals decoded via
// ConvertPKIPeriod.
var pkiPeriodAttrs = map[string]bool{
	analyze.AttrPKIExpirationPeriod: true,
	analyze.AttrPKIOverlapPeriod:    true,
}

// resolvedIntAttrs map an integer attribute to the lookup that produces its
// "<name>Resolved" companion field.
var resolvedIntAttrs = map[string]func(int) string{
	analyze.AttrTrustDirection:      analyze.LookupTrustDirection,
	analyze.AttrTrustType:           analyze.LookupTrustType,
	analyze.AttrMSDSBehaviorVersion: analyze.LookupFunctionalLevel,
}

// sdAttrs are decoded separately by the Post-Processor rather than rendered
// as plain strings here.
var sdAttrs = map[string]bool{
	analyze.AttrNTSecurityDescriptor:                   true,
	analyze.AttrMSDSGroupMSAMembership:                 true,
	analyze.AttrMSDSAllowedToActOnBehalfOfOtherIdentity: true,
}

// sidAttrs are raw binary SIDs, decoded to their canonical text form.
var sidAttrs = map[string]bool{
	analyze.AttrObjectSID:          true,
	analyze.AttrSecurityIdentifier: true,
}

// Normalized is the Attribute Normalizer's per-entry output: every
// retrieved attribute rendered as either a single string or, for
// multi-valued attributes, a string slice (spec.md §4.4).
type Normalized map[string]any

// String returns a single-valued field as a string, or "" if absent or
// multi-valued.
func (n Normalized) String(name string) string {
	switch v := n[name].(type) {
	case string:
		return v
	}
	return ""
}

// Strings returns a field as a string slice regardless of whether it was
// stored single- or multi-valued.
func (n Normalized) Strings(name string) []string {
	switch v := n[name].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// NormalizeEntry renders every retrieved attribute of e according to
// spec.md §4.4: timestamps formatted (or left as raw epoch seconds in
// timestamp mode), bitfields exploded into a parallel Flags field,
// multi-valued attributes kept as lists, and opaque binary attributes
// coerced to UTF-8 text or hex. SID/SD-bearing attributes are left for the
// Post-Processor.
func NormalizeEntry(e *connect.Entry, timestampMode bool) Normalized {
	out := make(Normalized, len(e.Attrs))

	for name, values := range e.Attrs {
		if sdAttrs[name] || sidAttrs[name] || name == analyze.AttrSIDHistory || name == analyze.AttrObjectGUID {
			continue
		}

		switch {
		case flagAttrs[name]:
			raw := values[0]
			out[name] = raw
			if n, err := strconv.Atoi(raw); err == nil {
				if flags, ok := analyze.ResolveFlags(name, n); ok {
					out[name+"Flags"] = flags
				}
			}

		case resolvedIntAttrs[name] != nil:
			raw := values[0]
			out[name] = raw
			if n, err := strconv.Atoi(raw); err == nil {
				out[name+"Resolved"] = resolvedIntAttrs[name](n)
			}

		case name == analyze.AttrAccountExpires:
			if formatted, err := analyze.AccountExpires(values[0]); err == nil {
				out[name] = formatted
			} else {
				out[name] = values[0]
			}

		case generalizedTimeAttrs[name]:
			out[name] = formatGeneralizedTime(values[0], timestampMode)

		case fileTimeAttrs[name]:
			out[name] = formatFileTime(values[0], timestampMode)

		case pkiPeriodAttrs[name]:
			if raw := e.GetRawAttributeValue(name); len(raw) == 8 {
				if formatted, err := analyze.ConvertPKIPeriod(raw); err == nil {
					out[name] = formatted
				}
			}

		case len(values) > 1:
			out[name] = append([]string{}, values...)

		default:
			out[name] = analyze.HexOrUTF8([]byte(values[0]))
		}
	}

	// Attributes an Entry carries only in Raw, with no string form in
	// Attrs, are coerced to hex/UTF-8 text too rather than dropped
	// (spec.md §4.4).
	for name, rawValues := range e.Raw {
		if _, alreadySet := out[name]; alreadySet || sdAttrs[name] || sidAttrs[name] {
			continue
		}
		if len(rawValues) == 0 {
			continue
		}
		out[name] = analyze.HexOrUTF8(rawValues[0])
	}

	return out
}

func formatGeneralizedTime(raw string, timestampMode bool) string {
	t, err := analyze.GeneralizedTimeToTime(raw)
	if err != nil {
		return raw
	}
	if timestampMode {
		return fmt.Sprintf("%d", t.Unix())
	}
	return t.Format(analyze.DirectoryTimestampLayout)
}

func formatFileTime(raw string, timestampMode bool) string {
	t, err := analyze.FileTimeToTime(raw)
	if err != nil {
		return "0"
	}
	if timestampMode {
		return fmt.Sprintf("%d", t.Unix())
	}
	return t.Format(analyze.DirectoryTimestampLayout)
}
