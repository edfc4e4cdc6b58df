package analyze

// ParseUserAccountControl decomposes the userAccountControl bitfield into
// the set of symbolic flag names whose bit is set, in declaration order.
// The teacher's analyze/uac.go matched against a handful of exact combined
// values (e.g. 0x82000 => "Domain Controller") rather than decomposing
// bits; spec.md §8's round-trip property requires true bit decomposition
// (0x220 => {NORMAL_ACCOUNT, PASSWD_NOTREQD}), so this replaces that
// switch statement entirely.
func ParseUserAccountControl(value int) []string {
	return expandFlags(value, userAccountControlFlagNames)
}

func expandFlags(value int, names []flagName) []string {
	var out []string
	for _, f := range names {
		if value&f.Bit == f.Bit {
			out = append(out, f.Name)
		}
	}
	return out
}
