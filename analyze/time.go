package analyze

import (
	"fmt"
	"strconv"
	"time"
)

// FileTimeToUnixEpochDiff is the difference between the Windows FileTime
// epoch (1601-01-01) and the Unix epoch (1970-01-01), in 100-nanosecond
// intervals. The teacher's analyze/time.go carried two disagreeing values
// for this constant (a package-level 1164447360000000000 and a local
// 116444736000000000 inside AccountExpires); this is the correct one.
const FileTimeToUnixEpochDiff = 116444736000000000

const hundredNanosPerSecond = 10_000_000

// DirectoryTimestampLayout renders a timestamp the way spec.md §4.4 asks
// for when "timestamp mode" is off: "%Y-%m-%d %H:%M:%S.%f %Z %z".
const DirectoryTimestampLayout = "2006-01-02 15:04:05.000000 MST -0700"

// GeneralizedTimeToTime parses an LDAP generalized-time attribute value
// (e.g. whenCreated = "20230101120000.0Z") into a time.Time.
func GeneralizedTimeToTime(generalizedTime string) (time.Time, error) {
	if generalizedTime == "" {
		return time.Time{}, fmt.Errorf("empty generalized time string")
	}
	return time.Parse("20060102150405.0Z", generalizedTime)
}

// FileTimeToTime converts a Windows FILETIME string (100ns intervals since
// 1601-01-01) to a time.Time. Returns an error for the zero sentinel,
// matching the source's "never occurred" treatment for lastLogon-family
// attributes (caller decides whether zero should render as 0 instead).
func FileTimeToTime(fileTimeStr string) (time.Time, error) {
	if fileTimeStr == "" {
		return time.Time{}, fmt.Errorf("empty filetime string")
	}
	ft, err := strconv.ParseInt(fileTimeStr, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing filetime: %w", err)
	}
	if ft == 0 {
		return time.Time{}, fmt.Errorf("zero filetime (never occurred)")
	}
	if ft < FileTimeToUnixEpochDiff {
		return time.Time{}, fmt.Errorf("filetime %d predates the Unix epoch", ft)
	}
	unixNano := (ft - FileTimeToUnixEpochDiff) * 100
	return time.Unix(0, unixNano).UTC(), nil
}

// AccountExpiresNeverSentinels are the two raw values meaning "never
// expires" for the accountExpires attribute.
var AccountExpiresNeverSentinels = map[int64]bool{0: true, 9223372036854775807: true}

// AccountExpires renders the accountExpires attribute as "{raw},{formatted}"
// pairs, collapsing both never-expire sentinels to the max-int64 raw value.
func AccountExpires(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	ft, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid accountExpires value: %w", err)
	}
	if AccountExpiresNeverSentinels[ft] {
		return "9223372036854775807,never", nil
	}
	if ft < FileTimeToUnixEpochDiff {
		return "", fmt.Errorf("accountExpires value out of range: %d", ft)
	}
	unixSeconds := (ft - FileTimeToUnixEpochDiff) / hundredNanosPerSecond
	t := time.Unix(unixSeconds, 0).UTC()
	return fmt.Sprintf("%s,%s", raw, t.Format(DirectoryTimestampLayout)), nil
}

// pkiPeriodUnit is one candidate unit for ConvertPKIPeriod, ordered
// largest-first so the first exact match wins (spec.md §4.4).
type pkiPeriodUnit struct {
	seconds int64
	singular, plural string
}

var pkiPeriodUnits = []pkiPeriodUnit{
	{31536000, "year", "years"},
	{2592000, "month", "months"},
	{604800, "week", "weeks"},
	{86400, "day", "days"},
	{3600, "hour", "hours"},
}

// ConvertPKIPeriod decodes an 8-byte little-endian signed pKIExpirationPeriod
// / pKIOverlapPeriod value: a negative 100ns interval, converted to positive
// seconds and rendered as the largest exact unit (spec.md §4.4, §8).
func ConvertPKIPeriod(raw []byte) (string, error) {
	if len(raw) != 8 {
		return "", fmt.Errorf("pki period: expected 8 bytes, got %d", len(raw))
	}
	var v int64
	for i := 7; i >= 0; i-- {
		v = v<<8 | int64(raw[i])
	}
	seconds := float64(v) * -0.0000001

	for _, u := range pkiPeriodUnits {
		s := float64(u.seconds)
		if seconds >= s && mod(seconds, s) == 0 {
			units := int64(seconds / s)
			if units == 1 {
				return "1 " + u.singular, nil
			}
			return fmt.Sprintf("%d %s", units, u.plural), nil
		}
	}
	return "", nil
}

func mod(a, b float64) float64 {
	if b == 0 {
		return a
	}
	n := int64(a / b)
	return a - float64(n)*b
}
