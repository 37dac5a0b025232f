package timestamp

import (
	"strconv"
	"strings"
	"time"
)

// ParseMonitor parses a MONITOR timestamp: unix seconds with an optional
// fractional part, e.g. "1339518083.107412". Digits past nanosecond
// precision are dropped.
func ParseMonitor(s string) (time.Time, bool) {
	secPart, fracPart, hasFrac := strings.Cut(s, ".")
	if secPart == "" || strings.Contains(fracPart, ".") {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	var nsec int64
	if hasFrac && fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		nsec, err = strconv.ParseInt(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Unix(sec, nsec).UTC(), true
}
