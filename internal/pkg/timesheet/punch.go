package timesheet

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	punchSplitRegex = regexp.MustCompile(`[,;\s]+`)
	clockPrefix     = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)
)

// ParseTimes extracts an ordered sequence of HH:MM clock times from a raw
// cell value. Tokens are split on comma/semicolon/whitespace runs; a token
// must start with an HH:MM shape and any trailing seconds are discarded.
// Tokens not matching the shape are rejected. When maxCount > 0 the result is
// truncated to the first maxCount entries.
//
// Order is preserved exactly as encountered: it is later interpreted as
// alternating IN/OUT pairs, so re-sorting here would corrupt the pairing.
func ParseTimes(raw string, maxCount int) []string {
	var times []string
	for _, token := range punchSplitRegex.Split(strings.TrimSpace(raw), -1) {
		if token == "" {
			continue
		}
		m := clockPrefix.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		times = append(times, m[1]+":"+m[2])
		if maxCount > 0 && len(times) == maxCount {
			break
		}
	}
	return times
}

// ParseTimesFrom accepts a sequence of raw values (for sheets that spread
// punches across several columns), joins them and parses as one stream.
func ParseTimesFrom(values []string, maxCount int) []string {
	return ParseTimes(strings.Join(values, ","), maxCount)
}

// clockToMinutes converts an HH:MM string to minutes since midnight.
// Returns -1 for values not matching the shape.
func clockToMinutes(s string) int {
	m := clockPrefix.FindStringSubmatch(s)
	if m == nil || len(s) != len(m[0]) {
		return -1
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return hour*60 + minute
}
