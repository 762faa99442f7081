package worksession

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts an "H:MM:SS" duration string as sent by the backend
// into a time.Duration. Empty or malformed input yields zero, never an error:
// the backend omits duration fields on fresh sessions and a bad value must
// not take down aggregation.
func ParseClock(s string) time.Duration {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return 0
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
}

// ParseClockHours is ParseClock expressed in fractional hours.
func ParseClockHours(s string) float64 {
	return ParseClock(s).Hours()
}

// FormatClock renders a duration as "HH:MM:SS". Negative durations clamp to
// zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
