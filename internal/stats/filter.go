package stats

import (
	"strings"
	"time"

	"github.com/segusengineering/worksync/internal/worksession"
)

type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// StatusAll disables status filtering.
const StatusAll = "all"

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// Filter narrows a session collection. The zero value matches everything.
type Filter struct {
	// Search matches case-insensitively against the employee identifier and
	// the notes text.
	Search string
	// Status is an exact status match; empty or "all" disables the filter.
	Status string
	// Dates buckets sessions by start time relative to now.
	Dates DateRange
}

// ApplyFilter is pure: it never mutates its input and identical inputs yield
// identical outputs. Callers reset pagination to page 1 after filtering.
func ApplyFilter(sessions []worksession.WorkSession, f Filter, now time.Time) []worksession.WorkSession {
	out := make([]worksession.WorkSession, 0, len(sessions))
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	for _, s := range sessions {
		if f.Status != "" && f.Status != StatusAll && string(s.Status) != f.Status {
			continue
		}
		if !inRange(s.StartTime, f.Dates, now) {
			continue
		}
		if needle != "" && !matchesSearch(s, needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func inRange(start time.Time, r DateRange, now time.Time) bool {
	switch r {
	case DateRangeToday:
		y1, m1, d1 := start.Local().Date()
		y2, m2, d2 := now.Local().Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DateRangeWeek:
		return !start.Before(now.Add(-weekWindow))
	case DateRangeMonth:
		return !start.Before(now.Add(-monthWindow))
	default:
		return true
	}
}

func matchesSearch(s worksession.WorkSession, needle string) bool {
	if strings.Contains(strings.ToLower(s.Employee), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(s.EmployeeName), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(s.Notes), needle)
}
