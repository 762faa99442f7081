package stats

import (
	"time"

	"github.com/segusengineering/worksync/internal/worksession"
)

// SessionStats are the aggregate figures shown above the session table.
type SessionStats struct {
	TotalHours float64 `json:"total_hours"`
	PauseHours float64 `json:"pause_hours"`
	NetHours   float64 `json:"net_hours"`
	Efficiency float64 `json:"efficiency"`
}

// Compute aggregates worked and paused hours over a session collection.
// Duration fields that are missing or malformed count as zero. Efficiency is
// net over total in percent, zero when nothing was worked.
func Compute(sessions []worksession.WorkSession) SessionStats {
	var out SessionStats
	for _, s := range sessions {
		out.TotalHours += worksession.ParseClockHours(s.TotalWorkTime)
		out.PauseHours += worksession.ParseClockHours(s.TotalPauseTime)
	}
	out.NetHours = out.TotalHours - out.PauseHours
	if out.TotalHours > 0 {
		out.Efficiency = out.NetHours / out.TotalHours * 100
	}
	return out
}

// EmployeeBuckets are per-employee hours accumulated into real day/week/month
// windows by session start time.
type EmployeeBuckets struct {
	Employee        string  `json:"employee"`
	TotalHoursToday float64 `json:"total_hours_today"`
	TotalHoursWeek  float64 `json:"total_hours_week"`
	TotalHoursMonth float64 `json:"total_hours_month"`
	PauseHoursToday float64 `json:"total_pause_today"`
	PauseHoursWeek  float64 `json:"total_pause_week"`
	PauseHoursMonth float64 `json:"total_pause_month"`
}

// BucketByEmployee rebuilds per-employee work stats from raw sessions when no
// backend-provided aggregate is available. A session contributes to a bucket
// only when its start time falls inside that bucket's window.
func BucketByEmployee(sessions []worksession.WorkSession, now time.Time) map[string]EmployeeBuckets {
	out := make(map[string]EmployeeBuckets)
	for _, s := range sessions {
		b := out[s.Employee]
		b.Employee = s.Employee
		work := worksession.ParseClockHours(s.TotalWorkTime)
		pause := worksession.ParseClockHours(s.TotalPauseTime)
		if inRange(s.StartTime, DateRangeToday, now) {
			b.TotalHoursToday += work
			b.PauseHoursToday += pause
		}
		if inRange(s.StartTime, DateRangeWeek, now) {
			b.TotalHoursWeek += work
			b.PauseHoursWeek += pause
		}
		if inRange(s.StartTime, DateRangeMonth, now) {
			b.TotalHoursMonth += work
			b.PauseHoursMonth += pause
		}
		out[s.Employee] = b
	}
	return out
}

// Paginate slices one page out of items. Page numbers are clamped into
// [1, pageCount]; out-of-range requests never panic.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (len(items) + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start >= len(items) {
		return nil, page
	}
	return items[start:end], page
}

// DefaultPageSize matches the session table's fixed page size.
const DefaultPageSize = 10
