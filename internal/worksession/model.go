package worksession

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// WorkSession is one continuous work period for one employee. The id is
// assigned by the backend and is zero until the first server acknowledgment.
type WorkSession struct {
	ID             int64      `json:"id"`
	Employee       string     `json:"employee"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Status         Status     `json:"status"`
	TotalWorkTime  string     `json:"total_work_time,omitempty"`
	PauseStartTime *time.Time `json:"pause_start_time,omitempty"`
	TotalPauseTime string     `json:"total_pause_time,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at,omitempty"`
}

// Open reports whether the session still accepts commands.
func (s *WorkSession) Open() bool {
	return s.Status == StatusActive || s.Status == StatusPaused
}

// EmployeeWorkStats is a backend-computed per-employee summary of worked and
// paused hours, bucketed by period.
type EmployeeWorkStats struct {
	EmployeeID          int64      `json:"employee_id"`
	EmployeeName        string     `json:"employee_name"`
	TotalHoursToday     float64    `json:"total_hours_today"`
	TotalHoursWeek      float64    `json:"total_hours_week"`
	TotalHoursMonth     float64    `json:"total_hours_month"`
	PauseHoursToday     float64    `json:"total_pause_today"`
	PauseHoursWeek      float64    `json:"total_pause_week"`
	PauseHoursMonth     float64    `json:"total_pause_month"`
	CurrentStatus       string     `json:"current_session_status"`
	CurrentSessionStart *time.Time `json:"current_session_start,omitempty"`
}
