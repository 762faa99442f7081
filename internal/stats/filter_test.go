package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/segusengineering/worksync/internal/worksession"
)

var filterNow = time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

func sampleSessions() []worksession.WorkSession {
	return []worksession.WorkSession{
		{ID: 1, Employee: "amira@segus.tn", Status: worksession.StatusActive, StartTime: filterNow.Add(-2 * time.Hour), Notes: "sprint review prep"},
		{ID: 2, Employee: "karim@segus.tn", Status: worksession.StatusPaused, StartTime: filterNow.Add(-3 * 24 * time.Hour)},
		{ID: 3, Employee: "amira@segus.tn", Status: worksession.StatusCompleted, StartTime: filterNow.Add(-20 * 24 * time.Hour), Notes: "quarterly report"},
		{ID: 4, Employee: "sana@segus.tn", Status: worksession.StatusCompleted, StartTime: filterNow.Add(-60 * 24 * time.Hour)},
	}
}

func ids(sessions []worksession.WorkSession) []int64 {
	out := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestApplyFilterStatus(t *testing.T) {
	got := ApplyFilter(sampleSessions(), Filter{Status: "active"}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{1}) {
		t.Fatalf("status filter: %v", ids(got))
	}
	got = ApplyFilter(sampleSessions(), Filter{Status: StatusAll}, filterNow)
	if len(got) != 4 {
		t.Fatalf("status 'all' must not filter, got %d", len(got))
	}
}

func TestApplyFilterDateRanges(t *testing.T) {
	got := ApplyFilter(sampleSessions(), Filter{Dates: DateRangeToday}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{1}) {
		t.Fatalf("today: %v", ids(got))
	}
	got = ApplyFilter(sampleSessions(), Filter{Dates: DateRangeWeek}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{1, 2}) {
		t.Fatalf("week: %v", ids(got))
	}
	got = ApplyFilter(sampleSessions(), Filter{Dates: DateRangeMonth}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{1, 2, 3}) {
		t.Fatalf("month: %v", ids(got))
	}
}

func TestApplyFilterSearch(t *testing.T) {
	got := ApplyFilter(sampleSessions(), Filter{Search: "AMIRA"}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{1, 3}) {
		t.Fatalf("search employee: %v", ids(got))
	}
	got = ApplyFilter(sampleSessions(), Filter{Search: "quarterly"}, filterNow)
	if !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Fatalf("search notes: %v", ids(got))
	}
}

func TestApplyFilterIsPure(t *testing.T) {
	input := sampleSessions()
	f := Filter{Search: "amira", Status: "completed", Dates: DateRangeMonth}
	first := ApplyFilter(input, f, filterNow)
	second := ApplyFilter(input, f, filterNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical outputs")
	}
	if !reflect.DeepEqual(input, sampleSessions()) {
		t.Fatal("input collection was mutated")
	}
}

func TestBucketByEmployeeRealWindows(t *testing.T) {
	buckets := BucketByEmployee(sampleSessions(), filterNow)

	amira := buckets["amira@segus.tn"]
	if amira.TotalHoursMonth < amira.TotalHoursWeek || amira.TotalHoursWeek < amira.TotalHoursToday {
		t.Fatalf("buckets must be nested today<=week<=month: %+v", amira)
	}

	withHours := []worksession.WorkSession{
		{Employee: "amira@segus.tn", StartTime: filterNow.Add(-time.Hour), TotalWorkTime: "2:00:00", TotalPauseTime: "0:30:00"},
		{Employee: "amira@segus.tn", StartTime: filterNow.Add(-10 * 24 * time.Hour), TotalWorkTime: "4:00:00"},
	}
	b := BucketByEmployee(withHours, filterNow)["amira@segus.tn"]
	if b.TotalHoursToday != 2 {
		t.Errorf("today bucket = %v, want 2 (old session must not leak in)", b.TotalHoursToday)
	}
	if b.TotalHoursWeek != 2 {
		t.Errorf("week bucket = %v, want 2", b.TotalHoursWeek)
	}
	if b.TotalHoursMonth != 6 {
		t.Errorf("month bucket = %v, want 6", b.TotalHoursMonth)
	}
	if b.PauseHoursToday != 0.5 {
		t.Errorf("pause today = %v, want 0.5", b.PauseHoursToday)
	}
}
