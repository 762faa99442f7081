package stats

import (
	"testing"

	"github.com/segusengineering/worksync/internal/worksession"
)

func TestComputeExampleScenario(t *testing.T) {
	sessions := []worksession.WorkSession{
		{TotalWorkTime: "2:00:00", TotalPauseTime: "0:30:00"},
	}
	got := Compute(sessions)
	if got.TotalHours != 2.0 {
		t.Errorf("TotalHours = %v, want 2.0", got.TotalHours)
	}
	if got.PauseHours != 0.5 {
		t.Errorf("PauseHours = %v, want 0.5", got.PauseHours)
	}
	if got.NetHours != 1.5 {
		t.Errorf("NetHours = %v, want 1.5", got.NetHours)
	}
	if got.Efficiency != 75 {
		t.Errorf("Efficiency = %v, want 75", got.Efficiency)
	}
}

func TestComputeZeroTotalHours(t *testing.T) {
	got := Compute([]worksession.WorkSession{{TotalWorkTime: "", TotalPauseTime: "bogus"}})
	if got.Efficiency != 0 {
		t.Fatalf("efficiency with zero total must be 0, got %v", got.Efficiency)
	}
	if got.TotalHours != 0 || got.PauseHours != 0 {
		t.Fatalf("malformed durations must count as zero: %+v", got)
	}
}

func TestComputeSumsAcrossSessions(t *testing.T) {
	sessions := []worksession.WorkSession{
		{TotalWorkTime: "1:00:00", TotalPauseTime: "0:15:00"},
		{TotalWorkTime: "3:00:00", TotalPauseTime: "0:45:00"},
	}
	got := Compute(sessions)
	if got.TotalHours != 4.0 || got.PauseHours != 1.0 || got.NetHours != 3.0 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestPaginateClamping(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, effective := Paginate(items, 1, 10)
	if len(page) != 10 || effective != 1 || page[0] != 0 {
		t.Fatalf("page 1: len=%d effective=%d", len(page), effective)
	}

	page, effective = Paginate(items, 3, 10)
	if len(page) != 5 || effective != 3 || page[0] != 20 {
		t.Fatalf("page 3: len=%d effective=%d", len(page), effective)
	}

	// Out-of-range pages clamp, never panic.
	page, effective = Paginate(items, 99, 10)
	if effective != 3 || len(page) != 5 {
		t.Fatalf("overshoot: len=%d effective=%d", len(page), effective)
	}
	page, effective = Paginate(items, -4, 10)
	if effective != 1 || page[0] != 0 {
		t.Fatalf("undershoot: effective=%d", effective)
	}

	page, effective = Paginate([]int{}, 2, 10)
	if len(page) != 0 || effective != 1 {
		t.Fatalf("empty collection: len=%d effective=%d", len(page), effective)
	}
}
