package calendar

import (
	"testing"
	"time"
)

func TestYMD_UsesEasternDate(t *testing.T) {
	// 02:30 UTC on Oct 23 is still Oct 22 in New York.
	utc := time.Date(2024, 10, 23, 2, 30, 0, 0, time.UTC)
	if got := YMD(utc); got != "20241022" {
		t.Errorf("YMD() = %s, want 20241022", got)
	}
}

func TestTargets(t *testing.T) {
	now := time.Date(2024, 11, 5, 15, 0, 0, 0, Eastern)

	tests := []struct {
		name  string
		w     Window
		first string
		last  string
		count int
	}{
		{"default", Window{}, "20241104", "20241105", 2},
		{"days back", Window{DaysBack: 3}, "20241102", "20241105", 4},
		{"range", Window{Start: "2024-10-22", End: "2024-10-24"}, "20241022", "20241024", 3},
		{"reversed range", Window{Start: "2024-10-24", End: "2024-10-22"}, "20241022", "20241024", 3},
		{"range beats days back", Window{Start: "2024-01-01", End: "2024-01-01", DaysBack: 9}, "20240101", "20240101", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, desc, err := Targets(tt.w, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc == "" {
				t.Error("expected a description")
			}
			if len(dates) != tt.count {
				t.Fatalf("got %d dates, want %d", len(dates), tt.count)
			}
			if got := YMD(dates[0]); got != tt.first {
				t.Errorf("first = %s, want %s", got, tt.first)
			}
			if got := YMD(dates[len(dates)-1]); got != tt.last {
				t.Errorf("last = %s, want %s", got, tt.last)
			}
		})
	}
}

func TestTargets_InvalidDate(t *testing.T) {
	_, _, err := Targets(Window{Start: "2024-13-01", End: "2024-10-01"}, time.Now())
	if err == nil {
		t.Fatal("expected error for invalid month")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 10, 23, 59, 0, 0, Eastern)
	b := time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC) // 23:00 ET on Mar 10
	if !SameDay(a, b) {
		t.Error("expected same Eastern day")
	}
	if SameDay(a, a.Add(2*time.Minute)) {
		t.Error("expected different Eastern days across midnight")
	}
}
