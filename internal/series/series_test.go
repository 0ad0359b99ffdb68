package series

import (
	"testing"
	"time"

	"floorboard/internal/domain"
)

func ints(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

func TestDownsample(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{7}, []int{7}},
		{"pair", []int{1, 2}, []int{1, 2}},
		{"three", []int{0, 1, 2}, []int{0, 1, 2}},
		{"ten", ints(10), []int{0, 1, 6, 9}},
		{"twelve", ints(12), []int{0, 1, 6, 11}},
		{"thirteen", ints(13), []int{0, 1, 6, 11, 12}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Downsample(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
			if len(got) > len(tc.in) {
				t.Fatalf("output longer than input")
			}
		})
	}
}

func day(d int, hour int) time.Time {
	return time.Date(2024, 5, d, hour, 0, 0, 0, time.UTC)
}

func TestLastPerDay(t *testing.T) {
	t.Parallel()

	points := []domain.ChartPoint{
		{Timestamp: day(1, 9), Floor: 1},
		{Timestamp: day(1, 18), Floor: 2},
		{Timestamp: day(2, 3), Floor: 3},
		{Timestamp: day(1, 23), Floor: 4},
		{Timestamp: day(3, 1), Floor: 5},
	}
	got := LastPerDay(points)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Day 1 keeps its last observation even though day 2 interleaved.
	if got[0].Floor != 4 {
		t.Errorf("day 1 floor = %v, want 4", got[0].Floor)
	}
	if got[1].Floor != 3 {
		t.Errorf("day 2 floor = %v, want 3", got[1].Floor)
	}
	if got[2].Floor != 5 {
		t.Errorf("day 3 floor = %v, want 5", got[2].Floor)
	}

	if out := LastPerDay(nil); len(out) != 0 {
		t.Errorf("nil input gave %d points", len(out))
	}
}

func TestLastPerDayUsesUTC(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*3600)
	points := []domain.ChartPoint{
		// 23:00 EST May 1 is 04:00 UTC May 2.
		{Timestamp: time.Date(2024, 5, 1, 23, 0, 0, 0, est), Floor: 1},
		{Timestamp: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), Floor: 2},
	}
	got := LastPerDay(points)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (both points are May 2 UTC)", len(got))
	}
	if got[0].Floor != 2 {
		t.Errorf("kept floor = %v, want 2", got[0].Floor)
	}
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"day", "week", "month", "all"} {
		w, err := ParseWindow(s)
		if err != nil || string(w) != s {
			t.Errorf("ParseWindow(%q) = %q, %v", s, w, err)
		}
	}
	if w, err := ParseWindow(""); err != nil || w != WindowAll {
		t.Errorf("ParseWindow(empty) = %q, %v", w, err)
	}
	if _, err := ParseWindow("fortnight"); err == nil {
		t.Error("ParseWindow accepted unknown window")
	}
}

func TestFilterWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	points := []domain.ChartPoint{
		{Timestamp: now.Add(-2 * time.Hour), Floor: 1},
		{Timestamp: now.AddDate(0, 0, -3), Floor: 2},
		{Timestamp: now.AddDate(0, 0, -20), Floor: 3},
		{Timestamp: now.AddDate(0, -2, 0), Floor: 4},
	}

	if got := FilterWindow(points, WindowDay, now); len(got) != 1 {
		t.Errorf("day window kept %d points", len(got))
	}
	if got := FilterWindow(points, WindowWeek, now); len(got) != 2 {
		t.Errorf("week window kept %d points", len(got))
	}
	if got := FilterWindow(points, WindowMonth, now); len(got) != 3 {
		t.Errorf("month window kept %d points", len(got))
	}
	if got := FilterWindow(points, WindowAll, now); len(got) != 4 {
		t.Errorf("all window kept %d points", len(got))
	}
}
