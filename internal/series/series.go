// Package series holds the pure time-series shaping helpers applied to
// chart data before it is served: fixed-stride decimation, daily
// bucketing, and time-window filtering.
package series

import (
	"fmt"
	"time"

	"floorboard/internal/domain"
)

// downsampleStride keeps every Nth interior point when decimating.
const downsampleStride = 5

// Downsample thins a series for display. The first and last elements
// are always kept; interior elements survive only at indices 1, 6,
// 11, ... (every stride-th, starting at 1). Inputs of length two or
// less pass through unchanged. Order is preserved and the result is
// never longer than the input.
func Downsample[T any](xs []T) []T {
	if len(xs) <= 2 {
		return xs
	}
	out := make([]T, 0, len(xs)/downsampleStride+2)
	out = append(out, xs[0])
	for i := 1; i < len(xs)-1; i += downsampleStride {
		out = append(out, xs[i])
	}
	out = append(out, xs[len(xs)-1])
	return out
}

// LastPerDay reduces a series to one point per UTC calendar day,
// keeping the last point observed in each day. Output days appear in
// the order their first point appeared in the input.
func LastPerDay(points []domain.ChartPoint) []domain.ChartPoint {
	if len(points) == 0 {
		return points
	}
	index := make(map[string]int, len(points))
	out := make([]domain.ChartPoint, 0, len(points))
	for _, p := range points {
		day := p.Timestamp.UTC().Format("2006-01-02")
		if i, ok := index[day]; ok {
			out[i] = p
			continue
		}
		index[day] = len(out)
		out = append(out, p)
	}
	return out
}

// Window selects how far back a chart reaches.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// ParseWindow validates a user-supplied window name.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowDay, WindowWeek, WindowMonth, WindowAll:
		return Window(s), nil
	case "":
		return WindowAll, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// FilterWindow keeps the points whose timestamp falls inside the
// window ending at now. WindowAll passes everything through.
func FilterWindow(points []domain.ChartPoint, w Window, now time.Time) []domain.ChartPoint {
	if w == WindowAll {
		return points
	}
	var cutoff time.Time
	switch w {
	case WindowDay:
		cutoff = now.AddDate(0, 0, -1)
	case WindowWeek:
		cutoff = now.AddDate(0, 0, -7)
	case WindowMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return points
	}
	out := make([]domain.ChartPoint, 0, len(points))
	for _, p := range points {
		if !p.Timestamp.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
