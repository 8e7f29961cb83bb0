package game

import "golang.org/x/exp/slices"

// TimingPoint sets the tempo from Ms until the next point. A BPM of 0 means
// there is no tempo active from this point.
type TimingPoint struct {
	BPM float64
	Ms  int64
}

func comparePoints(a, b TimingPoint) int {
	switch {
	case a.Ms < b.Ms:
		return -1
	case a.Ms > b.Ms:
		return 1
	}
	return 0
}

// SortTimingPoints orders points by time and drops duplicates, keeping the
// last point for any given Ms.
func SortTimingPoints(points []TimingPoint) []TimingPoint {
	slices.SortStableFunc(points, comparePoints)
	out := points[:0]
	for i, p := range points {
		if i+1 < len(points) && points[i+1].Ms == p.Ms {
			continue
		}
		out = append(out, p)
	}
	return out
}

// InsertTimingPoint returns a new slice with p inserted, replacing any point
// at the same Ms.
func InsertTimingPoint(points []TimingPoint, p TimingPoint) []TimingPoint {
	i, found := slices.BinarySearchFunc(points, p, comparePoints)
	out := make([]TimingPoint, 0, len(points)+1)
	out = append(out, points[:i]...)
	out = append(out, p)
	if found {
		i++
	}
	return append(out, points[i:]...)
}

// IndexOfTimingPoint returns the index of the point at ms, or -1.
func IndexOfTimingPoint(points []TimingPoint, ms int64) int {
	i, found := slices.BinarySearchFunc(points, TimingPoint{Ms: ms}, comparePoints)
	if !found {
		return -1
	}
	return i
}
