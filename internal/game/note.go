package game

import (
	"math"

	"golang.org/x/exp/slices"
)

// Lane bounds of the playfield.
const (
	MinLane = 0.0
	MaxLane = 4.0
)

type Note struct {
	Lane float64 // Horizontal position, 0 to 4
	Ms   int64   // The time the note should be hit

	// This is state
	DragStartMs int64 `json:"-"` // Ms when a drag began
	Selected    bool  `json:"-"`
}

func NewNote(lane float64, ms int64) Note {
	return Note{Lane: ClampLane(lane), Ms: ms}
}

// ClampLane keeps lane on the playfield at the 0.01 resolution of the map
// format.
func ClampLane(lane float64) float64 {
	return math.Max(MinLane, math.Min(MaxLane, RoundLane(lane)))
}

// RoundLane rounds to two decimals, halves to even.
func RoundLane(lane float64) float64 {
	return math.RoundToEven(lane*100) / 100
}

// Same compares the persistent fields only.
func (n Note) Same(o Note) bool {
	return n.Lane == o.Lane && n.Ms == o.Ms
}

// Mirror flips the note horizontally around the centre lane.
func (n Note) Mirror() Note {
	n.Lane = ClampLane(MaxLane - n.Lane)
	return n
}

func compareNotes(a, b Note) int {
	switch {
	case a.Ms < b.Ms:
		return -1
	case a.Ms > b.Ms:
		return 1
	}
	return 0
}

// SortNotes orders notes by time, keeping insertion order for equal times.
func SortNotes(notes []Note) {
	slices.SortStableFunc(notes, compareNotes)
}

// IndexOfNote returns the index of the first note matching n, or -1.
func IndexOfNote(notes []Note, n Note) int {
	return slices.IndexFunc(notes, n.Same)
}
