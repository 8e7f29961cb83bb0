package editor

import (
	"errors"
	"math"

	"git.lost.host/meutraa/hopedit/internal/game"
)

var ErrNoPoint = errors.New("no timing point at that time")

func (c *Context) pointAt(ms int64) (game.TimingPoint, bool) {
	i := game.IndexOfTimingPoint(c.Chart.TimingPoints, ms)
	if i < 0 {
		return game.TimingPoint{}, false
	}
	return c.Chart.TimingPoints[i], true
}

// AddTimingPoint adds a point, replacing any point at the same ms.
func (c *Context) AddTimingPoint(bpm float64, ms int64) error {
	if bpm < 0 {
		return errors.New("bpm must not be negative")
	}
	e := Edit{Kind: PointEdit, After: game.Chart{TimingPoints: []game.TimingPoint{{BPM: bpm, Ms: ms}}}, Select: true}
	if old, ok := c.pointAt(ms); ok {
		e.Before.TimingPoints = []game.TimingPoint{old}
	}
	return c.push("ADD POINT", e)
}

// AddTimingPointHere adds a point at the playback position.
func (c *Context) AddTimingPointHere(bpm float64) error {
	return c.AddTimingPoint(bpm, int64(math.Round(c.Settings.CurrentTime)))
}

func (c *Context) RemoveTimingPoint(ms int64) error {
	old, ok := c.pointAt(ms)
	if !ok {
		return ErrNoPoint
	}
	return c.push("DELETE POINT", Edit{Kind: PointEdit, Before: game.Chart{TimingPoints: []game.TimingPoint{old}}})
}

// MoveTimingPoint moves the point at fromMs. Snapping ignores the point's own
// tempo so it lands on the grid of the segment before it.
func (c *Context) MoveTimingPoint(fromMs int64, toMs float64, snap bool) error {
	old, ok := c.pointAt(fromMs)
	if !ok {
		return ErrNoPoint
	}
	to := int64(math.Round(toMs))
	if snap {
		to = c.snap(toMs, true)
	}
	if to < 0 {
		to = 0
	}
	if to == fromMs {
		return nil
	}
	moved := game.TimingPoint{BPM: old.BPM, Ms: to}
	e := Edit{
		Kind:   PointEdit,
		Before: game.Chart{TimingPoints: []game.TimingPoint{old}},
		After:  game.Chart{TimingPoints: []game.TimingPoint{moved}},
		Select: true,
	}
	if other, ok := c.pointAt(to); ok {
		e.Before.TimingPoints = append(e.Before.TimingPoints, other)
	}
	return c.push("MOVE POINT", e)
}

func (c *Context) SetTimingPointBPM(ms int64, bpm float64) error {
	old, ok := c.pointAt(ms)
	if !ok {
		return ErrNoPoint
	}
	if bpm < 0 {
		return errors.New("bpm must not be negative")
	}
	if old.BPM == bpm {
		return nil
	}
	return c.push("EDIT POINT", Edit{
		Kind:   PointEdit,
		Before: game.Chart{TimingPoints: []game.TimingPoint{old}},
		After:  game.Chart{TimingPoints: []game.TimingPoint{{BPM: bpm, Ms: ms}}},
		Select: true,
	})
}

// SelectPoint selects the point at ms, or clears the selection.
func (c *Context) SelectPoint(ms int64) bool {
	p, ok := c.pointAt(ms)
	if !ok {
		c.SelectedPoint = nil
		return false
	}
	c.SelectedPoint = &p
	return true
}
