// Package editor holds the active editing context and the edit commands that
// change it. Every change to the chart goes through an Edit pushed onto the
// context's history.
package editor

import (
	"math"

	"git.lost.host/meutraa/hopedit/internal/game"
	"git.lost.host/meutraa/hopedit/internal/history"
	"git.lost.host/meutraa/hopedit/internal/timing"
)

const (
	DefaultDivisor = 4.0
	MinDivisor     = 1.0
	MaxDivisor     = 32.0
)

// Settings is the per map scalar state that travels with a map between
// activations.
type Settings struct {
	CurrentTime  float64 // Playback position in ms
	MaxTime      float64 // Length of the audio in ms, 0 when unknown
	BeatDivisor  float64 // Subdivisions per beat
	ExportOffset int64   // Added to every note when exporting
}

func DefaultSettings() Settings {
	return Settings{BeatDivisor: DefaultDivisor}
}

// Context is the single shared state the active map is copied into.
type Context struct {
	Chart         game.Chart
	SelectedPoint *game.TimingPoint
	Tempo         float64
	Zoom          float64
	FilePath      string
	SoundID       string
	Settings      Settings
	History       *history.Engine
}

func NewContext() *Context {
	c := &Context{History: history.New()}
	c.Reset()
	return c
}

// Reset empties the context for a new map.
func (c *Context) Reset() {
	c.Chart = game.Chart{}
	c.SelectedPoint = nil
	c.Tempo = 1
	c.Zoom = 1
	c.FilePath = ""
	c.SoundID = ""
	c.Settings = DefaultSettings()
	c.History.Clear()
}

// Timing returns a timing model over the current points. The model shares the
// point slice, which is never mutated in place.
func (c *Context) Timing() *timing.Model {
	return timing.New(c.Chart.TimingPoints, c.Settings.BeatDivisor, c.Settings.MaxTime)
}

func (c *Context) Undo() (bool, error) { return c.History.Undo() }

func (c *Context) Redo() (bool, error) { return c.History.Redo() }

// Seek moves the playback position, clamped to the timeline.
func (c *Context) Seek(ms float64) {
	ms = math.Max(0, ms)
	if c.Settings.MaxTime > 0 {
		ms = math.Min(ms, c.Settings.MaxTime)
	}
	c.Settings.CurrentTime = ms
}

// Advance moves the playback position one grid line forwards or backwards.
func (c *Context) Advance(reverse bool) bool {
	t := c.Timing()
	if t.CurrentTempo(c.Settings.CurrentTime, false).BPM <= 0 {
		return false
	}
	ms := t.ClosestBeatInDirection(c.Settings.CurrentTime, reverse, 1)
	if ms < 0 {
		return false
	}
	c.Settings.CurrentTime = float64(ms)
	return true
}

func (c *Context) SetDivisor(divisor float64) {
	c.Settings.BeatDivisor = math.Max(MinDivisor, math.Min(MaxDivisor, divisor))
}

// SetTempo maps the playback speed slider value to a tempo. The slider is
// linear up to 0.9 and twice as steep above it.
func (c *Context) SetTempo(value float64) {
	a := math.Min(value, 0.9)
	b := (value - a) * 2
	c.Tempo = a + b + 0.1
}

func (c *Context) SetZoom(zoom float64) {
	c.Zoom = math.Max(0.01, math.Round(zoom*100)/100)
}

// SetExportOffset changes the export offset while keeping the exported note
// times the same. It is part of loading and is not recorded in the history.
func (c *Context) SetExportOffset(offset int64) {
	delta := c.Settings.ExportOffset - offset
	for i := range c.Chart.Notes {
		c.Chart.Notes[i].Ms += delta
	}
	c.Settings.ExportOffset = offset
}

// snap returns the closest grid line to ms, or ms itself without a tempo.
func (c *Context) snap(ms float64, excludeEqual bool) int64 {
	if closest := c.Timing().ClosestBeat(ms, excludeEqual); closest >= 0 {
		return closest
	}
	return int64(math.Round(ms))
}
