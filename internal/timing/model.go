// Package timing maps between absolute milliseconds and the musical grid
// defined by a list of timing points and a beat divisor.
package timing

import (
	"iter"
	"math"

	"git.lost.host/meutraa/hopedit/internal/game"
)

type Model struct {
	Points  []game.TimingPoint // Sorted by Ms, one point per Ms
	Divisor float64            // Subdivisions per beat, may be fractional
	MaxMs   float64            // Length of the timeline, <= 0 when unknown
}

func New(points []game.TimingPoint, divisor, maxMs float64) *Model {
	return &Model{Points: points, Divisor: divisor, MaxMs: maxMs}
}

// Effective splits a divisor into an integral number of subdivisions per
// beat group and the number of beats in a group. A divisor of 3.5 gives 7
// subdivisions over 2 beats.
func Effective(divisor float64) (int, float64) {
	if divisor <= 0 {
		return 1, 1
	}
	multiplier := 1.0
	if _, frac := math.Modf(divisor); frac != 0 {
		multiplier = 1 / frac
	}
	return int(math.Round(divisor * multiplier)), multiplier
}

// Interval is the length of one subdivision in the segment of point.
func (m *Model) Interval(point game.TimingPoint) float64 {
	if point.BPM <= 0 {
		return 0
	}
	effective, multiplier := Effective(m.Divisor)
	return 60000 / point.BPM * multiplier / float64(effective)
}

// CurrentTempo returns the last point at or before atMs. With excludeEqual a
// point exactly at atMs is skipped, which keeps a dragged point from
// snapping to itself.
func (m *Model) CurrentTempo(atMs float64, excludeEqual bool) game.TimingPoint {
	current := game.TimingPoint{}
	for _, p := range m.Points {
		ms := float64(p.Ms)
		if ms < atMs || (!excludeEqual && ms == atMs) {
			current = p
		} else {
			break
		}
	}
	return current
}

func (m *Model) clampMax(ms float64) float64 {
	if m.MaxMs > 0 && ms > m.MaxMs {
		return m.MaxMs
	}
	return ms
}

// ClosestBeat snaps atMs to the nearest grid line, or returns -1 when no
// tempo is active at atMs.
func (m *Model) ClosestBeat(atMs float64, excludeEqual bool) int64 {
	point := m.CurrentTempo(atMs, excludeEqual)
	if point.BPM <= 0 {
		return -1
	}
	interval := m.Interval(point)
	phase := math.Mod(float64(point.Ms), interval)
	closest := math.RoundToEven(math.RoundToEven((atMs-phase)/interval)*interval + phase)
	return int64(m.clampMax(closest))
}

// ClosestBeatInDirection moves steps grid lines forwards or backwards from
// atMs, always landing on a grid line. Moving forward into a new segment
// lands on the point that starts it.
func (m *Model) ClosestBeatInDirection(atMs float64, negative bool, steps int) int64 {
	closest := m.ClosestBeat(atMs, false)
	if closest < 0 || m.CurrentTempo(float64(closest), false).BPM <= 0 {
		return -1
	}
	current := atMs
	for i := 0; i < steps; i++ {
		point := m.CurrentTempo(current, negative)
		if point.BPM <= 0 {
			return -1
		}
		interval := int64(m.Interval(point))
		if negative {
			closest = m.ClosestBeat(current, true)
			if float64(closest) >= current {
				closest = m.ClosestBeat(float64(closest-interval), false)
			}
		} else {
			if float64(closest) <= current {
				closest = m.ClosestBeat(float64(closest+interval), false)
			}
			if next := m.CurrentTempo(float64(closest), false); m.CurrentTempo(current, false).Ms != next.Ms {
				closest = next.Ms
			}
		}
		if closest < 0 {
			return -1
		}
		if float64(closest) == current {
			// clamped at the end of the timeline
			break
		}
		current = float64(closest)
	}
	if closest < 0 {
		return -1
	}
	return int64(math.Max(0, m.clampMax(float64(closest))))
}

// segmentEnd is where the tempo of Points[i] stops applying.
func (m *Model) segmentEnd(i int) float64 {
	end := math.Inf(1)
	if m.MaxMs > 0 {
		end = m.MaxMs
	}
	if i+1 < len(m.Points) {
		end = math.Min(end, float64(m.Points[i+1].Ms))
	}
	return end
}

// Ticks yields every grid line between fromMs and toMs inclusive. The
// sequence can be ranged over any number of times.
func (m *Model) Ticks(fromMs, toMs float64) iter.Seq[game.Tick] {
	return func(yield func(game.Tick) bool) {
		effective, multiplier := Effective(m.Divisor)
		for i, point := range m.Points {
			if point.BPM <= 0 {
				continue
			}
			start := float64(point.Ms)
			end := m.segmentEnd(i)
			if start > toMs || end < fromMs || start >= end {
				continue
			}
			group := 60000 / point.BPM * multiplier
			sub := group / float64(effective)
			first := 0.0
			if fromMs > start {
				first = math.Floor((fromMs - start) / group)
			}
			for g := first; ; g++ {
				beat := start + g*group
				if beat >= end || beat > toMs {
					break
				}
				for k := 0; k < effective; k++ {
					ms := beat + float64(k)*sub
					if ms >= end || ms > toMs {
						break
					}
					if ms < fromMs {
						continue
					}
					kind := game.SubTick
					if k == 0 {
						kind = game.BeatTick
					} else if effective%2 == 0 && k == effective/2 {
						kind = game.HalfTick
					}
					if !yield(game.Tick{Kind: kind, Ms: ms, Point: point}) {
						return
					}
				}
			}
		}
	}
}

var denominators = []int{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64}

// Denominator returns the coarsest beat fraction 1/n whose grid contains ms,
// or 0 when ms is off every grid or has no tempo.
func (m *Model) Denominator(ms int64) int {
	point := m.CurrentTempo(float64(ms), false)
	if point.BPM <= 0 {
		return 0
	}
	beat := 60000 / point.BPM
	offset := float64(ms - point.Ms)
	for _, d := range denominators {
		step := beat / float64(d)
		r := math.Mod(offset, step)
		if r < 1 || step-r < 1 {
			return d
		}
	}
	return 0
}
