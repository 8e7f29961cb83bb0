package game

import "golang.org/x/exp/slices"

// Chart is the editable content of a map.
type Chart struct {
	Notes        []Note
	TimingPoints []TimingPoint
	Bookmarks    []Bookmark
}

func (c *Chart) Clone() Chart {
	return Chart{
		Notes:        slices.Clone(c.Notes),
		TimingPoints: slices.Clone(c.TimingPoints),
		Bookmarks:    slices.Clone(c.Bookmarks),
	}
}

// Sort restores the ordering invariants of all three lists.
func (c *Chart) Sort() {
	SortNotes(c.Notes)
	c.TimingPoints = SortTimingPoints(c.TimingPoints)
	SortBookmarks(c.Bookmarks)
}

func (c *Chart) Empty() bool {
	return len(c.Notes) == 0 && len(c.TimingPoints) == 0 && len(c.Bookmarks) == 0
}

// Visible returns the notes with fromMs <= Ms <= toMs and the index range
// they occupy. Notes must be sorted.
func (c *Chart) Visible(fromMs, toMs int64) ([]Note, int, int) {
	start, _ := slices.BinarySearchFunc(c.Notes, fromMs, func(n Note, ms int64) int {
		if n.Ms < ms {
			return -1
		}
		return 1
	})
	end := start
	for end < len(c.Notes) && c.Notes[end].Ms <= toMs {
		end++
	}
	return c.Notes[start:end], start, end
}

// ClosestNote returns the Ms of the note nearest to ms, or -1 without notes.
func (c *Chart) ClosestNote(ms float64) int64 {
	closest := int64(-1)
	best := 0.0
	for i, n := range c.Notes {
		d := float64(n.Ms) - ms
		if d < 0 {
			d = -d
		}
		if i == 0 || d < best {
			best = d
			closest = n.Ms
		}
	}
	return closest
}
