package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortTimingPointsKeepsLastDuplicate(t *testing.T) {
	points := SortTimingPoints([]TimingPoint{{BPM: 60, Ms: 500}, {BPM: 120, Ms: 0}, {BPM: 90, Ms: 500}})
	assert.Equal(t, []TimingPoint{{BPM: 120, Ms: 0}, {BPM: 90, Ms: 500}}, points)
}

func TestInsertTimingPoint(t *testing.T) {
	points := []TimingPoint{{BPM: 120, Ms: 0}, {BPM: 60, Ms: 1000}}

	inserted := InsertTimingPoint(points, TimingPoint{BPM: 90, Ms: 500})
	assert.Equal(t, []TimingPoint{{BPM: 120, Ms: 0}, {BPM: 90, Ms: 500}, {BPM: 60, Ms: 1000}}, inserted)

	replaced := InsertTimingPoint(points, TimingPoint{BPM: 30, Ms: 1000})
	assert.Equal(t, []TimingPoint{{BPM: 120, Ms: 0}, {BPM: 30, Ms: 1000}}, replaced)
	assert.Equal(t, 60.0, points[1].BPM, "input is not modified")

	assert.Equal(t, 1, IndexOfTimingPoint(replaced, 1000))
	assert.Equal(t, -1, IndexOfTimingPoint(replaced, 999))
}

func TestNotes(t *testing.T) {
	notes := []Note{{Lane: 1, Ms: 300}, {Lane: 2, Ms: 100}, {Lane: 3, Ms: 100}}
	SortNotes(notes)
	assert.Equal(t, []Note{{Lane: 2, Ms: 100}, {Lane: 3, Ms: 100}, {Lane: 1, Ms: 300}}, notes)
	assert.Equal(t, 1, IndexOfNote(notes, Note{Lane: 3, Ms: 100, Selected: true}))
	assert.Equal(t, -1, IndexOfNote(notes, Note{Lane: 3, Ms: 300}))

	assert.Equal(t, 3.0, NewNote(1, 0).Mirror().Lane)
	assert.Equal(t, MaxLane, NewNote(7, 0).Lane)
	assert.Equal(t, MinLane, NewNote(-1, 0).Lane)
	assert.Equal(t, 1.23, NewNote(1.234, 0).Lane)
	assert.Equal(t, 0.12, ClampLane(0.125))
	assert.Equal(t, 2.77, NewNote(1.234, 0).Mirror().Lane)
}

func TestBookmarks(t *testing.T) {
	b := NewBookmark("x", 500, 100)
	assert.Equal(t, Bookmark{Label: "x", StartMs: 100, EndMs: 500}, b)
	assert.True(t, b.Ranged())
	assert.False(t, NewBookmark("y", 5, 5).Ranged())

	bookmarks := []Bookmark{b, {Label: "a", StartMs: 0}}
	SortBookmarks(bookmarks)
	assert.Equal(t, "a", bookmarks[0].Label)
	assert.Equal(t, 1, IndexOfBookmark(bookmarks, b))
}

func TestChart(t *testing.T) {
	c := Chart{Notes: []Note{{Ms: 100}, {Ms: 200}, {Ms: 300}, {Ms: 400}}}
	visible, start, end := c.Visible(150, 300)
	assert.Equal(t, []Note{{Ms: 200}, {Ms: 300}}, visible)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	visible, _, _ = c.Visible(500, 600)
	assert.Empty(t, visible)

	assert.Equal(t, int64(300), c.ClosestNote(320))

	clone := c.Clone()
	clone.Notes[0].Ms = 5
	assert.Equal(t, int64(100), c.Notes[0].Ms)
	assert.False(t, c.Empty())
	assert.True(t, (&Chart{}).Empty())
}
