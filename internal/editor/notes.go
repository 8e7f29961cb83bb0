package editor

import (
	"errors"
	"math"

	"git.lost.host/meutraa/hopedit/internal/game"
)

var ErrNoSelection = errors.New("no notes selected")

// PlaceNote adds a note at ms, snapped to the grid when asked.
func (c *Context) PlaceNote(lane float64, ms float64, snap bool) error {
	at := int64(math.Round(ms))
	if snap {
		at = c.snap(ms, false)
	}
	n := game.NewNote(lane, at)
	return c.push("ADD NOTE", Edit{Kind: NoteEdit, After: game.Chart{Notes: []game.Note{n}}})
}

// Selected returns copies of the selected notes in time order.
func (c *Context) Selected() []game.Note {
	var notes []game.Note
	for _, n := range c.Chart.Notes {
		if n.Selected {
			n.Selected = false
			notes = append(notes, n)
		}
	}
	return notes
}

// Paste inserts notes so the earliest lands on the playback position. Lanes are
// scaled around the centre by scale, 1 keeps them.
func (c *Context) Paste(notes []game.Note, scale float64) error {
	if len(notes) == 0 {
		return nil
	}
	start := notes[0].Ms
	for _, n := range notes {
		start = min(start, n.Ms)
	}
	offset := int64(math.Round(c.Settings.CurrentTime)) - start
	pasted := make([]game.Note, len(notes))
	for i, n := range notes {
		pasted[i] = game.NewNote((n.Lane-2)*scale+2, n.Ms+offset)
	}
	return c.push(plural("PASTE NOTE", len(pasted)), Edit{
		Kind:   NoteEdit,
		After:  game.Chart{Notes: pasted},
		Select: true,
	})
}

func (c *Context) removeNotes(label string, notes []game.Note) error {
	if len(notes) == 0 {
		return ErrNoSelection
	}
	return c.push(plural(label, len(notes)), Edit{Kind: NoteEdit, Before: game.Chart{Notes: notes}})
}

// Cut removes the selected notes and returns them.
func (c *Context) Cut() ([]game.Note, error) {
	notes := c.Selected()
	if err := c.removeNotes("CUT NOTE", notes); nil != err {
		return nil, err
	}
	return notes, nil
}

// Delete removes the selected notes, or the selected timing point when no
// note is selected.
func (c *Context) Delete() error {
	if notes := c.Selected(); len(notes) > 0 {
		return c.removeNotes("DELETE NOTE", notes)
	}
	if nil != c.SelectedPoint {
		return c.RemoveTimingPoint(c.SelectedPoint.Ms)
	}
	return ErrNoSelection
}

func (c *Context) transform(label string, f func(game.Note) game.Note) error {
	before := c.Selected()
	if len(before) == 0 {
		return ErrNoSelection
	}
	after := make([]game.Note, len(before))
	for i, n := range before {
		after[i] = f(n)
	}
	return c.push(plural(label, len(after)), Edit{
		Kind:   NoteEdit,
		Before: game.Chart{Notes: before},
		After:  game.Chart{Notes: after},
		Select: true,
	})
}

// Mirror flips the selected notes across the centre lane.
func (c *Context) Mirror() error {
	return c.transform("MIRROR NOTE", game.Note.Mirror)
}

// Move shifts the selected notes by delta ms.
func (c *Context) Move(delta int64) error {
	return c.transform("MOVE NOTE", func(n game.Note) game.Note {
		n.Ms += delta
		return n
	})
}

// SetLane moves the selected notes onto lane.
func (c *Context) SetLane(lane float64) error {
	return c.transform("MOVE NOTE", func(n game.Note) game.Note {
		n.Lane = game.ClampLane(lane)
		return n
	})
}

// BeginDrag remembers where each selected note started.
func (c *Context) BeginDrag() {
	for i := range c.Chart.Notes {
		c.Chart.Notes[i].DragStartMs = c.Chart.Notes[i].Ms
	}
}

// EndDrag moves the selection so the earliest selected note, measured from
// where the drag began, lands on targetMs.
func (c *Context) EndDrag(targetMs float64, snap bool) error {
	anchor := int64(-1)
	for _, n := range c.Chart.Notes {
		if n.Selected {
			anchor = n.DragStartMs
			break
		}
	}
	if anchor < 0 {
		return ErrNoSelection
	}
	to := int64(math.Round(targetMs))
	if snap {
		to = c.snap(targetMs, false)
	}
	if to == anchor {
		return nil
	}
	return c.Move(to - anchor)
}

func (c *Context) SelectAll() {
	for i := range c.Chart.Notes {
		c.Chart.Notes[i].Selected = true
	}
}

func (c *Context) ClearSelection() {
	for i := range c.Chart.Notes {
		c.Chart.Notes[i].Selected = false
	}
}

// SelectRange selects the notes between fromMs and toMs inclusive.
func (c *Context) SelectRange(fromMs, toMs int64, additive bool) int {
	if fromMs > toMs {
		fromMs, toMs = toMs, fromMs
	}
	count := 0
	for i := range c.Chart.Notes {
		n := &c.Chart.Notes[i]
		in := n.Ms >= fromMs && n.Ms <= toMs
		n.Selected = in || (additive && n.Selected)
		if n.Selected {
			count++
		}
	}
	return count
}

// SelectNote toggles a single note into the selection.
func (c *Context) SelectNote(index int, additive bool) {
	if !additive {
		c.ClearSelection()
	}
	if index >= 0 && index < len(c.Chart.Notes) {
		c.Chart.Notes[index].Selected = !additive || !c.Chart.Notes[index].Selected
	}
}
